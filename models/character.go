package models

import (
	"character-arena/combat"
)

// Character is a player-owned fighter. Exactly one resource pair is set:
// stamina/defense_power for warriors, mana/healing_power for sorcerers.
type Character struct {
	ID          string       `gorm:"primaryKey;type:varchar(36)" json:"id"`
	AccountID   string       `gorm:"index;not null" json:"account_id"`
	Name        string       `gorm:"uniqueIndex;not null" json:"name"`
	Slug        string       `gorm:"uniqueIndex;not null" json:"slug"`
	Class       combat.Class `gorm:"type:varchar(16);index;not null" json:"class"`
	Health      int          `gorm:"not null" json:"health"`
	AttackPower int          `gorm:"not null" json:"attack_power"`
	Experience  int          `gorm:"not null;default:0" json:"experience"`
	Level       int          `gorm:"not null;default:1" json:"level"`

	// Warrior
	Stamina      *int `json:"stamina,omitempty"`
	DefensePower *int `json:"defense_power,omitempty"`

	// Sorcerer
	Mana         *int `json:"mana,omitempty"`
	HealingPower *int `json:"healing_power,omitempty"`

	Timestamps
}

// BaseStats converts the row into the record the combat engine works on.
func (c *Character) BaseStats() combat.BaseStats {
	b := combat.BaseStats{
		ID:          c.ID,
		AccountID:   c.AccountID,
		Name:        c.Name,
		Health:      c.Health,
		AttackPower: c.AttackPower,
		Experience:  c.Experience,
		Level:       combat.Level(c.Level),
	}
	switch c.Class {
	case combat.ClassWarrior:
		b.Warrior = &combat.WarriorStats{Stamina: deref(c.Stamina), DefensePower: deref(c.DefensePower)}
	case combat.ClassSorcerer:
		b.Sorcerer = &combat.SorcererStats{Mana: deref(c.Mana), HealingPower: deref(c.HealingPower)}
	}
	return b
}

// SetResources stores the resource pair of b and clears the other one.
func (c *Character) SetResources(b combat.BaseStats) {
	c.Stamina, c.DefensePower, c.Mana, c.HealingPower = nil, nil, nil, nil
	if b.Warrior != nil {
		c.Class = combat.ClassWarrior
		c.Stamina = intPtr(b.Warrior.Stamina)
		c.DefensePower = intPtr(b.Warrior.DefensePower)
	}
	if b.Sorcerer != nil {
		c.Class = combat.ClassSorcerer
		c.Mana = intPtr(b.Sorcerer.Mana)
		c.HealingPower = intPtr(b.Sorcerer.HealingPower)
	}
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func intPtr(v int) *int { return &v }
