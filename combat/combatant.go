package combat

import (
	"fmt"
	"io"
	"log"
	"strings"
)

type Class string

const (
	ClassWarrior  Class = "WARRIOR"
	ClassSorcerer Class = "SORCERER"
)

// ParseClass accepts a class name in any case.
func ParseClass(s string) (Class, error) {
	switch c := Class(strings.ToUpper(strings.TrimSpace(s))); c {
	case ClassWarrior, ClassSorcerer:
		return c, nil
	}
	return "", fmt.Errorf("%w: unknown class %q", ErrInvalidArgument, s)
}

// Logger receives combat narration. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, v ...any)
}

// DiscardLogger drops everything written to it.
var DiscardLogger Logger = log.New(io.Discard, "", 0)

type WarriorStats struct {
	Stamina      int `json:"stamina"`
	DefensePower int `json:"defense_power"`
}

type SorcererStats struct {
	Mana         int `json:"mana"`
	HealingPower int `json:"healing_power"`
}

// BaseStats is the persisted character record a combatant is built from.
// Exactly one of Warrior or Sorcerer is set.
type BaseStats struct {
	ID          string         `json:"id"`
	AccountID   string         `json:"account_id"`
	Name        string         `json:"name"`
	Health      int            `json:"health"`
	AttackPower int            `json:"attack_power"`
	Experience  int            `json:"experience"`
	Level       Level          `json:"level"`
	Warrior     *WarriorStats  `json:"warrior,omitempty"`
	Sorcerer    *SorcererStats `json:"sorcerer,omitempty"`
}

func (b BaseStats) Class() Class {
	if b.Sorcerer != nil {
		return ClassSorcerer
	}
	return ClassWarrior
}

// AllocatedPoints is attack power plus the class resource pair.
func (b BaseStats) AllocatedPoints() int {
	total := b.AttackPower
	if b.Warrior != nil {
		total += b.Warrior.Stamina + b.Warrior.DefensePower
	}
	if b.Sorcerer != nil {
		total += b.Sorcerer.Mana + b.Sorcerer.HealingPower
	}
	return total
}

func (b BaseStats) Validate() error {
	switch {
	case b.Warrior == nil && b.Sorcerer == nil:
		return fmt.Errorf("%w: character %q has no resource pair", ErrInvalidArgument, b.ID)
	case b.Warrior != nil && b.Sorcerer != nil:
		return fmt.Errorf("%w: character %q has both resource pairs", ErrInvalidArgument, b.ID)
	case b.Health < 0 || b.AttackPower < 0 || b.Experience < 0:
		return fmt.Errorf("%w: character %q has negative stats", ErrInvalidArgument, b.ID)
	case b.Warrior != nil && (b.Warrior.Stamina < 0 || b.Warrior.DefensePower < 0):
		return fmt.Errorf("%w: character %q has negative stamina or defense", ErrInvalidArgument, b.ID)
	case b.Sorcerer != nil && (b.Sorcerer.Mana < 0 || b.Sorcerer.HealingPower < 0):
		return fmt.Errorf("%w: character %q has negative mana or healing", ErrInvalidArgument, b.ID)
	}
	return nil
}

// Snapshot is the combatant state captured by BeforeRound.
// The resource the class does not track is always 0.
type Snapshot struct {
	Health  int
	Stamina int
	Mana    int
}

// Combatant is a character taking part in one match. The only
// implementations are *Warrior and *Sorcerer.
type Combatant interface {
	Attack(target Combatant)
	ReceiveAttack(power int)
	BeforeRound() Snapshot
	IsAlive() bool
	CurrentHealth() int
	Stats() BaseStats

	state() Snapshot
}

// fighter holds the state shared by both classes.
type fighter struct {
	base   BaseStats
	health int
	log    Logger
}

func (f *fighter) IsAlive() bool      { return f.health > 0 }
func (f *fighter) CurrentHealth() int { return f.health }
func (f *fighter) Stats() BaseStats   { return f.base }

func (f *fighter) takeDamage(amount int) {
	f.health -= amount
	if f.health < 0 {
		f.health = 0
	}
	if f.health == 0 {
		f.log.Printf("%s has fallen", f.base.Name)
	}
}

// NewCombatant builds fresh match state from a base record. The base
// record is copied and never written back.
func NewCombatant(base BaseStats, logger Logger) (Combatant, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = DiscardLogger
	}
	f := fighter{base: base, health: base.Health, log: logger}
	if base.Warrior != nil {
		w := *base.Warrior
		f.base.Warrior = &w
		return &Warrior{fighter: f, stamina: w.Stamina}, nil
	}
	s := *base.Sorcerer
	f.base.Sorcerer = &s
	return &Sorcerer{fighter: f, mana: s.Mana}, nil
}
