package combat

const (
	manaRegen = 1
	healCost  = 2
)

type Sorcerer struct {
	fighter
	mana int
}

func (s *Sorcerer) Mana() int { return s.mana }

func (s *Sorcerer) BeforeRound() Snapshot {
	s.mana += manaRegen
	return s.state()
}

func (s *Sorcerer) state() Snapshot {
	return Snapshot{Health: s.health, Mana: s.mana}
}

func (s *Sorcerer) Attack(target Combatant) {
	if !s.IsAlive() {
		return
	}
	if s.mana <= 0 {
		s.log.Printf("%s is out of mana", s.base.Name)
		return
	}
	s.log.Printf("%s casts with power %d", s.base.Name, s.base.AttackPower)
	target.ReceiveAttack(s.base.AttackPower)
	s.mana--
	s.heal()
}

func (s *Sorcerer) ReceiveAttack(power int) {
	s.log.Printf("%s takes %d damage", s.base.Name, power)
	s.takeDamage(power)
}

// heal restores healing power up to max health for two mana. Mana may
// drop below zero here; the next BeforeRound regenerates it.
func (s *Sorcerer) heal() {
	if s.mana <= 0 {
		s.mana = 0
		return
	}
	if s.health >= s.base.Health {
		return
	}
	s.health += s.base.Sorcerer.HealingPower
	if s.health > s.base.Health {
		s.health = s.base.Health
	}
	s.mana -= healCost
	s.log.Printf("%s heals to %d", s.base.Name, s.health)
}
