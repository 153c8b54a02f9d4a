package combat

// staminaRegen is restored at the start of every round.
const staminaRegen = 1

type Warrior struct {
	fighter
	stamina int
}

func (w *Warrior) Stamina() int { return w.stamina }

func (w *Warrior) BeforeRound() Snapshot {
	w.stamina += staminaRegen
	return w.state()
}

func (w *Warrior) state() Snapshot {
	return Snapshot{Health: w.health, Stamina: w.stamina}
}

func (w *Warrior) Attack(target Combatant) {
	if !w.IsAlive() {
		return
	}
	if w.stamina <= 0 {
		w.log.Printf("%s is too tired to attack", w.base.Name)
		return
	}
	w.log.Printf("%s attacks with power %d", w.base.Name, w.base.AttackPower)
	target.ReceiveAttack(w.base.AttackPower)
	w.stamina--
}

func (w *Warrior) ReceiveAttack(power int) {
	damage := w.Defend(power)
	w.log.Printf("%s takes %d damage", w.base.Name, damage)
	w.takeDamage(damage)
}

// Defend returns the damage left after mitigation. Mitigation costs one
// stamina; without stamina the full power passes through.
func (w *Warrior) Defend(power int) int {
	if w.stamina <= 0 {
		w.stamina = 0
		w.log.Printf("%s is too tired to defend", w.base.Name)
		return power
	}
	w.stamina--
	if power <= w.base.Warrior.DefensePower {
		return 0
	}
	return power - w.base.Warrior.DefensePower
}
