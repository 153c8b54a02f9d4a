package combat

// RoundRecord is the net change of one combatant over one round,
// measured from the state captured by its BeforeRound.
type RoundRecord struct {
	Round        int    `json:"round"`
	CharacterID  string `json:"character_id"`
	HealthDelta  int    `json:"health_delta"`
	StaminaDelta int    `json:"stamina_delta"`
	ManaDelta    int    `json:"mana_delta"`
}

// ExecuteRound runs one round: both sides regenerate, then the challenger
// attacks and the opponent answers. The challenger's record comes first.
func ExecuteRound(round int, challenger, opponent Combatant) [2]RoundRecord {
	cBefore := challenger.BeforeRound()
	oBefore := opponent.BeforeRound()

	challenger.Attack(opponent)
	opponent.Attack(challenger)

	return [2]RoundRecord{
		recordFor(round, challenger, cBefore),
		recordFor(round, opponent, oBefore),
	}
}

func recordFor(round int, c Combatant, before Snapshot) RoundRecord {
	after := c.state()
	rec := RoundRecord{
		Round:       round,
		CharacterID: c.Stats().ID,
		HealthDelta: after.Health - before.Health,
	}
	switch c.(type) {
	case *Warrior:
		rec.StaminaDelta = after.Stamina - before.Stamina
	case *Sorcerer:
		rec.ManaDelta = after.Mana - before.Mana
	}
	return rec
}
