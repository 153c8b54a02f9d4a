package combat

import (
	"fmt"
	"time"
)

type Outcome string

const (
	ChallengerWon Outcome = "CHALLENGER_WON"
	OpponentWon   Outcome = "OPPONENT_WON"
	Draw          Outcome = "DRAW"
)

// Rewards is the experience handed out after a match.
type Rewards struct {
	Win           int
	Participation int
}

var DefaultRewards = Rewards{Win: 100, Participation: 50}

// Fighter summarizes one side of a finished match.
type Fighter struct {
	ID               string `json:"id"`
	AccountID        string `json:"account_id"`
	Name             string `json:"name"`
	Class            Class  `json:"class"`
	LevelBefore      Level  `json:"level_before"`
	Level            Level  `json:"level"`
	ExperienceBefore int    `json:"experience_before"`
	ExperienceGained int    `json:"experience_gained"`
	FinalHealth      int    `json:"final_health"`
}

// ExperienceTotal is the experience after the match.
func (f Fighter) ExperienceTotal() int {
	return f.ExperienceBefore + f.ExperienceGained
}

// MatchResult is produced once per simulated match. ID and CreatedAt are
// empty until the match store records it.
type MatchResult struct {
	ID         string        `json:"id"`
	Challenger Fighter       `json:"challenger"`
	Opponent   Fighter       `json:"opponent"`
	Rounds     []RoundRecord `json:"rounds"`
	Outcome    Outcome       `json:"outcome"`
	CreatedAt  time.Time     `json:"created_at"`
}

// RoundsPlayed counts distinct rounds in the result.
func (r *MatchResult) RoundsPlayed() int {
	if len(r.Rounds) == 0 {
		return 0
	}
	return r.Rounds[len(r.Rounds)-1].Round
}

type MatchRequest struct {
	ChallengerID string `json:"challenger_id"`
	OpponentID   string `json:"opponent_id"`
	Rounds       int    `json:"rounds"`
}

// Simulator runs matches. It keeps no per-match state and may be shared.
type Simulator struct {
	log     Logger
	rewards Rewards
}

func NewSimulator(logger Logger) *Simulator {
	if logger == nil {
		logger = DiscardLogger
	}
	return &Simulator{log: logger, rewards: DefaultRewards}
}

// WithRewards returns a copy of the simulator that awards r.
func (s *Simulator) WithRewards(r Rewards) *Simulator {
	cp := *s
	cp.rewards = r
	return &cp
}

// Match resolves both ids in their pools and runs the match.
func (s *Simulator) Match(req MatchRequest, challengers, opponents []BaseStats) (*MatchResult, error) {
	if req.Rounds <= 0 {
		return nil, fmt.Errorf("%w: number of rounds must be greater than 0", ErrInvalidArgument)
	}
	challenger, ok := findStats(challengers, req.ChallengerID)
	if !ok {
		return nil, fmt.Errorf("%w: challenger %q", ErrNotFound, req.ChallengerID)
	}
	opponent, ok := findStats(opponents, req.OpponentID)
	if !ok {
		return nil, fmt.Errorf("%w: opponent %q", ErrNotFound, req.OpponentID)
	}
	return s.Run(challenger, opponent, req.Rounds)
}

func findStats(pool []BaseStats, id string) (BaseStats, bool) {
	for _, b := range pool {
		if b.ID == id {
			return b, true
		}
	}
	return BaseStats{}, false
}

// Run simulates up to maxRounds rounds between fresh combatants built
// from the two base records.
func (s *Simulator) Run(challengerStats, opponentStats BaseStats, maxRounds int) (*MatchResult, error) {
	if maxRounds <= 0 {
		return nil, fmt.Errorf("%w: number of rounds must be greater than 0", ErrInvalidArgument)
	}
	challenger, err := NewCombatant(challengerStats, s.log)
	if err != nil {
		return nil, fmt.Errorf("challenger: %w", err)
	}
	opponent, err := NewCombatant(opponentStats, s.log)
	if err != nil {
		return nil, fmt.Errorf("opponent: %w", err)
	}

	s.log.Printf("match %s vs %s, up to %d rounds", challengerStats.Name, opponentStats.Name, maxRounds)

	rounds := make([]RoundRecord, 0, 2*maxRounds)
	for round := 1; challenger.IsAlive() && opponent.IsAlive() && round <= maxRounds; round++ {
		recs := ExecuteRound(round, challenger, opponent)
		rounds = append(rounds, recs[0], recs[1])
	}

	outcome := decide(challenger, opponent)
	s.log.Printf("match %s vs %s ended: %s", challengerStats.Name, opponentStats.Name, outcome)

	return &MatchResult{
		Challenger: s.summarize(challenger, outcome == ChallengerWon),
		Opponent:   s.summarize(opponent, outcome == OpponentWon),
		Rounds:     rounds,
		Outcome:    outcome,
	}, nil
}

func decide(challenger, opponent Combatant) Outcome {
	switch {
	case !challenger.IsAlive() && opponent.IsAlive():
		return OpponentWon
	case !opponent.IsAlive() && challenger.IsAlive():
		return ChallengerWon
	default:
		return Draw
	}
}

func (s *Simulator) summarize(c Combatant, won bool) Fighter {
	base := c.Stats()
	gained := s.rewards.Participation
	if won {
		gained = s.rewards.Win
	}
	before := base.Level
	if !before.Valid() {
		before = LevelFor(base.Experience)
	}
	after := LevelFor(base.Experience + gained)
	if after < before {
		after = before
	}
	return Fighter{
		ID:               base.ID,
		AccountID:        base.AccountID,
		Name:             base.Name,
		Class:            base.Class(),
		LevelBefore:      before,
		Level:            after,
		ExperienceBefore: base.Experience,
		ExperienceGained: gained,
		FinalHealth:      c.CurrentHealth(),
	}
}
