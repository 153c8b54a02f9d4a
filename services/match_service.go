package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"character-arena/combat"
	"character-arena/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MatchService struct {
	DB          *gorm.DB
	Characters  *CharacterService
	Leaderboard LeaderboardUpdater
	Simulator   *combat.Simulator
	MaxRounds   int
}

func NewMatchService(db *gorm.DB, characters *CharacterService, leaderboard LeaderboardUpdater, sim *combat.Simulator, maxRounds int) *MatchService {
	return &MatchService{
		DB:          db,
		Characters:  characters,
		Leaderboard: leaderboard,
		Simulator:   sim,
		MaxRounds:   maxRounds,
	}
}

// CreateMatch fights one of accountID's characters against a character
// owned by someone else and records the result. The match, experience and
// leaderboard changes are stored together or not at all.
func (s *MatchService) CreateMatch(accountID string, req combat.MatchRequest) (*combat.MatchResult, error) {
	if req.Rounds <= 0 {
		return nil, fmt.Errorf("%w: number of rounds must be greater than 0", combat.ErrInvalidArgument)
	}
	if s.MaxRounds > 0 && req.Rounds > s.MaxRounds {
		return nil, fmt.Errorf("%w: number of rounds must not exceed %d", combat.ErrInvalidArgument, s.MaxRounds)
	}

	challengers, err := s.Characters.Challengers(accountID)
	if err != nil {
		return nil, err
	}
	opponents, err := s.Characters.Opponents(accountID)
	if err != nil {
		return nil, err
	}

	result, err := s.Simulator.Match(req, baseStatsOf(challengers), baseStatsOf(opponents))
	if err != nil {
		return nil, err
	}

	result.ID = uuid.NewString()
	result.CreatedAt = time.Now().UTC()

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for _, f := range []*combat.Fighter{&result.Challenger, &result.Opponent} {
			level, err := awardExperience(tx, f)
			if err != nil {
				return err
			}
			f.Level = level
		}
		match := matchFromResult(result)
		if err := tx.Create(&match).Error; err != nil {
			return fmt.Errorf("insert match: %w", err)
		}
		if err := s.Leaderboard.ApplyMatch(tx, result); err != nil {
			return fmt.Errorf("update leaderboard: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Printf("❌ [Match] %s vs %s discarded: %v", result.Challenger.Name, result.Opponent.Name, err)
		return nil, fmt.Errorf("%w: %w", combat.ErrPersistence, err)
	}

	log.Printf("✅ [Match] %s: %s vs %s, %s after %d rounds",
		result.ID, result.Challenger.Name, result.Opponent.Name, result.Outcome, result.RoundsPlayed())
	return result, nil
}

// awardExperience adds the fighter's experience to the stored character
// and raises its level to match. Levels never go down.
func awardExperience(tx *gorm.DB, f *combat.Fighter) (combat.Level, error) {
	var char models.Character
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", f.ID).
		First(&char).Error; err != nil {
		return 0, fmt.Errorf("load character %s: %w", f.ID, err)
	}

	// the locked row is authoritative; another match may have landed since
	// the pools were read
	f.ExperienceBefore = char.Experience
	f.LevelBefore = combat.Level(char.Level)

	experience := char.Experience + f.ExperienceGained
	level := combat.LevelFor(experience)
	if f.LevelBefore > level {
		level = f.LevelBefore
	}
	if err := tx.Model(&char).Updates(map[string]interface{}{
		"experience": experience,
		"level":      int(level),
	}).Error; err != nil {
		return 0, fmt.Errorf("update character %s: %w", f.ID, err)
	}
	return level, nil
}

func (s *MatchService) GetMatch(id string) (*combat.MatchResult, error) {
	var match models.Match
	err := s.DB.Preload("Rounds", orderRounds).Where("id = ?", id).First(&match).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: match %s", combat.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %w", combat.ErrPersistence, err)
	}
	return resultFromMatch(&match), nil
}

// ListMatches returns every match, newest first.
func (s *MatchService) ListMatches() ([]*combat.MatchResult, error) {
	var matches []models.Match
	err := s.DB.Preload("Rounds", orderRounds).
		Order("created_at DESC").Order("id DESC").
		Find(&matches).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %w", combat.ErrPersistence, err)
	}
	results := make([]*combat.MatchResult, 0, len(matches))
	for i := range matches {
		results = append(results, resultFromMatch(&matches[i]))
	}
	return results, nil
}

func orderRounds(db *gorm.DB) *gorm.DB {
	return db.Order("round_number ASC").Order("id ASC")
}

func matchFromResult(r *combat.MatchResult) models.Match {
	m := models.Match{
		ID:        r.ID,
		Outcome:   string(r.Outcome),
		CreatedAt: r.CreatedAt,

		ChallengerID:               r.Challenger.ID,
		ChallengerAccountID:        r.Challenger.AccountID,
		ChallengerName:             r.Challenger.Name,
		ChallengerClass:            string(r.Challenger.Class),
		ChallengerLevelBefore:      int(r.Challenger.LevelBefore),
		ChallengerLevel:            int(r.Challenger.Level),
		ChallengerExperienceBefore: r.Challenger.ExperienceBefore,
		ChallengerExperienceGained: r.Challenger.ExperienceGained,
		ChallengerFinalHealth:      r.Challenger.FinalHealth,

		OpponentID:               r.Opponent.ID,
		OpponentAccountID:        r.Opponent.AccountID,
		OpponentName:             r.Opponent.Name,
		OpponentClass:            string(r.Opponent.Class),
		OpponentLevelBefore:      int(r.Opponent.LevelBefore),
		OpponentLevel:            int(r.Opponent.Level),
		OpponentExperienceBefore: r.Opponent.ExperienceBefore,
		OpponentExperienceGained: r.Opponent.ExperienceGained,
		OpponentFinalHealth:      r.Opponent.FinalHealth,
	}
	m.Rounds = make([]models.MatchRound, 0, len(r.Rounds))
	for _, rec := range r.Rounds {
		m.Rounds = append(m.Rounds, models.MatchRound{
			MatchID:      r.ID,
			RoundNumber:  rec.Round,
			CharacterID:  rec.CharacterID,
			HealthDelta:  rec.HealthDelta,
			StaminaDelta: rec.StaminaDelta,
			ManaDelta:    rec.ManaDelta,
		})
	}
	return m
}

func resultFromMatch(m *models.Match) *combat.MatchResult {
	r := &combat.MatchResult{
		ID:        m.ID,
		Outcome:   combat.Outcome(m.Outcome),
		CreatedAt: m.CreatedAt,
		Challenger: combat.Fighter{
			ID:               m.ChallengerID,
			AccountID:        m.ChallengerAccountID,
			Name:             m.ChallengerName,
			Class:            combat.Class(m.ChallengerClass),
			LevelBefore:      combat.Level(m.ChallengerLevelBefore),
			Level:            combat.Level(m.ChallengerLevel),
			ExperienceBefore: m.ChallengerExperienceBefore,
			ExperienceGained: m.ChallengerExperienceGained,
			FinalHealth:      m.ChallengerFinalHealth,
		},
		Opponent: combat.Fighter{
			ID:               m.OpponentID,
			AccountID:        m.OpponentAccountID,
			Name:             m.OpponentName,
			Class:            combat.Class(m.OpponentClass),
			LevelBefore:      combat.Level(m.OpponentLevelBefore),
			Level:            combat.Level(m.OpponentLevel),
			ExperienceBefore: m.OpponentExperienceBefore,
			ExperienceGained: m.OpponentExperienceGained,
			FinalHealth:      m.OpponentFinalHealth,
		},
	}
	r.Rounds = make([]combat.RoundRecord, 0, len(m.Rounds))
	for _, rr := range m.Rounds {
		r.Rounds = append(r.Rounds, combat.RoundRecord{
			Round:        rr.RoundNumber,
			CharacterID:  rr.CharacterID,
			HealthDelta:  rr.HealthDelta,
			StaminaDelta: rr.StaminaDelta,
			ManaDelta:    rr.ManaDelta,
		})
	}
	return r
}
