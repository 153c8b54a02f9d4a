package services

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"time"

	"character-arena/combat"
	"character-arena/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LeaderboardUpdater records finished matches. It runs inside the match
// transaction; a returned error rolls the whole match back.
type LeaderboardUpdater interface {
	ApplyMatch(tx *gorm.DB, result *combat.MatchResult) error
}

// SnapshotUploader stores a published leaderboard. *utils.R2Client satisfies it.
type SnapshotUploader interface {
	PutJSON(ctx context.Context, key string, body []byte) (string, error)
}

type LeaderboardRow struct {
	Position    int          `json:"position"`
	CharacterID string       `json:"character_id"`
	AccountID   string       `json:"account_id"`
	Name        string       `json:"name"`
	Class       combat.Class `json:"class"`
	Level       int          `json:"level"`
	Wins        int          `json:"wins"`
	Losses      int          `json:"losses"`
	Draws       int          `json:"draws"`
	IsOwner     bool         `json:"is_owner"`
}

type LeaderboardSnapshot struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Rows        []LeaderboardRow `json:"rows"`
}

type LeaderboardService struct {
	DB       *gorm.DB
	Uploader SnapshotUploader
}

func NewLeaderboardService(db *gorm.DB, uploader SnapshotUploader) *LeaderboardService {
	return &LeaderboardService{DB: db, Uploader: uploader}
}

// ApplyMatch adds one win, loss or draw to each participant, creating
// missing rows.
func (s *LeaderboardService) ApplyMatch(tx *gorm.DB, result *combat.MatchResult) error {
	var cw, cl, cd, ow, ol, od int
	switch result.Outcome {
	case combat.ChallengerWon:
		cw, ol = 1, 1
	case combat.OpponentWon:
		cl, ow = 1, 1
	case combat.Draw:
		cd, od = 1, 1
	default:
		return fmt.Errorf("%w: unknown outcome %q", combat.ErrInvalidArgument, result.Outcome)
	}
	if err := incrementEntry(tx, result.Challenger.ID, cw, cl, cd); err != nil {
		return err
	}
	return incrementEntry(tx, result.Opponent.ID, ow, ol, od)
}

func incrementEntry(tx *gorm.DB, characterID string, wins, losses, draws int) error {
	entry := models.LeaderboardEntry{
		CharacterID: characterID,
		Wins:        wins,
		Losses:      losses,
		Draws:       draws,
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "character_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"wins":       gorm.Expr("leaderboard_entries.wins + ?", wins),
			"losses":     gorm.Expr("leaderboard_entries.losses + ?", losses),
			"draws":      gorm.Expr("leaderboard_entries.draws + ?", draws),
			"updated_at": time.Now(),
		}),
	}).Create(&entry).Error
}

// Leaderboard ranks every character, optionally of one class. Characters
// without a finished match rank with zero counters.
func (s *LeaderboardService) Leaderboard(accountID, class string) ([]LeaderboardRow, error) {
	q := s.DB.Table("characters AS c").
		Select("c.id AS character_id, c.account_id, c.name, c.class, c.level, " +
			"COALESCE(l.wins, 0) AS wins, COALESCE(l.losses, 0) AS losses, COALESCE(l.draws, 0) AS draws").
		Joins("LEFT JOIN leaderboard_entries AS l ON l.character_id = c.id").
		Where("c.deleted_at IS NULL")
	if class != "" {
		c, err := combat.ParseClass(class)
		if err != nil {
			return nil, err
		}
		q = q.Where("c.class = ?", c)
	}

	var rows []LeaderboardRow
	if err := q.Order("c.name ASC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: %w", combat.ErrPersistence, err)
	}
	for i := range rows {
		rows[i].IsOwner = accountID != "" && rows[i].AccountID == accountID
	}
	RankLeaderboard(rows)
	return rows, nil
}

// RankLeaderboard stable-sorts by wins desc, losses asc, draws asc and
// numbers the rows from 1.
func RankLeaderboard(rows []LeaderboardRow) {
	slices.SortStableFunc(rows, func(a, b LeaderboardRow) int {
		if c := cmp.Compare(b.Wins, a.Wins); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Losses, b.Losses); c != 0 {
			return c
		}
		return cmp.Compare(a.Draws, b.Draws)
	})
	for i := range rows {
		rows[i].Position = i + 1
	}
}

// PublishSnapshot uploads the full leaderboard as JSON and returns the
// URL of the latest copy.
func (s *LeaderboardService) PublishSnapshot(ctx context.Context) (string, error) {
	if s.Uploader == nil {
		return "", fmt.Errorf("no snapshot uploader configured")
	}
	rows, err := s.Leaderboard("", "")
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	body, err := json.Marshal(LeaderboardSnapshot{GeneratedAt: now, Rows: rows})
	if err != nil {
		return "", fmt.Errorf("marshal leaderboard snapshot: %w", err)
	}

	if _, err := s.Uploader.PutJSON(ctx, fmt.Sprintf("leaderboards/%s.json", now.Format("20060102T150405Z")), body); err != nil {
		return "", err
	}
	url, err := s.Uploader.PutJSON(ctx, "leaderboards/latest.json", body)
	if err != nil {
		return "", err
	}
	log.Printf("[Leaderboard] Published snapshot with %d rows: %s", len(rows), url)
	return url, nil
}
