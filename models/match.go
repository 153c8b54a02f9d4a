package models

import "time"

// Match records a simulated fight. Fighter names, classes and experience
// are copied at match time so history survives later renames.
type Match struct {
	ID      string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Outcome string `gorm:"type:varchar(16);not null" json:"outcome"`

	ChallengerID               string `gorm:"index;not null" json:"challenger_id"`
	ChallengerAccountID        string `json:"challenger_account_id"`
	ChallengerName             string `json:"challenger_name"`
	ChallengerClass            string `gorm:"type:varchar(16)" json:"challenger_class"`
	ChallengerLevelBefore      int    `json:"challenger_level_before"`
	ChallengerLevel            int    `json:"challenger_level"`
	ChallengerExperienceBefore int    `json:"challenger_experience_before"`
	ChallengerExperienceGained int    `json:"challenger_experience_gained"`
	ChallengerFinalHealth      int    `json:"challenger_final_health"`

	OpponentID               string `gorm:"index;not null" json:"opponent_id"`
	OpponentAccountID        string `json:"opponent_account_id"`
	OpponentName             string `json:"opponent_name"`
	OpponentClass            string `gorm:"type:varchar(16)" json:"opponent_class"`
	OpponentLevelBefore      int    `json:"opponent_level_before"`
	OpponentLevel            int    `json:"opponent_level"`
	OpponentExperienceBefore int    `json:"opponent_experience_before"`
	OpponentExperienceGained int    `json:"opponent_experience_gained"`
	OpponentFinalHealth      int    `json:"opponent_final_health"`

	Rounds []MatchRound `gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE" json:"rounds"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// MatchRound is one combatant's change over one round. Within a round the
// challenger's row is inserted first.
type MatchRound struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	MatchID      string `gorm:"type:varchar(36);index;not null" json:"-"`
	RoundNumber  int    `gorm:"not null" json:"round"`
	CharacterID  string `gorm:"not null" json:"character_id"`
	HealthDelta  int    `json:"health_delta"`
	StaminaDelta int    `json:"stamina_delta"`
	ManaDelta    int    `json:"mana_delta"`
}
