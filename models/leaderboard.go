package models

import "time"

// LeaderboardEntry holds one character's match record. Rows are created
// on the character's first finished match.
type LeaderboardEntry struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	CharacterID string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"character_id"`
	Wins        int       `gorm:"not null;default:0" json:"wins"`
	Losses      int       `gorm:"not null;default:0" json:"losses"`
	Draws       int       `gorm:"not null;default:0" json:"draws"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
