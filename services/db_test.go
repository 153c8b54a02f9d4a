package services

import (
	"fmt"
	"testing"

	"character-arena/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&models.Character{}, &models.Match{}, &models.MatchRound{}, &models.LeaderboardEntry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func ptr(v int) *int { return &v }

func warriorInput(name string, attack, stamina, defense int) CharacterInput {
	return CharacterInput{Name: name, Class: "WARRIOR", Health: 100, AttackPower: attack, Stamina: ptr(stamina), DefensePower: ptr(defense)}
}

func sorcererInput(name string, attack, mana, healing int) CharacterInput {
	return CharacterInput{Name: name, Class: "SORCERER", Health: 80, AttackPower: attack, Mana: ptr(mana), HealingPower: ptr(healing)}
}

func mustCreate(t *testing.T, svc *CharacterService, account string, in CharacterInput) *models.Character {
	t.Helper()
	c, err := svc.Create(account, in)
	if err != nil {
		t.Fatalf("create %s: %v", in.Name, err)
	}
	return c
}
