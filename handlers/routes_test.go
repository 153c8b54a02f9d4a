package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"character-arena/combat"
	"character-arena/middleware"
	"character-arena/models"
	"character-arena/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testToken = "gateway-token"

func newTestApp(t *testing.T) *fiber.App {
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
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := db.AutoMigrate(&models.Character{}, &models.Match{}, &models.MatchRound{}, &models.LeaderboardEntry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	characters := services.NewCharacterService(db)
	leaderboard := services.NewLeaderboardService(db, nil)
	matches := services.NewMatchService(db, characters, leaderboard, combat.NewSimulator(combat.DiscardLogger), 100)

	app := fiber.New()
	app.Use(middleware.GatewayAuthMiddleware(testToken), middleware.AccountContextMiddleware())
	SetupCharacterRoutes(app, characters)
	SetupMatchRoutes(app, matches)
	SetupLeaderboardRoutes(app, leaderboard)
	return app
}

func call(t *testing.T, app *fiber.App, method, path, account string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken)
	if account != "" {
		req.Header.Set("X-User-ID", account)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func warriorBody(name string, attack, stamina, defense int) fiber.Map {
	return fiber.Map{"name": name, "class": "warrior", "health": 100, "attack_power": attack, "stamina": stamina, "defense_power": defense}
}

func sorcererBody(name string, attack, mana, healing int) fiber.Map {
	return fiber.Map{"name": name, "class": "sorcerer", "health": 80, "attack_power": attack, "mana": mana, "healing_power": healing}
}

type characterResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Class      string `json:"class"`
	Level      int    `json:"level"`
	Experience int    `json:"experience"`
	ClassLabel string `json:"class_label"`
	IsOwner    bool   `json:"is_owner"`
}

func TestGatewayTokenRequired(t *testing.T) {
	app := newTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/characters", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestCharacterRoutes(t *testing.T) {
	app := newTestApp(t)

	var created characterResponse
	if status := call(t, app, "POST", "/characters", "acc-1", warriorBody("Conan", 50, 40, 30), &created); status != fiber.StatusCreated {
		t.Fatalf("create status %d", status)
	}
	if created.ID == "" || created.Class != "WARRIOR" || created.ClassLabel != "Warrior" || !created.IsOwner || created.Level != 1 {
		t.Fatalf("created %+v", created)
	}

	var fetched characterResponse
	if status := call(t, app, "GET", "/characters/"+created.ID, "acc-2", nil, &fetched); status != fiber.StatusOK {
		t.Fatalf("get status %d", status)
	}
	if fetched.Name != "Conan" || fetched.IsOwner {
		t.Fatalf("fetched %+v", fetched)
	}

	var budgetErr struct {
		Total  int `json:"total"`
		Budget int `json:"budget"`
	}
	if status := call(t, app, "POST", "/characters", "acc-1", warriorBody("Brute", 100, 90, 80), &budgetErr); status != fiber.StatusUnprocessableEntity {
		t.Fatalf("over budget status %d", status)
	}
	if budgetErr.Total != 270 || budgetErr.Budget != 200 {
		t.Fatalf("budget error %+v", budgetErr)
	}

	if status := call(t, app, "POST", "/characters", "acc-2", sorcererBody("conan", 40, 60, 50), nil); status != fiber.StatusConflict {
		t.Fatalf("duplicate status %d", status)
	}
	if status := call(t, app, "POST", "/characters", "", sorcererBody("Merlin", 40, 60, 50), nil); status != fiber.StatusUnauthorized {
		t.Fatalf("anonymous create status %d", status)
	}
	if status := call(t, app, "POST", "/characters", "acc-1", fiber.Map{"name": "Nobody", "class": "bard", "health": 10}, nil); status != fiber.StatusBadRequest {
		t.Fatalf("bad class status %d", status)
	}
	if status := call(t, app, "GET", "/characters/missing", "", nil, nil); status != fiber.StatusNotFound {
		t.Fatalf("missing status %d", status)
	}
	if status := call(t, app, "PUT", "/characters/"+created.ID, "acc-2", warriorBody("Conan", 50, 40, 30), nil); status != fiber.StatusForbidden {
		t.Fatalf("foreign level-up status %d", status)
	}

	var list []characterResponse
	if status := call(t, app, "GET", "/characters?class=WARRIOR&name=con", "", nil, &list); status != fiber.StatusOK || len(list) != 1 {
		t.Fatalf("list status %d, %d rows", status, len(list))
	}
}

func TestMatchFlow(t *testing.T) {
	app := newTestApp(t)

	var w, s characterResponse
	call(t, app, "POST", "/characters", "acc-1", warriorBody("Conan", 50, 1, 10), &w)
	call(t, app, "POST", "/characters", "acc-2", sorcererBody("Merlin", 40, 0, 20), &s)

	var opponents []characterResponse
	if status := call(t, app, "GET", "/characters/opponents", "acc-1", nil, &opponents); status != fiber.StatusOK || len(opponents) != 1 || opponents[0].ID != s.ID {
		t.Fatalf("opponents %d %+v", status, opponents)
	}
	var challengers []characterResponse
	if status := call(t, app, "GET", "/characters/challengers", "acc-1", nil, &challengers); status != fiber.StatusOK || len(challengers) != 1 || challengers[0].ID != w.ID {
		t.Fatalf("challengers %d %+v", status, challengers)
	}

	if status := call(t, app, "POST", "/matches", "acc-1", fiber.Map{"challenger_id": w.ID, "opponent_id": s.ID, "rounds": 0}, nil); status != fiber.StatusBadRequest {
		t.Fatalf("zero rounds status %d", status)
	}
	if status := call(t, app, "POST", "/matches", "acc-1", fiber.Map{"challenger_id": s.ID, "opponent_id": w.ID, "rounds": 3}, nil); status != fiber.StatusNotFound {
		t.Fatalf("foreign challenger status %d", status)
	}

	var result combat.MatchResult
	if status := call(t, app, "POST", "/matches", "acc-1", fiber.Map{"challenger_id": w.ID, "opponent_id": s.ID, "rounds": 5}, &result); status != fiber.StatusCreated {
		t.Fatalf("match status %d", status)
	}
	if result.ID == "" || result.Outcome != combat.ChallengerWon || len(result.Rounds) != 4 {
		t.Fatalf("result %+v", result)
	}

	var fetched combat.MatchResult
	if status := call(t, app, "GET", "/matches/"+result.ID, "", nil, &fetched); status != fiber.StatusOK || fetched.Challenger.ExperienceGained != 100 {
		t.Fatalf("get match %d %+v", status, fetched)
	}
	var all []combat.MatchResult
	if status := call(t, app, "GET", "/matches", "", nil, &all); status != fiber.StatusOK || len(all) != 1 {
		t.Fatalf("list matches %d %d", status, len(all))
	}

	var board struct {
		Rows []services.LeaderboardRow `json:"rows"`
	}
	if status := call(t, app, "GET", "/leaderboards", "acc-1", nil, &board); status != fiber.StatusOK {
		t.Fatalf("leaderboard status %d", status)
	}
	if len(board.Rows) != 2 || board.Rows[0].CharacterID != w.ID || board.Rows[0].Position != 1 || !board.Rows[0].IsOwner {
		t.Fatalf("leaderboard %+v", board.Rows)
	}

	var after characterResponse
	call(t, app, "GET", "/characters/"+w.ID, "acc-1", nil, &after)
	if after.Experience != 100 || after.Level != 2 {
		t.Fatalf("warrior after match %+v", after)
	}
}
