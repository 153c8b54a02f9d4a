package config

import (
	"testing"
	"time"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/arena")
	t.Setenv("GAME_SERVICE_TOKEN", "secret")
	t.Setenv("PORT", "")
	t.Setenv("ALLOWED_ORIGINS", " http://a.test , ,http://b.test")
	t.Setenv("MAX_MATCH_ROUNDS", "")
	t.Setenv("LEADERBOARD_SNAPSHOT_INTERVAL", "not-a-duration")
	t.Setenv("R2_BUCKET_NAME", "")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "5200" || cfg.MaxMatchRounds != 100 {
		t.Fatalf("defaults: port=%s rounds=%d", cfg.Port, cfg.MaxMatchRounds)
	}
	if cfg.SnapshotInterval != 5*time.Minute {
		t.Fatalf("interval %s", cfg.SnapshotInterval)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Fatalf("origins %v", cfg.AllowedOrigins)
	}
	if cfg.SnapshotsEnabled() {
		t.Fatal("snapshots need a bucket")
	}
}

func TestLoadFromEnvRequiresSecrets(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("GAME_SERVICE_TOKEN", "secret")
	if _, err := LoadFromEnv(); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}

	t.Setenv("DATABASE_URL", "postgres://localhost/arena")
	t.Setenv("GAME_SERVICE_TOKEN", "")
	if _, err := LoadFromEnv(); err == nil {
		t.Fatal("expected error without GAME_SERVICE_TOKEN")
	}
}

func TestLoadFromEnvRejectsRoundCap(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/arena")
	t.Setenv("GAME_SERVICE_TOKEN", "secret")
	t.Setenv("MAX_MATCH_ROUNDS", "0")
	if _, err := LoadFromEnv(); err == nil {
		t.Fatal("expected error for zero round cap")
	}
}
