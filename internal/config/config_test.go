package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NEWS_ANALYTICS_CONFIG", "")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("NEWS_API_KEY", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := Load()

	if cfg.NewsAPI.PageSize != 100 {
		t.Fatalf("page size: %d", cfg.NewsAPI.PageSize)
	}
	if cfg.NewsAPI.MaxPages != 5 {
		t.Fatalf("max pages: %d", cfg.NewsAPI.MaxPages)
	}
	if cfg.Pipeline.EngagementSeed != 42 {
		t.Fatalf("engagement seed: %d", cfg.Pipeline.EngagementSeed)
	}
	if len(cfg.Feeds) == 0 {
		t.Fatalf("expected default feeds")
	}
	if cfg.Scheduler.Period() != 24*time.Hour {
		t.Fatalf("interval: %v", cfg.Scheduler.Period())
	}
	if cfg.Scheduler.Enabled {
		t.Fatalf("scheduler should be disabled by default")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("NEWS_ANALYTICS_CONFIG", "")
	t.Setenv("DATABASE_DSN", "postgres://override:pw@db/override")
	t.Setenv("NEWS_API_KEY", "env-key")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.Database.DSN != "postgres://override:pw@db/override" {
		t.Fatalf("dsn: %s", cfg.Database.DSN)
	}
	if cfg.NewsAPI.APIKey != "env-key" {
		t.Fatalf("api key: %s", cfg.NewsAPI.APIKey)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level: %s", cfg.Logging.Level)
	}
}

func TestYAMLFileMerge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `
logging:
  level: warn
newsapi:
  pageSize: 50
feeds:
  - name: custom
    strategy: everything
    query: golang
    days: 7
    pages: 1
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("NEWS_ANALYTICS_CONFIG", path)
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("NEWS_API_KEY", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := Load()

	if cfg.Logging.Level != "warn" {
		t.Fatalf("level: %s", cfg.Logging.Level)
	}
	if cfg.NewsAPI.PageSize != 50 {
		t.Fatalf("page size: %d", cfg.NewsAPI.PageSize)
	}
	if cfg.NewsAPI.MaxPages != 5 {
		t.Fatalf("untouched default lost: %d", cfg.NewsAPI.MaxPages)
	}
	if len(cfg.Feeds) != 1 || cfg.Feeds[0].Name != "custom" {
		t.Fatalf("feeds: %+v", cfg.Feeds)
	}
}

func TestSchedulerIntervalFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `
scheduler:
  enabled: true
  interval: 6h
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("NEWS_ANALYTICS_CONFIG", path)
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("NEWS_API_KEY", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := Load()

	if !cfg.Scheduler.Enabled {
		t.Fatalf("expected scheduler enabled")
	}
	if cfg.Scheduler.Period() != 6*time.Hour {
		t.Fatalf("interval: %v", cfg.Scheduler.Period())
	}
}

func TestSchedulerInvalidIntervalFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `
scheduler:
  interval: every-day
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("NEWS_ANALYTICS_CONFIG", path)
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("NEWS_API_KEY", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := Load()

	if cfg.Scheduler.Period() != 24*time.Hour {
		t.Fatalf("expected default interval, got %v", cfg.Scheduler.Period())
	}
}
