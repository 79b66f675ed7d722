package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Unset all FORESIGHT_ env vars to test pure defaults
	envVars := []string{
		"FORESIGHT_PORT", "FORESIGHT_METRICS_PORT", "FORESIGHT_ADMIN_TOKEN",
		"FORESIGHT_DATABASE_URL", "FORESIGHT_EVENTS_URL", "FORESIGHT_NOTIFY_SCHEDULE",
		"FORESIGHT_DUE_SOON_HOURS", "FORESIGHT_ASSISTANT_API_KEY",
		"FORESIGHT_ASSISTANT_MODEL", "FORESIGHT_LOG_LEVEL",
	}
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8700 {
		t.Errorf("expected port 8700, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected metrics port 8701, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Events.URL != "nats://localhost:4222" {
		t.Errorf("expected nats URL, got %s", cfg.Events.URL)
	}
	if cfg.Notify.Schedule != "0 8 * * *" {
		t.Errorf("expected daily 8am schedule, got %s", cfg.Notify.Schedule)
	}
	if cfg.DueSoonWindow() != 24*time.Hour {
		t.Errorf("expected 24h due-soon window, got %v", cfg.DueSoonWindow())
	}
	if cfg.DedupeWindow() != 24*time.Hour {
		t.Errorf("expected 24h dedupe window, got %v", cfg.DedupeWindow())
	}
	if cfg.Assistant.Model == "" {
		t.Error("expected default assistant model")
	}
	if cfg.Assistant.MaxTokens != 1024 {
		t.Errorf("expected 1024 max tokens, got %d", cfg.Assistant.MaxTokens)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got '%s'", cfg.Logging.Format)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FORESIGHT_PORT", "9100")
	t.Setenv("FORESIGHT_METRICS_PORT", "9101")
	t.Setenv("FORESIGHT_ADMIN_TOKEN", "secret-token")
	t.Setenv("FORESIGHT_DATABASE_URL", "postgres://localhost/foresight_test")
	t.Setenv("FORESIGHT_EVENTS_URL", "nats://nats:4222")
	t.Setenv("FORESIGHT_NOTIFY_SCHEDULE", "*/30 * * * *")
	t.Setenv("FORESIGHT_DUE_SOON_HOURS", "48")
	t.Setenv("FORESIGHT_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("expected port 9100, got %d", cfg.Server.Port)
	}
	if cfg.Server.AdminToken != "secret-token" {
		t.Errorf("expected admin token, got '%s'", cfg.Server.AdminToken)
	}
	if cfg.Database.URL != "postgres://localhost/foresight_test" {
		t.Errorf("expected database URL, got '%s'", cfg.Database.URL)
	}
	if cfg.Events.URL != "nats://nats:4222" {
		t.Errorf("expected events URL, got '%s'", cfg.Events.URL)
	}
	if cfg.Notify.Schedule != "*/30 * * * *" {
		t.Errorf("expected half-hourly schedule, got '%s'", cfg.Notify.Schedule)
	}
	if cfg.DueSoonWindow() != 48*time.Hour {
		t.Errorf("expected 48h due-soon window, got %v", cfg.DueSoonWindow())
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got '%s'", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
server:
  port: 9200
notify:
  schedule: "0 */4 * * *"
  due_soon_hours: 12
logging:
  level: warn
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9200 {
		t.Errorf("expected port 9200, got %d", cfg.Server.Port)
	}
	// Untouched sections keep defaults
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected default metrics port, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Notify.DueSoonHours != 12 {
		t.Errorf("expected 12h due-soon, got %d", cfg.Notify.DueSoonHours)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level 'warn', got '%s'", cfg.Logging.Level)
	}
}

func TestLoadRejectsBadSchedule(t *testing.T) {
	t.Setenv("FORESIGHT_NOTIFY_SCHEDULE", "not a schedule")
	if _, err := Load(""); err == nil {
		t.Error("expected error for invalid cron schedule")
	}
}
