package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Events    EventsConfig    `yaml:"events"`
	Notify    NotifyConfig    `yaml:"notify"`
	Assistant AssistantConfig `yaml:"assistant"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type EventsConfig struct {
	URL string `yaml:"url"`
}

type NotifyConfig struct {
	// Schedule is a standard 5-field cron expression.
	Schedule     string `yaml:"schedule"`
	DueSoonHours int    `yaml:"due_soon_hours"`
	DedupeHours  int    `yaml:"dedupe_hours"`
}

type AssistantConfig struct {
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) DueSoonWindow() time.Duration {
	return time.Duration(c.Notify.DueSoonHours) * time.Hour
}

func (c *Config) DedupeWindow() time.Duration {
	return time.Duration(c.Notify.DedupeHours) * time.Hour
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Events: EventsConfig{
			URL: "nats://localhost:4222",
		},
		Notify: NotifyConfig{
			Schedule:     "0 8 * * *",
			DueSoonHours: 24,
			DedupeHours:  24,
		},
		Assistant: AssistantConfig{
			Model:     "claude-sonnet-4-5-20250929",
			MaxTokens: 1024,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(c.Notify.Schedule); err != nil {
		return fmt.Errorf("invalid notify schedule %q: %w", c.Notify.Schedule, err)
	}
	if c.Notify.DueSoonHours <= 0 {
		return fmt.Errorf("due_soon_hours must be positive, got %d", c.Notify.DueSoonHours)
	}
	if c.Notify.DedupeHours <= 0 {
		return fmt.Errorf("dedupe_hours must be positive, got %d", c.Notify.DedupeHours)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("FORESIGHT_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("FORESIGHT_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("FORESIGHT_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("FORESIGHT_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("FORESIGHT_EVENTS_URL"); v != "" {
		cfg.Events.URL = v
	}
	if v := os.Getenv("FORESIGHT_NOTIFY_SCHEDULE"); v != "" {
		cfg.Notify.Schedule = v
	}
	if v := os.Getenv("FORESIGHT_DUE_SOON_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Notify.DueSoonHours = n
		}
	}
	if v := os.Getenv("FORESIGHT_ASSISTANT_API_KEY"); v != "" {
		cfg.Assistant.APIKey = v
	}
	if v := os.Getenv("FORESIGHT_ASSISTANT_MODEL"); v != "" {
		cfg.Assistant.Model = v
	}
	if v := os.Getenv("FORESIGHT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
