package config

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v4"
)

type ReminderConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Hour         int    `yaml:"hour"`
	FromAddress  string `yaml:"from_address"`
	ResendAPIKey string `yaml:"resend_api_key"`
}

type Config struct {
	ListenAddr      string         `yaml:"listen_addr"`
	DBPath          string         `yaml:"db_path"`
	JWTSecret       string         `yaml:"jwt_secret"`
	TokenTTLMinutes int            `yaml:"token_ttl_minutes"`
	APIBaseURL      string         `yaml:"api_base_url"`
	AuthToken       string         `yaml:"auth_token"`
	Reminder        ReminderConfig `yaml:"reminder"`
}

// Load reads the config file named by TRACKGOALS_CONFIG (default config.yaml).
// Secrets may be supplied or overridden via TRACKGOALS_JWT_SECRET and
// TRACKGOALS_RESEND_API_KEY so they can stay out of the file.
func Load() (*Config, error) {
	path := getenv("TRACKGOALS_CONFIG", "config.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	if v := os.Getenv("TRACKGOALS_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("TRACKGOALS_RESEND_API_KEY"); v != "" {
		cfg.Reminder.ResendAPIKey = v
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "trackgoals.db"
	}
	if cfg.TokenTTLMinutes <= 0 {
		cfg.TokenTTLMinutes = 60
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "http://localhost:8080"
	}
	if cfg.Reminder.Hour <= 0 || cfg.Reminder.Hour > 23 {
		cfg.Reminder.Hour = 8
	}
	if cfg.Reminder.FromAddress == "" {
		cfg.Reminder.FromAddress = "onboarding@resend.dev"
	}

	return cfg, nil
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
