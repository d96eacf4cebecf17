// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	BotToken       string
	TelegramAPIURL string

	LicenseAPIURL  string
	ProductLabel   string
	VersionLabel   string
	ArtifactPath   string
	SupportContact string

	SearchAPIURL string
	SearchLimit  int

	Port       string
	DBPath     string
	SessionTTL time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	artifact := getEnv("ARTIFACT_PATH", "")
	if artifact == "" {
		// Default to the running binary so the integrity check covers
		// the code actually shipped.
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("resolve executable for ARTIFACT_PATH: %w", err)
		}
		artifact = exe
	}

	cfg := &Config{
		BotToken:       getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramAPIURL: getEnv("TELEGRAM_API_URL", "https://api.telegram.org"),
		LicenseAPIURL:  getEnv("LICENSE_API_URL", "https://anonm.my.eu.org"),
		ProductLabel:   getEnv("LICENSE_PRODUCT", "ticket"),
		VersionLabel:   getEnv("LICENSE_VERSION_PRODUCT", "ticket2312"),
		ArtifactPath:   artifact,
		SupportContact: getEnv("SUPPORT_CONTACT", "hd_onus"),
		SearchAPIURL:   getEnv("SEARCH_API_URL", "https://api-v2.ticketbox.vn"),
		SearchLimit:    getEnvInt("SEARCH_LIMIT", 40),
		Port:           getEnv("PORT", "3000"),
		DBPath:         getEnv("DB_PATH", "./data/ticketbot.db"),
		SessionTTL:     getEnvDuration("SESSION_TTL", 24*time.Hour),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN cannot be empty")
	}
	if c.LicenseAPIURL == "" {
		return fmt.Errorf("LICENSE_API_URL cannot be empty")
	}
	if c.SearchAPIURL == "" {
		return fmt.Errorf("SEARCH_API_URL cannot be empty")
	}
	if c.SearchLimit <= 0 {
		return fmt.Errorf("SEARCH_LIMIT must be > 0")
	}
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
