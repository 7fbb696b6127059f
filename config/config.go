// Package config loads server settings from the environment, with an
// optional .env file for local development.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port           int
	DBPath         string
	AllowedOrigins []string
	SeedLeaveTypes bool
}

// LoadConfig loads configuration from environment variables and .env file if present.
// Every setting has a default, so a bare environment still boots.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", 8080)
	viper.SetDefault("DB_PATH", "./data/tracker.db")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	viper.SetDefault("SEED_LEAVE_TYPES", true)

	viper.AutomaticEnv()

	cfg := &Config{
		Port:           viper.GetInt("PORT"),
		DBPath:         viper.GetString("DB_PATH"),
		SeedLeaveTypes: viper.GetBool("SEED_LEAVE_TYPES"),
	}

	for _, origin := range strings.Split(viper.GetString("ALLOWED_ORIGINS"), ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	return cfg, nil
}
