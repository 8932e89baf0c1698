package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	Collection  string `mapstructure:"COLLECTION"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
}

// Load reads configuration from the environment, with an optional .env file
// for local runs. An empty DATABASE_URL selects the in-memory store.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("COLLECTION", "patient_records")
	v.SetDefault("LOG_LEVEL", "info")

	v.BindEnv("PORT")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("COLLECTION")
	v.BindEnv("LOG_LEVEL")

	// The .env file is optional.
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
