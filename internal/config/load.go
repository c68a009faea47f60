package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "BLOGGY"

var defaults = map[string]any{
	"server.port":                 8080,
	"server.log_level":            "info",
	"server.base_url":             "",
	"database.url":                "",
	"database.max_open_conns":     10,
	"auth.jwt_secret":             "",
	"auth.admin_username":         "admin",
	"auth.admin_password_hash":    "",
	"auth.token_lifetime_minutes": 60,
	"cache.driver":                "none",
	"cache.ttl_seconds":           60,
	"cache.redis_addr":            "localhost:6379",
	"meta.name":                   "Bloggy",
	"meta.description":            "A simple blogging API built with Go.",
}

// Load builds the configuration. Environment variables take precedence over
// values from configFile, which take precedence over defaults. An empty
// configFile looks for bloggy.yaml in the working directory and ignores it
// when absent.
func Load(configFile string) (*Config, error) {
	cfg, err := read(configFile)
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDatabase reads configuration the same way as Load but validates only
// the database section. Tooling such as migrations needs no credentials.
func LoadDatabase(configFile string) (*DatabaseConfig, error) {
	cfg, err := read(configFile)
	if err != nil {
		return nil, err
	}
	if err := validator.New().Struct(cfg.Database); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg.Database, nil
}

func read(configFile string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("bloggy")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
