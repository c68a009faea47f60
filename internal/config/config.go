package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache" validate:"required"`
	Meta     MetaConfig     `mapstructure:"meta" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// BaseURL is the public origin links are built from, e.g.
	// https://blog.example.com. Empty derives it from each request.
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL          string `mapstructure:"url" validate:"required,url"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gt=0"`
}

// AuthConfig contains the admin credentials and token settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	AdminUsername        string `mapstructure:"admin_username" validate:"required"`
	AdminPasswordHash    string `mapstructure:"admin_password_hash" validate:"required,startswith=$2"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
}

// TokenLifetime returns the access token lifetime as a duration.
func (a AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(a.TokenLifetimeMinutes) * time.Minute
}

// CacheConfig selects the response cache backend.
type CacheConfig struct {
	Driver     string `mapstructure:"driver" validate:"oneof=none memory redis"`
	TTLSeconds int    `mapstructure:"ttl_seconds" validate:"gt=0"`
	RedisAddr  string `mapstructure:"redis_addr" validate:"required_if=Driver redis"`
}

// TTL returns the cache entry lifetime as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// MetaConfig is the static metadata stamped onto every document.
type MetaConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Description string `mapstructure:"description"`
}
