// Package config loads application configuration from defaults, an optional
// YAML file and BLOGGY_-prefixed environment variables, and validates it.
package config
