package config

import (
	"fmt"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that a loaded Config is usable in the current
// environment. Development and test run on defaults; production refuses to
// start without explicit credentials.
func ValidateConfig(cfg *Config) error {
	required := map[string]string{
		"ServerPort": cfg.ServerPort,
		"DBHost":     cfg.DBHost,
		"DBPort":     cfg.DBPort,
		"DBName":     cfg.DBName,
		"RedisHost":  cfg.RedisHost,
		"RedisPort":  cfg.RedisPort,
	}
	for field, value := range required {
		if value == "" {
			return ValidationError{Field: field, Message: "must not be empty"}
		}
	}

	if IsProduction() {
		if cfg.DBPassword == "" || cfg.DBPassword == "postgres" {
			return ValidationError{Field: "DBPassword", Message: "default credentials are not allowed in production"}
		}
		if cfg.LLMAPIKey == "" {
			return ValidationError{Field: "LLMAPIKey", Message: "required in production for menu generation"}
		}
	}

	return nil
}
