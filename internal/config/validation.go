package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
)

// Validate checks struct tags and cross-field rules
func Validate(cfg *Config) error {
	v := validator.New()
	if err := v.RegisterValidation("loglevel", validateLogLevel); err != nil {
		return fmt.Errorf("register loglevel validation: %w", err)
	}

	if err := v.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func validateCrossField(cfg *Config) error {
	if cfg.Data.Source == "postgres" && cfg.Postgres.DSN == "" {
		return fmt.Errorf("postgres.dsn is required when data.source is postgres")
	}

	if cfg.Kafka.Enabled && len(cfg.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required when kafka is enabled")
	}

	if cfg.Engine.WideConfidenceLevel <= cfg.Engine.ConfidenceLevel {
		return fmt.Errorf("engine.wide_confidence_level must exceed engine.confidence_level")
	}

	if cfg.Data.TeamRefreshCron != "" {
		if _, err := cron.ParseStandard(cfg.Data.TeamRefreshCron); err != nil {
			return fmt.Errorf("invalid data.team_refresh_cron: %w", err)
		}
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var b strings.Builder
	for _, fieldError := range validationErrors {
		field := fieldError.Namespace()
		switch tag := fieldError.Tag(); tag {
		case "required", "required_if":
			fmt.Fprintf(&b, "- Field '%s' is required\n", field)
		case "min", "max", "gt", "gte", "lt", "lte":
			fmt.Fprintf(&b, "- Field '%s' violates %s=%s, got '%v'\n", field, tag, fieldError.Param(), fieldError.Value())
		case "oneof":
			fmt.Fprintf(&b, "- Field '%s' must be one of [%s], got '%v'\n", field, fieldError.Param(), fieldError.Value())
		case "loglevel":
			fmt.Fprintf(&b, "- Field '%s' must be one of: debug, info, warn, error\n", field)
		default:
			fmt.Fprintf(&b, "- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", b.String())
}
