package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0 (got %v)", c.Auth.AccessTokenTTL)
	}
	if c.Auth.ClockSkew < 0 || c.Auth.ClockSkew > 5*time.Minute {
		return fmt.Errorf("auth.clock_skew must be within [0, 5m] (got %v)", c.Auth.ClockSkew)
	}

	if c.Server.RateLimitPerMinute < 0 {
		return fmt.Errorf("server.rate_limit_per_minute must be >= 0 (got %d)", c.Server.RateLimitPerMinute)
	}

	if c.Audit.RetentionDays < 1 {
		return fmt.Errorf("audit.retention_days must be >= 1 (got %d)", c.Audit.RetentionDays)
	}

	if c.Database.StatementTimeout < 0 {
		return fmt.Errorf("database.statement_timeout must be >= 0 (got %v)", c.Database.StatementTimeout)
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	if err := c.Validation.validate(); err != nil {
		return fmt.Errorf("validation: %w", err)
	}

	return nil
}

func (l *LogConfig) validate() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return fmt.Errorf("unknown level %q", l.Level)
	}
	switch strings.ToLower(l.Format) {
	case "json", "text":
		return nil
	}
	return fmt.Errorf("unknown format %q", l.Format)
}

func (v *ValidationConfig) validate() error {
	if v.MinAPIVersion <= 0 {
		return fmt.Errorf("min_api_version must be > 0 (got %d)", v.MinAPIVersion)
	}
	if v.MaxAPIVersion < v.MinAPIVersion {
		return fmt.Errorf("max_api_version (%d) must be >= min_api_version (%d)", v.MaxAPIVersion, v.MinAPIVersion)
	}
	if v.MaxServiceClasses < 0 {
		return fmt.Errorf("max_service_classes must be >= 0 (got %d)", v.MaxServiceClasses)
	}
	if v.MaxOntologyTerms < 0 {
		return fmt.Errorf("max_ontology_terms must be >= 0 (got %d)", v.MaxOntologyTerms)
	}
	v.CitizensTargetGroupPrefix = strings.TrimSpace(v.CitizensTargetGroupPrefix)
	v.BusinessesTargetGroupPrefix = strings.TrimSpace(v.BusinessesTargetGroupPrefix)
	return nil
}
