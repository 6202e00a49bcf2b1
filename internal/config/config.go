package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
	Validation ValidationConfig `yaml:"validation"`
	Audit      AuditConfig      `yaml:"audit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"   env:"SERVER_MAX_BODY_BYTES"   env-default:"1048576"`
	// RateLimitPerMinute caps validation requests per client; 0 disables it.
	RateLimitPerMinute int `yaml:"rate_limit_per_minute" env:"SERVER_RATE_LIMIT_PER_MINUTE" env-default:"600"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	ApplicationName string        `yaml:"application_name"   env:"DATABASE_APPLICATION_NAME"   env-default:"serviceregistry"`
	// StatementTimeout bounds every statement on the pool; 0 leaves the server default.
	StatementTimeout time.Duration `yaml:"statement_timeout" env:"DATABASE_STATEMENT_TIMEOUT" env-default:"5s"`
}

// AuthConfig holds caller token settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"serviceregistry"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
	ClockSkew      time.Duration `yaml:"clock_skew"       env:"AUTH_CLOCK_SKEW"       env-default:"30s"`
}

// AuditConfig holds validation audit settings.
type AuditConfig struct {
	RetentionDays int `yaml:"retention_days" env:"AUDIT_RETENTION_DAYS" env-default:"90"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// ValidationConfig holds the thresholds and gates of the validation engine.
type ValidationConfig struct {
	MinAPIVersion               int    `yaml:"min_api_version"                 env:"VALIDATION_MIN_API_VERSION"                 env-default:"7"`
	MaxAPIVersion               int    `yaml:"max_api_version"                 env:"VALIDATION_MAX_API_VERSION"                 env-default:"11"`
	MaxServiceClasses           int    `yaml:"max_service_classes"             env:"VALIDATION_MAX_SERVICE_CLASSES"             env-default:"4"`
	MaxOntologyTerms            int    `yaml:"max_ontology_terms"              env:"VALIDATION_MAX_ONTOLOGY_TERMS"              env-default:"10"`
	LimitsFromVersion           int    `yaml:"limits_from_version"             env:"VALIDATION_LIMITS_FROM_VERSION"             env-default:"7"`
	SupportLanguagesFromVersion int    `yaml:"support_languages_from_version"  env:"VALIDATION_SUPPORT_LANGUAGES_FROM_VERSION"  env-default:"9"`
	CitizensTargetGroupPrefix   string `yaml:"citizens_target_group_prefix"    env:"VALIDATION_CITIZENS_TARGET_GROUP_PREFIX"    env-default:"KR1"`
	BusinessesTargetGroupPrefix string `yaml:"businesses_target_group_prefix"  env:"VALIDATION_BUSINESSES_TARGET_GROUP_PREFIX"  env-default:"KR2"`
}

// SupportsVersion reports whether v is inside the accepted API version range.
func (c ValidationConfig) SupportsVersion(v int) bool {
	return v >= c.MinAPIVersion && v <= c.MaxAPIVersion
}
