package config

import (
	"strings"
	"time"
)

// Index sources.
const (
	IndexSourceFile     = "file"
	IndexSourcePostgres = "postgres"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Index     IndexConfig     `yaml:"index"`
	Matching  MatchingConfig  `yaml:"matching"`
	Admin     AdminConfig     `yaml:"admin"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
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
}

// DatabaseConfig holds PostgreSQL connection settings. DSN is required only
// when the index is loaded from Postgres.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// IndexConfig controls where the name index is built from and when it is rebuilt.
type IndexConfig struct {
	Source        string        `yaml:"source"         env:"INDEX_SOURCE"         env-default:"file"`
	DatasetPath   string        `yaml:"dataset_path"   env:"INDEX_DATASET_PATH"`
	Watch         bool          `yaml:"watch"          env:"INDEX_WATCH"          env-default:"false"`
	WatchDebounce time.Duration `yaml:"watch_debounce" env:"INDEX_WATCH_DEBOUNCE" env-default:"2s"`
	LoadTimeout   time.Duration `yaml:"load_timeout"   env:"INDEX_LOAD_TIMEOUT"   env-default:"5m"`
}

// MatchingConfig holds matching pipeline settings.
type MatchingConfig struct {
	// ApproxMaxDistance is the largest edit distance accepted by the
	// approximate strategy.
	ApproxMaxDistance int `yaml:"approx_max_distance" env:"MATCHING_APPROX_MAX_DISTANCE" env-default:"2"`
}

// AdminConfig holds settings for the admin endpoints. With an empty secret the
// admin endpoints are not mounted.
type AdminConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"ADMIN_JWT_SECRET"`
	JWTIssuer string        `yaml:"jwt_issuer" env:"ADMIN_JWT_ISSUER" env-default:"namematch"`
	TokenTTL  time.Duration `yaml:"token_ttl"  env:"ADMIN_TOKEN_TTL"  env-default:"24h"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-client rate limiting for the public endpoints.
type RateLimitConfig struct {
	Enabled           bool          `yaml:"enabled"             env:"RATE_LIMIT_ENABLED"             env-default:"true"`
	RequestsPerSecond float64       `yaml:"requests_per_second" env:"RATE_LIMIT_RPS"                 env-default:"20"`
	Burst             int           `yaml:"burst"               env:"RATE_LIMIT_BURST"               env-default:"40"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATE_LIMIT_CLEANUP_INTERVAL"    env-default:"5m"`
}

// AdminEnabled reports whether admin endpoints should be mounted.
func (c AdminConfig) AdminEnabled() bool {
	return c.JWTSecret != ""
}

// UsesPostgres reports whether the index is loaded from the database.
func (c IndexConfig) UsesPostgres() bool {
	return strings.EqualFold(c.Source, IndexSourcePostgres)
}
