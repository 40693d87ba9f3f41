package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("INDEX_SOURCE", "file")
	t.Setenv("INDEX_DATASET_PATH", "/data/names.tsv")
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  write_timeout: "15s"
  idle_timeout: "30s"
  shutdown_timeout: "5s"

database:
  dsn: "postgres://u:p@localhost:5432/names"
  max_conns: 10
  min_conns: 2

index:
  source: "postgres"
  load_timeout: "2m"

matching:
  approx_max_distance: 3

admin:
  jwt_secret: "this-is-a-very-long-jwt-secret-for-testing-32+"
  jwt_issuer: "namematch-test"
  token_ttl: "1h"

log:
  level: "debug"
  format: "text"

rate_limit:
  enabled: true
  requests_per_second: 5
  burst: 10
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Server
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want %v", cfg.Server.ReadTimeout, 5*time.Second)
	}

	// Database
	if cfg.Database.DSN != "postgres://u:p@localhost:5432/names" {
		t.Errorf("database.dsn = %q", cfg.Database.DSN)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}

	// Index
	if !cfg.Index.UsesPostgres() {
		t.Errorf("index.source = %q, want postgres", cfg.Index.Source)
	}
	if cfg.Index.LoadTimeout != 2*time.Minute {
		t.Errorf("index.load_timeout = %v, want 2m", cfg.Index.LoadTimeout)
	}
	if cfg.Index.WatchDebounce != 2*time.Second {
		t.Errorf("index.watch_debounce = %v, want 2s (default)", cfg.Index.WatchDebounce)
	}

	// Matching
	if cfg.Matching.ApproxMaxDistance != 3 {
		t.Errorf("matching.approx_max_distance = %d, want 3", cfg.Matching.ApproxMaxDistance)
	}

	// Admin
	if !cfg.Admin.AdminEnabled() {
		t.Error("admin should be enabled")
	}
	if cfg.Admin.JWTIssuer != "namematch-test" {
		t.Errorf("admin.jwt_issuer = %q", cfg.Admin.JWTIssuer)
	}
	if cfg.Admin.TokenTTL != time.Hour {
		t.Errorf("admin.token_ttl = %v, want 1h", cfg.Admin.TokenTTL)
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}

	// Rate limit
	if cfg.RateLimit.RequestsPerSecond != 5 || cfg.RateLimit.Burst != 10 {
		t.Errorf("rate_limit = %+v", cfg.RateLimit)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("MATCHING_APPROX_MAX_DISTANCE", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
	if cfg.Matching.ApproxMaxDistance != 1 {
		t.Errorf("matching.approx_max_distance = %d, want 1 (ENV override)", cfg.Matching.ApproxMaxDistance)
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	validEnv(t)

	// Unset CONFIG_PATH so the fallback path is used and the file is absent.
	t.Setenv("CONFIG_PATH", "")
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if cfg.Matching.ApproxMaxDistance != 2 {
		t.Errorf("matching.approx_max_distance = %d, want 2 (default)", cfg.Matching.ApproxMaxDistance)
	}
	if cfg.Admin.AdminEnabled() {
		t.Error("admin should be disabled without a secret")
	}
	if cfg.Index.Source != IndexSourceFile {
		t.Errorf("index.source = %q, want %q", cfg.Index.Source, IndexSourceFile)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{
			name:    "file source without dataset path",
			mutate:  func(c *Config) { c.Index.DatasetPath = "" },
			wantErr: "dataset_path is required",
		},
		{
			name:    "unknown source",
			mutate:  func(c *Config) { c.Index.Source = "s3" },
			wantErr: "source must be",
		},
		{
			name:    "postgres source without dsn",
			mutate:  func(c *Config) { c.Index.Source = IndexSourcePostgres },
			wantErr: "database.dsn is required",
		},
		{
			name: "postgres source with dsn",
			mutate: func(c *Config) {
				c.Index.Source = "Postgres"
				c.Database.DSN = "postgres://localhost/names"
			},
		},
		{
			name: "watch on postgres source",
			mutate: func(c *Config) {
				c.Index.Source = IndexSourcePostgres
				c.Index.Watch = true
				c.Database.DSN = "postgres://localhost/names"
			},
			wantErr: "watch is only supported",
		},
		{
			name: "watch without debounce",
			mutate: func(c *Config) {
				c.Index.Watch = true
				c.Index.WatchDebounce = 0
			},
			wantErr: "watch_debounce",
		},
		{
			name:    "zero load timeout",
			mutate:  func(c *Config) { c.Index.LoadTimeout = 0 },
			wantErr: "load_timeout",
		},
		{
			name:   "approx distance zero",
			mutate: func(c *Config) { c.Matching.ApproxMaxDistance = 0 },
		},
		{
			name:   "approx distance at upper bound",
			mutate: func(c *Config) { c.Matching.ApproxMaxDistance = 5 },
		},
		{
			name:    "approx distance above upper bound",
			mutate:  func(c *Config) { c.Matching.ApproxMaxDistance = 6 },
			wantErr: "approx_max_distance",
		},
		{
			name:    "negative approx distance",
			mutate:  func(c *Config) { c.Matching.ApproxMaxDistance = -1 },
			wantErr: "approx_max_distance",
		},
		{
			name:    "short admin secret",
			mutate:  func(c *Config) { c.Admin.JWTSecret = "short" },
			wantErr: "admin.jwt_secret",
		},
		{
			name:    "rate limit without burst",
			mutate:  func(c *Config) { c.RateLimit.Burst = 0 },
			wantErr: "rate_limit",
		},
		{
			name: "rate limit disabled ignores values",
			mutate: func(c *Config) {
				c.RateLimit.Enabled = false
				c.RateLimit.Burst = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidate_NormalizesSource(t *testing.T) {
	cfg := validConfig()
	cfg.Index.Source = "  FILE "

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Index.Source != IndexSourceFile {
		t.Errorf("index.source = %q, want %q", cfg.Index.Source, IndexSourceFile)
	}
}

func TestAdminConfig_AdminEnabled(t *testing.T) {
	t.Parallel()

	if (AdminConfig{}).AdminEnabled() {
		t.Error("empty secret should disable admin endpoints")
	}
	if !(AdminConfig{JWTSecret: "x"}).AdminEnabled() {
		t.Error("non-empty secret should enable admin endpoints")
	}
}

func validConfig() Config {
	return Config{
		Index: IndexConfig{
			Source:        IndexSourceFile,
			DatasetPath:   "/data/names.tsv",
			WatchDebounce: 2 * time.Second,
			LoadTimeout:   5 * time.Minute,
		},
		Matching: MatchingConfig{ApproxMaxDistance: 2},
		Admin: AdminConfig{
			JWTSecret: "this-is-a-very-long-jwt-secret-for-testing-32+",
			JWTIssuer: "namematch",
			TokenTTL:  24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 20,
			Burst:             40,
		},
	}
}

func TestUsage_ListsEnvVariables(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	Usage(&buf)

	out := buf.String()
	for _, name := range []string{"CONFIG_PATH", "INDEX_SOURCE", "INDEX_DATASET_PATH", "MATCHING_APPROX_MAX_DISTANCE", "ADMIN_JWT_SECRET", "RATE_LIMIT_RPS"} {
		if !strings.Contains(out, name) {
			t.Errorf("usage output should mention %s", name)
		}
	}
}
