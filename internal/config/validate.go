package config

import (
	"fmt"
	"strings"
)

const maxApproxDistance = 5

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Index.validate(); err != nil {
		return fmt.Errorf("index: %w", err)
	}

	if c.Index.UsesPostgres() && c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required when index.source is %q", IndexSourcePostgres)
	}

	if d := c.Matching.ApproxMaxDistance; d < 0 || d > maxApproxDistance {
		return fmt.Errorf("matching.approx_max_distance must be between 0 and %d (got %d)", maxApproxDistance, d)
	}

	if c.Admin.AdminEnabled() && len(c.Admin.JWTSecret) < 32 {
		return fmt.Errorf("admin.jwt_secret must be at least 32 characters (got %d)", len(c.Admin.JWTSecret))
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate_limit: requests_per_second and burst must be > 0")
	}

	return nil
}

func (i *IndexConfig) validate() error {
	i.Source = strings.ToLower(strings.TrimSpace(i.Source))

	switch i.Source {
	case IndexSourceFile:
		if i.DatasetPath == "" {
			return fmt.Errorf("dataset_path is required when source is %q", IndexSourceFile)
		}
	case IndexSourcePostgres:
		if i.Watch {
			return fmt.Errorf("watch is only supported when source is %q", IndexSourceFile)
		}
	default:
		return fmt.Errorf("source must be %q or %q (got %q)", IndexSourceFile, IndexSourcePostgres, i.Source)
	}

	if i.Watch && i.WatchDebounce <= 0 {
		return fmt.Errorf("watch_debounce must be > 0 (got %s)", i.WatchDebounce)
	}
	if i.LoadTimeout <= 0 {
		return fmt.Errorf("load_timeout must be > 0 (got %s)", i.LoadTimeout)
	}

	return nil
}
