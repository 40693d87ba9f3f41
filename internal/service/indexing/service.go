// Package indexing builds name index snapshots from a source and publishes
// them to the shared holder.
package indexing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/namematch-backend/internal/config"
	"github.com/heartmarshall/namematch-backend/internal/domain"
	"github.com/heartmarshall/namematch-backend/internal/nameindex"
	"golang.org/x/sync/singleflight"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type entrySource interface {
	LoadEntries(ctx context.Context) ([]*domain.NameEntry, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// ErrEmptyDataset is returned when a source yields no indexable entries. The
// previous snapshot stays active.
var ErrEmptyDataset = errors.New("dataset contains no indexable names")

// Reload reasons.
const (
	ReasonStartup = "startup"
	ReasonAdmin   = "admin"
	ReasonWatch   = "watch"
)

// Service rebuilds the index. Concurrent reload requests share one build.
type Service struct {
	log    *slog.Logger
	source entrySource
	holder *nameindex.Holder
	cfg    config.IndexConfig
	group  singleflight.Group
}

// NewService creates a new indexing service.
func NewService(logger *slog.Logger, source entrySource, holder *nameindex.Holder, cfg config.IndexConfig) *Service {
	return &Service{
		log:    logger.With("service", "indexing"),
		source: source,
		holder: holder,
		cfg:    cfg,
	}
}

// Reload loads every entry from the source, builds a new snapshot and swaps it
// in. reason is logged and used as a metric label. A failed reload leaves the
// active snapshot untouched.
//
// Callers that arrive while a reload is running wait for it and receive its
// result. The build itself is detached from the caller's cancellation and
// bounded by the configured load timeout.
func (s *Service) Reload(ctx context.Context, reason string) (nameindex.Stats, error) {
	v, err, shared := s.group.Do("reload", func() (any, error) {
		return s.reload(context.WithoutCancel(ctx), reason)
	})
	if shared {
		s.log.DebugContext(ctx, "reload request coalesced", slog.String("reason", reason))
	}
	if err != nil {
		return nameindex.Stats{}, err
	}
	return v.(nameindex.Stats), nil
}

func (s *Service) reload(ctx context.Context, reason string) (nameindex.Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.LoadTimeout)
	defer cancel()

	start := time.Now()

	entries, err := s.source.LoadEntries(ctx)
	if err != nil {
		reloadsTotal.WithLabelValues(reason, "error").Inc()
		s.log.ErrorContext(ctx, "index reload failed", slog.String("reason", reason), slog.String("error", err.Error()))
		return nameindex.Stats{}, fmt.Errorf("load entries: %w", err)
	}

	idx := nameindex.Build(BuildRecords(entries))
	if idx.Len() == 0 {
		reloadsTotal.WithLabelValues(reason, "error").Inc()
		s.log.ErrorContext(ctx, "index reload produced an empty index", slog.String("reason", reason))
		return nameindex.Stats{}, ErrEmptyDataset
	}

	prev := s.holder.Swap(idx)
	stats := idx.Stats()

	elapsed := time.Since(start)
	reloadsTotal.WithLabelValues(reason, "ok").Inc()
	reloadDurationSeconds.Observe(elapsed.Seconds())
	indexEntries.Set(float64(stats.Entries))

	attrs := []any{
		slog.String("reason", reason),
		slog.Int("entries", stats.Entries),
		slog.Int("name_keys", stats.NameKeys),
		slog.Int("full_keys", stats.FullKeys),
		slog.Duration("elapsed", elapsed),
	}
	if prev != nil {
		attrs = append(attrs, slog.Int("previous_entries", prev.Len()))
	}
	s.log.InfoContext(ctx, "index reloaded", attrs...)

	return stats, nil
}

// Stats returns statistics of the active snapshot.
func (s *Service) Stats() (nameindex.Stats, error) {
	idx, err := s.holder.Current()
	if err != nil {
		return nameindex.Stats{}, err
	}
	return idx.Stats(), nil
}

// Ready reports whether a snapshot is active.
func (s *Service) Ready() bool {
	return s.holder.Loaded()
}

// Run reloads the index every time trigger fires until ctx is done or trigger
// is closed. Errors are logged; the previous snapshot stays active.
func (s *Service) Run(ctx context.Context, trigger <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-trigger:
			if !ok {
				return
			}
			if _, err := s.Reload(ctx, ReasonWatch); err != nil {
				s.log.WarnContext(ctx, "reload after dataset change failed, keeping previous index",
					slog.String("error", err.Error()))
			}
		}
	}
}
