// Package matching resolves free-text name strings against the active name
// index: parse, normalize, look up, disambiguate, and explain every step.
package matching

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/namematch-backend/internal/config"
	"github.com/heartmarshall/namematch-backend/internal/domain"
	"github.com/heartmarshall/namematch-backend/internal/nameindex"
	"github.com/heartmarshall/namematch-backend/internal/namekey"
	"github.com/heartmarshall/namematch-backend/internal/nameparse"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type indexProvider interface {
	Current() (*nameindex.Index, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service runs the matching pipeline. It holds no per-request state and is
// safe for concurrent use.
type Service struct {
	log           *slog.Logger
	index         indexProvider
	matcher       matcher
	disambiguator disambiguator
}

// NewService creates a new matching service.
func NewService(logger *slog.Logger, index indexProvider, cfg config.MatchingConfig) *Service {
	return &Service{
		log:     logger.With("service", "matching"),
		index:   index,
		matcher: matcher{maxDistance: cfg.ApproxMaxDistance},
	}
}

// Match resolves in.InputString against the active index snapshot.
//
// Input failures (oversized or malformed input, parse failures) are reported
// inside the Result (Error set, narrative kept up to the failure) with a nil
// error. The only returned error is domain.ErrIndexUnavailable, in which case
// the Result carries the error message and nothing else. The pipeline has no cancellation points; ctx is
// used for logging only.
func (s *Service) Match(ctx context.Context, in Input) (*Result, error) {
	start := time.Now()

	res := &Result{
		InputString: in.InputString,
		Candidates:  []Candidate{},
		Narrative:   []string{},
		Method:      domain.MatchMethodNoMatch,
	}

	if err := in.Validate(); err != nil {
		n := NewNarrator()
		n.Record("input rejected: %s", err.Error())
		res.Narrative = n.Steps()
		res.Error = true
		res.ErrorMessage = err.Error()
		recordOutcome(res)
		s.log.DebugContext(ctx, "input rejected", slog.String("error", err.Error()))
		return res, nil
	}

	idx, err := s.index.Current()
	if err != nil {
		res.Error = true
		res.ErrorMessage = err.Error()
		recordOutcome(res)
		s.log.WarnContext(ctx, "match requested before index is available")
		return res, err
	}

	n := NewNarrator()
	defer func() {
		res.Narrative = n.Steps()
		recordOutcome(res)
		matchDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	n.Record("input string %q", in.InputString)

	parsed, err := nameparse.Parse(in.InputString)
	if err != nil {
		n.Record("parse failed: %s", err.Error())
		res.SearchString = strings.TrimSpace(in.InputString)
		res.Error = true
		res.ErrorMessage = err.Error()
		s.log.DebugContext(ctx, "unparseable input", slog.String("input", in.InputString), slog.String("error", err.Error()))
		return res, nil
	}
	n.Record("parsed as %s", describeParsed(parsed))

	res.SearchString = nameparse.Format(parsed)

	key := namekey.Normalize(parsed)
	n.Record("normalized name key %q, full key %q", key.Name, key.Full)

	set := s.matcher.match(key, idx, n)
	res.Method = set.method

	res.Match, res.Candidates = s.disambiguator.resolve(set, parsed, key, in.flags(), idx, n)

	s.log.DebugContext(ctx, "name matched",
		slog.String("input", in.InputString),
		slog.String("method", res.Method.String()),
		slog.Bool("matched", res.Match != nil),
		slog.Int("candidates", len(res.Candidates)),
	)

	return res, nil
}

// describeParsed lists the populated parts of p in a fixed order.
func describeParsed(p domain.ParsedName) string {
	var parts []string
	add := func(label, value string) {
		if value != "" {
			parts = append(parts, label+"="+strconv.Quote(value))
		}
	}
	add("genus", p.Genus)
	add("specificEpithet", p.SpecificEpithet)
	add("infraspecificEpithet", p.InfraspecificEpithet)
	add("rankMarker", p.RankMarker)
	add("authorText", p.AuthorText)
	if p.Hybrid {
		parts = append(parts, "hybrid=true")
	}
	return strings.Join(parts, " ")
}
