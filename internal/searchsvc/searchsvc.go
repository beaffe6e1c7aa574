// Package searchsvc implements the Search Service: candidate enumeration
// over the entity index, scoring fan-out, min_match filtering, stable
// ordering, and limit truncation, with trace volume bounded by the result
// limit rather than the candidate-set size.
//
// Scoring fans out via errgroup.WithContext, with the worker count bounded
// by errgroup.Group.SetLimit.
package searchsvc

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/watchlist/screening-engine/internal/engineerr"
	"github.com/watchlist/screening-engine/internal/entityindex"
	"github.com/watchlist/screening-engine/internal/sanctionsdata"
	"github.com/watchlist/screening-engine/internal/scoretrace"
	"github.com/watchlist/screening-engine/internal/scoring"
)

// Config holds the Search Service's operator-facing tunables.
type Config struct {
	DefaultLimit    int
	MaxLimit        int
	DefaultMinMatch float64
	Workers         int
}

// DefaultConfig returns the default tunables: limit 10 (max 100),
// min_match 0.88, 8 concurrent scoring workers.
func DefaultConfig() Config {
	return Config{
		DefaultLimit:    10,
		MaxLimit:        100,
		DefaultMinMatch: 0.88,
		Workers:         8,
	}
}

// Query is a search request. Name is required; Source and Type are
// optional candidate-set filters. Limit and MinMatch apply only when
// HasLimit and HasMinMatch are set; otherwise the service's configured
// default is used.
type Query struct {
	Name     string
	Source   sanctionsdata.Source
	Type     sanctionsdata.EntityType
	Limit    int
	MinMatch float64
	HasLimit    bool
	HasMinMatch bool
	Trace    bool
}

// SearchResult is one scored candidate: the entity, its score, and its
// phase breakdown. Breakdown is set whether or not the query requested a
// trace.
type SearchResult struct {
	Entity    *sanctionsdata.Entity
	Score     float64
	Breakdown *scoring.ScoreBreakdown
}

// Response is the Search Service's return value: ReportURL is set only
// when the query requested a trace.
type Response struct {
	Results      []SearchResult
	TotalResults int
	ReportURL    string
}

// Service is the Search Service. It holds no per-query state; Search is
// safe to call concurrently from multiple goroutines.
type Service struct {
	index  *entityindex.Index
	scorer *scoring.Scorer
	traces *scoretrace.Repository
	cfg    Config
}

// New builds a Service over index, using scorer to rank candidates and
// traces to persist per-session scoring traces when requested.
func New(index *entityindex.Index, scorer *scoring.Scorer, traces *scoretrace.Repository, cfg Config) *Service {
	return &Service{index: index, scorer: scorer, traces: traces, cfg: cfg}
}

type scoredCandidate struct {
	entity    *sanctionsdata.Entity
	score     float64
	breakdown scoring.ScoreBreakdown
}

// Search runs one query against the current index generation.
func (s *Service) Search(ctx context.Context, q Query) (Response, error) {
	if q.Name == "" {
		return Response{}, &engineerr.ValidationError{Field: "name", Reason: "must not be empty"}
	}

	minMatch := s.cfg.DefaultMinMatch
	if q.HasMinMatch {
		minMatch = q.MinMatch
	}
	if minMatch < 0 || minMatch > 1 {
		return Response{}, &engineerr.ValidationError{Field: "min_match", Reason: "must be in [0,1]"}
	}

	limit := s.cfg.DefaultLimit
	if q.HasLimit {
		limit = q.Limit
	}
	if limit <= 0 {
		return Response{}, &engineerr.ValidationError{Field: "limit", Reason: "must be positive"}
	}
	if limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}

	query := &sanctionsdata.Entity{
		PrimaryName: q.Name,
		Type:        q.Type,
		Source:      q.Source,
	}
	query.Prepare()

	candidates := s.candidates(q.Source, q.Type)
	scored, err := s.scoreAll(ctx, query, candidates)
	if err != nil {
		return Response{}, err
	}

	survivors := scored[:0:0]
	for _, sc := range scored {
		if sc.score >= minMatch {
			survivors = append(survivors, sc)
		}
	}

	sort.SliceStable(survivors, func(i, j int) bool {
		return survivors[i].score > survivors[j].score
	})
	if len(survivors) > limit {
		survivors = survivors[:limit]
	}

	resp := Response{TotalResults: len(survivors)}

	if q.Trace {
		sessionID := uuid.NewString()
		trace := scoretrace.NewContext(sessionID, true)
		resp.Results = make([]SearchResult, 0, len(survivors))
		for _, sc := range survivors {
			score, bd := s.scorer.Score(query, sc.entity, trace)
			resp.Results = append(resp.Results, SearchResult{Entity: sc.entity, Score: score, Breakdown: &bd})
		}
		finalized := trace.Finalize()
		if s.traces != nil {
			s.traces.Save(finalized)
		}
		resp.ReportURL = "/v1/traces/" + sessionID
	} else {
		resp.Results = make([]SearchResult, 0, len(survivors))
		for _, sc := range survivors {
			bd := sc.breakdown
			resp.Results = append(resp.Results, SearchResult{Entity: sc.entity, Score: sc.score, Breakdown: &bd})
		}
	}

	return resp, nil
}

// candidates builds the candidate set: intersection of source/type filters
// when both are supplied, either filter alone when only one is supplied,
// else the full index.
func (s *Service) candidates(source sanctionsdata.Source, typ sanctionsdata.EntityType) []*sanctionsdata.Entity {
	switch {
	case source != "" && typ != "":
		bySource := s.index.GetBySource(source)
		out := make([]*sanctionsdata.Entity, 0, len(bySource))
		for _, e := range bySource {
			if e.Type == typ {
				out = append(out, e)
			}
		}
		return out
	case source != "":
		return s.index.GetBySource(source)
	case typ != "":
		return s.index.GetByType(typ)
	default:
		return s.index.GetAll()
	}
}

// scoreAll scores every candidate against query, bounded by cfg.Workers
// concurrent scorer calls. Each worker checks ctx before scoring so a
// caller-side deadline or cancellation stops queued work rather than
// running the full candidate set to completion. Scoring here always uses
// a no-op trace context; tracing for the result set that actually
// survives filtering is done by the caller, bounding trace volume by
// limit rather than |candidates|.
func (s *Service) scoreAll(ctx context.Context, query *sanctionsdata.Entity, candidates []*sanctionsdata.Entity) ([]scoredCandidate, error) {
	scored := make([]scoredCandidate, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)

	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			score, bd := s.scorer.Score(query, c, scoretrace.Noop)
			scored[i] = scoredCandidate{entity: c, score: score, breakdown: bd}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scored, nil
}
