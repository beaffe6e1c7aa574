// Package batchscreen implements the Batch Screener: a fixed worker pool
// that scores independent items against the entity index and collects
// results in input order, regardless of completion order.
//
// The pool is a job channel plus sync.WaitGroup rather than an
// errgroup.Group (see internal/searchsvc, which does use errgroup): every
// item must produce a result even if another item fails or times out, and
// errgroup's first-error cancellation is the wrong fit for that.
package batchscreen

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/watchlist/screening-engine/internal/engineerr"
	"github.com/watchlist/screening-engine/internal/sanctionsdata"
	"github.com/watchlist/screening-engine/internal/scoring"
	"github.com/watchlist/screening-engine/internal/searchsvc"
)

// Status is the closed outcome tag for one batch item.
type Status string

const (
	StatusSuccess   Status = "SUCCESS"
	StatusNoMatches Status = "NO_MATCHES"
	StatusError     Status = "ERROR"
)

// Item is one batch request entry.
type Item struct {
	RequestID string
	Name      string
	Type      sanctionsdata.EntityType
	Source    sanctionsdata.Source
}

// Request is a batch screening request.
type Request struct {
	Items       []Item
	MinMatch    float64
	Limit       int
	Trace       bool
	HasMinMatch bool
	HasLimit    bool
}

// Match is one scored hit within an item's result.
type Match struct {
	EntityID  string
	Name      string
	Type      sanctionsdata.EntityType
	Source    sanctionsdata.Source
	Score     float64
	Breakdown *scoring.ScoreBreakdown
}

// ItemResult is one item's outcome.
type ItemResult struct {
	RequestID     string
	OriginalQuery Item
	Status        Status
	Matches       []Match
	Error         string
}

// Statistics summarizes a completed batch.
type Statistics struct {
	CountByStatus     map[Status]int
	TotalMatches      int
	HighConfidence    int // score >= 0.90
	MediumConfidence  int // score >= 0.75
	LowConfidence     int // score < 0.75
	AverageMatchScore float64
}

// Response is the Batch Screener's return value.
type Response struct {
	BatchID         string
	Results         []ItemResult
	Statistics      Statistics
	ProcessingTime  time.Duration
	ProcessedAt     time.Time
}

// Config holds the Batch Screener's operator-facing tunables.
type Config struct {
	Workers      int
	ItemTimeout  time.Duration
	MaxBatchSize int
}

// DefaultConfig returns the default tunables: 16 workers, 30s per-item
// timeout, 1000 max batch size.
func DefaultConfig() Config {
	return Config{
		Workers:      16,
		ItemTimeout:  30 * time.Second,
		MaxBatchSize: 1000,
	}
}

// Screener is the Batch Screener. It delegates per-item scoring to a
// searchsvc.Service.
type Screener struct {
	search *searchsvc.Service
	cfg    Config
}

// New builds a Screener over search, using cfg for pool sizing and timeouts.
func New(search *searchsvc.Service, cfg Config) *Screener {
	return &Screener{search: search, cfg: cfg}
}

// Screen runs req through the worker pool and returns results in input
// order.
func (b *Screener) Screen(ctx context.Context, req Request) (Response, error) {
	startedAt := time.Now()

	if len(req.Items) == 0 || len(req.Items) > b.cfg.MaxBatchSize {
		return Response{}, &engineerr.ValidationError{
			Field:  "items",
			Reason: "must contain between 1 and the configured maximum number of items",
		}
	}

	results := make([]ItemResult, len(req.Items))
	jobs := make(chan int, len(req.Items))

	var wg sync.WaitGroup
	workers := b.cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = b.screenOne(ctx, req, req.Items[i])
			}
		}()
	}
	for i := range req.Items {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	resp := Response{
		BatchID:        uuid.NewString(),
		Results:        results,
		Statistics:     summarize(results),
		ProcessingTime: time.Since(startedAt),
		ProcessedAt:    startedAt,
	}
	return resp, nil
}

func (b *Screener) screenOne(ctx context.Context, req Request, item Item) ItemResult {
	base := ItemResult{RequestID: item.RequestID, OriginalQuery: item}

	if item.Name == "" {
		base.Status = StatusNoMatches
		return base
	}

	itemCtx, cancel := context.WithTimeout(ctx, b.cfg.ItemTimeout)
	defer cancel()

	q := searchsvc.Query{
		Name:        item.Name,
		Source:      item.Source,
		Type:        item.Type,
		Limit:       req.Limit,
		HasLimit:    req.HasLimit,
		MinMatch:    req.MinMatch,
		HasMinMatch: req.HasMinMatch,
		Trace:       req.Trace,
	}

	resp, err := b.search.Search(itemCtx, q)
	if err != nil {
		if itemCtx.Err() != nil {
			err = &engineerr.TimeoutError{RequestID: item.RequestID, Budget: b.cfg.ItemTimeout}
		}
		base.Status = StatusError
		base.Error = (&engineerr.ItemError{RequestID: item.RequestID, Cause: err}).Error()
		return base
	}

	if len(resp.Results) == 0 {
		base.Status = StatusNoMatches
		return base
	}

	base.Status = StatusSuccess
	base.Matches = make([]Match, 0, len(resp.Results))
	for _, r := range resp.Results {
		base.Matches = append(base.Matches, Match{
			EntityID:  r.Entity.ID,
			Name:      r.Entity.PrimaryName,
			Type:      r.Entity.Type,
			Source:    r.Entity.Source,
			Score:     r.Score,
			Breakdown: r.Breakdown,
		})
	}
	return base
}

func summarize(results []ItemResult) Statistics {
	stats := Statistics{CountByStatus: map[Status]int{}}

	totalScore := 0.0
	for _, res := range results {
		stats.CountByStatus[res.Status]++
		for _, m := range res.Matches {
			stats.TotalMatches++
			totalScore += m.Score
			switch {
			case m.Score >= 0.90:
				stats.HighConfidence++
			case m.Score >= 0.75:
				stats.MediumConfidence++
			default:
				stats.LowConfidence++
			}
		}
	}
	if stats.TotalMatches > 0 {
		stats.AverageMatchScore = totalScore / float64(stats.TotalMatches)
	}
	return stats
}
