// Command batchworker is a minimal local CLI driver for the Batch Screener:
// it reads a batch of items as JSON from stdin, screens them against the
// current (empty, until loaded) entity index, and writes the result as
// JSON to stdout, following cmd/server/main.go's composition and
// graceful-shutdown shape.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/watchlist/screening-engine/internal/batchscreen"
	"github.com/watchlist/screening-engine/internal/config"
	"github.com/watchlist/screening-engine/internal/entityindex"
	"github.com/watchlist/screening-engine/internal/pkg/logger"
	"github.com/watchlist/screening-engine/internal/sanctionsdata"
	"github.com/watchlist/screening-engine/internal/scoretrace"
	"github.com/watchlist/screening-engine/internal/scoring"
	"github.com/watchlist/screening-engine/internal/searchsvc"
)

type inputItem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Source string `json:"source"`
}

type input struct {
	Items    []inputItem `json:"items"`
	MinMatch *float64    `json:"min_match"`
	Limit    int         `json:"limit"`
	Trace    bool        `json:"trace"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("batchworker", cfg.Logging.Environment, cfg.Logging.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	var in input
	if err := json.NewDecoder(os.Stdin).Decode(&in); err != nil {
		log.Fatal("failed to decode batch input", logger.ErrorField(err))
	}

	index := entityindex.New()
	scorer := scoring.NewScorer(cfg.SimilarityEngine(), cfg.ScoringWeights())
	traces := scoretrace.NewRepository(cfg.Trace.TTL)
	search := searchsvc.New(index, scorer, traces, searchsvc.Config{
		DefaultLimit:    cfg.Search.DefaultLimit,
		MaxLimit:        cfg.Search.MaxLimit,
		DefaultMinMatch: cfg.Weights.MinimumScore,
		Workers:         cfg.Search.Workers,
	})
	batch := batchscreen.New(search, batchscreen.Config{
		Workers:      cfg.Batch.Workers,
		ItemTimeout:  cfg.Batch.ItemTimeout,
		MaxBatchSize: cfg.Batch.MaxBatchSize,
	})

	req := batchscreen.Request{Trace: in.Trace}
	for _, it := range in.Items {
		req.Items = append(req.Items, batchscreen.Item{
			RequestID: it.ID,
			Name:      it.Name,
			Type:      sanctionsdata.EntityType(it.Type),
			Source:    sanctionsdata.Source(it.Source),
		})
	}
	if in.Limit > 0 {
		req.Limit = in.Limit
		req.HasLimit = true
	}
	if in.MinMatch != nil {
		req.MinMatch = *in.MinMatch
		req.HasMinMatch = true
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		log.Info("received shutdown signal, cancelling batch")
		cancel()
	}()

	log.BatchStarted("local-run", len(req.Items))
	resp, err := batch.Screen(ctx, req)
	if err != nil {
		log.Fatal("batch screening failed", logger.ErrorField(err))
	}
	log.BatchCompleted(resp.BatchID, len(req.Items), resp.Statistics.TotalMatches, resp.ProcessingTime.Milliseconds())

	if err := json.NewEncoder(os.Stdout).Encode(resp); err != nil {
		log.Fatal("failed to encode batch result", logger.ErrorField(err))
	}
}
