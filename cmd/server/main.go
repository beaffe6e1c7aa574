package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/watchlist/screening-engine/internal/batchscreen"
	"github.com/watchlist/screening-engine/internal/config"
	"github.com/watchlist/screening-engine/internal/entityindex"
	"github.com/watchlist/screening-engine/internal/httpapi"
	"github.com/watchlist/screening-engine/internal/httpapi/authmw"
	"github.com/watchlist/screening-engine/internal/pkg/logger"
	"github.com/watchlist/screening-engine/internal/scoretrace"
	"github.com/watchlist/screening-engine/internal/scoring"
	"github.com/watchlist/screening-engine/internal/searchsvc"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("screening-engine", cfg.Logging.Environment, cfg.Logging.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

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

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Security.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
	}))
	e.Use(authmw.BearerAuth(cfg.Security.JWTSecret))

	httpapi.New(search, batch, traces, log).Register(e)

	serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		if err := e.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", logger.ErrorField(err))
		}
	}()
	log.Info("server started", logger.StringField("addr", serverAddr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatal("shutdown error", logger.ErrorField(err))
	}
	log.Info("server exited properly")
}
