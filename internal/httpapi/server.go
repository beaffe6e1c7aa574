// Package httpapi is a thin translation layer over the search and batch
// services: it has no scoring logic of its own, and every handler is
// fully exercisable, and testable, without ever starting an HTTP listener.
package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/watchlist/screening-engine/internal/batchscreen"
	"github.com/watchlist/screening-engine/internal/engineerr"
	"github.com/watchlist/screening-engine/internal/pkg/logger"
	"github.com/watchlist/screening-engine/internal/sanctionsdata"
	"github.com/watchlist/screening-engine/internal/scoretrace"
	"github.com/watchlist/screening-engine/internal/scoring"
	"github.com/watchlist/screening-engine/internal/searchsvc"
)

// Server adapts searchsvc.Service, batchscreen.Screener, and
// scoretrace.Repository to HTTP.
type Server struct {
	search *searchsvc.Service
	batch  *batchscreen.Screener
	traces *scoretrace.Repository
	log    *logger.Logger
}

// New builds a Server over the given services.
func New(search *searchsvc.Service, batch *batchscreen.Screener, traces *scoretrace.Repository, log *logger.Logger) *Server {
	return &Server{search: search, batch: batch, traces: traces, log: log}
}

// Register mounts every route onto e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.handleHealth)
	e.POST("/v1/search", s.handleSearch)
	e.POST("/v1/batch", s.handleBatch)
	e.GET("/v1/traces/:sessionID", s.handleGetTrace)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type searchRequestBody struct {
	Name     string   `json:"name"`
	Source   string   `json:"source"`
	Type     string   `json:"type"`
	Limit    int      `json:"limit"`
	MinMatch *float64 `json:"min_match"`
	Trace    bool     `json:"trace"`
}

type scoreBreakdownBody struct {
	Name          float64 `json:"name"`
	AltNames      float64 `json:"alt_names"`
	Address       float64 `json:"address"`
	GovID         float64 `json:"gov_id"`
	Crypto        float64 `json:"crypto"`
	Contact       float64 `json:"contact"`
	Date          float64 `json:"date"`
	TotalWeighted float64 `json:"total_weighted"`
}

type searchResultBody struct {
	EntityID    string              `json:"entity_id"`
	Name        string              `json:"name"`
	Type        string              `json:"type"`
	Source      string              `json:"source"`
	Score       float64             `json:"score"`
	Breakdown   *scoreBreakdownBody `json:"breakdown,omitempty"`
}

type searchResponseBody struct {
	Results      []searchResultBody `json:"results"`
	TotalResults int                `json:"total_results"`
	ReportURL    string             `json:"report_url,omitempty"`
}

func (s *Server) handleSearch(c echo.Context) error {
	var body searchRequestBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	q := searchsvc.Query{
		Name:   body.Name,
		Source: sanctionsdata.Source(body.Source),
		Type:   sanctionsdata.EntityType(body.Type),
		Trace:  body.Trace,
	}
	if body.Limit > 0 {
		q.Limit = body.Limit
		q.HasLimit = true
	}
	if body.MinMatch != nil {
		q.MinMatch = *body.MinMatch
		q.HasMinMatch = true
	}

	resp, err := s.search.Search(c.Request().Context(), q)
	if err != nil {
		return writeEngineError(c, err)
	}

	return c.JSON(http.StatusOK, toSearchResponseBody(resp))
}

func toSearchResponseBody(resp searchsvc.Response) searchResponseBody {
	out := searchResponseBody{TotalResults: resp.TotalResults, ReportURL: resp.ReportURL}
	out.Results = make([]searchResultBody, 0, len(resp.Results))
	for _, r := range resp.Results {
		out.Results = append(out.Results, searchResultBody{
			EntityID:  r.Entity.ID,
			Name:      r.Entity.PrimaryName,
			Type:      string(r.Entity.Type),
			Source:    string(r.Entity.Source),
			Score:     r.Score,
			Breakdown: toBreakdownBody(r.Breakdown),
		})
	}
	return out
}

func toBreakdownBody(bd *scoring.ScoreBreakdown) *scoreBreakdownBody {
	if bd == nil {
		return nil
	}
	return &scoreBreakdownBody{
		Name:          bd.Name,
		AltNames:      bd.AltNames,
		Address:       bd.Address,
		GovID:         bd.GovID,
		Crypto:        bd.Crypto,
		Contact:       bd.Contact,
		Date:          bd.Date,
		TotalWeighted: bd.TotalWeighted,
	}
}

type batchItemBody struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Source string `json:"source"`
}

type batchRequestBody struct {
	Items    []batchItemBody `json:"items"`
	MinMatch *float64        `json:"min_match"`
	Limit    int             `json:"limit"`
	Trace    bool            `json:"trace"`
}

type matchBody struct {
	EntityID  string              `json:"entity_id"`
	Name      string              `json:"name"`
	Type      string              `json:"type"`
	Source    string              `json:"source"`
	Score     float64             `json:"score"`
	Breakdown *scoreBreakdownBody `json:"breakdown,omitempty"`
}

type itemResultBody struct {
	RequestID     string      `json:"request_id"`
	OriginalQuery batchItemBody `json:"original_query"`
	Status        string      `json:"status"`
	Matches       []matchBody `json:"matches"`
	Error         string      `json:"error,omitempty"`
}

type statisticsBody struct {
	CountByStatus     map[string]int `json:"count_by_status"`
	TotalMatches      int            `json:"total_matches"`
	HighConfidence    int            `json:"high_confidence"`
	MediumConfidence  int            `json:"medium_confidence"`
	LowConfidence     int            `json:"low_confidence"`
	AverageMatchScore float64        `json:"average_match_score"`
}

type batchResponseBody struct {
	BatchID          string           `json:"batch_id"`
	Results          []itemResultBody `json:"results"`
	Statistics       statisticsBody   `json:"statistics"`
	ProcessingTimeMs int64            `json:"processing_time_ms"`
}

func (s *Server) handleBatch(c echo.Context) error {
	var body batchRequestBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	req := batchscreen.Request{Trace: body.Trace}
	req.Items = make([]batchscreen.Item, 0, len(body.Items))
	for _, it := range body.Items {
		req.Items = append(req.Items, batchscreen.Item{
			RequestID: it.ID,
			Name:      it.Name,
			Type:      sanctionsdata.EntityType(it.Type),
			Source:    sanctionsdata.Source(it.Source),
		})
	}
	if body.Limit > 0 {
		req.Limit = body.Limit
		req.HasLimit = true
	}
	if body.MinMatch != nil {
		req.MinMatch = *body.MinMatch
		req.HasMinMatch = true
	}

	resp, err := s.batch.Screen(c.Request().Context(), req)
	if err != nil {
		return writeEngineError(c, err)
	}

	return c.JSON(http.StatusOK, toBatchResponseBody(resp))
}

func toBatchResponseBody(resp batchscreen.Response) batchResponseBody {
	out := batchResponseBody{
		BatchID:          resp.BatchID,
		ProcessingTimeMs: resp.ProcessingTime.Milliseconds(),
	}
	out.Statistics = statisticsBody{
		CountByStatus:     map[string]int{},
		TotalMatches:      resp.Statistics.TotalMatches,
		HighConfidence:    resp.Statistics.HighConfidence,
		MediumConfidence:  resp.Statistics.MediumConfidence,
		LowConfidence:     resp.Statistics.LowConfidence,
		AverageMatchScore: resp.Statistics.AverageMatchScore,
	}
	for status, count := range resp.Statistics.CountByStatus {
		out.Statistics.CountByStatus[string(status)] = count
	}

	out.Results = make([]itemResultBody, 0, len(resp.Results))
	for _, r := range resp.Results {
		matches := make([]matchBody, 0, len(r.Matches))
		for _, m := range r.Matches {
			matches = append(matches, matchBody{
				EntityID:  m.EntityID,
				Name:      m.Name,
				Type:      string(m.Type),
				Source:    string(m.Source),
				Score:     m.Score,
				Breakdown: toBreakdownBody(m.Breakdown),
			})
		}
		out.Results = append(out.Results, itemResultBody{
			RequestID: r.RequestID,
			OriginalQuery: batchItemBody{
				ID:     r.OriginalQuery.RequestID,
				Name:   r.OriginalQuery.Name,
				Type:   string(r.OriginalQuery.Type),
				Source: string(r.OriginalQuery.Source),
			},
			Status:  string(r.Status),
			Matches: matches,
			Error:   r.Error,
		})
	}
	return out
}

func (s *Server) handleGetTrace(c echo.Context) error {
	sessionID := c.Param("sessionID")
	trace, ok := s.traces.Get(sessionID)
	if !ok {
		return writeEngineError(c, &engineerr.NotFoundError{SessionID: sessionID})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"session_id": trace.SessionID,
		"started_at": trace.StartedAt,
		"duration_ms": trace.Duration.Milliseconds(),
		"events":      trace.Events,
		"breakdown":   trace.Breakdown,
		"summary":     scoretrace.Summarize(trace),
	})
}

func writeEngineError(c echo.Context, err error) error {
	switch err.(type) {
	case *engineerr.ValidationError:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case *engineerr.NotFoundError:
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
