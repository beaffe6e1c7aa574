package scoretrace

import (
	"hash/fnv"
	"sync"
	"time"
)

// shardCount controls the repository's lock striping, trading memory for
// reduced contention under many concurrent sessions.
const shardCount = 32

// DefaultTTL is the default trace expiry.
const DefaultTTL = 24 * time.Hour

type entry struct {
	trace     ScoringTrace
	expiresAt time.Time
}

type shard struct {
	mu      sync.Mutex
	entries map[string]entry
}

// Repository stores ScoringTraces keyed by session id, with lazy TTL
// expiry: an entry past its TTL is treated as absent and removed on next
// access rather than swept by a background goroutine.
type Repository struct {
	ttl    time.Duration
	shards [shardCount]*shard
}

// NewRepository returns a Repository with the given entry TTL. A zero or
// negative ttl disables expiry (entries never expire).
func NewRepository(ttl time.Duration) *Repository {
	r := &Repository{ttl: ttl}
	for i := range r.shards {
		r.shards[i] = &shard{entries: map[string]entry{}}
	}
	return r
}

func (r *Repository) shardFor(sessionID string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return r.shards[h.Sum32()%shardCount]
}

// Save stores trace, keyed by trace.SessionID, replacing any prior entry
// for that session.
func (r *Repository) Save(trace ScoringTrace) {
	sh := r.shardFor(trace.SessionID)
	expiresAt := time.Time{}
	if r.ttl > 0 {
		expiresAt = time.Now().Add(r.ttl)
	}
	sh.mu.Lock()
	sh.entries[trace.SessionID] = entry{trace: trace, expiresAt: expiresAt}
	sh.mu.Unlock()
}

// Get returns the trace for sessionID, or ok=false if absent or expired.
func (r *Repository) Get(sessionID string) (ScoringTrace, bool) {
	sh := r.shardFor(sessionID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, found := sh.entries[sessionID]
	if !found {
		return ScoringTrace{}, false
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		delete(sh.entries, sessionID)
		return ScoringTrace{}, false
	}
	return e.trace, true
}

// PhaseSummary is the per-phase aggregate computed from a trace's event
// stream.
type PhaseSummary struct {
	PhaseTag          string
	CallCount         int
	TotalDuration     time.Duration
	AverageDuration    time.Duration
	AverageContribution float64
}

// Summarize computes per-phase totals from trace's events: call count,
// total duration, and average contribution (the mean of each event's Data
// when it is a float64 score).
func Summarize(trace ScoringTrace) []PhaseSummary {
	order := make([]string, 0)
	byPhase := map[string]*PhaseSummary{}

	for _, ev := range trace.Events {
		s, ok := byPhase[ev.PhaseTag]
		if !ok {
			s = &PhaseSummary{PhaseTag: ev.PhaseTag}
			byPhase[ev.PhaseTag] = s
			order = append(order, ev.PhaseTag)
		}
		s.CallCount++
		s.TotalDuration += ev.Duration
		if contribution, ok := ev.Data.(float64); ok {
			s.AverageContribution += contribution
		}
	}

	summaries := make([]PhaseSummary, 0, len(order))
	for _, tag := range order {
		s := byPhase[tag]
		if s.CallCount > 0 {
			s.AverageDuration = s.TotalDuration / time.Duration(s.CallCount)
			s.AverageContribution /= float64(s.CallCount)
		}
		summaries = append(summaries, *s)
	}
	return summaries
}
