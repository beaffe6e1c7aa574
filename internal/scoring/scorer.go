package scoring

import (
	"time"

	"github.com/watchlist/screening-engine/internal/sanctionsdata"
	"github.com/watchlist/screening-engine/internal/scoretrace"
	"github.com/watchlist/screening-engine/internal/similarity"
)

// exactBoostThreshold is the floor for "an exact-match phase hit" used by
// the exact-match boost rule; kept slightly below 1.0 to absorb
// floating-point rounding in phases that should be exactly 1.0.
const exactBoostThreshold = 0.99

// Scorer is the Entity Scorer. It never raises on well-formed
// input; missing fields contribute zero and are excluded from the
// weighted-average denominator.
type Scorer struct {
	simCfg  similarity.Config
	weights WeightConfig
}

// NewScorer builds a Scorer from immutable similarity and weight configs.
func NewScorer(simCfg similarity.Config, weights WeightConfig) *Scorer {
	return &Scorer{simCfg: simCfg, weights: weights}
}

// Score compares query against candidate and returns the final score and
// its breakdown. Both entities are prepared (if not already) before
// scoring; preparing an already-prepared entity is a no-op cost but never
// changes its normalized form (the normalizer is deterministic).
func (s *Scorer) Score(query, candidate *sanctionsdata.Entity, trace scoretrace.Context) (float64, ScoreBreakdown) {
	if !query.IsPrepared() {
		query.Prepare()
	}
	if !candidate.IsPrepared() {
		candidate.Prepare()
	}

	if query.SourceID != "" && candidate.SourceID != "" && query.SourceID == candidate.SourceID {
		trace.Event("source_id", "short-circuit: source ids match", nil, 0)
		bd := ScoreBreakdown{1, 1, 1, 1, 1, 1, 1, 1}
		trace.SetBreakdown(bd)
		return 1.0, bd
	}

	var bd ScoreBreakdown

	if s.weights.NameEnabled {
		start := time.Now()
		bd.Name = nameScore(query, candidate, s.simCfg)
		trace.Event("name", "name phase scored", bd.Name, time.Since(start))
	}
	if s.weights.AltNameEnabled {
		start := time.Now()
		bd.AltNames = altNameScore(query, candidate, s.simCfg)
		trace.Event("alt_name", "alt-name phase scored", bd.AltNames, time.Since(start))
	}
	if s.weights.GovIDEnabled {
		start := time.Now()
		bd.GovID = govIDScore(query, candidate)
		trace.Event("gov_id", "government id phase scored", bd.GovID, time.Since(start))
	}
	if s.weights.CryptoEnabled {
		start := time.Now()
		bd.Crypto = cryptoScore(query, candidate)
		trace.Event("crypto", "crypto phase scored", bd.Crypto, time.Since(start))
	}
	if s.weights.ContactEnabled {
		start := time.Now()
		bd.Contact = contactScore(query, candidate)
		trace.Event("contact", "contact phase scored", bd.Contact, time.Since(start))
	}
	if s.weights.AddressEnabled {
		start := time.Now()
		bd.Address = addressScore(query, candidate, s.simCfg)
		trace.Event("address", "address phase scored", bd.Address, time.Since(start))
	}
	if s.weights.DateEnabled {
		start := time.Now()
		bd.Date = dateScore(query, candidate)
		trace.Event("date", "date phase scored", bd.Date, time.Since(start))
	}

	bestNameOrAlt := bd.Name
	if bd.AltNames > bestNameOrAlt {
		bestNameOrAlt = bd.AltNames
	}

	exactHit := bd.GovID
	if bd.Crypto > exactHit {
		exactHit = bd.Crypto
	}
	if bd.Contact > exactHit {
		exactHit = bd.Contact
	}

	if exactHit >= exactBoostThreshold {
		final := 0.7 + 0.3*bestNameOrAlt
		bd.TotalWeighted = clamp01(final)
		trace.Event("boost", "exact-match boost applied", final, 0)
		trace.SetBreakdown(bd)
		return bd.TotalWeighted, bd
	}

	numerator := bestNameOrAlt * s.weights.NameWeight
	denominator := s.weights.NameWeight

	if bd.GovID > 0 {
		numerator += bd.GovID * s.weights.CriticalIDWeight
		denominator += s.weights.CriticalIDWeight
	}
	if bd.Crypto > 0 {
		numerator += bd.Crypto * s.weights.CriticalIDWeight
		denominator += s.weights.CriticalIDWeight
	}
	if bd.Contact > 0 {
		numerator += bd.Contact * s.weights.CriticalIDWeight
		denominator += s.weights.CriticalIDWeight
	}
	if bd.Address > 0 {
		numerator += bd.Address * s.weights.AddressWeight
		denominator += s.weights.AddressWeight
	}
	if bd.Date > 0 {
		numerator += bd.Date * s.weights.SupportingWeight
		denominator += s.weights.SupportingWeight
	}

	if query.SourceID != "" && candidate.SourceID != "" && query.SourceID != candidate.SourceID {
		denominator += s.weights.CriticalIDWeight
		trace.Event("source_id", "dilutor: source ids differ", nil, 0)
	}

	final := 0.0
	if denominator > 0 {
		final = numerator / denominator
	}
	bd.TotalWeighted = clamp01(final)
	trace.SetBreakdown(bd)

	return bd.TotalWeighted, bd
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
