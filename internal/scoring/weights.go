// Package scoring implements the Entity Scorer: phase-by-phase
// comparison of a query entity against an index entity, composed into a
// weighted score with exact-match short-circuit and boost rules.
//
// The scorer is a weighted average over named factors, clamped to [0,1],
// driven by an externally supplied, immutable weight table.
package scoring

// WeightConfig holds the relative integer weights for each scoring phase,
// plus the per-phase enable flags and the minimum-score threshold.
type WeightConfig struct {
	NameWeight       float64
	CriticalIDWeight float64
	AddressWeight    float64
	SupportingWeight float64

	NameEnabled     bool
	AltNameEnabled  bool
	GovIDEnabled    bool
	CryptoEnabled   bool
	ContactEnabled  bool
	AddressEnabled  bool
	DateEnabled     bool

	MinimumScore float64
}

// DefaultWeightConfig returns the default weights: name=35, critical-id=50
// (applied independently to gov_id/crypto/contact), address=25,
// supporting=15 (date). All phases enabled, minimum_score 0.88.
func DefaultWeightConfig() WeightConfig {
	return WeightConfig{
		NameWeight:       35,
		CriticalIDWeight: 50,
		AddressWeight:    25,
		SupportingWeight: 15,

		NameEnabled:    true,
		AltNameEnabled: true,
		GovIDEnabled:   true,
		CryptoEnabled:  true,
		ContactEnabled: true,
		AddressEnabled: true,
		DateEnabled:    true,

		MinimumScore: 0.88,
	}
}

// ScoreBreakdown is the eight-field per-phase score trace.
type ScoreBreakdown struct {
	Name          float64
	AltNames      float64
	Address       float64
	GovID         float64
	Crypto        float64
	Contact       float64
	Date          float64
	TotalWeighted float64
}
