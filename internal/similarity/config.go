// Package similarity implements the Jaro-Winkler engine and best-pair
// token matching used for name comparison: base string similarity,
// configurable prefix boost, and the length/first-letter/unmatched-token
// penalties layered on top.
package similarity

// Config holds the numeric weights governing the Jaro-Winkler engine and
// its penalties. Config is an immutable value record: "reconfiguration" is
// a caller swapping to a different Config value, never mutation in place.
type Config struct {
	// BoostThreshold is the minimum Jaro score before the Winkler prefix
	// boost is applied.
	BoostThreshold float64
	// PrefixSize caps how many leading characters count toward the boost.
	PrefixSize int
	// PrefixWeight scales the boost contributed per matching prefix char.
	PrefixWeight float64

	// LengthCutoffFactor is the length-ratio threshold below which the
	// length-difference penalty applies.
	LengthCutoffFactor float64
	// LengthPenaltyWeight scales the length-difference penalty.
	LengthPenaltyWeight float64

	// DifferentLetterPenaltyWeight scales the penalty applied when the
	// query's and the best-matching index token's first letters disagree.
	DifferentLetterPenaltyWeight float64

	// UnmatchedIndexTokenWeight scales the penalty for index tokens that
	// never won a best-pair match.
	UnmatchedIndexTokenWeight float64

	// PhoneticFilteringDisabled turns off the Soundex prefilter. Disabling
	// it only affects performance, never correctness beyond permitting
	// scores the filter would otherwise have zeroed.
	PhoneticFilteringDisabled bool

	// KeepStopwords is not read by Score itself. The scorer's Name and
	// AltName phases read it: when false (the default), they also score the
	// stopword-stripped name forms and keep the max; when true, they score
	// only the plain normalized names.
	KeepStopwords bool
}

// DefaultConfig returns the default similarity configuration.
func DefaultConfig() Config {
	return Config{
		BoostThreshold:               0.7,
		PrefixSize:                   4,
		PrefixWeight:                 0.1,
		LengthCutoffFactor:           0.9,
		LengthPenaltyWeight:          0.3,
		DifferentLetterPenaltyWeight: 0.9,
		UnmatchedIndexTokenWeight:    0.15,
		PhoneticFilteringDisabled:    false,
		KeepStopwords:                false,
	}
}
