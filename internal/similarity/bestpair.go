package similarity

import (
	"strings"

	"github.com/watchlist/screening-engine/internal/phonetic"
)

// Score computes the final name-comparison score between a query string and
// an index string: phonetic prefiltering, word-combination variants,
// best-pair token matching with penalties, blended with the full-string
// Jaro-Winkler score. This is the entry point the scorer calls for the
// Name and AltName phases. Each variant pair is matched in both directions
// and the max is kept, so Score(a, b) == Score(b, a).
func Score(query, index string, cfg Config) float64 {
	if query == "" || index == "" {
		return 0.0
	}
	if !cfg.PhoneticFilteringDisabled && !phonetic.Compatible(query, index) {
		return 0.0
	}

	best := 0.0
	for _, qv := range WordCombinations(query) {
		for _, iv := range WordCombinations(index) {
			if s := bestPairJaro(qv, iv, cfg); s > best {
				best = s
			}
			if s := bestPairJaro(iv, qv, cfg); s > best {
				best = s
			}
		}
	}
	return best
}

// bestPairJaro implements best-pair token matching for a single (query,
// index) string pair, without trying word-combination variants (the
// caller, Score, tries variants and takes the max).
func bestPairJaro(query, index string, cfg Config) float64 {
	queryTokens := strings.Fields(query)
	indexTokens := strings.Fields(index)

	fullJW := JaroWinkler(query, index, cfg)

	if len(queryTokens) == 0 || len(indexTokens) == 0 {
		return fullJW
	}
	if len(queryTokens) == 1 || len(indexTokens) == 1 {
		return fullJW
	}

	matchedIndexTokens := make(map[int]bool, len(indexTokens))
	weightedSum := 0.0
	totalWeight := 0.0

	firstQueryToken := queryTokens[0]
	var firstMatchToken string

	for qi, qt := range queryTokens {
		bestScore := 0.0
		bestIdx := -1
		for ii, it := range indexTokens {
			s := JaroWinkler(qt, it, cfg)
			if s > bestScore {
				bestScore = s
				bestIdx = ii
			}
		}
		if bestIdx >= 0 {
			matchedIndexTokens[bestIdx] = true
			if qi == 0 {
				firstMatchToken = indexTokens[bestIdx]
			}
		}

		weight := float64(len([]rune(qt)))
		weightedSum += bestScore * weight
		totalWeight += weight
	}

	tokenScore := 0.0
	if totalWeight > 0 {
		tokenScore = weightedSum / totalWeight
	}

	// Length-difference penalty, computed over the full strings.
	qLen, iLen := len([]rune(query)), len([]rune(index))
	shortLen, longLen := qLen, iLen
	if longLen < shortLen {
		shortLen, longLen = longLen, shortLen
	}
	if longLen > 0 {
		ratio := float64(shortLen) / float64(longLen)
		if ratio < cfg.LengthCutoffFactor {
			tokenScore *= 1 - (1-ratio)*cfg.LengthPenaltyWeight
		}
	}

	// Different-first-letter penalty.
	if firstMatchToken != "" && firstLetter(firstQueryToken) != firstLetter(firstMatchToken) {
		tokenScore *= 1 - cfg.DifferentLetterPenaltyWeight
	}

	// Unmatched-index-token penalty.
	if len(indexTokens) > 0 {
		f := float64(len(matchedIndexTokens)) / float64(len(indexTokens))
		tokenScore *= 1 - (1-f)*cfg.UnmatchedIndexTokenWeight
	}

	return 0.6*tokenScore + 0.4*fullJW
}

func firstLetter(tok string) rune {
	for _, r := range tok {
		return r
	}
	return 0
}
