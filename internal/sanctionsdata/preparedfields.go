package sanctionsdata

import (
	"github.com/watchlist/screening-engine/internal/langdetect"
	"github.com/watchlist/screening-engine/internal/similarity"
	"github.com/watchlist/screening-engine/internal/textnorm"
)

// PreparedFields is the derived, cached normalized form of an Entity.
// Every string here is produced by textnorm.Version; bumping that version
// invalidates all previously prepared entities.
type PreparedFields struct {
	NormalizerVersion string

	NormalizedPrimaryName               string
	NormalizedAltNames                  []string
	NormalizedNamesWithoutStopwords      []string
	NormalizedNamesWithoutCompanyTitles []string
	WordCombinations                    []string
	NormalizedAddresses                 []string
	DetectedLanguage                    langdetect.Tag
}

// Prepare computes and attaches PreparedFields to e, normalizing the
// primary name, alt names, and addresses exactly once. Prepare is
// idempotent: calling it again recomputes and replaces the prepared
// fields in full, never partially.
func (e *Entity) Prepare() *PreparedFields {
	lang := langdetect.Detect(e.PrimaryName)

	normPrimary := normalizeName(e.PrimaryName)
	normAlts := make([]string, 0, len(e.AltNames))
	for _, alt := range e.AltNames {
		normAlts = append(normAlts, normalizeName(alt))
	}

	allNames := append([]string{normPrimary}, normAlts...)

	withoutStopwords := make([]string, 0, len(allNames))
	withoutTitles := make([]string, 0, len(allNames))
	combos := make([]string, 0, len(allNames))
	seenCombos := map[string]struct{}{}

	for _, n := range allNames {
		withoutStopwords = append(withoutStopwords, textnorm.RemoveStopwords(n, lang))
		withoutTitles = append(withoutTitles, textnorm.RemoveCompanyTitles(n))
		for _, c := range similarity.WordCombinations(n) {
			if _, ok := seenCombos[c]; ok {
				continue
			}
			seenCombos[c] = struct{}{}
			combos = append(combos, c)
		}
	}

	normAddresses := make([]string, 0, len(e.Addresses))
	for _, a := range e.Addresses {
		normAddresses = append(normAddresses, normalizeAddress(a))
	}

	pf := &PreparedFields{
		NormalizerVersion:                   textnorm.Version,
		NormalizedPrimaryName:                normPrimary,
		NormalizedAltNames:                   normAlts,
		NormalizedNamesWithoutStopwords:      withoutStopwords,
		NormalizedNamesWithoutCompanyTitles:  withoutTitles,
		WordCombinations:                     combos,
		NormalizedAddresses:                  normAddresses,
		DetectedLanguage:                     lang,
	}
	e.prepared = pf
	return pf
}

// normalizeName applies the SDN single-comma reorder before the
// general normalizer, so "LAST, FIRST" list names compare correctly against
// natural-order query names.
func normalizeName(name string) string {
	return textnorm.Normalize(textnorm.ReorderSDNName(name))
}

func normalizeAddress(a Address) string {
	parts := []string{a.Line1, a.Line2, a.City, a.State, a.Postal, a.Country}
	joined := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if joined != "" {
			joined += " "
		}
		joined += p
	}
	return textnorm.Normalize(joined)
}
