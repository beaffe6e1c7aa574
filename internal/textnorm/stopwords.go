package textnorm

import (
	"regexp"
	"strings"

	"github.com/watchlist/screening-engine/internal/langdetect"
)

// trailingDigitToken matches a token that ends with a digit: such tokens
// are never dropped as stopwords even if they happen to collide
// with a stopword string (they can't, in practice, but the rule is
// evaluated independently of set membership).
var trailingDigitToken = regexp.MustCompile(`^[\d.,\-]*\d[\d.,\-]*$`)

// stopwordSets is frozen and published as part of Version: changing any set
// here is a normalizer-version-breaking change.
var stopwordSets = map[langdetect.Tag]map[string]struct{}{
	langdetect.English: set("the", "of", "and", "a", "an", "for", "to", "in", "on"),
	langdetect.Spanish: set("el", "la", "los", "las", "de", "del", "y", "en", "para"),
	langdetect.French:  set("le", "la", "les", "de", "du", "des", "et", "en", "pour"),
	langdetect.German:  set("der", "die", "das", "und", "von", "fur", "zu", "im"),
	langdetect.Russian: set("i", "v", "na", "s", "po", "ot"),
	langdetect.Arabic:  set("al", "wa", "fi", "min", "ala"),
	langdetect.Chinese: set(),
}

func set(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// RemoveStopwords drops language-specific stopwords from a whitespace-split,
// lowercased string. Tokens matching trailingDigitToken are always kept.
func RemoveStopwords(s string, lang langdetect.Tag) string {
	stopwords := stopwordSets[lang]
	tokens := strings.Fields(strings.ToLower(s))
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if trailingDigitToken.MatchString(tok) {
			kept = append(kept, tok)
			continue
		}
		if _, isStop := stopwords[tok]; isStop {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}
