// Package textnorm canonicalizes raw list and query strings into the
// comparison form the rest of the matching engine operates on.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Version identifies the normalization algorithm. Every string cached in a
// PreparedFields must have been produced by the same Version; bumping this
// invalidates previously prepared entities.
const Version = "textnorm/v1"

// ligatureMap holds the fixed transliteration table for ligatures and
// letters NFKD won't decompose on its own (they are distinct letters, not
// composed ones), so they need an explicit rewrite before decomposition.
var ligatureMap = strings.NewReplacer(
	"ð", "d", "Ð", "D",
	"þ", "th", "Þ", "TH",
	"æ", "ae", "Æ", "AE",
	"œ", "oe", "Œ", "OE",
	"ø", "o", "Ø", "O",
	"ł", "l", "Ł", "L",
	"ß", "ss",
)

var punctReplacer = strings.NewReplacer(".", " ", ",", " ", "-", " ")

var stripCombining = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Normalize canonicalizes s: punctuation folding, lowercasing, fixed
// transliteration, diacritic stripping, non-alphanumeric stripping, and
// whitespace collapsing. It is deterministic, idempotent, and never
// fails: empty or whitespace-only input yields empty output.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = punctReplacer.Replace(s)
	s = strings.ToLower(s)
	s = ligatureMap.Replace(s)

	decomposed, _, err := transform.String(stripCombining, s)
	if err == nil {
		s = decomposed
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// NormalizeID strips all non-alphanumerics and lowercases, for comparing
// government identifiers, currency codes, and similar opaque tokens.
func NormalizeID(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// NormalizePhone retains digits only, for comparing phone/fax numbers
// regardless of formatting (spaces, dashes, country-code punctuation).
func NormalizePhone(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ReorderSDNName rewrites "LAST, FIRST MIDDLE" as "FIRST MIDDLE LAST" when
// exactly one comma is present, matching the canonical OFAC SDN name format.
// Names with zero or more than one comma pass through unchanged.
func ReorderSDNName(s string) string {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return s
	}
	last := strings.TrimSpace(parts[0])
	first := strings.TrimSpace(parts[1])
	if last == "" || first == "" {
		return s
	}
	return first + " " + last
}

// companyTitles is the fixed suffix set stripped by RemoveCompanyTitles.
var companyTitles = []string{
	"llc", "inc", "incorporated", "corp", "corporation", "ltd", "limited",
	"co", "company", "sa", "srl", "gmbh", "ag", "plc", "bv", "nv", "spa",
	"kg", "oy", "ab", "as", "pty", "pte",
}

// RemoveCompanyTitles iteratively strips trailing company-title tokens
// (LLC, INC, CORP, ...) from a normalized name until stable, so that
// "acme corp llc" reduces to "acme" rather than stopping after one pass.
func RemoveCompanyTitles(normalized string) string {
	for {
		trimmed := strings.TrimSpace(normalized)
		fields := strings.Fields(trimmed)
		if len(fields) == 0 {
			return trimmed
		}
		last := fields[len(fields)-1]
		stripped := false
		for _, title := range companyTitles {
			if last == title {
				fields = fields[:len(fields)-1]
				stripped = true
				break
			}
		}
		if !stripped {
			return strings.Join(fields, " ")
		}
		normalized = strings.Join(fields, " ")
	}
}
