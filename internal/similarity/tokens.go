package similarity

import "strings"

// particles is the closed set of short name-particle tokens absorbed by
// WordCombinations.
var particles = map[string]struct{}{
	"de": {}, "la": {}, "el": {}, "du": {}, "van": {}, "von": {},
	"der": {}, "da": {}, "di": {}, "dos": {}, "das": {},
}

func isParticle(tok string) bool {
	if len(tok) > 3 {
		return false
	}
	_, ok := particles[tok]
	return ok
}

// WordCombinations generates variants of s that absorb name-particle
// spacing: pass 1 joins consecutive particle tokens, pass 2 joins each
// particle with the token that follows it. The original string is always
// included. Duplicate variants are de-duplicated.
func WordCombinations(s string) []string {
	tokens := strings.Fields(s)
	if len(tokens) < 2 {
		return []string{s}
	}

	seen := map[string]struct{}{s: {}}
	variants := []string{s}

	add := func(toks []string) {
		joined := strings.Join(toks, " ")
		if _, ok := seen[joined]; ok {
			return
		}
		seen[joined] = struct{}{}
		variants = append(variants, joined)
	}

	add(mergeConsecutiveParticles(tokens))
	add(mergeParticleWithNext(tokens))

	return variants
}

// mergeConsecutiveParticles joins runs of adjacent particle tokens into a
// single merged token (pass 1).
func mergeConsecutiveParticles(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	i := 0
	for i < len(tokens) {
		if isParticle(tokens[i]) {
			merged := tokens[i]
			j := i + 1
			for j < len(tokens) && isParticle(tokens[j]) {
				merged += tokens[j]
				j++
			}
			out = append(out, merged)
			i = j
			continue
		}
		out = append(out, tokens[i])
		i++
	}
	return out
}

// mergeParticleWithNext joins each particle token with the token
// immediately following it (pass 2), non-overlapping and left-to-right.
func mergeParticleWithNext(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	i := 0
	for i < len(tokens) {
		if isParticle(tokens[i]) && i+1 < len(tokens) {
			out = append(out, tokens[i]+tokens[i+1])
			i += 2
			continue
		}
		out = append(out, tokens[i])
		i++
	}
	return out
}
