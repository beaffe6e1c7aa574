package similarity

// Jaro computes the base Jaro similarity of a and b, in [0,1]. It is kept
// as a standalone step so the Winkler boost can be parameterized
// separately on top of it.
func Jaro(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 1.0
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0.0
	}

	matchDistance := max(len(ra), len(rb))/2 - 1
	if matchDistance < 0 {
		matchDistance = 0
	}

	aMatches := make([]bool, len(ra))
	bMatches := make([]bool, len(rb))

	matches := 0
	for i := range ra {
		start := max(0, i-matchDistance)
		end := min(len(rb), i+matchDistance+1)
		for j := start; j < end; j++ {
			if bMatches[j] || ra[i] != rb[j] {
				continue
			}
			aMatches[i] = true
			bMatches[j] = true
			matches++
			break
		}
	}

	if matches == 0 {
		return 0.0
	}

	transpositions := 0
	k := 0
	for i := range ra {
		if !aMatches[i] {
			continue
		}
		for !bMatches[k] {
			k++
		}
		if ra[i] != rb[k] {
			transpositions++
		}
		k++
	}

	m := float64(matches)
	t := float64(transpositions / 2)
	return (m/float64(len(ra)) + m/float64(len(rb)) + (m-t)/m) / 3.0
}

// JaroWinkler applies the Winkler common-prefix boost to the base Jaro
// score, per cfg: the boost is applied only when the Jaro score already
// meets cfg.BoostThreshold.
func JaroWinkler(a, b string, cfg Config) float64 {
	j := Jaro(a, b)
	if j < cfg.BoostThreshold {
		return j
	}

	ra, rb := []rune(a), []rune(b)
	maxPrefix := cfg.PrefixSize
	if len(ra) < maxPrefix {
		maxPrefix = len(ra)
	}
	if len(rb) < maxPrefix {
		maxPrefix = len(rb)
	}

	prefix := 0
	for i := 0; i < maxPrefix; i++ {
		if ra[i] != rb[i] {
			break
		}
		prefix++
	}

	return j + float64(prefix)*cfg.PrefixWeight*(1-j)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
