// Package phonetic implements the Soundex-based prefilter used
// to cheaply reject name pairs before the more expensive Jaro-Winkler pass.
package phonetic

import "unicode"

// soundexCode maps a letter to its Soundex digit. Vowels (and h, w, y) are
// absent and are dropped rather than coded.
var soundexCode = map[rune]byte{
	'b': '1', 'f': '1', 'p': '1', 'v': '1',
	'c': '2', 'g': '2', 'j': '2', 'k': '2', 'q': '2', 's': '2', 'x': '2', 'z': '2',
	'd': '3', 't': '3',
	'l': '4',
	'm': '5', 'n': '5',
	'r': '6',
}

// Soundex computes the four-character Soundex code of the first word of s
// with the classic letter-to-digit mapping: first letter preserved,
// subsequent consonants coded, vowels dropped, padded/truncated to four
// characters. Unlike American Soundex, h and w separate repeated codes the
// same way vowels do, so "Ashcraft" codes as A226 rather than A261.
// Returns "" for empty input.
func Soundex(s string) string {
	word := firstWord(s)
	if word == "" {
		return ""
	}

	runes := []rune(word)
	code := make([]byte, 0, 4)
	code = append(code, byte(unicode.ToUpper(runes[0])))

	lastDigit := soundexCode[unicode.ToLower(runes[0])]
	for _, r := range runes[1:] {
		if len(code) == 4 {
			break
		}
		lr := unicode.ToLower(r)
		digit, ok := soundexCode[lr]
		if !ok {
			lastDigit = 0 // vowel/h/w/y resets adjacency for doubled consonants
			continue
		}
		if digit != lastDigit {
			code = append(code, digit)
		}
		lastDigit = digit
	}

	for len(code) < 4 {
		code = append(code, '0')
	}

	return string(code)
}

func firstWord(s string) string {
	runes := []rune(s)
	start := -1
	for i, r := range runes {
		if unicode.IsLetter(r) {
			start = i
			break
		}
	}
	if start == -1 {
		return ""
	}
	end := start
	for end < len(runes) && !unicode.IsSpace(runes[end]) {
		end++
	}
	return string(runes[start:end])
}

// compatibleFirstLetters holds pairs of first letters treated as
// phonetically compatible even when the letters differ.
var compatibleFirstLetters = map[[2]rune]struct{}{
	{'c', 'k'}: {}, {'k', 'c'}: {},
	{'c', 's'}: {}, {'s', 'c'}: {},
	{'s', 'z'}: {}, {'z', 's'}: {},
	{'f', 'p'}: {}, {'p', 'f'}: {},
	{'j', 'g'}: {}, {'g', 'j'}: {},
}

// FirstLettersCompatible reports whether the first letters of a and b are
// identical or appear on the fixed compatibility table.
func FirstLettersCompatible(a, b string) bool {
	ra := firstLetter(a)
	rb := firstLetter(b)
	if ra == 0 || rb == 0 {
		return true
	}
	if ra == rb {
		return true
	}
	_, ok := compatibleFirstLetters[[2]rune{ra, rb}]
	return ok
}

func firstLetter(s string) rune {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return unicode.ToLower(r)
		}
	}
	return 0
}

// Compatible reports whether two (already normalized) strings pass the
// phonetic prefilter: their first words' Soundex codes must match, or their
// first letters must be on the compatibility table. Empty input on either
// side is always compatible (nothing to filter on).
func Compatible(a, b string) bool {
	sa, sb := Soundex(a), Soundex(b)
	if sa == "" || sb == "" {
		return true
	}
	if sa == sb {
		return true
	}
	return FirstLettersCompatible(a, b)
}
