package textnorm

import (
	"testing"

	"github.com/watchlist/screening-engine/internal/langdetect"
)

func TestRemoveStopwordsDropsKnownWords(t *testing.T) {
	got := RemoveStopwords("the bank of america", langdetect.English)
	want := "bank america"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRemoveStopwordsKeepsTrailingDigitTokens(t *testing.T) {
	// "123" ends with a digit, so the trailing-digit rule keeps it; "to" is
	// an English stopword and is dropped.
	got := RemoveStopwords("flight 123 to paris", langdetect.English)
	want := "flight 123 paris"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRemoveStopwordsUnknownLanguageIsNoop(t *testing.T) {
	got := RemoveStopwords("some text here", langdetect.Tag("xx"))
	want := "some text here"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
