package phonetic

import "testing"

func TestSoundexClassicExamples(t *testing.T) {
	cases := map[string]string{
		"Robert":  "R163",
		"Rupert":  "R163",
		"Rubin":   "R150",
		"Ashcraft": "A226",
		"Tymczak": "T522",
	}
	for in, want := range cases {
		if got := Soundex(in); got != want {
			t.Errorf("Soundex(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSoundexEmptyInput(t *testing.T) {
	if got := Soundex(""); got != "" {
		t.Errorf("Soundex(\"\") = %q, want empty", got)
	}
}

func TestSoundexUsesFirstWordOnly(t *testing.T) {
	if got := Soundex("Robert Smith"); got != Soundex("Robert") {
		t.Errorf("Soundex should only use the first word")
	}
}

func TestFirstLettersCompatibleTable(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"charlie", "karl", true},
		{"charlie", "sam", true},
		{"sam", "zack", true},
		{"frank", "peter", true},
		{"john", "gary", true},
		{"mary", "mary", true},
		{"bob", "tom", false},
	}
	for _, c := range cases {
		if got := FirstLettersCompatible(c.a, c.b); got != c.want {
			t.Errorf("FirstLettersCompatible(%q, %q) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestCompatibleRejectsClearMismatch(t *testing.T) {
	if Compatible("smith", "jones") {
		t.Error("Compatible(smith, jones) = true, want false")
	}
}

func TestCompatibleEmptyAlwaysPasses(t *testing.T) {
	if !Compatible("", "anything") || !Compatible("anything", "") {
		t.Error("Compatible with empty side should always pass")
	}
}
