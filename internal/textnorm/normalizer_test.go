package textnorm

import "testing"

func TestNormalizeIdempotent(t *testing.T) {
	cases := []string{
		"José Ñandú-García, S.A.",
		"  Müller   & Söhne  ",
		"",
		"O'Brien-Smith",
		"Björk Guðmundsdóttir",
	}
	for _, c := range cases {
		once := Normalize(c)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: once=%q twice=%q", c, once, twice)
		}
	}
}

func TestNormalizeTransliteration(t *testing.T) {
	cases := map[string]string{
		"Þór":      "thor",
		"Søren":    "soren",
		"Müller":   "muller",
		"Straße":   "strasse",
		"Łukasz":   "lukasz",
		"Gaëlle":   "gaelle",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	for _, s := range []string{"", "   ", "...", "---"} {
		if got := Normalize(s); got != "" {
			t.Errorf("Normalize(%q) = %q, want empty", s, got)
		}
	}
}

func TestNormalizePunctuationFolding(t *testing.T) {
	got := Normalize("Smith, John-Paul.")
	want := "smith john paul"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalizeID(t *testing.T) {
	if got := NormalizeID("AB-123 456/789"); got != "ab123456789" {
		t.Errorf("NormalizeID = %q", got)
	}
}

func TestNormalizePhone(t *testing.T) {
	if got := NormalizePhone("+1 (555) 123-4567"); got != "15551234567" {
		t.Errorf("NormalizePhone = %q", got)
	}
}

func TestReorderSDNName(t *testing.T) {
	cases := map[string]string{
		"MADURO MOROS, Nicolas":    "Nicolas MADURO MOROS",
		"Guzman Loera, Joaquin":    "Joaquin Guzman Loera",
		"Already Natural Order":    "Already Natural Order",
		"Too, Many, Commas, Here": "Too, Many, Commas, Here",
		"":                        "",
	}
	for in, want := range cases {
		if got := ReorderSDNName(in); got != want {
			t.Errorf("ReorderSDNName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRemoveCompanyTitles(t *testing.T) {
	cases := map[string]string{
		"acme corp llc":      "acme",
		"globex international gmbh": "globex international",
		"no titles here":     "no titles here",
	}
	for in, want := range cases {
		if got := RemoveCompanyTitles(in); got != want {
			t.Errorf("RemoveCompanyTitles(%q) = %q, want %q", in, got, want)
		}
	}
}
