package sanctionsdata

import "testing"

func TestPrepareIsIdempotentInShape(t *testing.T) {
	e := &Entity{PrimaryName: "MADURO MOROS, Nicolas", AltNames: []string{"Nicolas Maduro"}}
	first := e.Prepare()
	second := e.Prepare()
	if first.NormalizedPrimaryName != second.NormalizedPrimaryName {
		t.Errorf("Prepare not stable across calls: %q vs %q", first.NormalizedPrimaryName, second.NormalizedPrimaryName)
	}
}

func TestPrepareReordersSDNName(t *testing.T) {
	e := &Entity{PrimaryName: "MADURO MOROS, Nicolas"}
	pf := e.Prepare()
	want := "nicolas maduro moros"
	if pf.NormalizedPrimaryName != want {
		t.Errorf("NormalizedPrimaryName = %q, want %q", pf.NormalizedPrimaryName, want)
	}
}

func TestIsPreparedReflectsState(t *testing.T) {
	e := &Entity{PrimaryName: "Test Entity"}
	if e.IsPrepared() {
		t.Error("new entity should not be prepared")
	}
	e.Prepare()
	if !e.IsPrepared() {
		t.Error("entity should be prepared after Prepare()")
	}
}

func TestPrepareSetsNormalizerVersion(t *testing.T) {
	e := &Entity{PrimaryName: "Acme Corp"}
	pf := e.Prepare()
	if pf.NormalizerVersion == "" {
		t.Error("NormalizerVersion should be set")
	}
}

func TestPrepareNeverPartiallyPopulated(t *testing.T) {
	e := &Entity{
		PrimaryName: "Globex International LLC",
		AltNames:    []string{"Globex Intl"},
		Addresses:   []Address{{City: "Panama City", Country: "Panama"}},
	}
	pf := e.Prepare()
	if pf.NormalizedPrimaryName == "" {
		t.Error("expected non-empty normalized primary name")
	}
	if len(pf.NormalizedAltNames) != len(e.AltNames) {
		t.Error("expected one normalized alt name per alt name")
	}
	if len(pf.NormalizedAddresses) != len(e.Addresses) {
		t.Error("expected one normalized address per address")
	}
	if len(pf.WordCombinations) == 0 {
		t.Error("expected at least one word combination")
	}
}
