package entityindex

import (
	"testing"

	"github.com/watchlist/screening-engine/internal/sanctionsdata"
)

func TestNewIndexIsEmpty(t *testing.T) {
	idx := New()
	if idx.Size() != 0 {
		t.Errorf("Size() = %d, want 0", idx.Size())
	}
	if got := idx.GetAll(); len(got) != 0 {
		t.Errorf("GetAll() = %v, want empty", got)
	}
}

func TestReplaceAllPreservesInsertionOrder(t *testing.T) {
	idx := New()
	entities := []*sanctionsdata.Entity{
		{ID: "1", PrimaryName: "Charlie", Source: "OFAC", Type: sanctionsdata.EntityTypePerson},
		{ID: "2", PrimaryName: "Alpha", Source: "OFAC", Type: sanctionsdata.EntityTypePerson},
		{ID: "3", PrimaryName: "Bravo", Source: "EU", Type: sanctionsdata.EntityTypeBusiness},
	}
	idx.ReplaceAll(entities)

	got := idx.GetAll()
	if len(got) != 3 {
		t.Fatalf("GetAll() len = %d, want 3", len(got))
	}
	for i, e := range entities {
		if got[i].ID != e.ID {
			t.Errorf("GetAll()[%d].ID = %q, want %q (order not preserved)", i, got[i].ID, e.ID)
		}
	}
}

func TestReplaceAllPopulatesPreparedFields(t *testing.T) {
	idx := New()
	e := &sanctionsdata.Entity{ID: "1", PrimaryName: "Nicolas Maduro", Source: "OFAC", Type: sanctionsdata.EntityTypePerson}
	idx.ReplaceAll([]*sanctionsdata.Entity{e})
	if !e.IsPrepared() {
		t.Error("expected entity to be prepared after indexing")
	}
}

func TestGetBySourceAndGetByTypeFilter(t *testing.T) {
	idx := New()
	a := &sanctionsdata.Entity{ID: "1", PrimaryName: "A", Source: "OFAC", Type: sanctionsdata.EntityTypePerson}
	b := &sanctionsdata.Entity{ID: "2", PrimaryName: "B", Source: "EU", Type: sanctionsdata.EntityTypeBusiness}
	c := &sanctionsdata.Entity{ID: "3", PrimaryName: "C", Source: "OFAC", Type: sanctionsdata.EntityTypeBusiness}
	idx.ReplaceAll([]*sanctionsdata.Entity{a, b, c})

	ofac := idx.GetBySource("OFAC")
	if len(ofac) != 2 || ofac[0].ID != "1" || ofac[1].ID != "3" {
		t.Errorf("GetBySource(OFAC) = %v, want [1,3] in order", ofac)
	}

	businesses := idx.GetByType(sanctionsdata.EntityTypeBusiness)
	if len(businesses) != 2 {
		t.Errorf("GetByType(business) len = %d, want 2", len(businesses))
	}
}

func TestGenerationIncreasesOnEveryMutation(t *testing.T) {
	idx := New()
	g0 := idx.Generation()
	idx.ReplaceAll([]*sanctionsdata.Entity{{ID: "1", PrimaryName: "A"}})
	g1 := idx.Generation()
	idx.AddAll([]*sanctionsdata.Entity{{ID: "2", PrimaryName: "B"}})
	g2 := idx.Generation()
	idx.Clear()
	g3 := idx.Generation()

	if !(g0 < g1 && g1 < g2 && g2 < g3) {
		t.Errorf("Generation() not monotonically increasing: %d, %d, %d, %d", g0, g1, g2, g3)
	}
}

func TestClearEmptiesIndex(t *testing.T) {
	idx := New()
	idx.ReplaceAll([]*sanctionsdata.Entity{{ID: "1", PrimaryName: "A"}})
	idx.Clear()
	if idx.Size() != 0 {
		t.Errorf("Size() after Clear() = %d, want 0", idx.Size())
	}
}

func TestAddAllAppendsWithoutDroppingExisting(t *testing.T) {
	idx := New()
	idx.ReplaceAll([]*sanctionsdata.Entity{{ID: "1", PrimaryName: "A"}})
	idx.AddAll([]*sanctionsdata.Entity{{ID: "2", PrimaryName: "B"}})
	if idx.Size() != 2 {
		t.Errorf("Size() = %d, want 2", idx.Size())
	}
}
