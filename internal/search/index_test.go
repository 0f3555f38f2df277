package search

import (
	"testing"

	"backend-trainingsplan/internal/training"
)

func testTrainings() []training.Training {
	return []training.Training{
		{ID: 1, Art: "Parkour", Ort: "Halle Ost", Trainer: "Lena"},
		{ID: 2, Art: "Trampolin", Ort: "Halle West", Trainer: "Jonas"},
		{ID: 3, Art: "Tricking", Ort: "Halle Ost", Hinweis: "Nur mit Anmeldung"},
	}
}

func TestQueryTypoTolerant(t *testing.T) {
	idx := Build(testTrainings())

	// "Parkur" (typo) must still find the Parkour training.
	ids := idx.Query("Parkur")
	if len(ids) == 0 {
		t.Fatalf("expected fuzzy match for typo")
	}
	if ids[0] != 1 {
		t.Fatalf("expected Parkour training ranked first, got %v", ids)
	}
}

func TestQueryMatchesAllSearchableFields(t *testing.T) {
	idx := Build(testTrainings())

	if _, ok := idx.QuerySet("Jonas")[2]; !ok {
		t.Fatalf("expected trainer field match")
	}
	if _, ok := idx.QuerySet("Anmeldung")[3]; !ok {
		t.Fatalf("expected notes field match")
	}
}

func TestQueryEmptyTerm(t *testing.T) {
	idx := Build(testTrainings())
	if ids := idx.Query("  "); ids != nil {
		t.Fatalf("expected nil for blank term, got %v", ids)
	}
}

func TestQueryNoMatch(t *testing.T) {
	idx := Build(testTrainings())
	if set := idx.QuerySet("Schwimmen"); len(set) != 0 {
		t.Fatalf("expected empty result, got %v", set)
	}
}

func TestRebuildReflectsNewList(t *testing.T) {
	idx := Build(testTrainings())
	if len(idx.Query("Parkour")) == 0 {
		t.Fatalf("expected match before rebuild")
	}

	idx = Build([]training.Training{{ID: 9, Art: "Bouldern"}})
	if len(idx.Query("Parkour")) != 0 {
		t.Fatalf("expected stale entries gone after rebuild")
	}
	if len(idx.Query("Bouldern")) != 1 {
		t.Fatalf("expected new entry indexed")
	}
}
