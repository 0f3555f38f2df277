package training

import (
	"testing"
	"time"
)

func sample() []Training {
	return []Training{
		{ID: 1, Wochentag: "Mittwoch", Ort: "Halle Ost", Art: "Parkour", Altersgruppe: "6-9"},
		{ID: 2, Wochentag: "Montag", Ort: "Halle West", Art: "Trampolin", Altersgruppe: "10-13"},
		{ID: 3, Wochentag: "Montag", Ort: "Halle Ost", Art: "Tricking", Altersgruppe: "14+"},
	}
}

func TestStoreReplaceAndSnapshot(t *testing.T) {
	store := NewStore()
	if got := store.Trainings(); len(got) != 0 {
		t.Fatalf("expected empty store, got %d", len(got))
	}

	store.Replace(Snapshot{Trainings: sample(), Version: "1", FetchedAt: time.Now()})
	snap := store.Snapshot()
	if len(snap.Trainings) != 3 || snap.Version != "1" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	store.Replace(Snapshot{Trainings: sample()[:1], Version: "2"})
	if got := store.Trainings(); len(got) != 1 {
		t.Fatalf("expected full replacement, got %d trainings", len(got))
	}
}

func TestReplaceDerivesMetadata(t *testing.T) {
	store := NewStore()
	store.Replace(Snapshot{Trainings: sample()})

	meta := store.Snapshot().Metadata
	if len(meta.Orte) != 2 || meta.Orte[0] != "Halle Ost" {
		t.Fatalf("unexpected orte: %v", meta.Orte)
	}
	if len(meta.Trainingsarten) != 3 {
		t.Fatalf("unexpected trainingsarten: %v", meta.Trainingsarten)
	}
	// Weekdays in calendar order, not alphabetic.
	if len(meta.Wochentage) != 2 || meta.Wochentage[0] != "Montag" || meta.Wochentage[1] != "Mittwoch" {
		t.Fatalf("unexpected wochentage: %v", meta.Wochentage)
	}
}

func TestReplaceKeepsUpstreamMetadata(t *testing.T) {
	store := NewStore()
	store.Replace(Snapshot{
		Trainings: sample(),
		Metadata:  Metadata{Orte: []string{"Halle Nord"}},
	})

	meta := store.Snapshot().Metadata
	if len(meta.Orte) != 1 || meta.Orte[0] != "Halle Nord" {
		t.Fatalf("expected upstream orte kept, got %v", meta.Orte)
	}
	if len(meta.Wochentage) != 2 {
		t.Fatalf("expected derived wochentage, got %v", meta.Wochentage)
	}
}

func TestWeekdayIndex(t *testing.T) {
	if WeekdayIndex("Montag") != 0 || WeekdayIndex("Sonntag") != 6 {
		t.Fatalf("unexpected weekday order")
	}
	if WeekdayIndex("Funday") != len(Weekdays) {
		t.Fatalf("expected unknown weekday to sort last")
	}
}

func TestHasCoordinates(t *testing.T) {
	lat, lng := 48.1, 11.5
	if (Training{Lat: &lat}).HasCoordinates() {
		t.Fatalf("lat alone must not count as coordinates")
	}
	if !(Training{Lat: &lat, Lng: &lng}).HasCoordinates() {
		t.Fatalf("expected coordinates")
	}
}
