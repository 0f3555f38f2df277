package training

import (
	"sort"
	"sync"
	"time"
)

// Snapshot is one full load of the schedule. The training list is replaced
// atomically and treated as read-only afterwards.
type Snapshot struct {
	Trainings []Training `json:"trainings"`
	Metadata  Metadata   `json:"metadata"`
	Version   string     `json:"version"`
	Generated string     `json:"generated"`
	Hash      string     `json:"hash"`
	FetchedAt time.Time  `json:"fetchedAt"`
	FromCache bool       `json:"fromCache"`
}

// Store holds the current snapshot. Single writer (the loader), many readers.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot
}

func NewStore() *Store {
	return &Store{}
}

// Replace swaps in a new snapshot. Missing metadata lists are derived from
// the training list itself.
func (s *Store) Replace(snap Snapshot) {
	derived := DeriveMetadata(snap.Trainings)
	if len(snap.Metadata.Orte) == 0 {
		snap.Metadata.Orte = derived.Orte
	}
	if len(snap.Metadata.Trainingsarten) == 0 {
		snap.Metadata.Trainingsarten = derived.Trainingsarten
	}
	if len(snap.Metadata.Altersgruppen) == 0 {
		snap.Metadata.Altersgruppen = derived.Altersgruppen
	}
	if len(snap.Metadata.Wochentage) == 0 {
		snap.Metadata.Wochentage = derived.Wochentage
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (s *Store) Trainings() []Training {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Trainings
}

// DeriveMetadata collects the distinct values per filter dimension. Locations,
// types and age groups are sorted lexically, weekdays in calendar order.
func DeriveMetadata(trainings []Training) Metadata {
	orte := map[string]struct{}{}
	arten := map[string]struct{}{}
	gruppen := map[string]struct{}{}
	tage := map[string]struct{}{}

	for _, t := range trainings {
		if t.Ort != "" {
			orte[t.Ort] = struct{}{}
		}
		if t.Art != "" {
			arten[t.Art] = struct{}{}
		}
		if t.Altersgruppe != "" {
			gruppen[t.Altersgruppe] = struct{}{}
		}
		if t.Wochentag != "" {
			tage[t.Wochentag] = struct{}{}
		}
	}

	meta := Metadata{
		Orte:           sortedKeys(orte),
		Trainingsarten: sortedKeys(arten),
		Altersgruppen:  sortedKeys(gruppen),
	}
	for _, day := range Weekdays {
		if _, ok := tage[day]; ok {
			meta.Wochentage = append(meta.Wochentage, day)
		}
	}
	return meta
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
