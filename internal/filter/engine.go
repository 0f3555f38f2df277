package filter

import (
	"strings"
	"time"

	"backend-trainingsplan/internal/search"
	"backend-trainingsplan/internal/training"
)

// Apply returns the trainings passing every active criterion. It is a pure
// function over its inputs: predicates are AND-ed in a fixed order
// (multi-selects, search, quick filter, distance) and the input order is
// preserved.
//
// The zero State returns the input unchanged — an empty selection on any
// dimension constrains nothing.
//
// Distance annotations must already be on the trainings (see the position
// package); without a known position no training carries one, which keeps
// the distance predicate vacuously true. Trainings without coordinates are
// never hidden by the distance filter.
func Apply(all []training.Training, s State, idx *search.Index, favorites map[int]bool, now time.Time) []training.Training {
	if len(all) == 0 {
		return nil
	}

	var searchHits map[int]struct{}
	if strings.TrimSpace(s.SearchTerm) != "" && idx != nil {
		searchHits = idx.QuerySet(s.SearchTerm)
	}

	quick := quickPredicate(s.Quick, all, favorites, now)

	out := make([]training.Training, 0, len(all))
	for _, t := range all {
		if !matchesSet(s.Wochentage, t.Wochentag) {
			continue
		}
		if !matchesSet(s.Orte, t.Ort) {
			continue
		}
		if !matchesSet(s.Trainingsarten, t.Art) {
			continue
		}
		if !matchesSet(s.Altersgruppen, t.Altersgruppe) {
			continue
		}
		if searchHits != nil {
			if _, ok := searchHits[t.ID]; !ok {
				continue
			}
		}
		if quick != nil && !quick(t) {
			continue
		}
		if !passesDistance(t, s) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesSet(selected []string, value string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, v := range selected {
		if v == value {
			return true
		}
	}
	return false
}

func passesDistance(t training.Training, s State) bool {
	if !s.DistanceActive || s.MaxDistanceKm <= 0 {
		return true
	}
	if t.DistanceKm == nil {
		// No coordinates or no known position: fallback-inclusive.
		return true
	}
	return *t.DistanceKm <= s.MaxDistanceKm
}

// quickPredicate resolves a quick-filter tag to a predicate. Returns nil
// when no quick filter is active.
func quickPredicate(q QuickFilter, all []training.Training, favorites map[int]bool, now time.Time) func(training.Training) bool {
	switch q {
	case QuickToday:
		today := germanWeekday(now)
		return func(t training.Training) bool { return t.Wochentag == today }
	case QuickThisWeek:
		todayIdx := training.WeekdayIndex(germanWeekday(now))
		return func(t training.Training) bool {
			idx := training.WeekdayIndex(t.Wochentag)
			return idx < len(training.Weekdays) && idx >= todayIdx
		}
	case QuickFavorites:
		return func(t training.Training) bool { return favorites[t.ID] }
	case QuickTrial:
		return func(t training.Training) bool { return t.Probetraining }
	case QuickNearFavorites:
		orte := favoriteOrte(all, favorites)
		return func(t training.Training) bool { return orte[t.Ort] }
	}
	return nil
}

// favoriteOrte collects the locations of favorited trainings.
func favoriteOrte(all []training.Training, favorites map[int]bool) map[string]bool {
	orte := map[string]bool{}
	for _, t := range all {
		if favorites[t.ID] && t.Ort != "" {
			orte[t.Ort] = true
		}
	}
	return orte
}

var germanWeekdays = map[time.Weekday]string{
	time.Monday:    "Montag",
	time.Tuesday:   "Dienstag",
	time.Wednesday: "Mittwoch",
	time.Thursday:  "Donnerstag",
	time.Friday:    "Freitag",
	time.Saturday:  "Samstag",
	time.Sunday:    "Sonntag",
}

func germanWeekday(t time.Time) string {
	return germanWeekdays[t.Weekday()]
}
