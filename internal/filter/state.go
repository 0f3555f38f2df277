package filter

import (
	"net/url"
	"strconv"
	"strings"
)

// QuickFilter is a named shortcut. Quick filters are stored as tags and
// resolved to predicates at evaluation time, never as functions in state.
type QuickFilter string

const (
	QuickNone          QuickFilter = ""
	QuickToday         QuickFilter = "heute"
	QuickThisWeek      QuickFilter = "diese-woche"
	QuickFavorites     QuickFilter = "favoriten"
	QuickTrial         QuickFilter = "probetraining"
	QuickNearFavorites QuickFilter = "nahe-favoriten"
)

func (q QuickFilter) Valid() bool {
	switch q {
	case QuickNone, QuickToday, QuickThisWeek, QuickFavorites, QuickTrial, QuickNearFavorites:
		return true
	}
	return false
}

// State holds every user-controlled view criterion. The zero value is the
// canonical reset state: no constraint on any dimension.
//
// An empty multi-select slice means "match everything" for that dimension,
// never "match nothing". Engine, reset and rehydration all rely on this.
type State struct {
	Wochentage     []string    `json:"wochentage,omitempty"`
	Orte           []string    `json:"orte,omitempty"`
	Trainingsarten []string    `json:"trainingsarten,omitempty"`
	Altersgruppen  []string    `json:"altersgruppen,omitempty"`
	SearchTerm     string      `json:"suche,omitempty"`
	Quick          QuickFilter `json:"quick,omitempty"`
	DistanceActive bool        `json:"distanceActive,omitempty"`
	MaxDistanceKm  float64     `json:"maxDistanceKm,omitempty"`
}

// URL query parameter names, shared by the shareable-link mirror and the
// persisted state.
const (
	paramWochentag = "wochentag"
	paramOrt       = "ort"
	paramArt       = "training"
	paramAlter     = "alter"
	paramSuche     = "suche"
	paramQuick     = "quick"
	paramUmkreis   = "umkreis"
	paramFavoriten = "favoriten"
)

// Reset returns the canonical empty state. Every reset path (UI reset-all,
// DELETE /api/filters, quick-filter clearing) must go through here so that
// cleared filters always mean "show everything". The numeric radius
// preference survives a reset; the distance filter itself does not.
func (s State) Reset() State {
	return State{MaxDistanceKm: s.MaxDistanceKm}
}

// IsEmpty reports whether no criterion is active.
func (s State) IsEmpty() bool {
	return ActiveFilterCount(s) == 0
}

// ActiveFilterCount counts active criteria, matching what a reset must bring
// back to zero.
func ActiveFilterCount(s State) int {
	count := 0
	if len(s.Wochentage) > 0 {
		count++
	}
	if len(s.Orte) > 0 {
		count++
	}
	if len(s.Trainingsarten) > 0 {
		count++
	}
	if len(s.Altersgruppen) > 0 {
		count++
	}
	if strings.TrimSpace(s.SearchTerm) != "" {
		count++
	}
	if s.Quick != QuickNone {
		count++
	}
	if s.DistanceActive {
		count++
	}
	return count
}

// ParseQuery builds a state from URL query parameters. Multi-select values
// are comma-separated. Unknown quick-filter tags are dropped rather than
// carried into the state.
func ParseQuery(q url.Values) State {
	var s State
	return MergeQuery(s, q)
}

// MergeQuery overlays query parameters onto a saved state. Only parameters
// present in the query override the saved value, so a shared URL wins on
// conflict while untouched dimensions keep the persisted selection.
func MergeQuery(saved State, q url.Values) State {
	s := saved
	if q.Has(paramWochentag) {
		s.Wochentage = splitParam(q.Get(paramWochentag))
	}
	if q.Has(paramOrt) {
		s.Orte = splitParam(q.Get(paramOrt))
	}
	if q.Has(paramArt) {
		s.Trainingsarten = splitParam(q.Get(paramArt))
	}
	if q.Has(paramAlter) {
		s.Altersgruppen = splitParam(q.Get(paramAlter))
	}
	if q.Has(paramSuche) {
		s.SearchTerm = strings.TrimSpace(q.Get(paramSuche))
	}
	if q.Has(paramQuick) {
		if quick := QuickFilter(q.Get(paramQuick)); quick.Valid() {
			s.Quick = quick
		} else {
			s.Quick = QuickNone
		}
	}
	if q.Has(paramFavoriten) {
		// Legacy favorites-only flag, alias for the favorites quick filter.
		if parseBool(q.Get(paramFavoriten)) {
			s.Quick = QuickFavorites
		} else if s.Quick == QuickFavorites {
			s.Quick = QuickNone
		}
	}
	if q.Has(paramUmkreis) {
		km, err := strconv.ParseFloat(q.Get(paramUmkreis), 64)
		if err == nil && km > 0 {
			s.DistanceActive = true
			s.MaxDistanceKm = km
		} else {
			s.DistanceActive = false
		}
	}
	return s
}

// Values serializes the state back to URL query parameters. ParseQuery of
// the result reproduces an equivalent state.
func (s State) Values() url.Values {
	q := url.Values{}
	if len(s.Wochentage) > 0 {
		q.Set(paramWochentag, strings.Join(s.Wochentage, ","))
	}
	if len(s.Orte) > 0 {
		q.Set(paramOrt, strings.Join(s.Orte, ","))
	}
	if len(s.Trainingsarten) > 0 {
		q.Set(paramArt, strings.Join(s.Trainingsarten, ","))
	}
	if len(s.Altersgruppen) > 0 {
		q.Set(paramAlter, strings.Join(s.Altersgruppen, ","))
	}
	if strings.TrimSpace(s.SearchTerm) != "" {
		q.Set(paramSuche, strings.TrimSpace(s.SearchTerm))
	}
	switch {
	case s.Quick == QuickFavorites:
		q.Set(paramFavoriten, "1")
	case s.Quick != QuickNone:
		q.Set(paramQuick, string(s.Quick))
	}
	if s.DistanceActive && s.MaxDistanceKm > 0 {
		q.Set(paramUmkreis, strconv.FormatFloat(s.MaxDistanceKm, 'f', -1, 64))
	}
	return q
}

func splitParam(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseBool(raw string) bool {
	switch strings.ToLower(raw) {
	case "1", "true", "ja":
		return true
	}
	return false
}
