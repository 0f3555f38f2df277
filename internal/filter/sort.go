package filter

import (
	"sort"
	"strings"

	"backend-trainingsplan/internal/training"
)

// SortKey names one comparator of the multi-key sort.
type SortKey string

const (
	SortWeekday  SortKey = "wochentag"
	SortOrt      SortKey = "ort"
	SortStart    SortKey = "von"
	SortArt      SortKey = "training"
	SortDistance SortKey = "distanz"
)

// DefaultSortKeys orders the plan the way it is displayed: calendar day,
// then start time, then location.
var DefaultSortKeys = []SortKey{SortWeekday, SortStart, SortOrt}

// ParseSortKeys reads a comma-separated sort parameter, dropping unknown
// keys. Empty input yields the default order.
func ParseSortKeys(raw string) []SortKey {
	var keys []SortKey
	for _, part := range strings.Split(raw, ",") {
		switch key := SortKey(strings.TrimSpace(part)); key {
		case SortWeekday, SortOrt, SortStart, SortArt, SortDistance:
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return DefaultSortKeys
	}
	return keys
}

// Sort returns a new slice ordered by the given keys: weekdays in calendar
// order, times chronologically, strings lexically, distance numerically with
// missing distances last. The input is not modified.
func Sort(trainings []training.Training, keys []SortKey) []training.Training {
	out := make([]training.Training, len(trainings))
	copy(out, trainings)

	sort.SliceStable(out, func(i, j int) bool {
		for _, key := range keys {
			if c := compare(out[i], out[j], key); c != 0 {
				return c < 0
			}
		}
		return false
	})
	return out
}

func compare(a, b training.Training, key SortKey) int {
	switch key {
	case SortWeekday:
		return training.WeekdayIndex(a.Wochentag) - training.WeekdayIndex(b.Wochentag)
	case SortOrt:
		return strings.Compare(a.Ort, b.Ort)
	case SortArt:
		return strings.Compare(a.Art, b.Art)
	case SortStart:
		return strings.Compare(normalizeTime(a.Von), normalizeTime(b.Von))
	case SortDistance:
		switch {
		case a.DistanceKm == nil && b.DistanceKm == nil:
			return 0
		case a.DistanceKm == nil:
			return 1
		case b.DistanceKm == nil:
			return -1
		case *a.DistanceKm < *b.DistanceKm:
			return -1
		case *a.DistanceKm > *b.DistanceKm:
			return 1
		}
	}
	return 0
}

// normalizeTime pads "9:00" to "09:00" so wall-clock strings compare
// chronologically.
func normalizeTime(hhmm string) string {
	if i := strings.IndexByte(hhmm, ':'); i == 1 {
		return "0" + hhmm
	}
	return hhmm
}

// Group is one contiguous partition of a sorted training list.
type Group struct {
	Label     string              `json:"label"`
	Trainings []training.Training `json:"trainings"`
}

// GroupKey selects the partition dimension.
type GroupKey string

const (
	GroupByWeekday GroupKey = "wochentag"
	GroupByOrt     GroupKey = "ort"
)

// GroupBy partitions an already-sorted list into contiguous groups. When
// grouping by weekday the list is re-sorted into calendar order first so
// group order follows the week, not the incoming sort.
func GroupBy(trainings []training.Training, key GroupKey) []Group {
	if key != GroupByWeekday && key != GroupByOrt {
		return nil
	}
	if key == GroupByWeekday {
		trainings = Sort(trainings, []SortKey{SortWeekday})
	} else {
		trainings = Sort(trainings, []SortKey{SortOrt})
	}

	var groups []Group
	for _, t := range trainings {
		label := t.Ort
		if key == GroupByWeekday {
			label = t.Wochentag
		}
		if len(groups) == 0 || groups[len(groups)-1].Label != label {
			groups = append(groups, Group{Label: label})
		}
		last := &groups[len(groups)-1]
		last.Trainings = append(last.Trainings, t)
	}
	return groups
}
