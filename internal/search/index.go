package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"backend-trainingsplan/internal/training"
)

// Index is a typo-tolerant match index over the searchable fields of one
// specific training list (type, location, trainer, notes). It holds offsets
// into that list, so it must be rebuilt whenever the list is replaced.
type Index struct {
	ids      []int
	haystack []string
}

func Build(trainings []training.Training) *Index {
	idx := &Index{
		ids:      make([]int, 0, len(trainings)),
		haystack: make([]string, 0, len(trainings)),
	}
	for _, t := range trainings {
		idx.ids = append(idx.ids, t.ID)
		idx.haystack = append(idx.haystack, strings.ToLower(
			t.Art+" "+t.Ort+" "+t.Trainer+" "+t.Hinweis))
	}
	return idx
}

// Query returns matching training IDs, best matches first.
func (idx *Index) Query(term string) []int {
	term = strings.ToLower(strings.TrimSpace(term))
	if idx == nil || term == "" {
		return nil
	}

	matches := fuzzy.Find(term, idx.haystack)
	ids := make([]int, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, idx.ids[m.Index])
	}
	return ids
}

// QuerySet returns the matching IDs as a set for predicate checks.
func (idx *Index) QuerySet(term string) map[int]struct{} {
	ids := idx.Query(term)
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
