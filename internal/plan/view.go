package plan

import (
	"context"
	"log"
	"net/url"
	"sync"
	"time"

	"backend-trainingsplan/internal/favorites"
	"backend-trainingsplan/internal/filter"
	"backend-trainingsplan/internal/position"
	"backend-trainingsplan/internal/search"
	"backend-trainingsplan/internal/training"
)

// View assembles the plan a client sees: the current snapshot with the
// client's position, favorites and filter state applied. All derived data is
// computed per request; only the search index is cached, keyed by the
// snapshot's content hash.
type View struct {
	store           *training.Store
	loader          *training.Loader
	favorites       *favorites.Service
	positions       *position.Service
	filters         *filter.Store
	defaultRadiusKm float64

	mu      sync.Mutex
	idxHash string
	idx     *search.Index
}

func NewView(store *training.Store, loader *training.Loader, favs *favorites.Service, positions *position.Service, filters *filter.Store, defaultRadiusKm float64) *View {
	return &View{
		store:           store,
		loader:          loader,
		favorites:       favs,
		positions:       positions,
		filters:         filters,
		defaultRadiusKm: defaultRadiusKm,
	}
}

// snapshot returns the current data, loading on demand when the store is
// still empty (cold start before the first scheduled refresh).
func (v *View) snapshot(ctx context.Context) (training.Snapshot, error) {
	snap := v.store.Snapshot()
	if snap.Hash != "" || len(snap.Trainings) > 0 || v.loader == nil {
		return snap, nil
	}
	if _, err := v.loader.Load(ctx); err != nil {
		return training.Snapshot{}, err
	}
	return v.store.Snapshot(), nil
}

// index returns the search index for the snapshot, rebuilding it only when
// the content hash changed.
func (v *View) index(snap training.Snapshot) *search.Index {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.idx == nil || v.idxHash != snap.Hash {
		v.idx = search.Build(snap.Trainings)
		v.idxHash = snap.Hash
	}
	return v.idx
}

// state merges the client's persisted filter state with the request query.
// Query parameters win per dimension; an active distance filter without an
// explicit radius falls back to the configured default.
func (v *View) state(ctx context.Context, clientID string, q url.Values) filter.State {
	saved := filter.State{}
	if v.filters != nil {
		saved = v.filters.Load(ctx, clientID)
	}
	s := filter.MergeQuery(saved, q)
	if s.DistanceActive && s.MaxDistanceKm <= 0 {
		s.MaxDistanceKm = v.defaultRadiusKm
	}
	return s
}

// assemble runs the full pipeline: annotate distances, resolve favorites,
// filter, sort. Favorites and position lookups degrade to "none" on error so
// the plan itself always renders.
func (v *View) assemble(ctx context.Context, clientID string, snap training.Snapshot, s filter.State, sortKeys []filter.SortKey, now time.Time) []training.Training {
	list := snap.Trainings

	if v.positions != nil && clientID != "" {
		if pos, ok, err := v.positions.Get(ctx, clientID); err == nil && ok {
			list = position.AnnotateDistances(list, pos)
		} else if err != nil {
			log.Printf("position lookup failed for %s: %v", clientID, err)
		}
	}

	var favs map[int]bool
	if v.favorites != nil && clientID != "" {
		set, err := v.favorites.Set(ctx, clientID)
		if err != nil {
			log.Printf("favorites lookup failed for %s: %v", clientID, err)
		} else {
			favs = set
		}
	}

	filtered := filter.Apply(list, s, v.index(snap), favs, now)
	return filter.Sort(filtered, sortKeys)
}
