package training

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrMalformedPayload = errors.New("payload missing trainings array")
	ErrNoData           = errors.New("no fresh data and no cached payload")
)

const (
	cachePayloadKey = "trainings:cache:payload"
	cacheHashKey    = "trainings:cache:hash"
	cacheFetchedKey = "trainings:cache:fetched_at"
)

// Loader fetches the published schedule, detects content changes via a hash
// of the raw payload and falls back to the cached copy when the upstream is
// unreachable or malformed.
type Loader struct {
	url      string
	client   *http.Client
	redis    *redis.Client
	store    *Store
	onChange func(Snapshot)
}

// Result reports how a load resolved. FromCache marks the cached-fallback
// path, Changed marks a fresh payload whose content hash differs from the
// previously cached one.
type Result struct {
	Snapshot  Snapshot `json:"snapshot"`
	FromCache bool     `json:"fromCache"`
	Changed   bool     `json:"changed"`
}

func NewLoader(url string, redisClient *redis.Client, store *Store, onChange func(Snapshot)) *Loader {
	return &Loader{
		url:      url,
		client:   &http.Client{Timeout: 10 * time.Second},
		redis:    redisClient,
		store:    store,
		onChange: onChange,
	}
}

// Load fetches fresh data and replaces the store snapshot. Every path has a
// terminal resolution: fresh payload, cached fallback or an error.
func (l *Loader) Load(ctx context.Context) (Result, error) {
	body, err := l.fetch(ctx)
	if err != nil {
		return l.loadCached(ctx, err)
	}

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return l.loadCached(ctx, err)
	}
	if payload.Trainings == nil {
		return l.loadCached(ctx, ErrMalformedPayload)
	}

	sum := sha256.Sum256(body)
	hash := hex.EncodeToString(sum[:])
	prevHash := l.cachedHash(ctx)

	snap := Snapshot{
		Trainings: payload.Trainings,
		Metadata:  payload.Metadata,
		Version:   payload.Version,
		Generated: payload.Generated,
		Hash:      hash,
		FetchedAt: time.Now(),
	}
	l.store.Replace(snap)
	l.saveCache(ctx, body, hash, snap.FetchedAt)

	changed := hash != prevHash
	if changed && l.onChange != nil {
		l.onChange(l.store.Snapshot())
	}
	return Result{Snapshot: l.store.Snapshot(), Changed: changed}, nil
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	// Cache-busting query parameter so intermediaries never serve a stale copy.
	url := l.url
	sep := "?"
	for _, c := range url {
		if c == '?' {
			sep = "&"
			break
		}
	}
	url += sep + "v=" + strconv.FormatInt(time.Now().UnixNano(), 10)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (l *Loader) loadCached(ctx context.Context, cause error) (Result, error) {
	if l.redis == nil {
		return Result{}, cause
	}

	body, err := l.redis.Get(ctx, cachePayloadKey).Bytes()
	if err != nil {
		return Result{}, cause
	}

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil || payload.Trainings == nil {
		return Result{}, cause
	}

	fetchedAt := time.Time{}
	if ts, err := l.redis.Get(ctx, cacheFetchedKey).Result(); err == nil {
		if unix, err := strconv.ParseInt(ts, 10, 64); err == nil {
			fetchedAt = time.Unix(unix, 0)
		}
	}

	log.Printf("trainings fetch failed, serving cached payload: %v", cause)
	snap := Snapshot{
		Trainings: payload.Trainings,
		Metadata:  payload.Metadata,
		Version:   payload.Version,
		Generated: payload.Generated,
		Hash:      l.cachedHash(ctx),
		FetchedAt: fetchedAt,
		FromCache: true,
	}
	l.store.Replace(snap)
	return Result{Snapshot: l.store.Snapshot(), FromCache: true}, nil
}

func (l *Loader) cachedHash(ctx context.Context) string {
	if l.redis == nil {
		return ""
	}
	hash, err := l.redis.Get(ctx, cacheHashKey).Result()
	if err != nil {
		return ""
	}
	return hash
}

func (l *Loader) saveCache(ctx context.Context, body []byte, hash string, fetchedAt time.Time) {
	if l.redis == nil {
		return
	}
	// Cache entries never expire on their own; freshness comes from the
	// cache-busting fetch, the timestamp is kept for staleness display.
	if err := l.redis.Set(ctx, cachePayloadKey, body, 0).Err(); err != nil {
		log.Printf("cache payload write failed: %v", err)
		return
	}
	_ = l.redis.Set(ctx, cacheHashKey, hash, 0).Err()
	_ = l.redis.Set(ctx, cacheFetchedKey, strconv.FormatInt(fetchedAt.Unix(), 10), 0).Err()
}
