package filter

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/redis/go-redis/v9"
)

const stateKeyPrefix = "filterstate:"

// Store persists one filter state per client, the server-side counterpart of
// the browser's local storage. Corrupted or missing entries degrade to the
// reset state, never to an error the caller has to handle.
type Store struct {
	redis *redis.Client
}

func NewStore(redisClient *redis.Client) *Store {
	return &Store{redis: redisClient}
}

func (s *Store) Save(ctx context.Context, clientID string, state State) error {
	if s.redis == nil || clientID == "" {
		return nil
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, stateKeyPrefix+clientID, raw, 0).Err()
}

func (s *Store) Load(ctx context.Context, clientID string) State {
	if s.redis == nil || clientID == "" {
		return State{}
	}

	raw, err := s.redis.Get(ctx, stateKeyPrefix+clientID).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("filter state read failed for %s: %v", clientID, err)
		}
		return State{}
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		log.Printf("filter state corrupted for %s, resetting: %v", clientID, err)
		return State{}
	}
	if !state.Quick.Valid() {
		state.Quick = QuickNone
	}
	return state
}

func (s *Store) Clear(ctx context.Context, clientID string) error {
	if s.redis == nil || clientID == "" {
		return nil
	}
	return s.redis.Del(ctx, stateKeyPrefix+clientID).Err()
}
