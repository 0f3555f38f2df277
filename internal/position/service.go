package position

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"backend-trainingsplan/internal/shared/geo"
	"backend-trainingsplan/internal/training"
)

const (
	SourceGPS    = "gps"
	SourceManual = "manual"

	positionKeyPrefix = "position:"
)

var ErrInvalidSource = errors.New("source must be gps or manual")

// Position is the one location a client currently has, GPS-acquired or
// manually entered. Setting a new one replaces the previous value entirely,
// so two sources can never coexist.
type Position struct {
	Lat      float64   `json:"lat"`
	Lng      float64   `json:"lng"`
	Accuracy float64   `json:"accuracy,omitempty"`
	Label    string    `json:"label,omitempty"`
	Source   string    `json:"source"`
	SetAt    time.Time `json:"setAt"`
}

// Service stores one position per client.
type Service struct {
	redis *redis.Client
}

func NewService(redisClient *redis.Client) *Service {
	return &Service{redis: redisClient}
}

// Set replaces the client's position unconditionally (last writer wins).
func (s *Service) Set(ctx context.Context, clientID string, p Position) (Position, error) {
	if p.Source != SourceGPS && p.Source != SourceManual {
		return Position{}, ErrInvalidSource
	}
	p.SetAt = time.Now()

	if s.redis == nil {
		return Position{}, errors.New("position storage unavailable")
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return Position{}, err
	}
	if err := s.redis.Set(ctx, positionKeyPrefix+clientID, raw, 0).Err(); err != nil {
		return Position{}, err
	}
	return p, nil
}

// Get returns the current position and whether one exists. Corrupted entries
// read as absent.
func (s *Service) Get(ctx context.Context, clientID string) (Position, bool, error) {
	if s.redis == nil || clientID == "" {
		return Position{}, false, nil
	}

	raw, err := s.redis.Get(ctx, positionKeyPrefix+clientID).Bytes()
	if errors.Is(err, redis.Nil) {
		return Position{}, false, nil
	}
	if err != nil {
		return Position{}, false, err
	}

	var p Position
	if err := json.Unmarshal(raw, &p); err != nil {
		log.Printf("position corrupted for %s, treating as absent: %v", clientID, err)
		return Position{}, false, nil
	}
	return p, true, nil
}

// Reset clears the position. Distance annotations disappear with it because
// they are computed per response from the stored position.
func (s *Service) Reset(ctx context.Context, clientID string) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Del(ctx, positionKeyPrefix+clientID).Err()
}

// AnnotateDistances returns a copy of the trainings with distance fields set
// for every training that has coordinates. Idempotent: annotating twice with
// the same position yields identical values. Trainings without coordinates
// carry no distance fields at all.
func AnnotateDistances(trainings []training.Training, p Position) []training.Training {
	out := make([]training.Training, len(trainings))
	copy(out, trainings)

	for i := range out {
		if !out[i].HasCoordinates() {
			out[i].DistanceKm = nil
			out[i].DistanceLabel = ""
			continue
		}
		km := geo.HaversineKm(p.Lat, p.Lng, *out[i].Lat, *out[i].Lng)
		out[i].DistanceKm = &km
		out[i].DistanceLabel = geo.DistanceLabel(km)
	}
	return out
}

// ClearDistances strips all distance annotations.
func ClearDistances(trainings []training.Training) []training.Training {
	out := make([]training.Training, len(trainings))
	copy(out, trainings)
	for i := range out {
		out[i].DistanceKm = nil
		out[i].DistanceLabel = ""
	}
	return out
}
