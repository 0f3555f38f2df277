package favorites

import (
	"context"

	"backend-trainingsplan/internal/db"
)

// Service keeps the per-client favorites set, independent of any filter
// state. Toggling is idempotent per direction: adding twice behaves like a
// toggle cycle, never a duplicate.
type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// Toggle flips one training in the client's favorites and reports whether it
// is a favorite afterwards.
func (s *Service) Toggle(ctx context.Context, clientID string, trainingID int) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM favorites WHERE client_id=$1 AND training_id=$2
		)
	`, clientID, trainingID).Scan(&exists)
	if err != nil {
		return false, err
	}

	if exists {
		_, err = s.db.Exec(ctx, `DELETE FROM favorites WHERE client_id=$1 AND training_id=$2`, clientID, trainingID)
		return false, err
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO favorites (client_id, training_id)
		VALUES ($1,$2)
		ON CONFLICT (client_id, training_id) DO NOTHING
	`, clientID, trainingID)
	return true, err
}

func (s *Service) IsFavorite(ctx context.Context, clientID string, trainingID int) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM favorites WHERE client_id=$1 AND training_id=$2
		)
	`, clientID, trainingID).Scan(&exists)
	return exists, err
}

// List returns the favorited training IDs in insertion order.
func (s *Service) List(ctx context.Context, clientID string) ([]int, error) {
	rows, err := s.db.Query(ctx, `
		SELECT training_id FROM favorites
		WHERE client_id=$1
		ORDER BY created_at
	`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Set returns the favorites as a lookup set for the filter engine.
func (s *Service) Set(ctx context.Context, clientID string) (map[int]bool, error) {
	ids, err := s.List(ctx, clientID)
	if err != nil {
		return nil, err
	}
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func (s *Service) Clear(ctx context.Context, clientID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM favorites WHERE client_id=$1`, clientID)
	return err
}
