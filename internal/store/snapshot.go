package store

import (
	"context"

	"golang.org/x/sync/errgroup"

	"listboard/internal/model"
)

// Snapshot is both lists read at (about) the same time.
type Snapshot struct {
	Notes []model.Note `json:"notes"`
	Todos []model.Todo `json:"todos"`
}

// Snapshot loads notes and todos concurrently.
func (s *Store) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		notes, err := s.Notes().List(ctx)
		if err != nil {
			return err
		}
		snap.Notes = notes
		return nil
	})
	g.Go(func() error {
		todos, err := s.Todos().List(ctx)
		if err != nil {
			return err
		}
		snap.Todos = todos
		return nil
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
