package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/preston-bernstein/console-rpg/internal/domain/players"
)

// Context is the storage context the PlayerStore reads and writes through.
type Context interface {
	Insert(p players.Player) error
	Replace(p players.Player) error
	Find(id string) (players.Player, bool)
	List() []players.Player
	SaveChanges(ctx context.Context) error
}

// PlayerStore is the data access object for players.
type PlayerStore struct {
	db    Context
	newID func() string
}

// NewPlayerStore constructs a PlayerStore over db.
func NewPlayerStore(db Context) *PlayerStore {
	return &PlayerStore{
		db:    db,
		newID: func() string { return uuid.NewString() },
	}
}

// Add assigns an identity to p, tracks it and returns the stored record.
func (s *PlayerStore) Add(ctx context.Context, p players.Player) (players.Player, error) {
	if err := ctx.Err(); err != nil {
		return players.Player{}, err
	}
	if s == nil || s.db == nil {
		return players.Player{}, ErrBackendUnavailable
	}
	stored := p.Clone()
	stored.ID = s.newID()
	if err := s.db.Insert(stored); err != nil {
		return players.Player{}, fmt.Errorf("add player: %w", err)
	}
	return stored.Clone(), nil
}

// GetAll returns every player in insertion order; empty when none exist.
func (s *PlayerStore) GetAll(ctx context.Context) ([]players.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.db == nil {
		return nil, ErrBackendUnavailable
	}
	return s.db.List(), nil
}

// Get returns a single player or ErrNotFound.
func (s *PlayerStore) Get(ctx context.Context, id string) (players.Player, error) {
	if err := ctx.Err(); err != nil {
		return players.Player{}, err
	}
	if s == nil || s.db == nil {
		return players.Player{}, ErrBackendUnavailable
	}
	p, ok := s.db.Find(id)
	if !ok {
		return players.Player{}, fmt.Errorf("get player %s: %w", id, ErrNotFound)
	}
	return p, nil
}

// Update replaces the stored record that shares p's ID.
func (s *PlayerStore) Update(ctx context.Context, p players.Player) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return ErrBackendUnavailable
	}
	return s.db.Replace(p)
}

// Persist flushes pending changes through the storage context.
func (s *PlayerStore) Persist(ctx context.Context) error {
	if s == nil || s.db == nil {
		return ErrBackendUnavailable
	}
	return s.db.SaveChanges(ctx)
}
