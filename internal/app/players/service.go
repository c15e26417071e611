package players

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/console-rpg/internal/domain/players"
	"github.com/preston-bernstein/console-rpg/internal/logging"
	"github.com/preston-bernstein/console-rpg/internal/store"
)

// Directory is the capability set the game loop consumes.
type Directory interface {
	GetAllPlayers(ctx context.Context) ([]players.Player, error)
	AddPlayer(ctx context.Context, candidate players.Player) (players.Player, error)
	LevelUpPlayer(ctx context.Context, p *players.Player) error
}

// Store defines the contract for persisting and retrieving players.
type Store interface {
	Add(ctx context.Context, p players.Player) (players.Player, error)
	GetAll(ctx context.Context) ([]players.Player, error)
	Get(ctx context.Context, id string) (players.Player, error)
	Update(ctx context.Context, p players.Player) error
}

// Service coordinates player operations using a Store.
type Service struct {
	store  Store
	logger *slog.Logger
}

var _ Directory = (*Service)(nil)

// NewService constructs a Service with the provided Store.
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// GetAllPlayers returns every player in insertion order.
func (s *Service) GetAllPlayers(ctx context.Context) ([]players.Player, error) {
	items, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all players: %w", err)
	}
	return items, nil
}

// AddPlayer forwards candidate to the store. Input is validated upstream.
func (s *Service) AddPlayer(ctx context.Context, candidate players.Player) (players.Player, error) {
	stored, err := s.store.Add(ctx, candidate)
	if err != nil {
		return players.Player{}, err
	}
	logging.Info(s.logger, "player added",
		logging.FieldPlayerID, stored.ID,
		logging.FieldPlayerName, stored.Name,
	)
	return stored, nil
}

// LevelUpPlayer raises p's level by one and writes the new level back into p.
// A nil player, one without identity, or one the store does not know is a no-op.
func (s *Service) LevelUpPlayer(ctx context.Context, p *players.Player) error {
	if p == nil || p.ID == "" {
		logging.Warn(s.logger, "level up skipped: no player selected")
		return nil
	}

	current, err := s.store.Get(ctx, p.ID)
	if errors.Is(err, store.ErrNotFound) {
		logging.Warn(s.logger, "level up skipped: player not found", logging.FieldPlayerID, p.ID)
		return nil
	}
	if err != nil {
		return err
	}

	current.Level++
	if err := s.store.Update(ctx, current); err != nil {
		return fmt.Errorf("level up player %s: %w", p.ID, err)
	}
	*p = current
	logging.Info(s.logger, "player leveled up",
		logging.FieldPlayerID, current.ID,
		logging.FieldPlayerName, current.Name,
		logging.FieldLevel, current.Level,
	)
	return nil
}
