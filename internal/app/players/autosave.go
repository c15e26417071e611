package players

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/console-rpg/internal/domain/players"
	"github.com/preston-bernstein/console-rpg/internal/logging"
	"github.com/preston-bernstein/console-rpg/internal/metrics"
)

// Persister flushes pending changes to durable storage.
type Persister interface {
	Persist(ctx context.Context) error
}

// AutoSave decorates a Service so every successful mutation is flushed once.
type AutoSave struct {
	inner     *Service
	persister Persister
	logger    *slog.Logger
	metrics   *metrics.Recorder
}

var _ Directory = (*AutoSave)(nil)

// NewAutoSave wraps the concrete service. Taking *Service rather than
// Directory keeps one decorator from wrapping another.
func NewAutoSave(inner *Service, persister Persister, logger *slog.Logger, recorder *metrics.Recorder) *AutoSave {
	return &AutoSave{
		inner:     inner,
		persister: persister,
		logger:    logger,
		metrics:   recorder,
	}
}

// GetAllPlayers forwards unchanged; reads never trigger a save.
func (a *AutoSave) GetAllPlayers(ctx context.Context) ([]players.Player, error) {
	return a.inner.GetAllPlayers(ctx)
}

// AddPlayer delegates then persists.
func (a *AutoSave) AddPlayer(ctx context.Context, candidate players.Player) (players.Player, error) {
	start := time.Now()
	stored, err := a.inner.AddPlayer(ctx, candidate)
	if err == nil {
		err = a.save(ctx, metrics.OpAddPlayer)
	}
	a.metrics.RecordMutation(metrics.OpAddPlayer, time.Since(start), err)
	if err != nil {
		return players.Player{}, err
	}
	return stored, nil
}

// LevelUpPlayer delegates then persists.
func (a *AutoSave) LevelUpPlayer(ctx context.Context, p *players.Player) error {
	start := time.Now()
	err := a.inner.LevelUpPlayer(ctx, p)
	if err == nil {
		err = a.save(ctx, metrics.OpLevelUpPlayer)
	}
	a.metrics.RecordMutation(metrics.OpLevelUpPlayer, time.Since(start), err)
	return err
}

func (a *AutoSave) save(ctx context.Context, op string) error {
	if a.persister == nil {
		return nil
	}
	if err := a.persister.Persist(ctx); err != nil {
		logging.Error(a.logger, "auto-save failed", err, metrics.AttrOperation, op)
		return fmt.Errorf("auto-save after %s: %w", op, err)
	}
	logging.Debug(a.logger, "auto-save complete", metrics.AttrOperation, op)
	return nil
}
