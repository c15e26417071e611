package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/console-rpg/internal/domain/players"
	"github.com/preston-bernstein/console-rpg/internal/logging"
	"github.com/preston-bernstein/console-rpg/internal/metrics"
)

const memoryBackendName = "memory"

// Backend is the durable side of the storage context.
type Backend interface {
	Name() string
	Load(ctx context.Context) ([]players.Player, error)
	// Save replaces the durable state with the given players, in order.
	Save(ctx context.Context, items []players.Player) error
	Close() error
}

// GameContext tracks the canonical player collection in memory and flushes it
// to a Backend on SaveChanges. A nil backend keeps everything in process.
type GameContext struct {
	mu      sync.RWMutex
	order   []string
	players map[string]players.Player
	dirty   bool

	backend  Backend
	logger   *slog.Logger
	recorder *metrics.Recorder
}

// NewMemoryContext constructs an empty context with no durable backend.
func NewMemoryContext() *GameContext {
	return &GameContext{
		players: make(map[string]players.Player),
	}
}

// Open constructs a context over backend and loads its existing players.
func Open(ctx context.Context, backend Backend, logger *slog.Logger, recorder *metrics.Recorder) (*GameContext, error) {
	c := NewMemoryContext()
	c.backend = backend
	c.logger = logger
	c.recorder = recorder
	if backend == nil {
		return c, nil
	}

	items, err := backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load players from %s: %w", backend.Name(), err)
	}
	for _, p := range items {
		if p.ID == "" {
			return nil, fmt.Errorf("load players from %s: %w: record without id", backend.Name(), ErrCorrupt)
		}
		if _, dup := c.players[p.ID]; dup {
			return nil, fmt.Errorf("load players from %s: %w: duplicate id %s", backend.Name(), ErrCorrupt, p.ID)
		}
		c.order = append(c.order, p.ID)
		c.players[p.ID] = p.Clone()
	}
	logging.Info(logger, "players loaded", logging.FieldBackend, backend.Name(), logging.FieldCount, len(items))
	return c, nil
}

// BackendName reports which backend the context flushes to.
func (c *GameContext) BackendName() string {
	if c == nil || c.backend == nil {
		return memoryBackendName
	}
	return c.backend.Name()
}

// Insert appends a new player. The ID must be set and unused.
func (c *GameContext) Insert(p players.Player) error {
	if p.ID == "" {
		return fmt.Errorf("insert player: %w: id required", players.ErrInvalidPlayer)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.players[p.ID]; exists {
		return fmt.Errorf("insert player %s: %w", p.ID, ErrDuplicate)
	}
	c.order = append(c.order, p.ID)
	c.players[p.ID] = p.Clone()
	c.dirty = true
	return nil
}

// Replace overwrites the player with the same ID.
func (c *GameContext) Replace(p players.Player) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.players[p.ID]; !ok {
		return fmt.Errorf("replace player %s: %w", p.ID, ErrNotFound)
	}
	c.players[p.ID] = p.Clone()
	c.dirty = true
	return nil
}

// Find retrieves a copy of a player by ID.
func (c *GameContext) Find(id string) (players.Player, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.players[id]
	if !ok {
		return players.Player{}, false
	}
	return p.Clone(), true
}

// List returns copies of all players in insertion order.
func (c *GameContext) List() []players.Player {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.listLocked()
}

func (c *GameContext) listLocked() []players.Player {
	result := make([]players.Player, 0, len(c.order))
	for _, id := range c.order {
		result = append(result, c.players[id].Clone())
	}
	return result
}

// HasChanges reports whether there are unsaved mutations.
func (c *GameContext) HasChanges() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dirty
}

// SaveChanges flushes pending changes to the backend. It is a no-op when
// nothing changed; the dirty flag is only cleared after a successful write.
func (c *GameContext) SaveChanges(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dirty {
		return nil
	}
	if c.backend == nil {
		c.dirty = false
		return nil
	}

	start := time.Now()
	err := c.backend.Save(ctx, c.listLocked())
	c.recorder.RecordSave(c.backend.Name(), time.Since(start), err)
	if err != nil {
		return fmt.Errorf("save changes to %s: %w", c.backend.Name(), err)
	}
	c.dirty = false
	logging.Debug(c.logger, "changes saved",
		logging.FieldBackend, c.backend.Name(),
		logging.FieldCount, len(c.order),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return nil
}

// Close releases the backend.
func (c *GameContext) Close() error {
	if c == nil || c.backend == nil {
		return nil
	}
	return c.backend.Close()
}
