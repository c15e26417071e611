package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/console-rpg/internal/config"
	"github.com/preston-bernstein/console-rpg/internal/logging"
	"github.com/preston-bernstein/console-rpg/internal/metrics"
	"github.com/preston-bernstein/console-rpg/internal/snapshots"
	"github.com/preston-bernstein/console-rpg/internal/storage/sqlite"
	"github.com/preston-bernstein/console-rpg/internal/store"
)

// openBackend builds the durable backend for cfg. The memory driver returns a
// nil Backend so the context keeps changes in process only.
func openBackend(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger, recorder *metrics.Recorder) (store.Backend, error) {
	var backend store.Backend
	switch cfg.Driver {
	case config.DriverMemory:
		logging.Info(logger, "using in-memory storage")
		return nil, nil
	case config.DriverJSON, "":
		backend = snapshots.NewFileBackend(cfg.Path)
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		backend = db
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}

	logging.Info(logger, "storage backend ready",
		logging.FieldBackend, backend.Name(),
		"path", cfg.Path,
	)
	return store.NewRetryingBackend(backend, logger, recorder, cfg.SaveAttempts, cfg.SaveBackoff), nil
}
