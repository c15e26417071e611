// Package runner wires storage, services and the game engine together and owns
// the single shutdown path of the process.
package runner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/console-rpg/internal/app/players"
	"github.com/preston-bernstein/console-rpg/internal/config"
	"github.com/preston-bernstein/console-rpg/internal/console"
	"github.com/preston-bernstein/console-rpg/internal/fixture"
	"github.com/preston-bernstein/console-rpg/internal/game"
	"github.com/preston-bernstein/console-rpg/internal/logging"
	"github.com/preston-bernstein/console-rpg/internal/metrics"
	"github.com/preston-bernstein/console-rpg/internal/store"
)

var metricsSetup = metrics.Setup

// Session is one interactive run of the engine.
type Session interface {
	Run(ctx context.Context) (game.Result, error)
}

type Runner struct {
	logger        *slog.Logger
	metrics       *metrics.Recorder
	db            *store.GameContext
	players       *store.PlayerStore
	session       Session
	input         io.Closer
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// New builds the store, then the service, then the auto-save decorator, then
// the engine. in and out are the console streams.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger, in io.Reader, out io.Writer) (*Runner, error) {
	ctx = logging.WithLogger(ctx, logger)
	recorder, metricsSrv, metricsShutdown := buildMetrics(ctx, cfg, logger)

	backend, err := openBackend(ctx, cfg.Storage, logger, recorder)
	if err != nil {
		stopMetrics(metricsShutdown, logger)
		return nil, err
	}
	db, err := store.Open(ctx, backend, logger, recorder)
	if err != nil {
		if backend != nil {
			_ = backend.Close()
		}
		stopMetrics(metricsShutdown, logger)
		return nil, err
	}
	playerStore := store.NewPlayerStore(db)

	if cfg.Game.SeedFixture {
		added, err := fixture.New().Seed(ctx, playerStore, logger)
		if err == nil && added > 0 {
			err = playerStore.Persist(ctx)
		}
		if err != nil {
			_ = db.Close()
			stopMetrics(metricsShutdown, logger)
			return nil, err
		}
	}

	svc := players.NewService(playerStore, logger)
	dir := players.NewAutoSave(svc, playerStore, logger, recorder)
	ui := console.New(in, out)
	engine := game.New(dir, ui, logger, cfg.Game.Pause)

	return &Runner{
		logger:        logger,
		metrics:       recorder,
		db:            db,
		players:       playerStore,
		session:       engine,
		input:         ui,
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
	}, nil
}

// Run plays one session and returns the process exit code. Pending changes
// are flushed and resources released on every exit path.
func (r *Runner) Run(ctx context.Context) int {
	r.startMetrics()

	res, err := r.session.Run(logging.WithLogger(ctx, r.logger))
	code := res.Code
	switch {
	case err == nil:
		logging.Info(r.logger, "session ended", "reason", string(res.Reason))
	case errors.Is(err, context.Canceled):
		logging.Info(r.logger, "shutdown signal received")
	default:
		logging.Error(r.logger, "session failed", err)
	}
	if err != nil && code == 0 {
		code = 1
	}

	if !r.gracefulShutdown() && code == 0 {
		code = 1
	}
	return code
}

func (r *Runner) startMetrics() {
	if r.metricsServer == nil {
		return
	}
	launchServer("metrics", r.metricsServer, r.logger)
}

// gracefulShutdown flushes pending changes and releases resources. It reports
// whether the final flush succeeded.
func (r *Runner) gracefulShutdown() bool {
	shutdownCtx, cancel := context.WithTimeout(logging.WithLogger(context.Background(), r.logger), shutdownTimeout)
	defer cancel()

	if r.input != nil {
		_ = r.input.Close()
	}

	flushed := true
	if err := r.players.Persist(shutdownCtx); err != nil {
		logging.Error(r.logger, "final save failed", err)
		flushed = false
	}

	if r.metricsStop != nil {
		if err := r.metricsStop(shutdownCtx); err != nil {
			logging.Warn(r.logger, "metrics shutdown failed", "error", err)
		}
	}

	if r.metricsServer != nil {
		if err := r.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(r.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if err := r.db.Close(); err != nil {
		logging.Warn(r.logger, "storage close failed", "error", err)
	}

	logging.Info(r.logger, "shutdown complete")
	return flushed
}

func buildMetrics(ctx context.Context, cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}
	if !recCfg.Enabled {
		return metrics.NewRecorder(), nil, nil
	}

	rec, handler, shutdown, err := metricsSetup(ctx, recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readHeaderTimeout,
				IdleTimeout:       idleTimeout,
			},
		}
	}
	return rec, metricsSrv, shutdown
}

func stopMetrics(shutdown func(context.Context) error, logger *slog.Logger) {
	if shutdown == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		logging.Warn(logger, "metrics shutdown failed", "error", err)
	}
}

func launchServer(name string, srv httpServer, logger *slog.Logger) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Warn(logger, name+" server failed", "error", err)
		}
	}()
}
