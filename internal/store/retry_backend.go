package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/console-rpg/internal/domain/players"
	"github.com/preston-bernstein/console-rpg/internal/logging"
	"github.com/preston-bernstein/console-rpg/internal/metrics"
)

const (
	defaultSaveAttempts = 3
	defaultSaveBackoff  = 100 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingBackend wraps a Backend and retries failed saves with linear backoff.
// Loads and closes pass straight through.
type retryingBackend struct {
	inner       Backend
	logger      *slog.Logger
	recorder    *metrics.Recorder
	maxAttempts int
	backoffFn   backoffFunc
}

// NewRetryingBackend wraps inner with retries. If attempts/backoff are <= 0, defaults are used.
func NewRetryingBackend(inner Backend, logger *slog.Logger, recorder *metrics.Recorder, attempts int, backoff time.Duration) Backend {
	if attempts <= 0 {
		attempts = defaultSaveAttempts
	}
	if backoff <= 0 {
		backoff = defaultSaveBackoff
	}
	return &retryingBackend{
		inner:       inner,
		logger:      logger,
		recorder:    recorder,
		maxAttempts: attempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *retryingBackend) Name() string {
	if r.inner == nil {
		return "unconfigured"
	}
	return r.inner.Name()
}

func (r *retryingBackend) Load(ctx context.Context) ([]players.Player, error) {
	if r.inner == nil {
		return nil, ErrBackendUnavailable
	}
	return r.inner.Load(ctx)
}

func (r *retryingBackend) Save(ctx context.Context, items []players.Player) error {
	if r.inner == nil {
		return ErrBackendUnavailable
	}
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		err := r.inner.Save(ctx, items)
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == r.maxAttempts {
			break
		}

		r.recorder.RecordSaveRetry(r.Name())
		logging.Warn(logging.FromContext(ctx, r.logger), "backend save retry",
			logging.FieldBackend, r.Name(),
			logging.FieldAttempt, attempt,
			"max_attempts", r.maxAttempts,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.backoffFn(attempt)):
		}
	}

	logging.Error(logging.FromContext(ctx, r.logger), "backend save failed", lastErr,
		logging.FieldBackend, r.Name(),
		"attempts", r.maxAttempts,
	)
	return lastErr
}

func (r *retryingBackend) Close() error {
	if r.inner == nil {
		return nil
	}
	return r.inner.Close()
}
