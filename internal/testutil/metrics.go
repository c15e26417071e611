package testutil

import (
	"context"
	"net/http"

	"github.com/preston-bernstein/console-rpg/internal/metrics"
)

// MetricsSetupFunc matches metrics.Setup so callers can swap it in tests.
type MetricsSetupFunc func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error)

// StubMetricsSetup returns a setup func that yields a plain recorder, the given
// handler and err, and counts shutdown calls in *shutdowns when non-nil.
func StubMetricsSetup(handler http.Handler, err error, shutdowns *int) MetricsSetupFunc {
	return func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		_ = ctx
		_ = cfg
		if err != nil {
			return nil, nil, nil, err
		}
		return metrics.NewRecorder(), handler, func(context.Context) error {
			if shutdowns != nil {
				*shutdowns++
			}
			return nil
		}, nil
	}
}
