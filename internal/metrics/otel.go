package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const defaultServiceName = "console-rpg"

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter and optional OTLP exporter.
// It returns a Recorder, the Prometheus HTTP handler, and a shutdown function.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)

	otelInst, err := instrumentFactory(provider)
	if err != nil {
		return nil, nil, nil, err
	}

	rec := newRecorder(otelInst)
	shutdown := func(c context.Context) error {
		return provider.Shutdown(c)
	}

	return rec, promHandler, shutdown, nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	otlpExp, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(otlpExp, sdkmetric.WithInterval(15*time.Second)), nil
}

type otelInstruments struct {
	ctx               context.Context
	mutations         metric.Int64Counter
	mutationErrors    metric.Int64Counter
	mutationLatencyMs metric.Float64Histogram
	saves             metric.Int64Counter
	saveErrors        metric.Int64Counter
	saveRetries       metric.Int64Counter
	saveLatencyMs     metric.Float64Histogram
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return promExp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	meter := provider.Meter(defaultServiceName)

	mutations, err := meter.Int64Counter("player_mutations_total")
	if err != nil {
		return nil, err
	}
	mutationErrors, err := meter.Int64Counter("player_mutation_errors_total")
	if err != nil {
		return nil, err
	}
	mutationLatency, err := meter.Float64Histogram("player_mutation_duration_ms")
	if err != nil {
		return nil, err
	}
	saves, err := meter.Int64Counter("store_saves_total")
	if err != nil {
		return nil, err
	}
	saveErrors, err := meter.Int64Counter("store_save_errors_total")
	if err != nil {
		return nil, err
	}
	saveRetries, err := meter.Int64Counter("store_save_retries_total")
	if err != nil {
		return nil, err
	}
	saveLatency, err := meter.Float64Histogram("store_save_duration_ms")
	if err != nil {
		return nil, err
	}

	return &otelInstruments{
		ctx:               context.Background(),
		mutations:         mutations,
		mutationErrors:    mutationErrors,
		mutationLatencyMs: mutationLatency,
		saves:             saves,
		saveErrors:        saveErrors,
		saveRetries:       saveRetries,
		saveLatencyMs:     saveLatency,
	}, nil
}

func (o *otelInstruments) recordMutation(op string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrOperation, op), outcome(err)}
	o.mutations.Add(o.ctx, 1, metric.WithAttributes(attrs...))
	o.mutationLatencyMs.Record(o.ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		o.mutationErrors.Add(o.ctx, 1, metric.WithAttributes(attribute.String(AttrOperation, op)))
	}
}

func (o *otelInstruments) recordSave(backend string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrBackend, backend), outcome(err)}
	o.saves.Add(o.ctx, 1, metric.WithAttributes(attrs...))
	o.saveLatencyMs.Record(o.ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		o.saveErrors.Add(o.ctx, 1, metric.WithAttributes(attribute.String(AttrBackend, backend)))
	}
}

func (o *otelInstruments) recordSaveRetry(backend string) {
	if o == nil {
		return
	}
	o.saveRetries.Add(o.ctx, 1, metric.WithAttributes(attribute.String(AttrBackend, backend)))
}

func outcome(err error) attribute.KeyValue {
	if err != nil {
		return attribute.String(AttrOutcome, "error")
	}
	return attribute.String(AttrOutcome, "ok")
}
