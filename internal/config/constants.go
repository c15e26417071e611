package config

import "time"

const (
	envStorageDriver   = "STORAGE_DRIVER"
	envStoragePath     = "STORAGE_PATH"
	envSaveAttempts    = "STORAGE_SAVE_ATTEMPTS"
	envSaveBackoff     = "STORAGE_SAVE_BACKOFF"
	envSeedFixture     = "SEED_FIXTURE"
	envGamePause       = "GAME_PAUSE"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"
	envLogFile         = "LOG_FILE"
	envMetricsOn       = "METRICS_ENABLED"
	envMetricsPort     = "METRICS_PORT"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"
	defaultDriver      = DriverJSON
	defaultJSONPath    = "data"
	defaultSQLitePath  = "data/rpg.db"
	defaultAttempts    = 3
	defaultBackoff     = 100 * time.Millisecond
	defaultPause       = 500 * time.Millisecond
	defaultMetricsPort = "9090"
	defaultServiceName = "console-rpg"
)

// Storage drivers.
const (
	DriverMemory = "memory"
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)
