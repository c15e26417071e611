package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected defaults to load, got %v", err)
	}

	if cfg.Storage.Driver != DriverJSON || cfg.Storage.Path != defaultJSONPath {
		t.Fatalf("expected json storage at %s, got %+v", defaultJSONPath, cfg.Storage)
	}
	if cfg.Storage.SaveAttempts != defaultAttempts || cfg.Storage.SaveBackoff != defaultBackoff {
		t.Fatalf("unexpected save retry defaults %+v", cfg.Storage)
	}
	if !cfg.Game.SeedFixture || cfg.Game.Pause != defaultPause {
		t.Fatalf("unexpected game defaults %+v", cfg.Game)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" || cfg.Log.File != "" {
		t.Fatalf("unexpected log defaults %+v", cfg.Log)
	}
	if cfg.Metrics.Enabled {
		t.Fatalf("expected metrics disabled by default")
	}
	if cfg.Metrics.Port != defaultMetricsPort || cfg.Metrics.ServiceName != defaultServiceName || !cfg.Metrics.OtlpInsecure {
		t.Fatalf("unexpected metrics defaults %+v", cfg.Metrics)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envStorageDriver, "SQLite")
	t.Setenv(envStoragePath, "/tmp/game.db")
	t.Setenv(envSaveAttempts, "5")
	t.Setenv(envSaveBackoff, "1s")
	t.Setenv(envSeedFixture, "false")
	t.Setenv(envGamePause, "0s")
	t.Setenv(envLogLevel, "debug")
	t.Setenv(envLogFormat, "json")
	t.Setenv(envLogFile, "logs/rpg.log")
	t.Setenv(envMetricsOn, "true")
	t.Setenv(envMetricsPort, "9999")
	t.Setenv(envOtelEndpoint, "localhost:4318")
	t.Setenv(envOtelService, "rpg-dev")
	t.Setenv(envOtelInsecure, "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected overrides to load, got %v", err)
	}

	if cfg.Storage.Driver != DriverSQLite || cfg.Storage.Path != "/tmp/game.db" {
		t.Fatalf("unexpected storage %+v", cfg.Storage)
	}
	if cfg.Storage.SaveAttempts != 5 || cfg.Storage.SaveBackoff != time.Second {
		t.Fatalf("unexpected retry settings %+v", cfg.Storage)
	}
	if cfg.Game.SeedFixture || cfg.Game.Pause != 0 {
		t.Fatalf("unexpected game settings %+v", cfg.Game)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" || cfg.Log.File != "logs/rpg.log" {
		t.Fatalf("unexpected log settings %+v", cfg.Log)
	}
	m := cfg.Metrics
	if !m.Enabled || m.Port != "9999" || m.OtlpEndpoint != "localhost:4318" || m.ServiceName != "rpg-dev" || m.OtlpInsecure {
		t.Fatalf("unexpected metrics settings %+v", m)
	}
}

func TestLoadSQLiteDefaultPath(t *testing.T) {
	t.Setenv(envStorageDriver, DriverSQLite)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.Path != defaultSQLitePath {
		t.Fatalf("expected sqlite default path, got %s", cfg.Storage.Path)
	}
}

func TestLoadMemoryDriverClearsPath(t *testing.T) {
	t.Setenv(envStorageDriver, DriverMemory)
	t.Setenv(envStoragePath, "ignored")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.Path != "" {
		t.Fatalf("expected empty path for memory driver, got %s", cfg.Storage.Path)
	}
}

func TestLoadUnknownDriverFails(t *testing.T) {
	t.Setenv(envStorageDriver, "postgres")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestLoadInvalidDurationFails(t *testing.T) {
	t.Setenv(envSaveBackoff, "not-a-duration")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestLoadNonPositiveValuesFallBack(t *testing.T) {
	t.Setenv(envSaveAttempts, "0")
	t.Setenv(envSaveBackoff, "-1s")
	t.Setenv(envGamePause, "-5ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.SaveAttempts != defaultAttempts || cfg.Storage.SaveBackoff != defaultBackoff {
		t.Fatalf("expected retry defaults on non-positive values, got %+v", cfg.Storage)
	}
	if cfg.Game.Pause != 0 {
		t.Fatalf("expected negative pause clamped to zero, got %s", cfg.Game.Pause)
	}
}
