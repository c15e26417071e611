package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds runtime configuration for the game.
type Config struct {
	Storage StorageConfig
	Game    GameConfig
	Log     LogConfig
	Metrics MetricsConfig
}

// StorageConfig selects and tunes the durable backend.
type StorageConfig struct {
	Driver       string        `env:"STORAGE_DRIVER" envDefault:"json"`
	Path         string        `env:"STORAGE_PATH"`
	SaveAttempts int           `env:"STORAGE_SAVE_ATTEMPTS" envDefault:"3"`
	SaveBackoff  time.Duration `env:"STORAGE_SAVE_BACKOFF" envDefault:"100ms"`
}

// GameConfig controls session behaviour.
type GameConfig struct {
	SeedFixture bool          `env:"SEED_FIXTURE" envDefault:"true"`
	Pause       time.Duration `env:"GAME_PAUSE" envDefault:"500ms"`
}

// LogConfig controls where and how logs are written.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
	File   string `env:"LOG_FILE"`
}

// Load reads configuration from environment variables with sensible defaults.
// Values that do not parse, or an unknown storage driver, are an error.
func Load() (Config, error) {
	var cfg Config
	if err := parseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Storage.normalize(); err != nil {
		return Config{}, err
	}
	cfg.Game.normalize()
	cfg.Metrics.normalize()
	return cfg, nil
}

func (s *StorageConfig) normalize() error {
	s.Driver = strings.ToLower(strings.TrimSpace(s.Driver))
	if s.Driver == "" {
		s.Driver = defaultDriver
	}
	switch s.Driver {
	case DriverMemory:
		s.Path = ""
	case DriverJSON:
		if s.Path == "" {
			s.Path = defaultJSONPath
		}
	case DriverSQLite:
		if s.Path == "" {
			s.Path = defaultSQLitePath
		}
	default:
		return fmt.Errorf("unknown %s %q (want %s, %s or %s)", envStorageDriver, s.Driver, DriverMemory, DriverJSON, DriverSQLite)
	}
	if s.SaveAttempts <= 0 {
		s.SaveAttempts = defaultAttempts
	}
	if s.SaveBackoff <= 0 {
		s.SaveBackoff = defaultBackoff
	}
	return nil
}

func (g *GameConfig) normalize() {
	if g.Pause < 0 {
		g.Pause = 0
	}
}
