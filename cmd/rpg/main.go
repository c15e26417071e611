package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/preston-bernstein/console-rpg/internal/config"
	"github.com/preston-bernstein/console-rpg/internal/logging"
	"github.com/preston-bernstein/console-rpg/internal/runner"
)

const (
	appName    = "console-rpg"
	appVersion = "dev"
)

func main() {
	os.Exit(run())
}

func run() int {
	if os.Getenv("SKIP_GAME_RUN") == "1" {
		return 0
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	logOut, closeLog, err := openLogOutput(cfg.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file: %v\n", err)
		return 1
	}
	defer closeLog()

	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: appName,
		Version: appVersion,
		Writer:  logOut,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r, err := runner.New(ctx, cfg, logger, os.Stdin, os.Stdout)
	if err != nil {
		logging.Error(logger, "startup failed", err)
		return 1
	}
	return r.Run(ctx)
}

// openLogOutput returns stderr when path is empty, otherwise an append-only
// file so logs never interleave with prompts.
func openLogOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stderr, func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
