// Package snapshots persists the player roster as JSON documents on disk.
package snapshots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/preston-bernstein/console-rpg/internal/domain/players"
)

const (
	backendName     = "json"
	documentVersion = 1
)

// rosterDocument is the on-disk shape of players.json.
type rosterDocument struct {
	Version int              `json:"version"`
	Players []players.Player `json:"players"`
}

// FileBackend stores players in {basePath}/players.json with a manifest alongside.
type FileBackend struct {
	basePath string
}

// NewFileBackend constructs a JSON backend rooted at basePath.
func NewFileBackend(basePath string) *FileBackend {
	return &FileBackend{basePath: basePath}
}

// Name identifies the backend in logs and metrics.
func (b *FileBackend) Name() string {
	return backendName
}

// BasePath exposes the backend root path (primarily for testing).
func (b *FileBackend) BasePath() string {
	if b == nil {
		return ""
	}
	return b.basePath
}

// Load reads players.json; a missing file is an empty roster.
func (b *FileBackend) Load(ctx context.Context) ([]players.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b == nil {
		return nil, errors.New("snapshot backend not configured")
	}

	var doc rosterDocument
	if err := decodeFile(PlayersPath(b.basePath), &doc); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []players.Player{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", playersFile, err)
	}
	if doc.Version > documentVersion {
		return nil, fmt.Errorf("read %s: unsupported version %d", playersFile, doc.Version)
	}
	if doc.Players == nil {
		doc.Players = []players.Player{}
	}
	return doc.Players, nil
}

// Close is a no-op; files are opened per operation.
func (b *FileBackend) Close() error {
	return nil
}

func decodeFile(path string, payload any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(payload)
}
