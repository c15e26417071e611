package snapshots

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/preston-bernstein/console-rpg/internal/domain/players"
)

// Save writes the full roster to players.json via a temp file and rename, then
// refreshes the manifest. Identical content is not rewritten.
func (b *FileBackend) Save(ctx context.Context, items []players.Player) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b == nil {
		return errors.New("snapshot backend not configured")
	}
	if items == nil {
		items = []players.Player{}
	}

	target := PlayersPath(b.basePath)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(rosterDocument{Version: documentVersion, Players: items}, "", "  ")
	if err != nil {
		return err
	}

	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return b.updateManifest(len(items))
	}

	if err := writeAtomic(target, data); err != nil {
		return err
	}
	return b.updateManifest(len(items))
}

func (b *FileBackend) updateManifest(count int) error {
	m, _ := ReadManifest(b.basePath)
	m.Players.Count = count
	m.Players.LastSaved = now().UTC()
	return writeManifest(b.basePath, m)
}

func writeAtomic(target string, data []byte) error {
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}
