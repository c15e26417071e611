package snapshots

import (
	"encoding/json"
	"time"
)

// now is swapped in tests.
var now = time.Now

// Manifest tracks metadata about the saved roster.
type Manifest struct {
	Version     int         `json:"version"`
	GeneratedAt time.Time   `json:"generatedAt"`
	Players     PlayersMeta `json:"players"`
}

type PlayersMeta struct {
	Count     int       `json:"count"`
	LastSaved time.Time `json:"lastSaved"`
}

func defaultManifest() Manifest {
	return Manifest{
		Version:     documentVersion,
		GeneratedAt: now().UTC(),
	}
}

// ReadManifest loads the manifest under basePath, returning a default one
// alongside the error when it is missing or unreadable.
func ReadManifest(basePath string) (Manifest, error) {
	var m Manifest
	if err := decodeFile(ManifestPath(basePath), &m); err != nil {
		return defaultManifest(), err
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest) error {
	m.GeneratedAt = now().UTC()
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(ManifestPath(basePath), data)
}
