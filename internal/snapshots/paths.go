package snapshots

import "path/filepath"

const (
	playersFile  = "players.json"
	manifestFile = "manifest.json"
)

// PlayersPath builds the path to the players document under basePath.
func PlayersPath(basePath string) string {
	return filepath.Join(basePath, playersFile)
}

// ManifestPath builds the path to the manifest under basePath.
func ManifestPath(basePath string) string {
	return filepath.Join(basePath, manifestFile)
}
