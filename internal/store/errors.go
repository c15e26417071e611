package store

import "errors"

var (
	// ErrNotFound indicates the requested player does not exist.
	ErrNotFound = errors.New("player not found")

	// ErrDuplicate indicates a player with the same ID is already tracked.
	ErrDuplicate = errors.New("duplicate player")

	// ErrCorrupt indicates the durable state could not be trusted on load.
	ErrCorrupt = errors.New("corrupt player data")

	// ErrBackendUnavailable indicates a backend was used without being configured.
	ErrBackendUnavailable = errors.New("storage backend unavailable")
)
