package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrOperation = "operation"
	AttrBackend   = "backend"
	AttrOutcome   = "outcome"
)

// Operation names recorded for directory mutations.
const (
	OpAddPlayer     = "add_player"
	OpLevelUpPlayer = "level_up_player"
)
