// Package sqlite provides a SQLite-backed roster backend.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/preston-bernstein/console-rpg/internal/domain/players"
	"github.com/preston-bernstein/console-rpg/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

const backendName = "sqlite"

// Backend persists the roster in a single players table ordered by position.
type Backend struct {
	sqlDB *sql.DB
	path  string
}

// Open opens the database at path, creating parent directories and applying
// embedded migrations.
func Open(ctx context.Context, path string) (*Backend, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Backend{sqlDB: sqlDB, path: cleanPath}, nil
}

// Name identifies the backend in logs and metrics.
func (b *Backend) Name() string {
	return backendName
}

// Path returns the database file path.
func (b *Backend) Path() string {
	if b == nil {
		return ""
	}
	return b.path
}

// Load returns all players in insertion order.
func (b *Backend) Load(ctx context.Context) ([]players.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b == nil || b.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := b.sqlDB.QueryContext(ctx,
		`SELECT id, name, profession, level, hit_points, equipment
		   FROM players
		  ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	defer rows.Close()

	out := []players.Player{}
	for rows.Next() {
		var (
			p         players.Player
			equipment string
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Profession, &p.Level, &p.HitPoints, &equipment); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		if err := json.Unmarshal([]byte(equipment), &p.Equipment); err != nil {
			return nil, fmt.Errorf("decode equipment for %s: %w", p.ID, err)
		}
		if p.Equipment == nil {
			p.Equipment = []string{}
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate players: %w", err)
	}
	return out, nil
}

// Save replaces the stored roster with items inside one transaction.
func (b *Backend) Save(ctx context.Context, items []players.Player) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b == nil || b.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	tx, err := b.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM players`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear players: %w", err)
	}
	for i, p := range items {
		equipment := p.Equipment
		if equipment == nil {
			equipment = []string{}
		}
		encoded, err := json.Marshal(equipment)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("encode equipment for %s: %w", p.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO players (position, id, name, profession, level, hit_points, equipment)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			i, p.ID, p.Name, p.Profession, p.Level, p.HitPoints, string(encoded),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert player %s: %w", p.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Close closes the SQLite handle.
func (b *Backend) Close() error {
	if b == nil || b.sqlDB == nil {
		return nil
	}
	return b.sqlDB.Close()
}
