// Package fixture supplies a deterministic starter roster.
package fixture

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/console-rpg/internal/domain/players"
	"github.com/preston-bernstein/console-rpg/internal/logging"
)

// Provider returns a static set of players useful for local play and bootstrapping.
type Provider struct{}

// New creates a fixture provider.
func New() *Provider {
	return &Provider{}
}

// FetchPlayers returns the starter roster without identities.
func (p *Provider) FetchPlayers(ctx context.Context) ([]players.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []players.Player{
		players.New("Aria", "Ranger", 2, 24, []string{"Longbow", "Leather Armor"}),
		players.New("Borin", "Warrior", 3, 38, []string{"Battle Axe", "Chain Mail", "Shield"}),
		players.New("Cael", "Mage", 1, 12, []string{"Staff", "Robe"}),
	}, nil
}

// Target is the slice of the player store seeding needs.
type Target interface {
	GetAll(ctx context.Context) ([]players.Player, error)
	Add(ctx context.Context, p players.Player) (players.Player, error)
}

// Seed adds the starter roster when target is empty and reports how many
// players were added. A populated target is left untouched.
func (p *Provider) Seed(ctx context.Context, target Target, logger *slog.Logger) (int, error) {
	existing, err := target.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed roster: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	roster, err := p.FetchPlayers(ctx)
	if err != nil {
		return 0, err
	}
	for i, candidate := range roster {
		if _, err := target.Add(ctx, candidate); err != nil {
			return i, fmt.Errorf("seed roster: %w", err)
		}
	}
	logging.Info(logger, "seeded starter roster", logging.FieldCount, len(roster))
	return len(roster), nil
}
