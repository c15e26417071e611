package testutil

import (
	"fmt"
	"io"
	"strings"

	"github.com/preston-bernstein/console-rpg/internal/domain/players"
)

// SamplePlayer returns a minimal valid player with the provided id and name.
func SamplePlayer(id, name string) players.Player {
	return players.Player{
		ID:         id,
		Name:       name,
		Profession: "Warrior",
		Level:      1,
		HitPoints:  20,
		Equipment:  []string{"Sword", "Shield"},
	}
}

// SampleRoster returns n sample players with ids p1..pn.
func SampleRoster(n int) []players.Player {
	out := make([]players.Player, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, SamplePlayer(fmt.Sprintf("p%d", i), fmt.Sprintf("Hero %d", i)))
	}
	return out
}

// ScriptedInput returns a reader that yields each line in order, newline-terminated.
func ScriptedInput(lines ...string) io.Reader {
	if len(lines) == 0 {
		return strings.NewReader("")
	}
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}
