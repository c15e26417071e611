package console

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/preston-bernstein/console-rpg/internal/domain/players"
)

// RenderTable prints players as a numbered table under title. Numbers are
// 1-based so they match selection prompts.
func (c *Console) RenderTable(items []players.Player, title string) {
	fmt.Fprintln(c.out, c.paint(ansiGreen, title))

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tName\tProfession\tLevel\tHP\tEquipment")
	for i, p := range items {
		equipment := strings.Join(p.Equipment, ", ")
		if equipment == "" {
			equipment = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%s\n", i+1, p.Name, p.Profession, p.Level, p.HitPoints, equipment)
	}
	_ = tw.Flush()
}
