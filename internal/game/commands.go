package game

import (
	"context"
	"fmt"
	"strconv"

	domainplayers "github.com/preston-bernstein/console-rpg/internal/domain/players"
	"github.com/preston-bernstein/console-rpg/internal/logging"
)

const (
	cmdLevelUp   = "1"
	cmdAddPlayer = "2"
	cmdList      = "3"
	cmdQuit      = "0"
)

var menu = []string{
	"1. Level Up Player",
	"2. Add Player",
	"3. List All Players",
	"0. Quit",
}

// gameLoop handles exactly one command and reports the next state.
func (e *Engine) gameLoop(ctx context.Context) (State, Result, error) {
	for _, line := range menu {
		e.ui.Log(line)
	}
	input, err := e.ui.PromptLine(ctx, "Choose an action:")
	if err != nil {
		return Terminated, Result{}, err
	}
	logging.Debug(e.logger, "command received", logging.FieldCommand, input)

	switch input {
	case cmdLevelUp:
		e.ui.Log("Leveling up player...")
		if err := e.dir.LevelUpPlayer(ctx, e.player); err != nil {
			return Terminated, Result{}, err
		}
	case cmdAddPlayer:
		candidate, ok, err := e.promptNewPlayer(ctx)
		if err != nil {
			return Terminated, Result{}, err
		}
		if ok {
			stored, err := e.dir.AddPlayer(ctx, candidate)
			if err != nil {
				return Terminated, Result{}, err
			}
			e.ui.Log(stored.Name + " was added.")
		}
	case cmdList:
		if err := e.listAll(ctx); err != nil {
			return Terminated, Result{}, err
		}
	case cmdQuit:
		e.ui.Goodbye()
		return Terminated, Result{Reason: ReasonQuit}, nil
	default:
		e.ui.Error("Invalid selection.")
	}
	return GameLoop, Result{}, nil
}

// promptNewPlayer collects the fields for a new player. ok is false when the
// numeric fields do not parse or the result breaks a player invariant.
func (e *Engine) promptNewPlayer(ctx context.Context) (domainplayers.Player, bool, error) {
	var fields [5]string
	prompts := [5]string{
		"Enter player name:",
		"Enter profession:",
		"Enter level:",
		"Enter hit points:",
		"Enter equipment (comma or | separated):",
	}
	for i, prompt := range prompts {
		value, err := e.ui.PromptLine(ctx, prompt)
		if err != nil {
			return domainplayers.Player{}, false, err
		}
		fields[i] = value
	}

	level, levelErr := strconv.Atoi(fields[2])
	hitPoints, hpErr := strconv.Atoi(fields[3])
	if levelErr != nil || hpErr != nil {
		e.ui.Error("Invalid level or hit points. Player not added.")
		return domainplayers.Player{}, false, nil
	}

	candidate := domainplayers.New(fields[0], fields[1], level, hitPoints, domainplayers.ParseEquipment(fields[4]))
	if err := domainplayers.Validate(candidate); err != nil {
		e.ui.Error(fmt.Sprintf("%s. Player not added.", err))
		logging.Warn(e.logger, "rejected new player", "reason", err.Error())
		return domainplayers.Player{}, false, nil
	}
	return candidate, true, nil
}

// listAll shows the roster. An empty roster is reported but, unlike player
// selection, does not end the session.
func (e *Engine) listAll(ctx context.Context) error {
	roster, err := e.dir.GetAllPlayers(ctx)
	if err != nil {
		return err
	}
	if len(roster) == 0 {
		e.ui.Error("No players found.")
		return nil
	}
	e.ui.RenderTable(roster, "All Players")
	_, err = e.ui.PromptLine(ctx, "Press Enter to return to the menu...")
	return err
}
