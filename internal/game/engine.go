// Package game drives the interactive menu, player selection and game loop.
package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/preston-bernstein/console-rpg/internal/app/players"
	domainplayers "github.com/preston-bernstein/console-rpg/internal/domain/players"
	"github.com/preston-bernstein/console-rpg/internal/logging"
)

// UI is the input/output boundary the engine talks through.
type UI interface {
	PromptLine(ctx context.Context, msg string) (string, error)
	Confirm(ctx context.Context, msg string) (bool, error)
	Log(msg string)
	Error(msg string)
	Title(msg string)
	RenderTable(items []domainplayers.Player, title string)
	Goodbye()
}

// Engine is the state machine behind a single play session.
type Engine struct {
	dir    players.Directory
	ui     UI
	logger *slog.Logger
	pause  time.Duration

	state  State
	player *domainplayers.Player
}

// New constructs an Engine. pause is the delay between selecting a player and
// the first command prompt; zero disables it.
func New(dir players.Directory, ui UI, logger *slog.Logger, pause time.Duration) *Engine {
	return &Engine{
		dir:    dir,
		ui:     ui,
		logger: logger,
		pause:  pause,
		state:  MainMenu,
	}
}

// State reports where the engine currently is.
func (e *Engine) State() State {
	return e.state
}

// Player returns the bound player, or nil before selection.
func (e *Engine) Player() *domainplayers.Player {
	return e.player
}

// Run drives the session until it terminates. A non-nil error means the
// session ended on a fault (persistence failure or cancellation); Result is
// still populated with exit code 1 in that case.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	for {
		var (
			next State
			res  Result
			err  error
		)
		switch e.state {
		case MainMenu:
			next, res, err = e.mainMenu(ctx)
		case PlayerSetup:
			next, res, err = e.playerSetup(ctx)
		case GameLoop:
			next, res, err = e.gameLoop(ctx)
		default:
			return Result{Reason: ReasonQuit}, nil
		}

		if err != nil {
			e.state = Terminated
			if errors.Is(err, io.EOF) {
				logging.Warn(e.logger, "input closed, ending session")
				return Result{Reason: ReasonInputClosed}, nil
			}
			if ctx.Err() != nil {
				return Result{Reason: ReasonCancelled, Code: 1}, err
			}
			return Result{Reason: ReasonFault, Code: 1}, err
		}
		if next != e.state {
			logging.Debug(e.logger, "state change",
				logging.FieldState, next.String(),
			)
		}
		e.state = next
		if next == Terminated {
			return res, nil
		}
	}
}

func (e *Engine) mainMenu(ctx context.Context) (State, Result, error) {
	e.ui.Title("Console RPG")
	start, err := e.ui.Confirm(ctx, "Start a new game?")
	if err != nil {
		return Terminated, Result{}, err
	}
	if !start {
		e.ui.Goodbye()
		return Terminated, Result{Reason: ReasonDeclined}, nil
	}
	return PlayerSetup, Result{}, nil
}

func (e *Engine) playerSetup(ctx context.Context) (State, Result, error) {
	roster, err := e.dir.GetAllPlayers(ctx)
	if err != nil {
		return Terminated, Result{}, err
	}
	if len(roster) == 0 {
		e.ui.Error("No players found. Please add a player first.")
		logging.Warn(e.logger, "no players available for selection")
		return Terminated, Result{Reason: ReasonNoPlayers}, nil
	}

	e.ui.RenderTable(roster, "Available Players")
	index, err := e.selectIndex(ctx, len(roster))
	if err != nil {
		return Terminated, Result{}, err
	}

	chosen := roster[index-1].Clone()
	e.player = &chosen
	e.ui.Log(fmt.Sprintf("%s has entered the game.", chosen.Name))
	logging.Info(e.logger, "player selected",
		logging.FieldPlayerID, chosen.ID,
		logging.FieldPlayerName, chosen.Name,
	)

	if err := e.wait(ctx); err != nil {
		return Terminated, Result{}, err
	}
	return GameLoop, Result{}, nil
}

// selectIndex re-prompts until input is an integer in [1, count].
func (e *Engine) selectIndex(ctx context.Context, count int) (int, error) {
	for {
		input, err := e.ui.PromptLine(ctx, "Select a player by number:")
		if err != nil {
			return 0, err
		}
		if index, ok := parseSelection(input, count); ok {
			return index, nil
		}
		e.ui.Error("Invalid selection. Please enter a valid number.")
	}
}

func parseSelection(input string, count int) (int, bool) {
	index, err := strconv.Atoi(input)
	if err != nil || index < 1 || index > count {
		return 0, false
	}
	return index, true
}

func (e *Engine) wait(ctx context.Context) error {
	if e.pause <= 0 {
		return nil
	}
	timer := time.NewTimer(e.pause)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
