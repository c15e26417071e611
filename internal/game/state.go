package game

// State is a node of the session state machine.
type State int

const (
	MainMenu State = iota
	PlayerSetup
	GameLoop
	Terminated
)

func (s State) String() string {
	switch s {
	case MainMenu:
		return "main_menu"
	case PlayerSetup:
		return "player_setup"
	case GameLoop:
		return "game_loop"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Reason explains why a session ended.
type Reason string

const (
	ReasonQuit        Reason = "quit"
	ReasonDeclined    Reason = "declined"
	ReasonNoPlayers   Reason = "no_players"
	ReasonInputClosed Reason = "input_closed"
	ReasonCancelled   Reason = "cancelled"
	ReasonFault       Reason = "fault"
)

// Result is the single termination value handed back to the caller.
type Result struct {
	Reason Reason
	Code   int
}
