package input

import "github.com/lixenwraith/blockfall/engine"

// Action discriminates what a key press asks the driver to do
type Action uint8

const (
	ActionNone   Action = iota
	ActionIntent        // forward Binding.Intent to the game
	ActionQuit          // Escape, Ctrl+C
	ActionRedraw        // Ctrl+L
)

// Binding is the resolved meaning of a key
type Binding struct {
	Action Action
	Intent engine.Intent
}

func intent(i engine.Intent) Binding {
	return Binding{Action: ActionIntent, Intent: i}
}
