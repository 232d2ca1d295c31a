package driver

import (
	"fmt"

	"github.com/lixenwraith/blockfall/engine"
)

// Kind classifies one unit of work for the control loop
type Kind uint8

const (
	IterTick   Kind = iota // gravity step
	IterIntent             // movement or rotation from input
	IterQuit               // user quit or input closed
	IterRedraw             // repaint without touching state
)

func (k Kind) String() string {
	switch k {
	case IterTick:
		return "tick"
	case IterIntent:
		return "intent"
	case IterQuit:
		return "quit"
	case IterRedraw:
		return "redraw"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Iteration is delivered on the single ordered channel consumed by Run
type Iteration struct {
	Kind   Kind
	Intent engine.Intent
}

// Result reports why Run returned
type Result uint8

const (
	ResultNone Result = iota // Run failed or was canceled
	ResultGameOver
	ResultQuit
)

func (r Result) String() string {
	switch r {
	case ResultNone:
		return "none"
	case ResultGameOver:
		return "game over"
	case ResultQuit:
		return "quit"
	default:
		return fmt.Sprintf("Result(%d)", uint8(r))
	}
}
