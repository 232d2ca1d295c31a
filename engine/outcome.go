package engine

import (
	"fmt"

	"github.com/lixenwraith/blockfall/piece"
)

// StepKind classifies what a single tick did
type StepKind uint8

const (
	StepDropped  StepKind = iota // piece moved down one row
	StepSpawned                  // piece landed, rows cleared, successor spawned
	StepGameOver                 // piece landed and the successor could not spawn
	StepHalted                   // tick on an already stopped simulation
)

func (k StepKind) String() string {
	switch k {
	case StepDropped:
		return "dropped"
	case StepSpawned:
		return "spawned"
	case StepGameOver:
		return "game_over"
	case StepHalted:
		return "halted"
	default:
		return fmt.Sprintf("StepKind(%d)", uint8(k))
	}
}

// MarshalText encodes the kind by name
func (k StepKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Outcome reports the effect of one tick
type Outcome struct {
	Kind StepKind `json:"step"`
	// Cleared lists removed row indices in processing order, only on landing
	Cleared []int `json:"cleared"`
	// Piece is the active piece after the step
	Piece piece.Piece `json:"piece"`
}

// Continue reports whether the simulation may keep running
func (o Outcome) Continue() bool {
	return o.Kind == StepDropped || o.Kind == StepSpawned
}

// Landed reports whether the tick locked the falling piece
func (o Outcome) Landed() bool {
	return o.Kind == StepSpawned || o.Kind == StepGameOver
}
