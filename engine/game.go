package engine

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/blockfall/piece"
)

// Spawn anchor for every new piece
const (
	SpawnRow = 0
	SpawnCol = 4
)

// Game is the falling-block simulation state machine.
// It owns the grid and the active piece, and is not safe for concurrent use:
// the driver's control goroutine is its only caller.
type Game struct {
	grid     Grid
	piece    piece.Piece
	rotation piece.Rotation
	row, col int
	over     bool
	stats    Stats
}

// New creates a game with an empty grid and an O piece at the spawn anchor
func New() *Game {
	g := &Game{
		piece:    piece.O,
		rotation: 0,
		row:      SpawnRow,
		col:      SpawnCol,
		stats:    Stats{Pieces: 1},
	}
	Paint(&g.grid, g.piece, g.rotation, g.row, g.col, true)
	return g
}

// Tick advances one step of gravity and returns false once the game is over
func (g *Game) Tick() bool {
	return g.Step().Continue()
}

// Step advances one step of gravity and reports what happened
func (g *Game) Step() Outcome {
	if g.over {
		return Outcome{Kind: StepHalted, Piece: g.piece}
	}
	g.stats.Ticks++

	if g.canDrop() {
		g.move(g.row+1, g.col, g.rotation)
		return Outcome{Kind: StepDropped, Piece: g.piece}
	}

	cleared := g.clearRows()

	next := g.piece.Next()
	if !IsFit(&g.grid, next, SpawnRow, SpawnCol, 0) {
		g.over = true
		return Outcome{Kind: StepGameOver, Cleared: cleared, Piece: g.piece}
	}

	g.piece = next
	g.rotation = 0
	g.row = SpawnRow
	g.col = SpawnCol
	g.stats.Pieces++
	Paint(&g.grid, g.piece, g.rotation, g.row, g.col, true)

	return Outcome{Kind: StepSpawned, Cleared: cleared, Piece: g.piece}
}

// Event applies a movement or rotation intent to the falling piece.
// Returns true if the piece moved; a blocked or out-of-bounds candidate is rolled back.
func (g *Game) Event(in Intent) bool {
	if g.over {
		return false
	}

	row, col, rot := g.row, g.col, g.rotation
	switch in {
	case IntentLeft:
		col--
	case IntentRight:
		col++
	case IntentClockwise:
		rot = rot.Clockwise()
	case IntentCounterClockwise:
		rot = rot.CounterClockwise()
	default:
		return false
	}

	Paint(&g.grid, g.piece, g.rotation, g.row, g.col, false)
	if !IsFit(&g.grid, g.piece, row, col, rot) {
		Paint(&g.grid, g.piece, g.rotation, g.row, g.col, true)
		return false
	}
	g.row, g.col, g.rotation = row, col, rot
	Paint(&g.grid, g.piece, g.rotation, g.row, g.col, true)
	return true
}

// canDrop tests every footprint cell against the cell below it, ignoring the piece's own cells
func (g *Game) canDrop() bool {
	cells := g.footprint()
	for _, c := range cells {
		below := c.Row + 1
		if below == Rows {
			return false
		}
		if !cells.Contains(below, c.Col) && g.grid[below][c.Col] != Empty {
			return false
		}
	}
	return true
}

// move repaints the falling piece at a new anchor and rotation
func (g *Game) move(row, col int, rot piece.Rotation) {
	Paint(&g.grid, g.piece, g.rotation, g.row, g.col, false)
	g.row, g.col, g.rotation = row, col, rot
	Paint(&g.grid, g.piece, g.rotation, g.row, g.col, true)
}

// clearRows removes every full row in the landed piece's span, top to bottom,
// each with its own shift pass
func (g *Game) clearRows() []int {
	minRow, maxRow := g.footprint().RowSpan()

	var cleared []int
	for r := minRow; r <= maxRow; r++ {
		if g.grid.RowFull(r) {
			g.grid.ShiftDown(r)
			cleared = append(cleared, r)
		}
	}
	g.stats.RowsCleared += len(cleared)
	return cleared
}

func (g *Game) footprint() piece.Footprint {
	return g.piece.Cells(g.rotation, g.row, g.col)
}

// Grid returns a copy of the playfield
func (g *Game) Grid() Grid {
	return g.grid
}

// Piece returns the active piece
func (g *Game) Piece() piece.Piece {
	return g.piece
}

// Rotation returns the active piece's rotation
func (g *Game) Rotation() piece.Rotation {
	return g.rotation
}

// Anchor returns the active piece's bounding-square origin
func (g *Game) Anchor() (row, col int) {
	return g.row, g.col
}

// Over reports whether the simulation has stopped
func (g *Game) Over() bool {
	return g.over
}

// Stats returns progress counters
func (g *Game) Stats() Stats {
	return g.stats
}

// Snapshot copies the full state for rendering and observers
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Grid:     g.grid,
		Piece:    g.piece,
		Rotation: g.rotation,
		Row:      g.row,
		Col:      g.col,
		Over:     g.over,
		Stats:    g.stats,
	}
}

// String renders a debug dump of the piece state and grid
func (g *Game) String() string {
	var sb strings.Builder
	sb.WriteString("========TETRIS========\n")
	fmt.Fprintf(&sb, "Piece: %v, Rotation: %d, ARow: %d, ACol: %d\n", g.piece, g.rotation, g.row, g.col)
	sb.WriteString(g.grid.String())
	return sb.String()
}
