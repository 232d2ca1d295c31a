package engine

import (
	"fmt"

	"github.com/lixenwraith/blockfall/piece"
)

// Fit is the result of a placement check
type Fit uint8

const (
	Fits        Fit = iota // every footprint cell is in bounds and empty
	Blocked                // in bounds, but some footprint cell is occupied
	OutOfBounds            // some footprint cell lies outside the grid
)

func (f Fit) String() string {
	switch f {
	case Fits:
		return "fits"
	case Blocked:
		return "blocked"
	case OutOfBounds:
		return "out_of_bounds"
	default:
		return fmt.Sprintf("Fit(%d)", uint8(f))
	}
}

// Check tests p at rotation r anchored at (row, col) against the grid.
// Bounds are checked for all four cells before occupancy.
func Check(g *Grid, p piece.Piece, row, col int, r piece.Rotation) Fit {
	cells := p.Cells(r, row, col)
	for _, c := range cells {
		if !InBounds(c.Row, c.Col) {
			return OutOfBounds
		}
	}
	for _, c := range cells {
		if g[c.Row][c.Col] != Empty {
			return Blocked
		}
	}
	return Fits
}

// IsFit reports whether the placement is in bounds and overlaps nothing
func IsFit(g *Grid, p piece.Piece, row, col int, r piece.Rotation) bool {
	return Check(g, p, row, col, r) == Fits
}
