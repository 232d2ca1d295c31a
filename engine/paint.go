package engine

import (
	"fmt"

	"github.com/lixenwraith/blockfall/piece"
)

// Paint sets (fill) or clears the footprint of p at rotation r anchored at (row, col).
// The footprint must lie inside the grid; anything else is a caller bug and panics.
func Paint(g *Grid, p piece.Piece, r piece.Rotation, row, col int, fill bool) {
	v := Empty
	if fill {
		v = Filled
	}
	for _, c := range p.Cells(r, row, col) {
		if !InBounds(c.Row, c.Col) {
			panic(fmt.Sprintf("engine: paint %v rot %d at (%d,%d) leaves grid at (%d,%d)",
				p, r, row, col, c.Row, c.Col))
		}
		g[c.Row][c.Col] = v
	}
}
