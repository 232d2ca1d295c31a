package piece

import "fmt"

// Offset is a (row, col) displacement from a piece anchor
type Offset struct {
	Row, Col int
}

// Footprint is the four occupied cells of one rotation state
type Footprint [4]Offset

// catalog holds every rotation state, indexed by piece ordinal then rotation.
// Rotations run 0, 90, 180, 270 degrees clockwise within the piece's bounding square.
var catalog = [Count][RotationCount]Footprint{
	// ##
	// ##
	O: {
		{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	},
	// #        ##
	// #   ###   #    #
	// ##  #     #  ###
	L: {
		{{0, 0}, {1, 0}, {2, 0}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 0}},
		{{0, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{2, 0}, {2, 1}, {2, 2}, {1, 1}},
	},
	//  #       ##
	//  #  #    #   ###
	// ##  ###  #     #
	J: {
		{{2, 0}, {2, 1}, {0, 1}, {1, 1}},
		{{1, 0}, {2, 0}, {2, 1}, {2, 2}},
		{{0, 0}, {1, 0}, {2, 0}, {0, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 2}},
	},
	// ###   #   #   #
	//  #   ##  ###  ##
	//       #       #
	T: {
		{{0, 0}, {0, 1}, {0, 2}, {1, 1}},
		{{1, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {0, 1}, {1, 1}, {1, 2}},
		{{0, 0}, {1, 0}, {2, 0}, {1, 1}},
	},
	// ##     #
	//  ##   ##
	//       #
	Z: {
		{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
		{{1, 0}, {0, 1}, {1, 1}, {2, 0}},
		{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
		{{1, 0}, {0, 1}, {1, 1}, {2, 0}},
	},
	//  ##  #
	// ##   ##
	//       #
	S: {
		{{1, 0}, {0, 1}, {1, 1}, {0, 2}},
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
		{{1, 0}, {0, 1}, {1, 1}, {0, 2}},
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
	},
	// #
	// #  ####
	// #
	// #
	I: {
		{{0, 0}, {1, 0}, {2, 0}, {3, 0}},
		{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
		{{0, 0}, {1, 0}, {2, 0}, {3, 0}},
		{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
	},
}

// Offsets returns the footprint of p at rotation r.
// Panics on an invalid piece or rotation, which is a caller bug.
func (p Piece) Offsets(r Rotation) Footprint {
	if !p.Valid() || !r.Valid() {
		panic(fmt.Sprintf("piece: no offsets for %v rotation %d", p, r))
	}
	return catalog[p][r]
}

// Cells returns the absolute grid cells of p at rotation r anchored at (row, col)
func (p Piece) Cells(r Rotation, row, col int) Footprint {
	cells := p.Offsets(r)
	for i := range cells {
		cells[i].Row += row
		cells[i].Col += col
	}
	return cells
}

// Contains reports whether the footprint includes the given cell
func (f Footprint) Contains(row, col int) bool {
	for _, c := range f {
		if c.Row == row && c.Col == col {
			return true
		}
	}
	return false
}

// RowSpan returns the lowest and highest row index in the footprint
func (f Footprint) RowSpan() (minRow, maxRow int) {
	minRow, maxRow = f[0].Row, f[0].Row
	for _, c := range f[1:] {
		minRow = min(minRow, c.Row)
		maxRow = max(maxRow, c.Row)
	}
	return minRow, maxRow
}
