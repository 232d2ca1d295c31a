package engine

import "strings"

// Grid dimensions
const (
	Rows = 20
	Cols = 10
)

// Cell values
const (
	Empty  uint8 = 0
	Filled uint8 = 1
)

// Grid is the fixed playfield, row 0 at the top
type Grid [Rows][Cols]uint8

// InBounds reports whether (row, col) addresses a grid cell
func InBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

// Filled reports whether the cell is occupied; out-of-bounds cells are never filled
func (g *Grid) Filled(row, col int) bool {
	return InBounds(row, col) && g[row][col] != Empty
}

// RowFull reports whether the occupancy sum of the row equals the column count
func (g *Grid) RowFull(row int) bool {
	sum := 0
	for _, v := range g[row] {
		sum += int(v)
	}
	return sum == Cols
}

// ShiftDown removes row by copying every row above it one step down and clearing row 0
func (g *Grid) ShiftDown(row int) {
	for r := row; r >= 1; r-- {
		g[r] = g[r-1]
	}
	g[0] = [Cols]uint8{}
}

// Occupied counts filled cells
func (g *Grid) Occupied() int {
	n := 0
	for r := range g {
		for c := range g[r] {
			if g[r][c] != Empty {
				n++
			}
		}
	}
	return n
}

// String renders one line of digits per row
func (g Grid) String() string {
	var sb strings.Builder
	sb.Grow(Rows * (Cols + 1))
	for r := range g {
		for c := range g[r] {
			sb.WriteByte('0' + g[r][c])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
