package engine

import "github.com/lixenwraith/blockfall/piece"

// Snapshot is an immutable copy of the simulation for renderers and observers
type Snapshot struct {
	Grid     Grid           `json:"grid"`
	Piece    piece.Piece    `json:"piece"`
	Rotation piece.Rotation `json:"rotation"`
	Row      int            `json:"row"`
	Col      int            `json:"col"`
	Over     bool           `json:"over"`
	Stats    Stats          `json:"stats"`
}

// Stats counts simulation progress
type Stats struct {
	Ticks       uint64 `json:"ticks"`
	Pieces      int    `json:"pieces"`
	RowsCleared int    `json:"rows_cleared"`
}
