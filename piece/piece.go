package piece

import "fmt"

// Piece identifies one of the seven block shapes
type Piece uint8

// Enumeration order is the succession order
const (
	O Piece = iota
	L
	J
	T
	Z
	S
	I
)

// Count is the number of distinct pieces
const Count = 7

var pieceNames = [Count]string{"O", "L", "J", "T", "Z", "S", "I"}

// Valid reports whether p is one of the seven pieces
func (p Piece) Valid() bool {
	return p < Count
}

// Next returns the successor in the fixed cycle O, L, J, T, Z, S, I, O, ...
func (p Piece) Next() Piece {
	return (p + 1) % Count
}

func (p Piece) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Piece(%d)", uint8(p))
	}
	return pieceNames[p]
}

// MarshalText encodes the piece by its letter
func (p Piece) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid piece %d", uint8(p))
	}
	return []byte(pieceNames[p]), nil
}

// UnmarshalText decodes a piece letter
func (p *Piece) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Parse resolves a single piece letter
func Parse(s string) (Piece, error) {
	for i, name := range pieceNames {
		if name == s {
			return Piece(i), nil
		}
	}
	return 0, fmt.Errorf("unknown piece %q", s)
}

// Rotation is a clockwise quarter-turn count in [0,4)
type Rotation uint8

// RotationCount is the number of rotation states per piece
const RotationCount = 4

// Clockwise returns the rotation one quarter-turn clockwise
func (r Rotation) Clockwise() Rotation {
	return (r + 1) % RotationCount
}

// CounterClockwise returns the rotation one quarter-turn counter-clockwise
func (r Rotation) CounterClockwise() Rotation {
	return (r + RotationCount - 1) % RotationCount
}

// Valid reports whether r is in [0,4)
func (r Rotation) Valid() bool {
	return r < RotationCount
}
