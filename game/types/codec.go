package types

import "math"

// Codec converts between lattice indices and board positions.
type Codec struct {
	Board Board
}

// NewCodec returns a codec for the given board.
func NewCodec(b Board) Codec {
	return Codec{Board: b}
}

// ToPosition maps lattice indices to a board position.
func (c Codec) ToPosition(gx, gy int) Position {
	return Position{float32(gx) * c.Board.Step, float32(gy) * c.Board.Step, 0}
}

// ToGrid maps a board position to the nearest lattice indices.
func (c Codec) ToGrid(p Position) (int, int) {
	gx := math.Round(float64(p.X() / c.Board.Step))
	gy := math.Round(float64(p.Y() / c.Board.Step))
	return int(gx), int(gy)
}

// Wrap snaps a coordinate that reached one bound onto the opposite bound.
// Overshoot is not carried over.
func (c Codec) Wrap(v float32) float32 {
	half := c.Board.HalfExtent
	if v >= half-Epsilon {
		return -half
	}
	if v <= -half+Epsilon {
		return half
	}
	return v
}

// Move translates p one step along d and wraps both axes.
func (c Codec) Move(p Position, d Direction) Position {
	if !d.Moving() {
		return p
	}
	dx, dy := d.Delta()
	x, y := p.X(), p.Y()
	if dx != 0 {
		x = c.Wrap(x + dx*c.Board.Step)
	}
	if dy != 0 {
		y = c.Wrap(y + dy*c.Board.Step)
	}
	return Position{x, y, p.Z()}
}

// Equal compares two positions on x and y within Epsilon.
func Equal(a, b Position) bool {
	return abs32(a.X()-b.X()) < Epsilon && abs32(a.Y()-b.Y()) < Epsilon
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
