// Package game implements a grid-based snake simulation: a session
// state machine advanced by fixed-interval ticks, with directional
// input, random food placement, collision detection and scoring.
// The package is UI-agnostic; rendering, audio and raw input live in
// external collaborators that read snapshots and call SetDirection.
package game

import "fmt"

// Cell is one square of the board, addressed by row and column.
// Row 0 is the top edge, Col 0 the left edge.
type Cell struct {
	Row int
	Col int
}

// String returns a compact "(row,col)" form, used in logs and tests.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Step returns the neighboring cell one unit away in direction d.
func (c Cell) Step(d Direction) Cell {
	dr, dc := d.Delta()
	return Cell{Row: c.Row + dr, Col: c.Col + dc}
}

// Direction is one of the four orthogonal movement directions.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Delta returns the (row, col) offset of a single step in d.
func (d Direction) Delta() (dr, dc int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	default:
		return 0, 0
	}
}

// Opposite returns the 180-degree reversal of d.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return d
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Grid fixes the board dimensions and provides bounds checks and the
// canonical cell key used for occupied-set membership.
type Grid struct {
	Rows int
	Cols int
}

// InBounds reports whether c lies on the board.
func (g Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.Rows && c.Col >= 0 && c.Col < g.Cols
}

// Key maps an in-bounds cell to a unique integer. Distinct valid
// cells never share a key (row-major index).
func (g Grid) Key(c Cell) int {
	return c.Row*g.Cols + c.Col
}
