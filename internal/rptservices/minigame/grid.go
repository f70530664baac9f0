// Package minigame implements the board-game core driven by the Minigame
// service: a grid of squares, axis-based move validation and the three
// supported games (Açores, Bermudes, Canaries). Grounded on
// original_source/minigames-services's Grid/AxisIterator/BoardGame trio.
package minigame

import "errors"

// ErrBadDimensions is returned by NewGrid when rows are missing or ragged.
var ErrBadDimensions = errors.New("minigame: grid rows must be non-empty and of equal length")

// ErrBadCoordinates is returned whenever coordinates fall outside a grid,
// or describe a move no axis can reach.
var ErrBadCoordinates = errors.New("minigame: coordinates out of bounds or unreachable")

// ErrBadSquareState is returned when a square holds the wrong content for
// the move being attempted, or when Flip is applied to a Free square.
var ErrBadSquareState = errors.New("minigame: square isn't in the required state")

// Coordinates locates a square by 1-indexed line and column.
type Coordinates struct {
	Line   int
	Column int
}

// Square is the content of one grid cell.
type Square int

const (
	Free Square = iota
	White
	Black
)

func (s Square) String() string {
	switch s {
	case Free:
		return "FREE"
	case White:
		return "WHITE"
	case Black:
		return "BLACK"
	default:
		return "UNKNOWN"
	}
}

// Flip returns the opposing color. Fails with ErrBadSquareState for Free.
func Flip(s Square) (Square, error) {
	switch s {
	case White:
		return Black, nil
	case Black:
		return White, nil
	default:
		return Free, ErrBadSquareState
	}
}

// Grid is a rectangular board of Squares, addressed by 1-indexed
// Coordinates. The original's isInsideGrid was inverted (it returned true
// when a coordinate was OUT of bounds); IsInsideGrid here is the corrected
// 1<=line<=rows && 1<=column<=cols check.
type Grid struct {
	squares [][]Square
}

// NewGrid copies rows into a new Grid. Every row must have the same,
// non-zero length.
func NewGrid(rows [][]Square) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrBadDimensions
	}

	cols := len(rows[0])
	copied := make([][]Square, len(rows))
	for i, row := range rows {
		if len(row) != cols {
			return nil, ErrBadDimensions
		}
		copied[i] = append([]Square(nil), row...)
	}

	return &Grid{squares: copied}, nil
}

// IsInsideGrid reports whether coords addresses an existing square.
func (g *Grid) IsInsideGrid(coords Coordinates) bool {
	return coords.Line >= 1 && coords.Line <= len(g.squares) &&
		coords.Column >= 1 && coords.Column <= len(g.squares[0])
}

// At returns the square at coords.
func (g *Grid) At(coords Coordinates) (Square, error) {
	if !g.IsInsideGrid(coords) {
		return Free, ErrBadCoordinates
	}
	return g.squares[coords.Line-1][coords.Column-1], nil
}

// Set overwrites the square at coords.
func (g *Grid) Set(coords Coordinates, s Square) error {
	if !g.IsInsideGrid(coords) {
		return ErrBadCoordinates
	}
	g.squares[coords.Line-1][coords.Column-1] = s
	return nil
}
