// Package game encapsulates the rules of Quatrain: a two-player
// gravity-drop board game in which every piece carries a color and a
// shape, each in limited per-player supply, and a run of pieces
// sharing either attribute wins. A Game doesn't care how it is played;
// AI players, human players, etc. live outside of this package.
package game

// Color identifies a player and the color of their pieces. The zero
// value marks an empty cell.
type Color uint8

const (
	NoColor Color = iota
	Red
	Yellow
)

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Yellow:
		return "yellow"
	}
	return "none"
}

// Other returns the opposing color.
func (c Color) Other() Color {
	switch c {
	case Red:
		return Yellow
	case Yellow:
		return Red
	}
	return NoColor
}

// Shape is the second, color-independent attribute of a piece.
type Shape uint8

const (
	Round Shape = iota
	Square
)

// Shapes lists all shapes in the fixed enumeration order used
// everywhere moves are generated.
var Shapes = [2]Shape{Round, Square}

func (s Shape) String() string {
	if s == Square {
		return "square"
	}
	return "round"
}

// Other returns the opposite shape.
func (s Shape) Other() Shape {
	if s == Square {
		return Round
	}
	return Square
}

// FavoredShape maps a color to the shape it is associated with for
// shape-alignment purposes: red favors round, yellow favors square.
func FavoredShape(c Color) Shape {
	if c == Yellow {
		return Square
	}
	return Round
}

// Piece is an immutable (color, shape) pair. The zero value, having
// NoColor, represents an empty cell.
type Piece struct {
	Color Color
	Shape Shape
}

// Empty reports whether p marks an unoccupied cell.
func (p Piece) Empty() bool {
	return p.Color == NoColor
}

// Rune returns a single-rune rendering of the piece.
func (p Piece) Rune() rune {
	switch {
	case p.Color == Red && p.Shape == Round:
		return '●'
	case p.Color == Red && p.Shape == Square:
		return '■'
	case p.Color == Yellow && p.Shape == Round:
		return '○'
	case p.Color == Yellow && p.Shape == Square:
		return '□'
	}
	return '.'
}
