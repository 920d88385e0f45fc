package game

import "fmt"

// Move is an intended action: drop a piece of the given shape into the
// given column. The mover's color is implied by whose turn it is.
type Move struct {
	Col   int
	Shape Shape
}

// NoMove is the "unable or unwilling to act" sentinel, returned by
// decision makers on cancellation and by searches of terminal
// positions.
var NoMove = Move{Col: -1}

// IsNone reports whether m is the NoMove sentinel.
func (m Move) IsNone() bool {
	return m.Col < 0
}

func (m Move) String() string {
	if m.IsNone() {
		return "(no move)"
	}
	return fmt.Sprintf("%s@%d", m.Shape, m.Col)
}
