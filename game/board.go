package game

import (
	"errors"
	"fmt"
	"strings"
)

// Outcome is the terminal status of a board.
type Outcome uint8

const (
	Playing Outcome = iota
	RedWins
	YellowWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case RedWins:
		return "red wins"
	case YellowWins:
		return "yellow wins"
	case Draw:
		return "draw"
	}
	return "playing"
}

// Winner returns the winning color, or NoColor if o is not a win.
func (o Outcome) Winner() Color {
	switch o {
	case RedWins:
		return Red
	case YellowWins:
		return Yellow
	}
	return NoColor
}

// WinOutcome returns the Outcome in which c is the winner.
func WinOutcome(c Color) Outcome {
	if c == Yellow {
		return YellowWins
	}
	return RedWins
}

// CellRef addresses one board cell. Row 0 is the bottom row.
type CellRef struct {
	Row, Col int
}

var (
	ErrBadColumn  = errors.New("column out of range")
	ErrColumnFull = errors.New("column is full")
	ErrNoSupply   = errors.New("no pieces of that shape remain")
)

type placement struct {
	row, col int
	piece    Piece
}

// Board is the shared game state: the grid, the remaining piece supply
// per (color, shape), and the side to move. It is mutated in place by
// PlayMove and restored by UnplayLastMove; undo follows a strict LIFO
// discipline (only the most recent move may be undone), which is what
// lets a search explore and backtrack on the same Board without
// copying it per branch.
type Board struct {
	rows, cols int
	runLength  int
	grid       []Piece
	supply     [3][2]int
	onTurn     Color
	history    []placement
	filled     int
}

// NewBoard creates an empty board. supply is the per-(player, shape)
// piece allotment; red moves first.
func NewBoard(rows, cols, runLength, supply int) (*Board, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("bad dimensions %dx%d", rows, cols)
	}
	if runLength < 2 {
		return nil, fmt.Errorf("run length %d too short", runLength)
	}
	if runLength > rows && runLength > cols {
		return nil, fmt.Errorf("run length %d does not fit a %dx%d board", runLength, rows, cols)
	}
	if supply < 1 {
		return nil, fmt.Errorf("bad piece supply %d", supply)
	}
	b := &Board{
		rows:      rows,
		cols:      cols,
		runLength: runLength,
		grid:      make([]Piece, rows*cols),
		onTurn:    Red,
		history:   make([]placement, 0, rows*cols),
	}
	for _, c := range []Color{Red, Yellow} {
		for _, s := range Shapes {
			b.supply[c][s] = supply
		}
	}
	return b, nil
}

// NewDefaultBoard creates the standard 6x7 board with run length 4 and
// eleven pieces of each shape per player.
func NewDefaultBoard() *Board {
	b, err := NewBoard(DefaultRows, DefaultCols, DefaultRunLength, DefaultSupply)
	if err != nil {
		panic(err)
	}
	return b
}

const (
	DefaultRows      = 6
	DefaultCols      = 7
	DefaultRunLength = 4
	DefaultSupply    = 11
)

func (b *Board) Rows() int      { return b.rows }
func (b *Board) Cols() int      { return b.cols }
func (b *Board) RunLength() int { return b.runLength }

// OnTurn returns the side to move.
func (b *Board) OnTurn() Color { return b.onTurn }

// PieceCount returns the remaining supply of the given shape for the
// given player.
func (b *Board) PieceCount(c Color, s Shape) int {
	return b.supply[c][s]
}

// ColumnFull reports whether col has no empty cells left.
func (b *Board) ColumnFull(col int) bool {
	if col < 0 || col >= b.cols {
		return true
	}
	return !b.grid[(b.rows-1)*b.cols+col].Empty()
}

// CellAt returns the piece at (row, col) and whether the cell is
// occupied. Out-of-range coordinates read as empty.
func (b *Board) CellAt(row, col int) (Piece, bool) {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return Piece{}, false
	}
	p := b.grid[row*b.cols+col]
	return p, !p.Empty()
}

// PlayMove drops a piece of m.Shape into column m.Col for the side to
// move and returns the row it lands in. Placement is gravity-based:
// the piece always lands in the lowest empty cell. The move is
// rejected if the column is full or the mover's supply of the shape is
// exhausted; a conforming caller never offers such a move.
func (b *Board) PlayMove(m Move) (int, error) {
	if m.Col < 0 || m.Col >= b.cols {
		return -1, fmt.Errorf("%w: %d", ErrBadColumn, m.Col)
	}
	if b.supply[b.onTurn][m.Shape] == 0 {
		return -1, fmt.Errorf("%w: %s %s", ErrNoSupply, b.onTurn, m.Shape)
	}
	for row := 0; row < b.rows; row++ {
		if b.grid[row*b.cols+m.Col].Empty() {
			b.grid[row*b.cols+m.Col] = Piece{Color: b.onTurn, Shape: m.Shape}
			b.supply[b.onTurn][m.Shape]--
			b.history = append(b.history, placement{row: row, col: m.Col, piece: Piece{Color: b.onTurn, Shape: m.Shape}})
			b.filled++
			b.onTurn = b.onTurn.Other()
			return row, nil
		}
	}
	return -1, fmt.Errorf("%w: %d", ErrColumnFull, m.Col)
}

// UnplayLastMove reverses exactly the most recently applied move,
// restoring the cell, the mover's supply and the turn. It is a no-op
// on a board with no history.
func (b *Board) UnplayLastMove() {
	if len(b.history) == 0 {
		return
	}
	last := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	b.grid[last.row*b.cols+last.col] = Piece{}
	b.supply[last.piece.Color][last.piece.Shape]++
	b.filled--
	b.onTurn = last.piece.Color
}

// LastMover returns the color that made the most recent move, or
// NoColor on a virgin board.
func (b *Board) LastMover() Color {
	if len(b.history) == 0 {
		return NoColor
	}
	return b.history[len(b.history)-1].piece.Color
}

var runDirections = [4]CellRef{
	{Row: 0, Col: 1},  // along a row
	{Row: 1, Col: 0},  // up a column
	{Row: 1, Col: 1},  // diagonal up-right
	{Row: 1, Col: -1}, // diagonal up-left
}

// findRun scans the whole grid for a run of runLength occupied cells
// that all share a color or all share a shape, returning the first one
// found in scan order.
func (b *Board) findRun() []CellRef {
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.cols; col++ {
			first := b.grid[row*b.cols+col]
			if first.Empty() {
				continue
			}
			for _, dir := range runDirections {
				endRow := row + dir.Row*(b.runLength-1)
				endCol := col + dir.Col*(b.runLength-1)
				if endRow >= b.rows || endCol < 0 || endCol >= b.cols {
					continue
				}
				sameColor, sameShape := true, true
				for i := 1; i < b.runLength; i++ {
					p := b.grid[(row+dir.Row*i)*b.cols+(col+dir.Col*i)]
					if p.Empty() {
						sameColor, sameShape = false, false
						break
					}
					sameColor = sameColor && p.Color == first.Color
					sameShape = sameShape && p.Shape == first.Shape
				}
				if sameColor || sameShape {
					run := make([]CellRef, b.runLength)
					for i := range run {
						run[i] = CellRef{Row: row + dir.Row*i, Col: col + dir.Col*i}
					}
					return run
				}
			}
		}
	}
	return nil
}

// Outcome reports the terminal status of the board. A winning run
// belongs to the player who completed it, i.e. the last mover: the
// board is checked after every applied move, so a run can only ever
// have been created by the most recent placement. When the side to
// move has no legal move left (every column full, or its whole supply
// spent) and no run exists, the game is a draw.
func (b *Board) Outcome() Outcome {
	if b.findRun() != nil {
		return WinOutcome(b.LastMover())
	}
	if !b.hasLegalMove() {
		return Draw
	}
	return Playing
}

// WinningRun returns the cells of the winning run, or nil if the board
// has no winner.
func (b *Board) WinningRun() []CellRef {
	return b.findRun()
}

func (b *Board) hasLegalMove() bool {
	if b.supply[b.onTurn][Round] == 0 && b.supply[b.onTurn][Square] == 0 {
		return false
	}
	if b.filled == b.rows*b.cols {
		return false
	}
	return true
}

// String renders the board top row first, with the side to move and
// the remaining supplies.
func (b *Board) String() string {
	var sb strings.Builder
	for row := b.rows - 1; row >= 0; row-- {
		for col := 0; col < b.cols; col++ {
			sb.WriteRune(b.grid[row*b.cols+col].Rune())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	for col := 0; col < b.cols; col++ {
		fmt.Fprintf(&sb, "%d ", col%10)
	}
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "%s to move; supplies r(●%d ■%d) y(○%d □%d)\n",
		b.onTurn,
		b.supply[Red][Round], b.supply[Red][Square],
		b.supply[Yellow][Round], b.supply[Yellow][Square])
	return sb.String()
}
