// Package human implements the interactive reference decision maker.
// It blocks the calling goroutine on a polling loop, checking an input
// source and the cancellation context in the same loop; one player
// interacts at a time, so the blocking design is deliberate.
package human

import (
	"context"
	"fmt"
	"time"

	"github.com/quatrain/quatrain/game"
)

// Action is one input event from the person at the controls.
type Action uint8

const (
	Left    Action = iota // move the column cursor left
	Right                 // move the column cursor right
	Toggle                // switch to the other shape
	Confirm               // drop the piece
)

// InputSource yields pending actions without blocking. The shell (or a
// test) adapts its real input into this.
type InputSource interface {
	Poll() (Action, bool)
}

// PollInterval is how often the input source and the context are
// checked while waiting for a decision.
const PollInterval = 30 * time.Millisecond

const noteInterval = 20 * time.Millisecond

// HumanPlayer turns polled actions into a move: Left/Right move the
// cursor, skipping and wrapping over full columns; Toggle switches
// shape but only onto a shape the player still has in supply; Confirm
// returns the selection.
type HumanPlayer struct {
	in       InputSource
	progress chan<- string
	lastNote time.Time
}

func New(in InputSource) *HumanPlayer {
	return &HumanPlayer{in: in}
}

// Configure is a no-op; the interactive player has no parameters.
func (p *HumanPlayer) Configure(params string) {}

// SetProgressChan installs the optional status-line channel; the
// current selection is reported on it.
func (p *HumanPlayer) SetProgressChan(ch chan<- string) {
	p.progress = ch
}

// Think polls for input until a move is confirmed or ctx fires. On
// cancellation it returns game.NoMove rather than guessing.
func (p *HumanPlayer) Think(ctx context.Context, b *game.Board) (game.Move, error) {
	onTurn := b.OnTurn()
	col := p.nextOpenColumn(b, -1, +1)
	shape, ok := startingShape(b, onTurn)
	if col < 0 || !ok {
		return game.NoMove, nil // nothing legal to offer
	}
	p.note(onTurn, col, shape)

	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return game.NoMove, nil
		case <-ticker.C:
		}
		for {
			act, pending := p.in.Poll()
			if !pending {
				break
			}
			switch act {
			case Left:
				col = p.nextOpenColumn(b, col, -1)
			case Right:
				col = p.nextOpenColumn(b, col, +1)
			case Toggle:
				if b.PieceCount(onTurn, shape.Other()) > 0 {
					shape = shape.Other()
				}
			case Confirm:
				return game.Move{Col: col, Shape: shape}, nil
			}
			p.note(onTurn, col, shape)
		}
	}
}

// nextOpenColumn walks from col in the given direction, wrapping
// around the board, and returns the first column with space. Starting
// from -1 with direction +1 finds the leftmost open column.
func (p *HumanPlayer) nextOpenColumn(b *game.Board, col, dir int) int {
	cols := b.Cols()
	for i := 0; i < cols; i++ {
		col = ((col+dir)%cols + cols) % cols
		if !b.ColumnFull(col) {
			return col
		}
	}
	return -1
}

// startingShape prefers the mover's favored shape, falling back to
// whatever is left in supply.
func startingShape(b *game.Board, c game.Color) (game.Shape, bool) {
	favored := game.FavoredShape(c)
	if b.PieceCount(c, favored) > 0 {
		return favored, true
	}
	if b.PieceCount(c, favored.Other()) > 0 {
		return favored.Other(), true
	}
	return favored, false
}

func (p *HumanPlayer) note(c game.Color, col int, shape game.Shape) {
	if p.progress == nil || time.Since(p.lastNote) < noteInterval {
		return
	}
	p.lastNote = time.Now()
	select {
	case p.progress <- fmt.Sprintf("%s selects column %d, %s", c, col, shape):
	default:
	}
}
