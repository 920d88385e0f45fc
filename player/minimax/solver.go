// Package minimax implements the automated Quatrain player: a
// depth-limited minimax search with alpha-beta pruning over a board
// that is mutated in place and restored as the search backtracks.
package minimax

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/quatrain/quatrain/game"
)

// thanks Wikipedia:
/**function alphabeta(node, depth, α, β, maximizingPlayer) is
    if depth = 0 or node is a terminal node then
        return the heuristic value of node
    if maximizingPlayer then
        value := −∞
        for each child of node do
            play(child)
            value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
            unplayLastMove()
            α := max(α, value)
            if α ≥ β then
                break (* β cut-off *)
        return value
    else ... (mirrored)
**/

var errCancelled = errors.New("search cancelled")

// ProgressFunc receives search progress at the root: nodes expanded so
// far and the current best candidate. Purely observational.
type ProgressFunc func(nodes int, best game.Move, value float64)

// Solver runs the search. It borrows the board: every hypothetical
// move it plays is unplayed before returning, so the caller's board is
// bit-identical after Solve.
type Solver struct {
	board    *game.Board
	maxDepth int
	pov      game.Color // the player the top-level search was invoked for

	disablePruning bool
	nodes          int
	progress       ProgressFunc
}

func NewSolver(b *game.Board, maxDepth int) *Solver {
	return &Solver{board: b, maxDepth: maxDepth}
}

// SetPruningDisabled turns alpha-beta cutoffs off. Pruning never
// changes the returned score, only the number of nodes visited; the
// switch exists so tests can verify exactly that.
func (s *Solver) SetPruningDisabled(v bool) {
	s.disablePruning = v
}

// SetProgressFunc installs an observer called after each root
// candidate finishes.
func (s *Solver) SetProgressFunc(f ProgressFunc) {
	s.progress = f
}

// Nodes returns the number of nodes expanded by the last Solve.
func (s *Solver) Nodes() int {
	return s.nodes
}

// Solve searches for the side to move and returns its best move and
// the score of that move from its perspective. On cancellation the
// abort propagates up every frame as an error; no score from a
// cancelled branch is ever compared.
func (s *Solver) Solve(ctx context.Context) (game.Move, float64, error) {
	s.pov = s.board.OnTurn()
	s.nodes = 0
	tstart := time.Now()

	mv, value, err := s.alphabeta(ctx, 0, math.Inf(-1), math.Inf(1))
	if err != nil {
		return game.NoMove, 0, err
	}
	log.Debug().
		Int("max-depth", s.maxDepth).
		Int("nodes", s.nodes).
		Str("best", mv.String()).
		Float64("value", value).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("solve-returning")
	return mv, value, nil
}

func (s *Solver) alphabeta(ctx context.Context, depth int, α, β float64) (game.Move, float64, error) {
	select {
	case <-ctx.Done():
		return game.NoMove, 0, errCancelled
	default:
	}
	s.nodes++

	if out := s.board.Outcome(); out != game.Playing {
		return game.NoMove, s.terminalValue(out), nil
	}
	if depth == s.maxDepth {
		return game.NoMove, Evaluate(s.board, s.pov), nil
	}

	onTurn := s.board.OnTurn()
	maximizing := onTurn == s.pov
	best := game.NoMove
	bestValue := math.Inf(-1)
	if !maximizing {
		bestValue = math.Inf(1)
	}

	// Deterministic enumeration: ascending column, round before
	// square. Reproducible move ordering is what makes pruning and
	// tie-breaking reproducible.
expansion:
	for col := 0; col < s.board.Cols(); col++ {
		if s.board.ColumnFull(col) {
			continue
		}
		for _, shape := range game.Shapes {
			if s.board.PieceCount(onTurn, shape) == 0 {
				continue
			}
			m := game.Move{Col: col, Shape: shape}
			if _, err := s.board.PlayMove(m); err != nil {
				return game.NoMove, 0, err
			}
			_, value, err := s.alphabeta(ctx, depth+1, α, β)
			s.board.UnplayLastMove()
			if err != nil {
				return game.NoMove, 0, err
			}

			if maximizing {
				if value >= bestValue { // ties keep the most recent
					bestValue, best = value, m
				}
				if !s.disablePruning && value >= β {
					break expansion // β cut-off
				}
				α = math.Max(α, value)
			} else {
				if value <= bestValue {
					bestValue, best = value, m
				}
				if !s.disablePruning && value <= α {
					break expansion // α cut-off
				}
				β = math.Min(β, value)
			}
			if depth == 0 && s.progress != nil {
				s.progress(s.nodes, best, bestValue)
			}
		}
	}
	return best, bestValue, nil
}

// terminalValue scores a decided position from the perspective
// player's viewpoint.
func (s *Solver) terminalValue(out game.Outcome) float64 {
	switch {
	case out == game.Draw:
		return 0
	case out.Winner() == s.pov:
		return math.Inf(1)
	default:
		return math.Inf(-1)
	}
}
