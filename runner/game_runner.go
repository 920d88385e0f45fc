// Package runner drives a Quatrain game between two decision makers:
// it asks the side to move to think within the configured budget,
// applies the chosen move, checks for a result and alternates sides.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/quatrain/quatrain/game"
	"github.com/quatrain/quatrain/player"
)

// ErrProtocolViolation marks a decision maker offering an illegal move
// (full column or exhausted shape). A conforming player never does
// this, so it is surfaced as an unrecoverable defect, never retried.
var ErrProtocolViolation = errors.New("player offered an illegal move")

// GameRunner is the master struct for gameplay. It exclusively owns
// the board and lends it to the active player for the duration of one
// Think call.
type GameRunner struct {
	board   *game.Board
	players [2]player.Player // index 0 moves red, 1 moves yellow
	names   [2]string
	budget  time.Duration
	render  func(*game.Board)
}

// NewGameRunner wires a board and two players together. budget is the
// per-move thinking time; zero means unbounded, which effectively
// grants a player forever, so interactive front ends should always set
// one for automated players.
func NewGameRunner(b *game.Board, red, yellow player.Player, budget time.Duration) *GameRunner {
	return &GameRunner{
		board:   b,
		players: [2]player.Player{red, yellow},
		names:   [2]string{game.Red.String(), game.Yellow.String()},
		budget:  budget,
	}
}

// SetPlayerNames overrides the display names used in logs.
func (r *GameRunner) SetPlayerNames(red, yellow string) {
	r.names = [2]string{red, yellow}
}

// SetRenderFunc installs an observer called with the board before each
// turn and once after the game ends. Purely observational.
func (r *GameRunner) SetRenderFunc(f func(*game.Board)) {
	r.render = f
}

func (r *GameRunner) Board() *game.Board {
	return r.board
}

// PlayTurn runs one turn for the side to move: arm the deadline, ask
// the player to think, apply the move, re-check the outcome.
//
// A player that returns game.NoMove (it was cancelled, or had nothing
// legal to offer) abstains; the policy here is that abstaining
// forfeits the game to the opponent.
func (r *GameRunner) PlayTurn(ctx context.Context) (game.Outcome, error) {
	onTurn := r.board.OnTurn()
	idx := 0
	if onTurn == game.Yellow {
		idx = 1
	}

	tctx := ctx
	if r.budget > 0 {
		var cancel context.CancelFunc
		tctx, cancel = context.WithTimeout(ctx, r.budget)
		defer cancel()
	}

	tstart := time.Now()
	mv, err := r.players[idx].Think(tctx, r.board)
	if err != nil {
		return game.Playing, fmt.Errorf("%s player: %w", r.names[idx], err)
	}
	if mv.IsNone() {
		log.Info().Str("player", r.names[idx]).Msg("no move offered; forfeiting")
		return game.WinOutcome(onTurn.Other()), nil
	}

	row, err := r.board.PlayMove(mv)
	if err != nil {
		return game.Playing, fmt.Errorf("%w: %s played %v: %v", ErrProtocolViolation, r.names[idx], mv, err)
	}
	log.Debug().
		Str("player", r.names[idx]).
		Str("move", mv.String()).
		Int("row", row).
		Float64("think-sec", time.Since(tstart).Seconds()).
		Msg("move-applied")
	return r.board.Outcome(), nil
}

// Run plays turns until the game is decided and returns the outcome.
func (r *GameRunner) Run(ctx context.Context) (game.Outcome, error) {
	for {
		if r.render != nil {
			r.render(r.board)
		}
		out, err := r.PlayTurn(ctx)
		if err != nil {
			return game.Playing, err
		}
		if out != game.Playing {
			if r.render != nil {
				r.render(r.board)
			}
			log.Info().Str("outcome", out.String()).Int("moves", r.movesPlayed()).Msg("game-over")
			return out, nil
		}
	}
}

func (r *GameRunner) movesPlayed() int {
	n := 0
	for row := 0; row < r.board.Rows(); row++ {
		for col := 0; col < r.board.Cols(); col++ {
			if _, occupied := r.board.CellAt(row, col); occupied {
				n++
			}
		}
	}
	return n
}
