// Package random implements a decision maker that plays uniformly at
// random among the legal moves. It exists for harnesses, baselines and
// tests rather than to win games.
package random

import (
	"context"
	"encoding/binary"
	"strconv"
	"strings"

	"lukechampine.com/frand"

	"github.com/quatrain/quatrain/game"
)

type RandomPlayer struct {
	rng *frand.RNG
}

func New() *RandomPlayer {
	return &RandomPlayer{rng: frand.New()}
}

// Configure optionally takes a decimal seed for reproducible play; a
// malformed or absent seed keeps the default nondeterministic source.
func (p *RandomPlayer) Configure(params string) {
	params = strings.TrimSpace(params)
	if params == "" {
		return
	}
	seed, err := strconv.ParseUint(params, 10, 64)
	if err != nil {
		return
	}
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	p.rng = frand.NewCustom(key[:], 1024, 12)
}

// Think picks one legal (column, shape) pair uniformly at random. Like
// every decision maker it honors cancellation, though it never needs
// more than one check.
func (p *RandomPlayer) Think(ctx context.Context, b *game.Board) (game.Move, error) {
	select {
	case <-ctx.Done():
		return game.NoMove, nil
	default:
	}
	var moves []game.Move
	for col := 0; col < b.Cols(); col++ {
		if b.ColumnFull(col) {
			continue
		}
		for _, shape := range game.Shapes {
			if b.PieceCount(b.OnTurn(), shape) > 0 {
				moves = append(moves, game.Move{Col: col, Shape: shape})
			}
		}
	}
	if len(moves) == 0 {
		return game.NoMove, nil
	}
	return moves[p.rng.Intn(len(moves))], nil
}
