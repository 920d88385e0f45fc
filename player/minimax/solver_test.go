package minimax

import (
	"context"
	"encoding/binary"
	"math"
	"testing"

	"github.com/matryer/is"
	"lukechampine.com/frand"

	"github.com/quatrain/quatrain/game"
)

func seededRNG(seed uint64) *frand.RNG {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	return frand.NewCustom(key[:], 1024, 12)
}

func legalMoves(b *game.Board) []game.Move {
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
	return moves
}

// randomPosition plays up to n random legal moves from the start
// position, stopping early if the game ends.
func randomPosition(t *testing.T, rng *frand.RNG, n int) *game.Board {
	t.Helper()
	b := game.NewDefaultBoard()
	for i := 0; i < n && b.Outcome() == game.Playing; i++ {
		moves := legalMoves(b)
		if _, err := b.PlayMove(moves[rng.Intn(len(moves))]); err != nil {
			t.Fatal(err)
		}
	}
	return b
}

// threeInARowBoard sets up the §8-style scenario: red has round pieces
// on the bottom of columns 2, 3 and 4 and is on turn, with columns 1
// and 5 open.
func threeInARowBoard(t *testing.T) *game.Board {
	t.Helper()
	b := game.NewDefaultBoard()
	for _, m := range []game.Move{
		{Col: 2, Shape: game.Round},
		{Col: 0, Shape: game.Square},
		{Col: 3, Shape: game.Round},
		{Col: 0, Shape: game.Round},
		{Col: 4, Shape: game.Round},
		{Col: 6, Shape: game.Square},
	} {
		if _, err := b.PlayMove(m); err != nil {
			t.Fatal(err)
		}
	}
	return b
}

func TestForcedWinFound(t *testing.T) {
	is := is.New(t)
	for depth := 1; depth <= 3; depth++ {
		b := threeInARowBoard(t)
		is.Equal(b.Outcome(), game.Playing)

		s := NewSolver(b, depth)
		mv, value, err := s.Solve(context.Background())
		is.NoErr(err)
		is.True(math.IsInf(value, 1))
		is.True(mv.Col == 1 || mv.Col == 5) // either end completes the row
	}
}

func TestSearchRestoresBoard(t *testing.T) {
	is := is.New(t)
	rng := seededRNG(7)
	b := randomPosition(t, rng, 8)

	before := b.String()
	s := NewSolver(b, 4)
	_, _, err := s.Solve(context.Background())
	is.NoErr(err)
	is.Equal(b.String(), before)
}

func TestCancelledBeforeSearch(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := game.NewDefaultBoard()
	s := NewSolver(b, 4)
	_, _, err := s.Solve(ctx)
	is.True(err != nil)
	is.Equal(s.Nodes(), 0) // no recursion happened

	p := New()
	mv, err := p.Think(ctx, b)
	is.NoErr(err) // cancellation is an outcome, not an error
	is.True(mv.IsNone())
}

func TestPruningNeverChangesTheScore(t *testing.T) {
	is := is.New(t)
	sawReduction := false
	for seed := uint64(1); seed <= 10; seed++ {
		b := randomPosition(t, seededRNG(seed), 10)
		if b.Outcome() != game.Playing {
			continue
		}

		pruned := NewSolver(b, 3)
		_, prunedValue, err := pruned.Solve(context.Background())
		is.NoErr(err)

		full := NewSolver(b, 3)
		full.SetPruningDisabled(true)
		_, fullValue, err := full.Solve(context.Background())
		is.NoErr(err)

		is.Equal(prunedValue, fullValue)
		is.True(pruned.Nodes() <= full.Nodes())
		if pruned.Nodes() < full.Nodes() {
			sawReduction = true
		}
	}
	is.True(sawReduction)
}

func TestTerminalPositionNeedsNoMove(t *testing.T) {
	is := is.New(t)
	b := threeInARowBoard(t)
	if _, err := b.PlayMove(game.Move{Col: 1, Shape: game.Round}); err != nil {
		t.Fatal(err)
	}
	is.Equal(b.Outcome(), game.RedWins)

	s := NewSolver(b, 4)
	mv, value, err := s.Solve(context.Background())
	is.NoErr(err)
	is.True(mv.IsNone())
	is.True(math.IsInf(value, -1)) // yellow is on turn and has lost
}

func TestConfigureFallsBackToDefault(t *testing.T) {
	is := is.New(t)
	for _, params := range []string{"", "zero", "-3", "99", "4.5"} {
		p := New()
		p.Configure(params)
		is.Equal(p.depth, DefaultDepth)
	}
	p := New()
	p.Configure(" 6 ")
	is.Equal(p.depth, 6)
}

func TestThinkPicksALegalMove(t *testing.T) {
	is := is.New(t)
	p := New()
	p.Configure("2")
	b := game.NewDefaultBoard()

	mv, err := p.Think(context.Background(), b)
	is.NoErr(err)
	is.True(!mv.IsNone())
	_, err = b.PlayMove(mv)
	is.NoErr(err)
}
