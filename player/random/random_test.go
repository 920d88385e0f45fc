package random

import (
	"context"
	"testing"

	"github.com/matryer/is"

	"github.com/quatrain/quatrain/game"
)

func TestPicksOnlyLegalMoves(t *testing.T) {
	is := is.New(t)
	p := New()
	p.Configure("42")

	b := game.NewDefaultBoard()
	for i := 0; i < 20; i++ {
		mv, err := p.Think(context.Background(), b)
		is.NoErr(err)
		_, err = b.PlayMove(mv)
		is.NoErr(err)
		if b.Outcome() != game.Playing {
			break
		}
	}
}

func TestSeededPlayIsReproducible(t *testing.T) {
	is := is.New(t)
	a, b := New(), New()
	a.Configure("7")
	b.Configure("7")

	boardA := game.NewDefaultBoard()
	boardB := game.NewDefaultBoard()
	for i := 0; i < 10; i++ {
		mvA, err := a.Think(context.Background(), boardA)
		is.NoErr(err)
		mvB, err := b.Think(context.Background(), boardB)
		is.NoErr(err)
		is.Equal(mvA, mvB)
		if _, err := boardA.PlayMove(mvA); err != nil {
			t.Fatal(err)
		}
		if _, err := boardB.PlayMove(mvB); err != nil {
			t.Fatal(err)
		}
		if boardA.Outcome() != game.Playing {
			break
		}
	}
}

func TestCancelledThinkReturnsNoMove(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mv, err := New().Think(ctx, game.NewDefaultBoard())
	is.NoErr(err)
	is.True(mv.IsNone())
}
