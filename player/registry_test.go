package player

import (
	"context"
	"testing"

	"github.com/matryer/is"

	"github.com/quatrain/quatrain/game"
)

type fake struct {
	params string
}

func (f *fake) Configure(params string) { f.params = params }

func (f *fake) Think(ctx context.Context, b *game.Board) (game.Move, error) {
	return game.NoMove, nil
}

func TestRegistryLookup(t *testing.T) {
	is := is.New(t)
	r := NewRegistry()
	r.Register("fake", func() Player { return &fake{} })
	r.Register("also-fake", func() Player { return &fake{} })

	p, err := r.New("fake", "depth=3")
	is.NoErr(err)
	is.Equal(p.(*fake).params, "depth=3") // configuration string passed through

	_, err = r.New("nope", "")
	is.True(err != nil)

	is.Equal(r.List(), []string{"also-fake", "fake"})
}

func TestRegistryFactoriesAreFresh(t *testing.T) {
	is := is.New(t)
	r := NewRegistry()
	r.Register("fake", func() Player { return &fake{} })

	a, err := r.New("fake", "one")
	is.NoErr(err)
	b, err := r.New("fake", "two")
	is.NoErr(err)
	is.True(a != b)
	is.Equal(a.(*fake).params, "one")
	is.Equal(b.(*fake).params, "two")
}
