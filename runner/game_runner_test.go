package runner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quatrain/quatrain/game"
	"github.com/quatrain/quatrain/player"
	"github.com/quatrain/quatrain/player/minimax"
	"github.com/quatrain/quatrain/player/random"
)

// scripted replays a fixed move list; it stands in for a defective or
// canned decision maker.
type scripted struct {
	moves []game.Move
	next  int
}

func (s *scripted) Configure(params string) {}

func (s *scripted) Think(ctx context.Context, b *game.Board) (game.Move, error) {
	if s.next >= len(s.moves) {
		return game.NoMove, nil
	}
	m := s.moves[s.next]
	s.next++
	return m, nil
}

// stall ignores the board and waits for the deadline.
type stall struct{}

func (stall) Configure(params string) {}

func (stall) Think(ctx context.Context, b *game.Board) (game.Move, error) {
	<-ctx.Done()
	return game.NoMove, nil
}

func TestProtocolViolationIsFatal(t *testing.T) {
	b := game.NewDefaultBoard()
	for i := 0; i < b.Rows(); i++ {
		_, err := b.PlayMove(game.Move{Col: 0, Shape: game.Shapes[i%2]})
		require.NoError(t, err)
	}
	require.True(t, b.ColumnFull(0))
	require.Equal(t, game.Red, b.OnTurn())

	red := &scripted{moves: []game.Move{{Col: 0, Shape: game.Round}}}
	r := NewGameRunner(b, red, &scripted{}, 0)
	_, err := r.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProtocolViolation)
}

func TestAbstainingPlayerForfeits(t *testing.T) {
	b := game.NewDefaultBoard()
	r := NewGameRunner(b, &scripted{}, &scripted{}, 0)

	out, err := r.PlayTurn(context.Background())
	require.NoError(t, err)
	assert.Equal(t, game.YellowWins, out)
}

func TestBudgetBoundsThinkingTime(t *testing.T) {
	b := game.NewDefaultBoard()
	r := NewGameRunner(b, stall{}, stall{}, 50*time.Millisecond)

	start := time.Now()
	out, err := r.PlayTurn(context.Background())
	require.NoError(t, err)
	assert.Equal(t, game.YellowWins, out) // red timed out and forfeited
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestSearchVersusRandomCompletes(t *testing.T) {
	reg := player.NewRegistry()
	reg.Register("minimax", func() player.Player { return minimax.New() })
	reg.Register("random", func() player.Player { return random.New() })

	red, err := reg.New("minimax", "2")
	require.NoError(t, err)
	yellow, err := reg.New("random", "3")
	require.NoError(t, err)

	b := game.NewDefaultBoard()
	r := NewGameRunner(b, red, yellow, time.Minute)
	out, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, game.Playing, out)
	assert.Equal(t, out, b.Outcome())
}

func TestRenderObserverSeesFinalBoard(t *testing.T) {
	b := game.NewDefaultBoard()
	red := &scripted{moves: []game.Move{
		{Col: 0, Shape: game.Round},
		{Col: 1, Shape: game.Round},
		{Col: 2, Shape: game.Round},
		{Col: 3, Shape: game.Round},
	}}
	yellow := &scripted{moves: []game.Move{
		{Col: 0, Shape: game.Square},
		{Col: 1, Shape: game.Square},
		{Col: 2, Shape: game.Square},
	}}
	r := NewGameRunner(b, red, yellow, 0)

	calls := 0
	r.SetRenderFunc(func(*game.Board) { calls++ })
	out, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, game.RedWins, out)
	// One render per turn plus the final board.
	assert.Equal(t, 8, calls)
}
