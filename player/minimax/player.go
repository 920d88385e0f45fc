package minimax

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/quatrain/quatrain/game"
)

const (
	// DefaultDepth is used when Configure gets nothing usable.
	DefaultDepth = 4
	// MaxDepth caps what Configure accepts.
	MaxDepth = 16

	// ProgressInterval bounds how often progress lines are emitted.
	ProgressInterval = 20 * time.Millisecond
)

// AIPlayer is the automated decision maker. Its only state between
// Think calls is the configured search depth.
type AIPlayer struct {
	depth    int
	progress chan<- string
}

func New() *AIPlayer {
	return &AIPlayer{depth: DefaultDepth}
}

// Configure parses the maximum search depth. Anything malformed or
// outside [1, MaxDepth] silently falls back to DefaultDepth.
func (p *AIPlayer) Configure(params string) {
	p.depth = DefaultDepth
	params = strings.TrimSpace(params)
	if params == "" {
		return
	}
	d, err := strconv.Atoi(params)
	if err != nil || d < 1 || d > MaxDepth {
		log.Debug().Str("params", params).Int("default", DefaultDepth).
			Msg("bad depth parameter, using default")
		return
	}
	p.depth = d
}

// SetProgressChan installs the optional status-line channel.
func (p *AIPlayer) SetProgressChan(ch chan<- string) {
	p.progress = ch
}

// Think searches the position to the configured depth. A context that
// fires before the search finishes yields game.NoMove without error;
// the board is always restored before returning.
func (p *AIPlayer) Think(ctx context.Context, b *game.Board) (game.Move, error) {
	select {
	case <-ctx.Done():
		return game.NoMove, nil
	default:
	}

	s := NewSolver(b, p.depth)
	if p.progress != nil {
		var lastNote time.Time
		s.SetProgressFunc(func(nodes int, best game.Move, value float64) {
			if time.Since(lastNote) < ProgressInterval {
				return
			}
			lastNote = time.Now()
			select {
			case p.progress <- fmt.Sprintf("depth %d: %d nodes, best %v (%.1f)", p.depth, nodes, best, value):
			default: // never block on a slow consumer
			}
		})
	}

	mv, _, err := s.Solve(ctx)
	if errors.Is(err, errCancelled) {
		return game.NoMove, nil
	}
	if err != nil {
		return game.NoMove, err
	}
	return mv, nil
}
