// Package player defines the contract every Quatrain decision maker
// implements, and a registry that front ends use to look up decision
// makers by name.
package player

import (
	"context"
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/quatrain/quatrain/game"
)

// Player is a decision maker: something that can be asked to pick the
// next move for the side to move.
//
// Think is lent the board for the duration of one call and must return
// it unchanged: an implementation may mutate it (play and unplay
// hypothetical moves) but has to restore it before returning.
// Cancellation is cooperative. Implementations must check ctx at
// bounded intervals and, when it fires before a decision is reached,
// return game.NoMove with a nil error: running out of time is an
// outcome, not a failure. Think must never offer a move to a full
// column or with an exhausted shape.
type Player interface {
	// Configure parses an implementation-specific parameter string.
	// Malformed or out-of-range input falls back to documented
	// defaults; configuration never aborts a game.
	Configure(params string)

	Think(ctx context.Context, b *game.Board) (game.Move, error)
}

// Notifier is optionally implemented by players that report what they
// are doing while thinking. Status lines are purely observational and
// rate-limited by the sender; a slow consumer loses lines rather than
// stalling the player.
type Notifier interface {
	SetProgressChan(ch chan<- string)
}

// Factory constructs a fresh, unconfigured Player.
type Factory func() Player

// Registry maps decision-maker names to factories. It is an explicit
// object handed to whatever orchestrates a game, not process-global
// state.
type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds or replaces a named factory.
func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// New constructs and configures the named player.
func (r *Registry) New(name, params string) (Player, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown player %q (have %v)", name, r.List())
	}
	p := f()
	p.Configure(params)
	return p, nil
}

// List returns the registered names, sorted.
func (r *Registry) List() []string {
	names := lo.Keys(r.factories)
	sort.Strings(names)
	return names
}
