package combat

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

// Rand is the random source the engine draws opponent hands from. A
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a seeded source. A zero seed picks one from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

// MoveSource supplies the challenger's hand for each round. Rounds count from 1.
type MoveSource interface {
	NextMove(ctx context.Context, round int) (Move, error)
}

// MoveSourceFunc adapts a function to a MoveSource.
type MoveSourceFunc func(ctx context.Context, round int) (Move, error)

func (f MoveSourceFunc) NextMove(ctx context.Context, round int) (Move, error) {
	return f(ctx, round)
}

// FixedMoves plays a scripted sequence of hands.
type FixedMoves []Move

func (f FixedMoves) NextMove(_ context.Context, round int) (Move, error) {
	if round < 1 || round > len(f) {
		return 0, fmt.Errorf("no move scripted for round %d", round)
	}
	return f[round-1], nil
}

// RandomMoves picks each hand uniformly from a random source.
type RandomMoves struct {
	Rand Rand
}

func (r RandomMoves) NextMove(context.Context, int) (Move, error) {
	return Move(r.Rand.IntN(numMoves)), nil
}
