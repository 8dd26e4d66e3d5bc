// Package eval defines the pluggable position evaluator contract MCTS leaf expansion
// calls into, and a default randomized-noise decorator.
package eval

import (
	"context"

	"github.com/zchown/haliax/pkg/board"
)

// Evaluator is a static position evaluator. Evaluate returns a scalar value in
// [-1, 1] from pos's side to move, and writes one non-negative prior per entry of
// moves into priors (len(priors) == len(moves)); the caller (the MCTS expansion step)
// normalizes the priors itself, falling back to uniform if they sum to <= 0.
type Evaluator interface {
	Evaluate(ctx context.Context, pos *board.Position, moves []board.Move, priors []float32) board.Value
}

// Func adapts a plain function to the Evaluator interface.
type Func func(ctx context.Context, pos *board.Position, moves []board.Move, priors []float32) board.Value

func (f Func) Evaluate(ctx context.Context, pos *board.Position, moves []board.Move, priors []float32) board.Value {
	return f(ctx, pos, moves, priors)
}

// Uniform is the degenerate evaluator: a draw-ish value of 0 and equal priors for
// every move. Useful for perft-style search tests that only exercise tree mechanics.
type Uniform struct{}

func (Uniform) Evaluate(_ context.Context, _ *board.Position, moves []board.Move, priors []float32) board.Value {
	for i := range priors[:len(moves)] {
		priors[i] = 1
	}
	return board.DrawValue
}
