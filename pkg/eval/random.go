package eval

import (
	"context"
	"math/rand"

	"github.com/zchown/haliax/pkg/board"
)

// Noise wraps an Evaluator and perturbs its value by a small uniform random amount,
// so otherwise-deterministic search doesn't always pick the same move among ties.
// A limit of zero or less adds no noise. Build one with NewNoise; the zero value has
// no wrapped Evaluator.
type Noise struct {
	next  Evaluator
	rand  *rand.Rand
	limit float32 // width of the perturbation range, in [0, 2]; values move by at most limit/2
}

// NewNoise wraps next, jittering its value by up to +/- limit/2.
func NewNoise(next Evaluator, limit float32, seed int64) Noise {
	return Noise{
		next:  next,
		rand:  rand.New(rand.NewSource(seed)),
		limit: limit,
	}
}

func (n Noise) Evaluate(ctx context.Context, pos *board.Position, moves []board.Move, priors []float32) board.Value {
	v := n.next.Evaluate(ctx, pos, moves, priors)
	if n.limit <= 0 {
		return v
	}
	jitter := board.Value((n.rand.Float32() - 0.5) * n.limit)
	return (v + jitter).Clamp()
}
