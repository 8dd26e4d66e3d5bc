package board

import "fmt"

// Value is a search or evaluation outcome from the side to move's perspective, in
// [-1, 1]: -1 a certain loss, +1 a certain win, 0 a balanced or drawn position. Unlike
// the teacher's centipawn Score, Haliax's search backpropagates averaged rollout
// outcomes (spec.md section 5), not a material count, so the natural range is the
// probability-like [-1, 1] PUCT itself operates in.
type Value float32

const (
	MinValue  Value = -1
	MaxValue  Value = 1
	DrawValue Value = 0
)

// Clamp bounds v to [-1, 1], guarding against evaluator or backprop rounding drift.
func (v Value) Clamp() Value {
	switch {
	case v < MinValue:
		return MinValue
	case v > MaxValue:
		return MaxValue
	default:
		return v
	}
}

// Negate returns the value from the other side's perspective.
func (v Value) Negate() Value {
	return -v
}

func (v Value) String() string {
	return fmt.Sprintf("%.3f", float64(v))
}

// ValueFromResult converts a terminal Result into a Value from perspective's point of
// view: +1 if perspective won, -1 if perspective lost, 0 for a draw or non-terminal.
func ValueFromResult(r Result, perspective Color) Value {
	if !r.IsTerminal() || r.Kind == Draw {
		return DrawValue
	}
	if r.Winner == perspective {
		return MaxValue
	}
	return MinValue
}
