// Package search implements Haliax's PUCT Monte-Carlo tree search: a single,
// non-cloning Position is walked move by move (Make/Undo) along a selection
// path, expanded at its first unvisited node via a pluggable eval.Evaluator,
// and the result backed up to the root. Node and Edge records live in an
// arena-backed Table keyed by board.ZobristHash, so transposing move orders
// share work exactly the way the teacher's alpha-beta transposition table did.
package search

import (
	"fmt"
	"time"

	"github.com/zchown/haliax/pkg/board"
)

// PV is the outcome of a completed (or halted) search: the move it recommends,
// the value backing it up, and how much work went into the recommendation.
type PV struct {
	Move       board.Move
	Value      board.Value
	Nodes      uint64
	Iterations int
	Time       time.Duration
}

func (pv PV) String() string {
	return fmt.Sprintf("move=%v value=%v nodes=%v iterations=%v time=%v", pv.Move, pv.Value, pv.Nodes, pv.Iterations, pv.Time)
}

// Limits is the low-level bag Search itself interprets directly: a hard wall-clock
// cap, a depth figure read as 2^min(Depth,16) iterations, and a direct iteration
// (node) cap. Clock time controls are not translated into Limits: searchctl turns
// remaining clock time into a soft/hard duration pair and halts the search once the
// hard duration has passed, leaving MoveTime unset.
type Limits struct {
	MoveTime time.Duration // hard cap; 0 == unset
	Depth    int           // 0 == unset
	Nodes    int           // 0 == unset
}

// defaultIterations is the iteration budget when a caller sets no limit at all.
const defaultIterations = 1 << 12

const maxDepthShift = 16

func (l Limits) iterations() int {
	switch {
	case l.Nodes > 0:
		return l.Nodes
	case l.Depth > 0:
		d := l.Depth
		if d > maxDepthShift {
			d = maxDepthShift
		}
		return 1 << uint(d)
	default:
		return defaultIterations
	}
}

func (l Limits) deadline(now time.Time) (time.Time, bool) {
	if l.MoveTime <= 0 {
		return time.Time{}, false
	}
	return now.Add(l.MoveTime), true
}
