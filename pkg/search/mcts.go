package search

import (
	"context"
	"math"
	"time"

	"github.com/zchown/haliax/pkg/board"
	"github.com/zchown/haliax/pkg/eval"
	"go.uber.org/atomic"
)

// cPUCT weights the exploration term of the PUCT score against the exploitation
// term Q; 1.0 is the standard AlphaZero-family default.
const cPUCT = 1.0

// explorationFloor scales a small bonus, explorationFloor/(1+n), added to every
// edge's score independent of its prior, so that an edge with a zero prior is still
// tried. Edges with equal scores (e.g. untried edges with equal priors) stay tied and
// selectEdge takes the first one in move-list order.
const explorationFloor = 0.05

// maxTrajectory bounds the selection path length; it can never exceed the number of
// distinct positions a game can pass through before the board fills, which is far
// below this.
const maxTrajectory = 256

// Search runs PUCT Monte-Carlo tree search from pos using tt as the node/edge arena
// and evaluator to score leaves. pos is mutated via Make/Undo during the search and
// is restored to its original state before Search returns, win, lose or halt --
// no position is ever cloned (spec.md section 5). stop may be nil; if non-nil, it is
// polled at each iteration boundary and a true value halts the search early, the
// same as an exhausted limit.
func Search(ctx context.Context, pos *board.Position, tt *Table, evaluator eval.Evaluator, limits Limits, stop *atomic.Bool) (PV, error) {
	if tt.Used() > 0.5 {
		tt.Reset()
	}

	rootIdx, _ := tt.getOrCreate(pos.ZobristHash())
	tt.classifyIfTerminal(rootIdx, pos)
	if tt.node(rootIdx).state != Unknown {
		return PV{}, board.ErrNoLegalMoves
	}

	deadline, hasDeadline := limits.deadline(time.Now())
	maxIterations := limits.iterations()

	movesBuf := make([]board.Move, 0, board.MoveListCap)
	start := time.Now()

	count := 0
	for count < maxIterations {
		if stop != nil && stop.Load() {
			break
		}
		if ctx.Err() != nil {
			break
		}
		if hasDeadline && time.Now().After(deadline) {
			break
		}

		movesBuf = runIteration(ctx, tt, pos, evaluator, rootIdx, movesBuf)
		count++

		if tt.node(rootIdx).state != Unknown {
			break // root is fully resolved; more iterations cannot change the verdict
		}
	}

	pv, err := bestPV(tt, rootIdx)
	if err != nil {
		return PV{}, err
	}
	pv.Nodes = uint64(tt.Len())
	pv.Iterations = count
	pv.Time = time.Since(start)
	return pv, nil
}

type trajStep struct {
	node int32
	edge int32
}

// runIteration performs one selection -> expansion -> backpropagation pass starting
// (and ending) at pos's current state.
func runIteration(ctx context.Context, tt *Table, pos *board.Position, evaluator eval.Evaluator, rootIdx int32, movesBuf []board.Move) []board.Move {
	var traj [maxTrajectory]trajStep
	depth := 0
	curIdx := rootIdx

	for {
		n := tt.node(curIdx)
		if !n.expanded || n.state != Unknown {
			break
		}
		edgeIdx := selectEdge(tt, curIdx)
		e := tt.edge(edgeIdx)
		pos.Make(e.move)
		traj[depth] = trajStep{node: curIdx, edge: edgeIdx}
		depth++
		curIdx = e.child
	}

	leafValue, movesBuf := expand(ctx, tt, pos, evaluator, curIdx, movesBuf)

	leaf := tt.node(curIdx)
	leaf.visits++
	leaf.value += (leafValue - leaf.value) / board.Value(leaf.visits)

	value := leafValue
	for i := depth - 1; i >= 0; i-- {
		step := traj[i]
		e := tt.edge(step.edge)
		pos.Undo(e.move)

		value = value.Negate()
		e.visits++
		e.w += value

		parent := tt.node(step.node)
		parent.visits++
		parent.value += (value - parent.value) / board.Value(parent.visits)

		maybePromote(tt, step.node)
	}

	return movesBuf
}

// selectEdge chooses which edge to descend from the (expanded, Unknown) node idx,
// per spec.md section 4.8: an immediate win is taken outright; a proven loss is
// skipped unless every option loses; everything else is ranked by PUCT score.
func selectEdge(tt *Table, idx int32) int32 {
	n := tt.node(idx)

	bestLoss := int32(-1)
	bestLossPly := math.MaxInt32
	allLosses := true

	for i := int32(0); i < n.edgeCount; i++ {
		edgeIdx := n.edgeStart + i
		child := tt.node(tt.edge(edgeIdx).child)
		if child.state == Loss {
			if child.endPly < bestLossPly {
				bestLossPly = child.endPly
				bestLoss = edgeIdx
			}
			continue
		}
		allLosses = allLosses && child.state == Win
	}
	if bestLoss >= 0 {
		return bestLoss
	}

	N := n.visits
	if N < 1 {
		N = 1
	}
	sqrtN := float32(math.Sqrt(float64(N)))

	best := int32(-1)
	var bestScore float32
	for i := int32(0); i < n.edgeCount; i++ {
		edgeIdx := n.edgeStart + i
		e := tt.edge(edgeIdx)
		child := tt.node(e.child)
		if child.state == Win && !allLosses {
			continue // proven bad for us; only play it when every option is this bad
		}

		score := float32(e.Q()) + cPUCT*e.prior*sqrtN/float32(1+e.visits) + explorationFloor/float32(1+e.visits)
		if best < 0 || score > bestScore {
			bestScore = score
			best = edgeIdx
		}
	}
	return best
}

// expand turns the first visit to idx into a real node: classifying it terminal if
// it is one, otherwise generating its legal moves, consulting evaluator once, and
// creating one child node and Edge per move. Returns the value to back up, from
// idx's own side to move.
func expand(ctx context.Context, tt *Table, pos *board.Position, evaluator eval.Evaluator, idx int32, movesBuf []board.Move) (board.Value, []board.Move) {
	if tt.node(idx).state != Unknown {
		tt.node(idx).expanded = true
		return tt.node(idx).terminalValue(), movesBuf
	}

	moves := board.GenerateMoves(pos, movesBuf[:0])
	priors := make([]float32, len(moves))
	value := evaluator.Evaluate(ctx, pos, moves, priors)
	normalizePriors(priors)

	edgeStart := tt.allocEdges(len(moves))
	for i, m := range moves {
		pos.Make(m)
		childIdx, _ := tt.getOrCreate(pos.ZobristHash())
		tt.classifyIfTerminal(childIdx, pos)
		pos.Undo(m)

		e := tt.edge(edgeStart + int32(i))
		e.move = m
		e.prior = priors[i]
		e.child = childIdx
	}

	n := tt.node(idx)
	n.edgeStart = edgeStart
	n.edgeCount = int32(len(moves))
	n.expanded = true

	return value.Clamp(), moves
}

// classifyIfTerminal sets idx's proven state from pos's current (terminal or not)
// status, if it has not already been classified. pos must already reflect the
// position idx's key denotes.
func (t *Table) classifyIfTerminal(idx int32, pos *board.Position) {
	n := t.node(idx)
	if n.expanded {
		return
	}
	result := board.Terminal(pos)
	if !result.IsTerminal() {
		return
	}

	switch {
	case result.Kind == board.Draw:
		n.state = Drawn
	case result.Winner == pos.ToMove():
		n.state = Win
	default:
		n.state = Loss
	}
	n.endPly = 0
	n.expanded = true
}

// maybePromote re-derives idx's proven state once every child of an expanded,
// still-Unknown node has itself been proven, per spec.md section 4.8's
// win/loss/draw propagation rule.
func maybePromote(tt *Table, idx int32) {
	n := tt.node(idx)
	if !n.expanded || n.state != Unknown {
		return
	}

	bestWinPly := -1
	maxPly := 0
	sawDraw := false
	allResolved := true

	for i := int32(0); i < n.edgeCount; i++ {
		child := tt.node(tt.edge(n.edgeStart + i).child)
		switch child.state {
		case Unknown:
			allResolved = false
		case Loss:
			if bestWinPly < 0 || child.endPly < bestWinPly {
				bestWinPly = child.endPly
			}
		case Drawn:
			sawDraw = true
			if child.endPly > maxPly {
				maxPly = child.endPly
			}
		case Win:
			if child.endPly > maxPly {
				maxPly = child.endPly
			}
		}
	}

	n = tt.node(idx) // re-fetch: tt.node(...) calls above never appended, but stay defensive
	if !allResolved {
		return
	}
	if bestWinPly >= 0 {
		n.state = Win
		n.endPly = bestWinPly + 1
		return
	}
	if sawDraw {
		n.state = Drawn
	} else {
		n.state = Loss
	}
	n.endPly = maxPly + 1
}

// normalizePriors clamps negative priors to zero and rescales to sum to 1, falling
// back to a uniform distribution if every prior is non-positive.
func normalizePriors(priors []float32) {
	var sum float32
	for _, p := range priors {
		if p > 0 {
			sum += p
		}
	}
	if sum <= 0 {
		u := float32(1) / float32(len(priors))
		for i := range priors {
			priors[i] = u
		}
		return
	}
	for i, p := range priors {
		if p < 0 {
			p = 0
		}
		priors[i] = p / sum
	}
}

// bestPV picks the root's recommended move: an outright win if one is proven,
// otherwise the most-visited edge, ties broken by prior -- spec.md section 4.8.
func bestPV(tt *Table, rootIdx int32) (PV, error) {
	root := tt.node(rootIdx)
	if root.edgeCount == 0 {
		return PV{}, board.ErrNoLegalMoves
	}

	bestWin := int32(-1)
	bestWinPly := math.MaxInt32
	for i := int32(0); i < root.edgeCount; i++ {
		edgeIdx := root.edgeStart + i
		child := tt.node(tt.edge(edgeIdx).child)
		if child.state == Loss && child.endPly < bestWinPly {
			bestWinPly = child.endPly
			bestWin = edgeIdx
		}
	}
	if bestWin >= 0 {
		e := tt.edge(bestWin)
		return PV{Move: e.move, Value: board.MaxValue}, nil
	}

	best := root.edgeStart
	for i := int32(1); i < root.edgeCount; i++ {
		idx := root.edgeStart + i
		e, b := tt.edge(idx), tt.edge(best)
		if e.visits > b.visits || (e.visits == b.visits && e.prior > b.prior) {
			best = idx
		}
	}
	e := tt.edge(best)
	return PV{Move: e.move, Value: e.Q()}, nil
}
