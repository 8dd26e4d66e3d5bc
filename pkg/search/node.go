package search

import "github.com/zchown/haliax/pkg/board"

// State classifies a Node's game-theoretic status from the perspective of the side
// to move at that node. Unknown nodes are still being explored; the other three are
// proven and never change once set.
type State uint8

const (
	Unknown State = iota
	Win           // the side to move at this node has a forced win
	Loss          // the side to move at this node has no escape from losing
	Drawn         // the best the side to move can force from this node is a draw
)

func (s State) String() string {
	switch s {
	case Win:
		return "win"
	case Loss:
		return "loss"
	case Drawn:
		return "draw"
	default:
		return "unknown"
	}
}

// Node is one position in the search tree, addressed by its Zobrist key. Visits and
// Value accumulate every rollout that passed through it; its edge range (edgeStart,
// edgeCount) is set once, at expansion, and never resized afterward.
type Node struct {
	key   board.ZobristHash
	state State
	endPly int // plies to a proven terminal outcome; meaningful only if state != Unknown

	visits uint32
	value  board.Value // running mean outcome, from this node's side to move

	expanded  bool
	edgeStart int32
	edgeCount int32

	bucketNext int32 // chain link within Table's hash bucket; -1 terminates
}

// State reports the node's proven status.
func (n *Node) State() State { return n.state }

// Visits reports how many rollouts have passed through the node.
func (n *Node) Visits() uint32 { return n.visits }

// Value reports the node's running mean outcome.
func (n *Node) Value() board.Value { return n.value }

// terminalValue returns the backprop value a proven node contributes, from its own
// side to move's perspective.
func (n *Node) terminalValue() board.Value {
	switch n.state {
	case Win:
		return board.MaxValue
	case Loss:
		return board.MinValue
	default:
		return board.DrawValue
	}
}

// Edge is one legal move out of an expanded Node, together with the prior the
// evaluator assigned it and the accumulated statistics of every rollout that chose
// it. w accumulates value from the edge-owning node's side to move, the same
// perspective q is read in, so PUCT selection can compare Q directly across edges.
type Edge struct {
	move   board.Move
	prior  float32
	visits uint32
	w      board.Value
	child  int32 // node index; always valid once the edge exists
}

func (e *Edge) Move() board.Move   { return e.move }
func (e *Edge) Prior() float32     { return e.prior }
func (e *Edge) Visits() uint32     { return e.visits }

// Q is the edge's mean backed-up value, zero for an edge no rollout has taken yet.
func (e *Edge) Q() board.Value {
	if e.visits == 0 {
		return 0
	}
	return e.w / board.Value(e.visits)
}
