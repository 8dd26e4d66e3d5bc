package search

import "github.com/zchown/haliax/pkg/board"

// defaultArenaBytes is the default budget for a Table's node/edge storage, matching
// spec.md's 16 MiB default.
const defaultArenaBytes = 16 << 20

// minBuckets is the smallest bucket-array size a Table will allocate, matching
// spec.md's "buckets >= 1024, power of two".
const minBuckets = 1024

// bytesPerNode approximates a Node plus its average share of Edge storage, used only
// to size the arena from a byte budget; it need not be exact.
const bytesPerNode = 128

// Table is the MCTS node/edge arena, addressed by a chained hash table keyed on
// board.ZobristHash: a bucket-head array of node indices, with collisions resolved by
// walking Node.bucketNext. Grounded on the teacher's lock-free transposition.table,
// but without the CAS-based replacement machinery -- spec.md section 5's search loop
// is single-threaded, so a plain bump allocator suffices, cleared wholesale (never
// resized) once usage crosses half of its target capacity.
type Table struct {
	nodes   []Node
	edges   []Edge
	buckets []int32 // 1 + node index; 0 means empty bucket
	target  int     // node count considered "full" for the 50% policy
}

// NewTable allocates a Table sized from byteBudget (<= 0 uses the spec default).
func NewTable(byteBudget int) *Table {
	if byteBudget <= 0 {
		byteBudget = defaultArenaBytes
	}
	target := byteBudget / bytesPerNode
	if target < minBuckets {
		target = minBuckets
	}
	return &Table{
		nodes:   make([]Node, 0, target),
		edges:   make([]Edge, 0, target*4),
		buckets: make([]int32, bucketCount(target)),
		target:  target,
	}
}

func bucketCount(target int) int {
	n := minBuckets
	for n < target {
		n <<= 1
	}
	return n
}

// Used returns the fraction of target capacity currently allocated, in [0, +inf);
// callers clear the table once this crosses 0.5.
func (t *Table) Used() float64 {
	return float64(len(t.nodes)) / float64(t.target)
}

// Reset clears every node, edge and bucket, keeping the underlying arrays.
func (t *Table) Reset() {
	t.nodes = t.nodes[:0]
	t.edges = t.edges[:0]
	for i := range t.buckets {
		t.buckets[i] = 0
	}
}

func (t *Table) bucketIndex(key board.ZobristHash) int {
	return int(uint64(key)) & (len(t.buckets) - 1)
}

// node returns a pointer into the live backing array; callers must not hold it
// across any call that can append to t.nodes (getOrCreate), since that can
// reallocate the backing array and invalidate earlier pointers.
func (t *Table) node(idx int32) *Node { return &t.nodes[idx] }

func (t *Table) edge(idx int32) *Edge { return &t.edges[idx] }

// lookup returns the node index for key, or -1 if absent.
func (t *Table) lookup(key board.ZobristHash) int32 {
	idx := t.buckets[t.bucketIndex(key)] - 1
	for idx >= 0 {
		n := &t.nodes[idx]
		if n.key == key {
			return idx
		}
		idx = n.bucketNext
	}
	return -1
}

// getOrCreate returns the node for key, creating and bucket-chaining a new one if
// the key was not already present.
func (t *Table) getOrCreate(key board.ZobristHash) (idx int32, created bool) {
	if idx = t.lookup(key); idx >= 0 {
		return idx, false
	}
	h := t.bucketIndex(key)
	newIdx := int32(len(t.nodes))
	t.nodes = append(t.nodes, Node{key: key, bucketNext: t.buckets[h] - 1})
	t.buckets[h] = newIdx + 1
	return newIdx, true
}

// allocEdges reserves n contiguous Edge slots and returns the start index.
func (t *Table) allocEdges(n int) int32 {
	start := int32(len(t.edges))
	for i := 0; i < n; i++ {
		t.edges = append(t.edges, Edge{})
	}
	return start
}

// Len reports how many nodes the table currently holds.
func (t *Table) Len() int { return len(t.nodes) }
