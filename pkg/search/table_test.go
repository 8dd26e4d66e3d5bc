package search

import (
	"testing"

	"github.com/zchown/haliax/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableGetOrCreateIsIdempotentByKey(t *testing.T) {
	tt := NewTable(0)

	key := board.ZobristHash(42)
	a, created := tt.getOrCreate(key)
	require.True(t, created)

	b, created := tt.getOrCreate(key)
	assert.False(t, created)
	assert.Equal(t, a, b)
}

func TestTableGetOrCreateDistinguishesKeys(t *testing.T) {
	tt := NewTable(0)

	a, _ := tt.getOrCreate(board.ZobristHash(1))
	b, _ := tt.getOrCreate(board.ZobristHash(2))
	assert.NotEqual(t, a, b)
}

func TestTableBucketCollisionChainsDistinctEntries(t *testing.T) {
	tt := NewTable(0)
	// bucketCount is a power of two >= minBuckets; two keys congruent mod that
	// count must hash-chain to distinct node indices rather than collapsing.
	n := int32(len(tt.buckets))

	a, _ := tt.getOrCreate(board.ZobristHash(7))
	b, _ := tt.getOrCreate(board.ZobristHash(7 + uint64(n)))
	assert.NotEqual(t, a, b)

	la := tt.lookup(board.ZobristHash(7))
	lb := tt.lookup(board.ZobristHash(7 + uint64(n)))
	assert.Equal(t, a, la)
	assert.Equal(t, b, lb)
}

func TestTableResetClearsLenAndUsed(t *testing.T) {
	tt := NewTable(0)
	for i := 0; i < 100; i++ {
		tt.getOrCreate(board.ZobristHash(i))
	}
	assert.Greater(t, tt.Used(), 0.0)
	assert.Equal(t, 100, tt.Len())

	tt.Reset()
	assert.Equal(t, 0, tt.Len())
	assert.Equal(t, 0.0, tt.Used())
}

func TestTableAllocEdgesReturnsContiguousRange(t *testing.T) {
	tt := NewTable(0)

	start := tt.allocEdges(3)
	for i := int32(0); i < 3; i++ {
		e := tt.edge(start + i)
		e.prior = float32(i)
	}
	for i := int32(0); i < 3; i++ {
		assert.Equal(t, float32(i), tt.edge(start+i).prior)
	}
}
