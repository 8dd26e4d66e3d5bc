package board_test

import (
	"testing"

	"github.com/zchown/haliax/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestBitboardSetClear(t *testing.T) {
	sq := board.NewSquare(board.FileC, board.Rank4)

	b := board.EmptyBitboard.Set(sq)
	assert.True(t, b.IsSet(sq))
	assert.Equal(t, 1, b.PopCount())

	b = b.Clear(sq)
	assert.False(t, b.IsSet(sq))
	assert.Equal(t, 0, b.PopCount())
}

func TestBitboardFirstSquareEmpty(t *testing.T) {
	assert.Equal(t, board.NumSquares, board.EmptyBitboard.FirstSquare())
}

func TestBitboardSquares(t *testing.T) {
	a := board.NewSquare(board.FileA, board.Rank1)
	f := board.NewSquare(board.FileF, board.Rank6)

	b := board.EmptyBitboard.Set(a).Set(f)
	assert.Equal(t, []board.Square{a, f}, b.Squares())
}

func TestBoardMaskCoversExactly36Squares(t *testing.T) {
	assert.Equal(t, 36, board.BoardMask.PopCount())
	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		assert.True(t, board.BoardMask.IsSet(sq))
	}
}
