package board_test

import (
	"testing"

	"github.com/zchown/haliax/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMakeUndoRestoresHashAcrossEveryLegalMove exercises every legal move from a
// position three plies in and confirms Undo exactly restores the Zobrist hash, the
// invariant pkg/search's single mutable Position relies on.
func TestMakeUndoRestoresHashAcrossEveryLegalMove(t *testing.T) {
	pos := board.NewGame(0)
	pos.Make(board.NewPlaceMove(board.NewSquare(board.FileA, board.Rank1), board.Flat))
	pos.Make(board.NewPlaceMove(board.NewSquare(board.FileB, board.Rank1), board.Flat))
	pos.Make(board.NewPlaceMove(board.NewSquare(board.FileC, board.Rank1), board.Standing))

	before := pos.ZobristHash()
	moves := board.GenerateMoves(pos, nil)
	require.NotEmpty(t, moves)

	for _, m := range moves {
		pos.Make(m)
		pos.Undo(m)
		assert.Equal(t, before, pos.ZobristHash(), "hash not restored after %v", m)
	}
}

func TestSlideRedistributesStack(t *testing.T) {
	pos := board.NewGame(0)
	a1 := board.NewSquare(board.FileA, board.Rank1)
	b1 := board.NewSquare(board.FileB, board.Rank1)

	pos.Make(board.NewPlaceMove(a1, board.Flat)) // black (opening swap)
	pos.Make(board.NewPlaceMove(b1, board.Flat)) // white

	// Black stacks a second stone on a1 via a placement elsewhere then a slide isn't
	// directly available without more setup; instead verify a single-stone slide
	// moves the top piece and empties the source.
	pattern, ok := board.EncodePattern([]uint8{1})
	require.True(t, ok)

	// It is White's turn (2nd ply done); White controls b1.
	m := board.NewSlideMove(b1, board.West, pattern)
	pos.Make(m)

	assert.True(t, pos.IsEmpty(b1))
	top, ok := pos.Top(a1)
	require.True(t, ok)
	assert.Equal(t, board.White, top.Color())

	pos.Undo(m)
	assert.False(t, pos.IsEmpty(b1))
	top, ok = pos.Top(a1)
	require.True(t, ok)
	assert.Equal(t, board.Black, top.Color())
}

func TestCheckedMakeRejectsIllegalMoves(t *testing.T) {
	pos := board.NewGame(0)
	a1 := board.NewSquare(board.FileA, board.Rank1)

	// Opening swap forbids standing/capstone placements.
	err := pos.CheckedMake(board.NewPlaceMove(a1, board.Standing))
	assert.Error(t, err)

	require.NoError(t, pos.CheckedMake(board.NewPlaceMove(a1, board.Flat)))

	// Square is now occupied.
	err = pos.CheckedMake(board.NewPlaceMove(a1, board.Flat))
	assert.Error(t, err)
}

func TestCrushUndoRestoresWall(t *testing.T) {
	// Build a position directly: a white capstone at b1 about to crush a black wall
	// at a1 with a one-square slide west.
	a1 := board.NewSquare(board.FileA, board.Rank1)
	b1 := board.NewSquare(board.FileB, board.Rank1)

	var stacks [board.NumSquares][]board.Piece
	stacks[a1] = []board.Piece{board.MakePiece(board.Black, board.Standing)}
	stacks[b1] = []board.Piece{board.MakePiece(board.White, board.Capstone)}

	pos, err := board.NewPositionFromStacks(stacks, board.White, 4, 0)
	require.NoError(t, err)
	before := pos.ZobristHash()

	pattern, ok := board.EncodePattern([]uint8{1})
	require.True(t, ok)
	m := board.NewSlideMove(b1, board.West, pattern)

	require.NoError(t, pos.CheckedMake(m))

	top, ok := pos.Top(a1)
	require.True(t, ok)
	assert.Equal(t, board.Capstone, top.Kind())

	pos.Undo(m)
	assert.Equal(t, before, pos.ZobristHash())

	top, ok = pos.Top(a1)
	require.True(t, ok)
	assert.Equal(t, board.Standing, top.Kind())
	assert.Equal(t, board.Black, top.Color())
}
