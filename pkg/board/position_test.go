package board_test

import (
	"testing"

	"github.com/zchown/haliax/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGameStartsEmptyWithFullReserves(t *testing.T) {
	pos := board.NewGame(0)

	assert.Equal(t, board.EmptyBitboard, pos.Occupied())
	assert.Equal(t, board.White, pos.ToMove())
	assert.True(t, pos.IsOpeningSwap())

	flats, caps := pos.Reserves(board.White)
	assert.EqualValues(t, board.InitialFlats, flats)
	assert.EqualValues(t, board.InitialCapstones, caps)
}

func TestOpeningSwapEndsAfterTwoPlies(t *testing.T) {
	pos := board.NewGame(0)
	assert.True(t, pos.IsOpeningSwap())

	a1 := board.NewSquare(board.FileA, board.Rank1)
	pos.Make(board.NewPlaceMove(a1, board.Flat))
	assert.True(t, pos.IsOpeningSwap())

	b1 := board.NewSquare(board.FileB, board.Rank1)
	pos.Make(board.NewPlaceMove(b1, board.Flat))
	assert.False(t, pos.IsOpeningSwap())
}

func TestOpeningPlacementsAreOpponentColored(t *testing.T) {
	// The opening swap rule: White's first placement is actually a black stone.
	pos := board.NewGame(0)

	a1 := board.NewSquare(board.FileA, board.Rank1)
	pos.Make(board.NewPlaceMove(a1, board.Flat))

	top, ok := pos.Top(a1)
	require.True(t, ok)
	assert.Equal(t, board.Black, top.Color())
}

func TestStackTopAndStackLen(t *testing.T) {
	pos := board.NewGame(0)
	sq := board.NewSquare(board.FileC, board.Rank3)

	_, ok := pos.Top(sq)
	assert.False(t, ok)
	assert.Equal(t, 0, pos.StackLen(sq))
	assert.True(t, pos.IsEmpty(sq))
}

func TestReservesDecreaseOnPlacement(t *testing.T) {
	pos := board.NewGame(0)
	pos.Make(board.NewPlaceMove(board.NewSquare(board.FileA, board.Rank1), board.Flat))

	// That placement is Black's stone (opening swap) though White moved.
	flats, _ := pos.Reserves(board.Black)
	assert.EqualValues(t, board.InitialFlats-1, flats)
}
