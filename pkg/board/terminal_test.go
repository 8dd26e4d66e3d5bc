package board_test

import (
	"testing"

	"github.com/zchown/haliax/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatRow(c board.Color, rank board.Rank) [board.NumSquares][]board.Piece {
	var stacks [board.NumSquares][]board.Piece
	for f := board.File(0); f < board.NumFiles; f++ {
		stacks[board.NewSquare(f, rank)] = []board.Piece{board.MakePiece(c, board.Flat)}
	}
	return stacks
}

func TestTerminalOngoingOnEmptyBoard(t *testing.T) {
	pos := board.NewGame(0)
	result := board.Terminal(pos)
	assert.False(t, result.IsTerminal())
	assert.Equal(t, board.Ongoing, result.Kind)
}

func TestTerminalRoadWinHorizontal(t *testing.T) {
	stacks := flatRow(board.White, board.Rank3)
	pos, err := board.NewPositionFromStacks(stacks, board.Black, 10, 0)
	require.NoError(t, err)

	result := board.Terminal(pos)
	require.True(t, result.IsTerminal())
	assert.Equal(t, board.RoadWin, result.Kind)
	assert.Equal(t, board.White, result.Winner)
}

func TestTerminalStandingStonesDoNotCountTowardRoad(t *testing.T) {
	var stacks [board.NumSquares][]board.Piece
	for f := board.File(0); f < board.NumFiles; f++ {
		kind := board.Flat
		if f == board.FileC {
			kind = board.Standing
		}
		stacks[board.NewSquare(f, board.Rank3)] = []board.Piece{board.MakePiece(board.White, kind)}
	}
	pos, err := board.NewPositionFromStacks(stacks, board.Black, 10, 0)
	require.NoError(t, err)

	result := board.Terminal(pos)
	assert.False(t, result.IsTerminal())
}

func TestTerminalFlatWinOnReserveExhaustion(t *testing.T) {
	// White has placed every flat (30) and its one capstone; Black still has
	// reserves, but White's exhaustion alone ends the game, board far from full. The
	// flats are stacked on a1 and the capstone sits on f6, so White has no road.
	var stacks [board.NumSquares][]board.Piece
	for i := 0; i < board.InitialFlats; i++ {
		stacks[0] = append(stacks[0], board.MakePiece(board.White, board.Flat))
	}
	stacks[board.NumSquares-1] = []board.Piece{board.MakePiece(board.White, board.Capstone)}
	pos, err := board.NewPositionFromStacks(stacks, board.Black, 10, 0)
	require.NoError(t, err)

	flats, caps := pos.Reserves(board.White)
	require.Zero(t, flats)
	require.Zero(t, caps)

	result := board.Terminal(pos)
	require.True(t, result.IsTerminal())
	assert.Equal(t, board.FlatWin, result.Kind)
	assert.Equal(t, board.White, result.Winner)
}

func TestTerminalDrawOnEqualFlatsNoKomi(t *testing.T) {
	var stacks [board.NumSquares][]board.Piece
	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		// Checkerboard colouring: no two orthogonal neighbours share a color, so
		// neither side has a road.
		c := board.White
		if (int(sq.File())+int(sq.Rank()))%2 == 1 {
			c = board.Black
		}
		stacks[sq] = []board.Piece{board.MakePiece(c, board.Flat)}
	}
	pos, err := board.NewPositionFromStacks(stacks, board.White, 36, 0)
	require.NoError(t, err)

	result := board.Terminal(pos)
	require.True(t, result.IsTerminal())
	assert.Equal(t, board.Draw, result.Kind)
}
