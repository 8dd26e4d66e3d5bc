package evalz_test

import (
	"context"
	"testing"

	"github.com/zchown/haliax/pkg/board"
	"github.com/zchown/haliax/pkg/board/tps"
	"github.com/zchown/haliax/pkg/evalz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateStartingPositionIsBalanced(t *testing.T) {
	pos, err := tps.Parse(tps.Initial, 0)
	require.NoError(t, err)

	moves := board.GenerateMoves(pos, make([]board.Move, 0, board.MoveListCap))
	priors := make([]float32, len(moves))

	v := evalz.Default.Evaluate(context.Background(), pos, moves, priors)

	// Only the tempo term differentiates the two sides on an empty board, so the
	// value should be small and positive for the side to move.
	assert.Greater(t, float64(v), 0.0)
	assert.Less(t, float64(v), 0.3)
	for _, p := range priors {
		assert.GreaterOrEqual(t, p, float32(0))
	}
}

func TestEvaluateRewardsTopFlatMajority(t *testing.T) {
	// White controls two top flats, Black none; White to move.
	pos, err := tps.Parse("1,1,x4/x6/x6/x6/x6/x6 1 3", 0)
	require.NoError(t, err)

	moves := board.GenerateMoves(pos, make([]board.Move, 0, board.MoveListCap))
	priors := make([]float32, len(moves))

	v := evalz.Default.Evaluate(context.Background(), pos, moves, priors)
	assert.Greater(t, float64(v), 0.1)
}
