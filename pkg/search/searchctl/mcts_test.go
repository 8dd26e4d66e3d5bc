package searchctl_test

import (
	"context"
	"testing"
	"time"

	"github.com/zchown/haliax/pkg/board"
	"github.com/zchown/haliax/pkg/eval"
	"github.com/zchown/haliax/pkg/search"
	"github.com/zchown/haliax/pkg/search/searchctl"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCTSLaunchReturnsAPV(t *testing.T) {
	pos := board.NewGame(0)
	tt := search.NewTable(0)

	h, out := (searchctl.MCTS{}).Launch(context.Background(), pos, tt, eval.Uniform{}, searchctl.Options{
		NodeLimit: lang.Some(uint(64)),
	})
	require.NotNil(t, h)

	select {
	case pv := <-out:
		assert.True(t, pv.Move.IsValid())
	case <-time.After(5 * time.Second):
		t.Fatal("search did not complete")
	}
}

func TestMCTSHaltStopsALongRunningSearch(t *testing.T) {
	pos := board.NewGame(0)
	tt := search.NewTable(0)

	h, out := (searchctl.MCTS{}).Launch(context.Background(), pos, tt, eval.Uniform{}, searchctl.Options{
		NodeLimit: lang.Some(uint(1 << 24)), // large enough that Halt, not the limit, ends it
	})

	pv := h.Halt()
	assert.True(t, pv.Move.IsValid() || pv.Move == board.NoMove)

	select {
	case <-out:
	case <-time.After(5 * time.Second):
		t.Fatal("search did not stop after Halt")
	}
}
