package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/zchown/haliax/pkg/board/tps"
	"github.com/zchown/haliax/pkg/engine"
	"github.com/zchown/haliax/pkg/search/searchctl"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(ctx context.Context) *engine.Engine {
	return engine.New(ctx, "haliax-test", "test", engine.WithOptions(engine.Options{Hash: 1}))
}

func TestNewStartsAtInitialPosition(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(ctx)

	assert.Equal(t, tps.Initial, e.Position())
}

func TestMoveAndTakeBackRoundTrips(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(ctx)

	before := e.Position()
	require.NoError(t, e.Move(ctx, "a1"))
	assert.NotEqual(t, before, e.Position())

	require.NoError(t, e.TakeBack(ctx))
	assert.Equal(t, before, e.Position())
}

func TestMoveRejectsIllegalToken(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(ctx)

	require.NoError(t, e.Move(ctx, "a1"))
	err := e.Move(ctx, "a1") // square already occupied
	assert.Error(t, err)
}

func TestTakeBackWithoutHistoryErrors(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(ctx)

	err := e.TakeBack(ctx)
	assert.Error(t, err)
}

func TestResetHaltsActiveSearchFirst(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(ctx)

	out, err := e.Analyze(ctx, searchctl.Options{NodeLimit: lang.Some(uint(1 << 20))})
	require.NoError(t, err)

	// Reset must halt the in-flight search rather than race its writes to pos.
	require.NoError(t, e.Reset(ctx, tps.Initial))

	select {
	case <-out:
	case <-time.After(time.Second):
		t.Fatal("search was not halted by Reset")
	}
}

func TestAnalyzeReturnsAMove(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(ctx)

	out, err := e.Analyze(ctx, searchctl.Options{NodeLimit: lang.Some(uint(32))})
	require.NoError(t, err)

	select {
	case pv := <-out:
		assert.True(t, pv.Move.IsValid())
	case <-time.After(5 * time.Second):
		t.Fatal("search did not complete")
	}
}

func TestAnalyzeWhileActiveErrors(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(ctx)

	_, err := e.Analyze(ctx, searchctl.Options{NodeLimit: lang.Some(uint(1 << 20))})
	require.NoError(t, err)

	_, err = e.Analyze(ctx, searchctl.Options{NodeLimit: lang.Some(uint(1))})
	assert.Error(t, err)

	_, _ = e.Halt(ctx)
}
