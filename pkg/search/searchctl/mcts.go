package searchctl

import (
	"context"
	"sync"
	"time"

	"github.com/zchown/haliax/pkg/board"
	"github.com/zchown/haliax/pkg/eval"
	"github.com/zchown/haliax/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
	"go.uber.org/atomic"
)

// MCTS is a search harness that runs a single search.Search call to completion (or
// until halted), the PUCT analogue of the teacher's depth-iterative harness: there is
// no notion of "one ply deeper" to loop over, so instead of streaming a PV per depth
// it streams at most one PV, once the search's own iteration/time/node limits (or an
// explicit Halt) end it. If search.Search returns an error, no PV is sent and the
// channel is closed.
type MCTS struct{}

func (MCTS) Launch(ctx context.Context, pos *board.Position, tt *search.Table, evaluator eval.Evaluator, opt Options) (Handle, <-chan search.PV) {
	out := make(chan search.PV, 1)
	h := &handle{
		init: iox.NewAsyncCloser(),
		quit: iox.NewAsyncCloser(),
	}
	go h.process(ctx, pos, tt, evaluator, opt, out)

	return h, out
}

type handle struct {
	init, quit iox.AsyncCloser
	stop       atomic.Bool

	pv search.PV
	mu sync.Mutex
}

func (h *handle) process(ctx context.Context, pos *board.Position, tt *search.Table, evaluator eval.Evaluator, opt Options, out chan search.PV) {
	defer h.init.Close()
	defer close(out)

	_, _ = EnforceTimeControl(ctx, h, opt.TimeControl, pos.ToMove())

	wctx, cancel := contextx.WithQuitCancel(ctx, h.quit.Closed())
	defer cancel()

	limits := search.Limits{}
	if v, ok := opt.DepthLimit.V(); ok {
		limits.Depth = int(v)
	}
	if v, ok := opt.NodeLimit.V(); ok {
		limits.Nodes = int(v)
	}

	start := time.Now()
	pv, err := search.Search(wctx, pos, tt, evaluator, limits, &h.stop)
	if err != nil {
		logw.Errorf(ctx, "Search failed on %v: %v", pos, err)
		return
	}
	pv.Time = time.Since(start)

	logw.Debugf(ctx, "Searched %v: %v", pos, pv)

	h.mu.Lock()
	h.pv = pv
	h.mu.Unlock()

	out <- pv
}

func (h *handle) Halt() search.PV {
	h.stop.Store(true)
	h.quit.Close()
	<-h.init.Closed()

	h.mu.Lock()
	defer h.mu.Unlock()

	return h.pv
}
