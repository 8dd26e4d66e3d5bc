// Package searchctl contains search-control functionality: translating engine-level
// depth/node caps into a single search.Limits, enforcing clock time by halting the
// search, and managing the launch/halt protocol around a running search.Search call.
package searchctl

import (
	"context"
	"fmt"
	"strings"

	"github.com/zchown/haliax/pkg/board"
	"github.com/zchown/haliax/pkg/eval"
	"github.com/zchown/haliax/pkg/search"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Options hold dynamic search options. The user may change these on a particular
// search, mirroring the teacher's searchctl.Options.
type Options struct {
	// DepthLimit, if set, is read as 2^min(DepthLimit,16) search iterations.
	DepthLimit lang.Optional[uint]
	// NodeLimit, if set, caps the search to the given number of iterations.
	NodeLimit lang.Optional[uint]
	// TimeControl, if set, limits the search to the given clock parameters.
	TimeControl lang.Optional[TimeControl]
}

func (o Options) String() string {
	var ret []string
	if v, ok := o.DepthLimit.V(); ok {
		ret = append(ret, fmt.Sprintf("depth=%v", v))
	}
	if v, ok := o.NodeLimit.V(); ok {
		ret = append(ret, fmt.Sprintf("nodes=%v", v))
	}
	if v, ok := o.TimeControl.V(); ok {
		ret = append(ret, fmt.Sprintf("time=%v", v))
	}
	return fmt.Sprintf("[%v]", strings.Join(ret, ", "))
}

// Launcher is an interface for managing searches.
type Launcher interface {
	// Launch a new search from pos using tt as its node/edge arena and evaluator to
	// score leaves. pos is walked and restored in place, the same way the teacher's
	// Launch expected an exclusive (forked) board -- callers own pos for the
	// duration of the search and must not mutate it until Halt returns. The search
	// can be stopped at any time.
	Launch(ctx context.Context, pos *board.Position, tt *search.Table, evaluator eval.Evaluator, opt Options) (Handle, <-chan search.PV)
}

// Handle is an interface for the engine to manage a running search.
type Handle interface {
	// Halt halts the search, if running, and returns its best PV so far. Idempotent.
	Halt() search.PV
}
