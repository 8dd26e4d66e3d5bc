// Package engine ties the board, evaluator and search packages into the stateful
// object a driver (pkg/engine/tei, cmd/haliax) actually talks to: one live Position,
// its move history, and at most one active search at a time.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/zchown/haliax/pkg/board"
	"github.com/zchown/haliax/pkg/board/ptn"
	"github.com/zchown/haliax/pkg/board/tps"
	"github.com/zchown/haliax/pkg/eval"
	"github.com/zchown/haliax/pkg/evalz"
	"github.com/zchown/haliax/pkg/search"
	"github.com/zchown/haliax/pkg/search/searchctl"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var version = build.NewVersion(0, 1, 0)

// Options are engine creation/runtime options.
type Options struct {
	// Hash is the search arena size in MB. If zero, the default (16 MiB) is used.
	Hash uint
	// Noise jitters leaf evaluations by up to half this much either way, in [-1, 1] units, so
	// otherwise-deterministic search doesn't always pick the same move among ties.
	Noise float32
	// Komi is the flat-win komi, in half-flats (e.g. 4 == 2.0 flats).
	Komi uint8
}

func (o Options) String() string {
	return fmt.Sprintf("{hash=%vMB, noise=%v, komi=%v}", o.Hash, o.Noise, o.Komi)
}

// Engine encapsulates game-playing logic, search and evaluation for a single game in
// progress. It is the single owner of its Position; pkg/search walks and restores
// that Position in place rather than cloning it, so Engine serializes every access
// through mu and always halts an active search before mutating state out from
// under it.
type Engine struct {
	name, author string

	launcher searchctl.Launcher
	seed     int64
	opts     Options

	pos       *board.Position
	history   []board.Move
	tt        *search.Table
	evaluator eval.Evaluator

	active searchctl.Handle
	mu     sync.Mutex
}

// Option is an engine creation option.
type Option func(*Engine)

// WithOptions sets default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// WithEvaluator overrides the default positional evaluator (pkg/evalz), e.g. with a
// TEI/NN-backed collaborator. Out of scope for Haliax's core itself, but the seam is
// here for one.
func WithEvaluator(evaluator eval.Evaluator) Option {
	return func(e *Engine) {
		e.evaluator = evaluator
	}
}

// WithSeed fixes the evaluator-noise random seed instead of the default of zero.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

func New(ctx context.Context, name, author string, opts ...Option) *Engine {
	e := &Engine{
		name:      name,
		author:    author,
		launcher:  searchctl.MCTS{},
		evaluator: evalz.Default,
	}
	for _, fn := range opts {
		fn(e)
	}

	_ = e.Reset(ctx, tps.Initial)

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.opts
}

func (e *Engine) SetHash(mb uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Hash = mb
	e.tt = search.NewTable(int(mb) << 20)
}

func (e *Engine) SetNoise(limit float32) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Noise = limit
	e.applyNoise()
}

func (e *Engine) applyNoise() {
	base := evalz.Default
	if e.opts.Noise <= 0 {
		e.evaluator = base
		return
	}
	e.evaluator = eval.NewNoise(base, e.opts.Noise, e.seed)
}

// Position returns the current position in TPS format. Convenience function.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return tps.Format(e.pos)
}

// Reset resets the engine to the position given in TPS format.
func (e *Engine) Reset(ctx context.Context, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Reset %v, hash=%vMB, noise=%v, komi=%v", position, e.opts.Hash, e.opts.Noise, e.opts.Komi)

	_, _ = e.haltSearchIfActive(ctx)

	pos, err := tps.Parse(position, e.opts.Komi)
	if err != nil {
		return err
	}
	e.pos = pos
	e.history = e.history[:0]

	hashBytes := 0
	if e.opts.Hash > 0 {
		hashBytes = int(e.opts.Hash) << 20
	}
	e.tt = search.NewTable(hashBytes)
	e.applyNoise()

	logw.Infof(ctx, "New position: %v", e.pos)
	return nil
}

// Move applies the given PTN move token, usually an opponent's move.
func (e *Engine) Move(ctx context.Context, token string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Move %v", token)

	m, err := ptn.Parse(token)
	if err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	_, _ = e.haltSearchIfActive(ctx)

	if err := e.pos.CheckedMake(m); err != nil {
		return fmt.Errorf("illegal move: %w", err)
	}
	e.history = append(e.history, m)

	logw.Infof(ctx, "Move %v: %v", m, e.pos)
	return nil
}

// TakeBack undoes the latest move.
func (e *Engine) TakeBack(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, _ = e.haltSearchIfActive(ctx)

	if len(e.history) == 0 {
		return fmt.Errorf("no move to take back")
	}
	m := e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]
	e.pos.Undo(m)

	logw.Infof(ctx, "Takeback %v", m)
	return nil
}

// Analyze launches a search of the current position.
func (e *Engine) Analyze(ctx context.Context, opt searchctl.Options) (<-chan search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := opt.DepthLimit.V(); !ok {
		if _, hasNodes := opt.NodeLimit.V(); !hasNodes {
			opt.DepthLimit = lang.Some(uint(12))
		}
	}

	logw.Infof(ctx, "Analyze %v, opt=%v", e.pos, opt)

	if e.active != nil {
		return nil, fmt.Errorf("search already active")
	}

	handle, out := e.launcher.Launch(ctx, e.pos, e.tt, e.evaluator, opt)
	e.active = handle
	return out, nil
}

// Halt halts the active search and returns the principal variation, if any.
func (e *Engine) Halt(ctx context.Context) (search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Halt")

	pv, ok := e.haltSearchIfActive(ctx)
	if !ok {
		return search.PV{}, fmt.Errorf("no active search")
	}
	return pv, nil
}

func (e *Engine) haltSearchIfActive(ctx context.Context) (search.PV, bool) {
	if e.active != nil {
		pv := e.active.Halt()
		logw.Infof(ctx, "Search on %v halted: %v", e.pos, pv)

		e.active = nil
		return pv, true
	}
	return search.PV{}, false
}
