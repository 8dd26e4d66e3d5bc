// Package tei contains a driver for using the engine under a Tak Engine Interface
// (TEI) style protocol, the UCI-shaped stdin/stdout handshake Haliax's external
// collaborators (a self-play harness, a GUI) speak against. TEI itself -- the wire
// protocol a real GUI expects -- is an external collaborator's concern; this driver
// demonstrates Haliax's own operations (reset/move/analyze/halt) the way the
// teacher's pkg/engine/uci demonstrates morlock's, using the same command-dispatch
// idiom.
package tei

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zchown/haliax/pkg/board"
	"github.com/zchown/haliax/pkg/board/ptn"
	"github.com/zchown/haliax/pkg/board/tps"
	"github.com/zchown/haliax/pkg/engine"
	"github.com/zchown/haliax/pkg/search"
	"github.com/zchown/haliax/pkg/search/searchctl"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"go.uber.org/atomic"
)

// ProtocolName is the handshake token that selects this driver, mirroring uci's.
const ProtocolName = "tei"

// Driver implements a TEI-shaped driver for an engine. It is activated if sent "tei".
type Driver struct {
	e *engine.Engine

	out chan<- string

	active atomic.Bool
	ponder chan search.PV

	quit   chan struct{}
	closed atomic.Bool
}

func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		e:      e,
		out:    out,
		ponder: make(chan search.PV, 400),
		quit:   make(chan struct{}),
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) Close() {
	if d.closed.CAS(false, true) {
		close(d.quit)
	}
}

func (d *Driver) Closed() <-chan struct{} {
	return d.quit
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "TEI protocol initialized")

	d.out <- fmt.Sprintf("id name %v", d.e.Name())
	d.out <- fmt.Sprintf("id author %v", d.e.Author())
	d.out <- "option name Hash type spin default 16 min 0 max 4096"
	d.out <- "option name Noise type spin default 0 min 0 max 1000"
	d.out <- "option name Komi type spin default 0 min 0 max 8"
	d.out <- "teiok"

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}

			parts := strings.Split(strings.TrimSpace(line), " ")
			if len(parts) == 0 {
				break
			}

			cmd := parts[0]
			args := parts[1:]

			switch strings.ToLower(cmd) {
			case "isready":
				d.out <- "readyok"

			case "setoption":
				// setoption name <id> value <x>
				var name, value string
				if len(args) > 1 {
					name = args[1]
				}
				if len(args) > 3 {
					value = args[3]
				}
				switch name {
				case "Hash":
					if n, err := strconv.Atoi(value); err == nil {
						d.e.SetHash(uint(n))
					}
				case "Noise":
					if n, err := strconv.Atoi(value); err == nil {
						d.e.SetNoise(float32(n) / 1000)
					}
				}

			case "teinewgame":
				d.ensureInactive(ctx)

			case "position":
				// position [tps <tpsstring> | startpos] moves <move1> ... <movei>
				d.ensureInactive(ctx)

				position := tps.Initial
				rest := args
				if len(args) > 0 && args[0] == "tps" {
					end := 1
					for end < len(args) && args[end] != "moves" {
						end++
					}
					position = strings.Join(args[1:end], " ")
					rest = args[end:]
				}

				if err := d.e.Reset(ctx, position); err != nil {
					logw.Errorf(ctx, "Invalid position: %v", line)
					return
				}

				move := false
				for _, arg := range rest {
					if arg == "moves" {
						move = true
						continue
					}
					if !move {
						continue
					}
					if err := d.e.Move(ctx, arg); err != nil {
						logw.Errorf(ctx, "Invalid position move '%v': %v: %v", arg, line, err)
						return
					}
				}

			case "go":
				// go [depth <x> | nodes <x> | movetime <x> | infinite]
				d.ensureInactive(ctx)

				var opt searchctl.Options
				infinite := false
				timeout := time.Duration(0)

				for i := 0; i < len(args); i++ {
					switch args[i] {
					case "depth", "nodes", "movetime":
						cmd := args[i]
						i++
						if i == len(args) {
							logw.Errorf(ctx, "No argument for %v: %v", cmd, line)
							return
						}
						n, err := strconv.Atoi(args[i])
						if err != nil {
							logw.Errorf(ctx, "Invalid argument for %v: %v", line, err)
							return
						}
						switch cmd {
						case "depth":
							opt.DepthLimit = lang.Some(uint(n))
						case "nodes":
							opt.NodeLimit = lang.Some(uint(n))
						case "movetime":
							timeout = time.Millisecond * time.Duration(n)
						}

					case "infinite":
						infinite = true
					}
				}

				out, err := d.e.Analyze(ctx, opt)
				if err != nil {
					logw.Errorf(ctx, "Analyze failed: %v", err)
					return
				}
				d.active.Store(true)

				go func() {
					var last search.PV
					for pv := range out {
						last = pv
						d.ponder <- pv
					}
					if !infinite {
						d.searchCompleted(ctx, last)
					}
				}()

				if timeout > 0 {
					time.AfterFunc(timeout, func() {
						_, _ = d.e.Halt(ctx)
					})
				}

			case "stop":
				pv, err := d.e.Halt(ctx)
				if err == nil {
					d.searchCompleted(ctx, pv)
				}

			case "quit":
				return

			default:
				logw.Warningf(ctx, "Unknown command '%v': %v", cmd, args)
			}

		case pv := <-d.ponder:
			if d.active.Load() {
				d.out <- printPV(pv)
			}

		case <-d.quit:
			d.ensureInactive(ctx)

			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

func (d *Driver) ensureInactive(ctx context.Context) {
	d.active.Store(false)
	_, _ = d.e.Halt(ctx)
}

func (d *Driver) searchCompleted(ctx context.Context, pv search.PV) {
	if d.active.CAS(true, false) {
		if pv.Move.IsValid() {
			d.out <- printPV(pv)
			d.out <- fmt.Sprintf("bestmove %v", printMove(pv.Move))
		} else {
			d.out <- "bestmove 0000"
		}
	} // else: stale or duplicate result
}

func printPV(pv search.PV) string {
	parts := []string{"info"}
	if pv.Iterations > 0 {
		parts = append(parts, fmt.Sprintf("iterations %v", pv.Iterations))
	}
	if pv.Nodes > 0 {
		parts = append(parts, fmt.Sprintf("nodes %v", pv.Nodes))
	}
	if pv.Time > 0 {
		parts = append(parts, fmt.Sprintf("time %v", pv.Time.Milliseconds()))
	}
	parts = append(parts, fmt.Sprintf("score %v", pv.Value))
	if pv.Move.IsValid() {
		parts = append(parts, fmt.Sprintf("pv %v", printMove(pv.Move)))
	}
	return strings.Join(parts, " ")
}

// printMove renders m as a PTN token. Whether a slide crushes a wall is cosmetic
// notation (the trailing "*"), not part of the move's semantics or its encoding, and
// isn't recoverable from m alone without the position it was played against; PV
// output omits it rather than re-deriving position state the caller no longer has.
func printMove(m board.Move) string {
	return ptn.Format(m, false)
}
