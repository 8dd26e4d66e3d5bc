// perft is a movegen debugging tool. See: https://www.chessprogramming.org/Perft_Results.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/zchown/haliax/pkg/board"
	"github.com/zchown/haliax/pkg/board/ptn"
	"github.com/zchown/haliax/pkg/board/tps"
	"github.com/seekerror/logw"
)

var (
	depth    = flag.Int("depth", 4, "Search depth")
	position = flag.String("tps", "", "Start position (default to standard)")
	komi     = flag.Uint("komi", 0, "Flat-win komi, in half-flats")
	divide   = flag.Bool("divide", false, "Divide counts by initial move")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	if *position == "" {
		*position = tps.Initial
	}

	pos, err := tps.Parse(*position, uint8(*komi))
	if err != nil {
		logw.Exitf(ctx, "Invalid tps '%v': %v", *position, err)
	}

	for i := 1; i <= *depth; i++ {
		start := time.Now()
		nodes := perft(pos, i, *divide && i == *depth)
		duration := time.Since(start)

		fmt.Printf("perft,%v,%v,%v,%v\n", *position, i, nodes, duration.Microseconds())
	}
}

// perft counts the leaf positions reachable from pos in exactly depth plies. If a
// position is already terminal at depth > 0, it contributes zero leaves, matching the
// convention that a finished game has no further plies to count.
func perft(pos *board.Position, depth int, d bool) int64 {
	if depth == 0 {
		return 1
	}
	if board.Terminal(pos).IsTerminal() {
		return 0
	}

	var nodes int64
	moves := board.GenerateMoves(pos, make([]board.Move, 0, board.MoveListCap))
	for _, m := range moves {
		pos.Make(m)
		count := perft(pos, depth-1, false)
		pos.Undo(m)

		if d {
			fmt.Printf("%v: %v\n", ptn.Format(m, false), count)
		}
		nodes += count
	}
	return nodes
}
