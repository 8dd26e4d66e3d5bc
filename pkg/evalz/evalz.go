// Package evalz is the default positional Evaluator MCTS falls back to when no
// trained (NN or otherwise) collaborator supplies one. Its term weights and scoring
// shape are grounded directly on a reference Tak engine's static evaluation function:
// top-flat/standing/capstone counts, a buried-flat count, a captured-stack bonus
// capped at board-size-1, connected-group size bonuses and a liberties count.
package evalz

import (
	"context"
	"math"

	"github.com/zchown/haliax/pkg/board"
)

// Weights are the per-term coefficients of the positional score, in the same raw
// integer units as a reference Tak engine's evaluator; the final integer score is
// squashed into [-1, 1] by Default.Evaluate, not compared to these directly.
type Weights struct {
	TopFlat  int
	Standing int
	Capstone int

	Flat     int // per buried stone of this color
	Captured int // per stone buried under this color's controlling top

	Liberties int

	Tempo int

	// Groups[n] is the bonus for a connected road-capable group whose bounding box
	// spans n squares in a dimension (added once per dimension, so a 4x2 group
	// scores Groups[4]+Groups[2]).
	Groups [board.Size + 1]int
}

// DefaultWeights mirrors the reference engine's tuned defaults.
var DefaultWeights = Weights{
	TopFlat:  400,
	Standing: 200,
	Capstone: 300,

	Flat:      100,
	Captured:  25,
	Liberties: 20,
	Tempo:     250,

	Groups: [board.Size + 1]int{0, 0, 0, 100, 300, 500, 500},
}

// scale converts the raw integer score (comparable in magnitude to a few thousand on
// a 6x6 board) into the [-1, 1] range MCTS expects. Chosen so that a one-sided
// material edge of a few top flats (worth TopFlat each) already produces a value
// solidly toward +/-1 without saturating on a small tempo-only edge.
const scale = 1200.0

// Default is the positional Evaluator built from DefaultWeights.
var Default = New(DefaultWeights)

// Evaluator is a tunable positional Evaluator; see Weights for its terms.
type Evaluator struct {
	w Weights
}

// New returns an Evaluator using the given weights.
func New(w Weights) Evaluator {
	return Evaluator{w: w}
}

func (e Evaluator) Evaluate(_ context.Context, pos *board.Position, moves []board.Move, priors []float32) board.Value {
	score := rawScore(&e.w, pos)
	fillPriors(&e.w, pos, moves, priors)
	return squash(score)
}

func squash(score int) board.Value {
	return board.Value(math.Tanh(float64(score) / scale))
}

// rawScore returns the position's score from pos's side to move, in the reference
// engine's raw integer units.
func rawScore(w *Weights, pos *board.Position) int {
	var white, black int

	if pos.ToMove() == board.White {
		white += w.Tempo
	} else {
		black += w.Tempo
	}

	white += (pos.Control(board.White) &^ pos.Standing() &^ pos.Capstones()).PopCount() * w.TopFlat
	black += (pos.Control(board.Black) &^ pos.Standing() &^ pos.Capstones()).PopCount() * w.TopFlat
	white += (pos.Control(board.White) & pos.Standing()).PopCount() * w.Standing
	black += (pos.Control(board.Black) & pos.Standing()).PopCount() * w.Standing
	white += (pos.Control(board.White) & pos.Capstones()).PopCount() * w.Capstone
	black += (pos.Control(board.Black) & pos.Capstones()).PopCount() * w.Capstone

	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		h := pos.StackLen(sq)
		if h <= 1 {
			continue
		}
		stack := pos.Stack(sq)
		buried := stack[:h-1]

		var whiteBuried, blackBuried int
		for _, p := range buried {
			if p.Color() == board.White {
				whiteBuried++
			} else {
				blackBuried++
			}
		}
		white += whiteBuried * w.Flat
		black += blackBuried * w.Flat

		captured := h - 1
		if captured > board.Size-1 {
			captured = board.Size - 1
		}
		top, _ := pos.Top(sq)
		if top.Color() == board.White {
			white += captured * w.Captured
		} else {
			black += captured * w.Captured
		}
	}

	white += scoreGroups(w, pos.Analyze(board.White))
	black += scoreGroups(w, pos.Analyze(board.Black))

	white += pos.Liberties(board.White) * w.Liberties
	black += pos.Liberties(board.Black) * w.Liberties

	if pos.ToMove() == board.White {
		return white - black
	}
	return black - white
}

func scoreGroups(w *Weights, a board.Analysis) int {
	score := 0
	for _, g := range a.Groups {
		width, height := dimensions(g)
		score += w.Groups[width] + w.Groups[height]
	}
	return score
}

// dimensions returns the bounding-box width and height of a (non-empty) group of
// squares: the spread of files and ranks it touches, each in [1, board.Size].
func dimensions(g board.Bitboard) (width, height int) {
	minFile, maxFile := int(board.Size), -1
	minRank, maxRank := int(board.Size), -1
	for _, sq := range g.Squares() {
		f, r := int(sq.File()), int(sq.Rank())
		if f < minFile {
			minFile = f
		}
		if f > maxFile {
			maxFile = f
		}
		if r < minRank {
			minRank = r
		}
		if r > maxRank {
			maxRank = r
		}
	}
	return maxFile - minFile + 1, maxRank - minRank + 1
}

// fillPriors assigns each move a non-negative weight biased by the same terms the
// score uses: placing a capstone or flat is weighted by its top-piece value, and a
// slide that crushes a wall gets the capstone weight, since both directly grow the
// mover's controlled-square count the way the static score already rewards.
func fillPriors(w *Weights, pos *board.Position, moves []board.Move, priors []float32) {
	for i, m := range moves {
		priors[i] = 1
		if m.IsPlace() {
			switch m.Kind() {
			case board.Capstone:
				priors[i] = float32(w.Capstone)
			case board.Standing:
				priors[i] = float32(w.Standing)
			default:
				priors[i] = float32(w.TopFlat)
			}
			continue
		}
		if isCrush(pos, m) {
			priors[i] = float32(w.Capstone)
		}
	}
}

func isCrush(pos *board.Position, m board.Move) bool {
	drops := board.DecodePattern(m.Pattern())
	if drops[len(drops)-1] != 1 {
		return false
	}
	end, ok := board.NthFrom(m.Square(), m.Direction(), m.StepCount())
	if !ok {
		return false
	}
	top, ok := pos.Top(end)
	return ok && top.Kind() == board.Standing
}
