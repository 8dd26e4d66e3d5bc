package board

// Analysis is a cached, lazily-recomputed summary of one color's connectivity: its
// road mask (flat and capstone tops) and the mask's connected components. It is
// derived state, invalidated by every make/undo and rebuilt on next access -- not
// itself subject to the position invariants in spec.md section 3.
type Analysis struct {
	RoadMask Bitboard
	Groups   []Bitboard
}

// GroupSizes returns the population count of each connected component, in the order
// of Groups (by each group's lowest square); the sizes are not sorted.
func (a Analysis) GroupSizes() []int {
	sizes := make([]int, len(a.Groups))
	for i, g := range a.Groups {
		sizes[i] = g.PopCount()
	}
	return sizes
}

// Analyze returns c's cached Analysis, recomputing it if the position has changed
// since the last call for this color.
func (p *Position) Analyze(c Color) Analysis {
	if p.analysisValid[c] {
		return p.analysis[c]
	}

	mask := p.Control(c) &^ p.standingTop
	var groups []Bitboard
	for remaining := mask; remaining != 0; {
		seed := remaining.FirstSquare()
		frontier := BitMask(seed)
		for {
			next := grow(frontier, mask)
			if next == frontier {
				break
			}
			frontier = next
		}
		groups = append(groups, frontier)
		remaining &^= frontier
	}

	a := Analysis{RoadMask: mask, Groups: groups}
	p.analysis[c] = a
	p.analysisValid[c] = true
	return a
}

// Liberties returns the number of empty squares orthogonally adjacent to c's
// road-capable (flat/capstone) squares, not themselves occupied by c.
func (p *Position) Liberties(c Color) int {
	road := p.Control(c) &^ p.standingTop
	within := (^p.Control(c.Opponent())) & BoardMask
	return (grow(road, within) &^ p.Control(c)).PopCount()
}
