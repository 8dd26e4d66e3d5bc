package board

// MoveListCap bounds the number of legal moves from any single Tak position, used to
// size caller-owned move buffers so generation never allocates.
const MoveListCap = 4 * int(NumSquares) * MaxCarry

// GenerateMoves appends every legal move from p to buf and returns the extended
// slice. It never allocates on its own; callers reuse a buf sized MoveListCap (or
// grown from nil once) across calls to keep search hot loops allocation-free.
func GenerateMoves(p *Position, buf []Move) []Move {
	if p.IsOpeningSwap() {
		return generateOpeningPlacements(p, buf)
	}
	buf = generatePlacements(p, buf)
	buf = generateSlides(p, buf)
	return buf
}

func generateOpeningPlacements(p *Position, buf []Move) []Move {
	for b := p.Occupied() ^ BoardMask; b != 0; {
		sq := b.FirstSquare()
		b = b.Clear(sq)
		buf = append(buf, NewPlaceMove(sq, Flat))
	}
	return buf
}

func generatePlacements(p *Position, buf []Move) []Move {
	flats, caps := p.Reserves(p.toMove)
	if flats == 0 && caps == 0 {
		return buf
	}
	for b := p.Occupied() ^ BoardMask; b != 0; {
		sq := b.FirstSquare()
		b = b.Clear(sq)
		if flats > 0 {
			buf = append(buf, NewPlaceMove(sq, Flat))
			buf = append(buf, NewPlaceMove(sq, Standing))
		}
		if caps > 0 {
			buf = append(buf, NewPlaceMove(sq, Capstone))
		}
	}
	return buf
}

func generateSlides(p *Position, buf []Move) []Move {
	occupied := p.Blockers()
	for b := p.Control(p.toMove); b != 0; {
		sq := b.FirstSquare()
		b = b.Clear(sq)

		stackLen := p.StackLen(sq)
		maxPickup := stackLen
		if maxPickup > MaxCarry {
			maxPickup = MaxCarry
		}
		top, _ := p.Top(sq)
		canCrush := top.Kind() == Capstone

		for d := Direction(0); d < NumDirections; d++ {
			maxSteps := NumSteps(sq, d, occupied)
			if maxSteps > maxPickup {
				maxSteps = maxPickup
			}

			if canCrush && maxSteps < MaxCarry {
				if wallSq, ok := nthFrom(sq, d, maxSteps+1); ok {
					if wallTop, ok := p.Top(wallSq); ok && wallTop.Kind() == Standing {
						for _, pat := range combinedPatterns[maxPickup][maxSteps+1] {
							buf = append(buf, NewSlideMove(sq, d, pat))
						}
						continue
					}
				}
			}
			if maxSteps >= 1 {
				for _, pat := range patterns[maxPickup][maxSteps-1] {
					buf = append(buf, NewSlideMove(sq, d, pat))
				}
			}
		}
	}
	return buf
}
