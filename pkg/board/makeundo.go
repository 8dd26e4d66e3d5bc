package board

// Make applies m to p. The caller must ensure m was produced by GenerateMoves (or is
// otherwise known-legal) for p's current state; Make does no legality checking and
// panics on an inconsistent Move rather than attempt to recover. Use CheckedMake at
// trust boundaries (parsed PTN from a collaborator, fuzz/property tests).
func (p *Position) Make(m Move) {
	if m.IsPlace() {
		p.makePlace(m)
	} else {
		p.makeSlide(m)
	}
}

// Undo reverses the most recently made move. The caller is responsible for passing
// the exact Move just given to Make; Undo trusts this (it is not separately encoded
// in Position state, other than the crush-ring).
func (p *Position) Undo(m Move) {
	if m.IsPlace() {
		p.undoPlace(m)
	} else {
		p.undoSlide(m)
	}
}

func (p *Position) recordCrush(ply int, crushed bool) {
	p.crushedThisPly[ply%crushRingSize] = crushed
}

func (p *Position) makePlace(m Move) {
	sq := m.Square()
	kind := m.Kind()

	placeColor := p.toMove
	if p.IsOpeningSwap() {
		placeColor = p.toMove.Opponent()
	}
	piece := MakePiece(placeColor, kind)

	if kind == Capstone {
		p.capReserve[placeColor]--
	} else {
		p.flatReserve[placeColor]--
	}

	n := p.stackLen[sq]
	p.squares[sq][n] = piece
	p.stackLen[sq] = n + 1
	p.setTop(sq, piece)

	p.zobristHash ^= zobristTable[sq][placeColor][kind][0]

	p.recordCrush(p.halfMoveCount, false)
	p.toMove = p.toMove.Opponent()
	p.halfMoveCount++
}

func (p *Position) undoPlace(m Move) {
	sq := m.Square()
	kind := m.Kind()

	mover := p.toMove.Opponent()
	ply := p.halfMoveCount - 1
	placeColor := mover
	if ply < 2 {
		placeColor = mover.Opponent()
	}

	n := p.stackLen[sq]
	p.stackLen[sq] = n - 1
	p.clearTop(sq)

	if kind == Capstone {
		p.capReserve[placeColor]++
	} else {
		p.flatReserve[placeColor]++
	}

	p.zobristHash ^= zobristTable[sq][placeColor][kind][0]

	p.halfMoveCount = ply
	p.toMove = mover
}

// slideSquares returns the squares visited by a slide from sq in direction d over L
// steps, in travel order (index L-1 is the final square, "end").
func slideSquares(sq Square, d Direction, L int) [MaxCarry]Square {
	var out [MaxCarry]Square
	cur := sq
	for i := 0; i < L; i++ {
		next, ok := step(cur, d)
		if !ok {
			panic("board: slide stepped off the board -- move was not legally generated")
		}
		out[i] = next
		cur = next
	}
	return out
}

func (p *Position) makeSlide(m Move) {
	sq := m.Square()
	dir := m.Direction()
	pattern := m.Pattern()

	k := m.PickupCount()
	L := m.StepCount()
	drops := DecodePattern(pattern)
	visited := slideSquares(sq, dir, L)

	// Snapshot every touched square's windowed hash contribution before mutating.
	var touched [MaxCarry + 1]Square
	var oldWindow [MaxCarry + 1]ZobristHash
	touched[0] = sq
	oldWindow[0] = zobristWindow(sq, p.Stack(sq))
	for i := 0; i < L; i++ {
		touched[i+1] = visited[i]
		oldWindow[i+1] = zobristWindow(visited[i], p.Stack(visited[i]))
	}

	end := visited[L-1]
	n0 := int(p.stackLen[sq])
	var movedArr [MaxCarry]Piece
	moved := movedArr[:k]
	copy(moved, p.squares[sq][n0-k:n0])

	crushed := false
	if endTop, ok := p.Top(end); ok && endTop.Kind() == Standing {
		p.squares[end][p.stackLen[end]-1] = MakePiece(endTop.Color(), Flat)
		crushed = true
	}

	p.stackLen[sq] -= uint8(k)
	if n := p.stackLen[sq]; n == 0 {
		p.clearTop(sq)
	} else {
		p.setTop(sq, p.squares[sq][n-1])
	}

	movedIdx := 0
	for i := 0; i < L; i++ {
		dst := visited[i]
		cnt := int(drops[i])
		for j := 0; j < cnt; j++ {
			n := p.stackLen[dst]
			p.squares[dst][n] = moved[movedIdx]
			p.stackLen[dst] = n + 1
			movedIdx++
		}
		p.setTop(dst, p.squares[dst][p.stackLen[dst]-1])
	}

	for i, sqi := range touched[:L+1] {
		p.zobristHash ^= oldWindow[i]
		p.zobristHash ^= zobristWindow(sqi, p.Stack(sqi))
	}

	p.recordCrush(p.halfMoveCount, crushed)
	p.toMove = p.toMove.Opponent()
	p.halfMoveCount++
}

func (p *Position) undoSlide(m Move) {
	sq := m.Square()
	dir := m.Direction()
	pattern := m.Pattern()

	k := m.PickupCount()
	L := m.StepCount()
	drops := DecodePattern(pattern)
	visited := slideSquares(sq, dir, L)
	end := visited[L-1]

	ply := p.halfMoveCount - 1
	crushed := p.crushedThisPly[ply%crushRingSize]

	var touched [MaxCarry + 1]Square
	var oldWindow [MaxCarry + 1]ZobristHash
	touched[0] = sq
	oldWindow[0] = zobristWindow(sq, p.Stack(sq))
	for i := 0; i < L; i++ {
		touched[i+1] = visited[i]
		oldWindow[i+1] = zobristWindow(visited[i], p.Stack(visited[i]))
	}

	var recoveredArr [MaxCarry]Piece
	recovered := recoveredArr[:k]
	idx := k - 1
	for i := L - 1; i >= 0; i-- {
		dst := visited[i]
		cnt := int(drops[i])
		for j := 0; j < cnt; j++ {
			n := p.stackLen[dst]
			recovered[idx] = p.squares[dst][n-1]
			p.stackLen[dst] = n - 1
			idx--
		}
		if n := p.stackLen[dst]; n == 0 {
			p.clearTop(dst)
		} else {
			p.setTop(dst, p.squares[dst][n-1])
		}
	}

	if crushed {
		n := p.stackLen[end]
		top := p.squares[end][n-1]
		p.squares[end][n-1] = MakePiece(top.Color(), Standing)
		p.setTop(end, p.squares[end][n-1])
	}

	n := p.stackLen[sq]
	for i := 0; i < k; i++ {
		p.squares[sq][n] = recovered[i]
		n++
	}
	p.stackLen[sq] = n
	p.setTop(sq, p.squares[sq][n-1])

	for i, sqi := range touched[:L+1] {
		p.zobristHash ^= oldWindow[i]
		p.zobristHash ^= zobristWindow(sqi, p.Stack(sqi))
	}

	p.recordCrush(ply, false)
	p.halfMoveCount = ply
	p.toMove = p.toMove.Opponent()
}

// CheckedMake validates m against p before applying it, returning a *MoveError
// instead of corrupting state or panicking. It is the entry point for any move not
// already known-legal (a parsed PTN token from a collaborator, a fuzz corpus).
func (p *Position) CheckedMake(m Move) error {
	if !m.IsValid() || !m.Square().IsValid() {
		return newMoveError(m, "malformed move")
	}
	sq := m.Square()

	if m.IsPlace() {
		if !p.IsEmpty(sq) {
			return newMoveError(m, "square is occupied")
		}
		if p.IsOpeningSwap() && m.Kind() != Flat {
			return newMoveError(m, "opening swap only allows placing a flat")
		}
		placeColor := p.toMove
		if p.IsOpeningSwap() {
			placeColor = p.toMove.Opponent()
		}
		flats, caps := p.Reserves(placeColor)
		if m.Kind() == Capstone && caps == 0 {
			return newMoveError(m, "no capstone reserve")
		}
		if m.Kind() != Capstone && flats == 0 {
			return newMoveError(m, "no flat reserve")
		}
		p.Make(m)
		return nil
	}

	top, ok := p.Top(sq)
	if !ok {
		return newMoveError(m, "slide from empty square")
	}
	if top.Color() != p.toMove {
		return newMoveError(m, "slide from opponent's stack")
	}
	k := m.PickupCount()
	if k < 1 || k > MaxCarry || k > p.StackLen(sq) {
		return newMoveError(m, "invalid pickup count")
	}
	L := m.StepCount()
	if L < 1 || L > MaxCarry {
		return newMoveError(m, "invalid step count")
	}
	end, ok := nthFrom(sq, m.Direction(), L)
	if !ok {
		return newMoveError(m, "slide leaves the board")
	}
	if endTop, ok := p.Top(end); ok {
		switch endTop.Kind() {
		case Capstone:
			return newMoveError(m, "slide blocked by a capstone")
		case Standing:
			if top.Kind() != Capstone {
				return newMoveError(m, "only a capstone may crush a wall")
			}
			if DecodePattern(m.Pattern())[L-1] != 1 {
				return newMoveError(m, "crush must end in a single-stone drop")
			}
		}
	}
	for i := 0; i < L-1; i++ {
		mid, _ := nthFrom(sq, m.Direction(), i+1)
		if b, ok := p.Top(mid); ok && b.Kind() != Flat {
			return newMoveError(m, "slide passes through a standing stone or capstone")
		}
	}
	p.Make(m)
	return nil
}
