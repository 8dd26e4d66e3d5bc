package board

import (
	"fmt"
	"math/bits"
	"math/rand"
)

// slideEntry is the per-square magic-lookup record: blockers masked and multiplied by
// magic, shifted down to a dense index into the shared attacks table at offset.
type slideEntry struct {
	mask   Bitboard
	magic  uint64
	shift  uint
	offset int
}

const slideIndexBits = 10 // every square's blocker mask is exactly row+column minus self.

var (
	slideMagics  [NumSquares]slideEntry
	slideAttacks []Bitboard

	// rayMask[s][d] covers every square strictly between s and the edge of the board
	// in direction d, excluding s. rayWalk[s][d] lists the same squares in travel order.
	rayMask [NumSquares][NumDirections]Bitboard
	rayWalk [NumSquares][NumDirections][]Square
)

func init() {
	buildRays()
	buildSlideMagics(rand.New(rand.NewSource(0x5441484c414e)))
}

func buildRays() {
	for s := ZeroSquare; s < NumSquares; s++ {
		for d := Direction(0); d < NumDirections; d++ {
			cur := s
			for {
				next, ok := step(cur, d)
				if !ok {
					break
				}
				rayMask[s][d] = rayMask[s][d].Set(next)
				rayWalk[s][d] = append(rayWalk[s][d], next)
				cur = next
			}
		}
	}
}

// blockerMask returns the occupancy bits relevant to slides from s: every other square
// sharing its row or column. Always exactly slideIndexBits wide.
func blockerMask(s Square) Bitboard {
	return (BitRank(s.Rank()) | BitFile(s.File())) &^ BitMask(s)
}

// reachableFrom computes, by direct ray-walking, the squares a slide from s can reach
// given occupied: every square up to but excluding the first occupied square in each
// direction. This is the brute-force reference used once per square to populate the
// magic-indexed table; SlideAttacks never calls it.
func reachableFrom(s Square, occupied Bitboard) Bitboard {
	var reach Bitboard
	for d := Direction(0); d < NumDirections; d++ {
		for _, sq := range rayWalk[s][d] {
			if occupied.IsSet(sq) {
				break
			}
			reach = reach.Set(sq)
		}
	}
	return reach
}

// buildSlideMagics finds, for every square, a magic multiplier mapping each of the
// 2^10 blocker subsets into a table of 2^11 slots (one index bit more than the mask,
// which keeps the search short) without two subsets with different reachable sets
// sharing a slot, then bakes the reachable-squares table the multiplier indexes into.
// Candidates are sparsified by ANDing together three random draws, the standard trick
// for finding magics quickly (see any magic-bitboard rook generator).
func buildSlideMagics(r *rand.Rand) {
	const maxAttempts = 200_000

	for s := ZeroSquare; s < NumSquares; s++ {
		mask := blockerMask(s)
		if mask.PopCount() != slideIndexBits {
			panic(fmt.Sprintf("board: square %v blocker mask has %d bits, want %d", s, mask.PopCount(), slideIndexBits))
		}
		bitsSq := mask.Squares()
		shift := uint(64 - slideIndexBits - 1)
		slots := 1 << (slideIndexBits + 1)

		// subsets[i] and reach[i] are the i-th blocker subset (via the standard
		// Carry-Rippler enumeration over mask's bits) and its reachable squares.
		n := 1 << slideIndexBits
		subsets := make([]Bitboard, n)
		reach := make([]Bitboard, n)
		for i := 0; i < n; i++ {
			var occ Bitboard
			for bit, sq := range bitsSq {
				if i&(1<<bit) != 0 {
					occ = occ.Set(sq)
				}
			}
			subsets[i] = occ
			reach[i] = reachableFrom(s, occ)
		}

		used := make([]Bitboard, slots)
		seen := make([]bool, slots)

		var magic uint64
		found := false
	attempt:
		for attempt := 0; attempt < maxAttempts; attempt++ {
			magic = r.Uint64() & r.Uint64() & r.Uint64()
			if bits.OnesCount64((uint64(mask)*magic)>>shift) < 6 {
				continue // low fan-out candidates rarely index cleanly; skip early.
			}
			for i := range seen {
				seen[i] = false
			}
			for i := 0; i < n; i++ {
				idx := (uint64(subsets[i]) * magic) >> shift
				if seen[idx] && used[idx] != reach[i] {
					continue attempt
				}
				seen[idx] = true
				used[idx] = reach[i]
			}
			found = true
			break
		}
		if !found {
			panic(fmt.Sprintf("board: no magic found for square %v after %d attempts", s, maxAttempts))
		}

		offset := len(slideAttacks)
		slideAttacks = append(slideAttacks, make([]Bitboard, slots)...)
		for i := 0; i < n; i++ {
			idx := (uint64(subsets[i]) * magic) >> shift
			slideAttacks[offset+int(idx)] = reach[i]
		}

		slideMagics[s] = slideEntry{mask: mask, magic: magic, shift: shift, offset: offset}
	}
}

// SlideAttacks returns the squares reachable by a slide from s given the board's full
// occupancy bitboard (standing stones and capstones only; flats never block).
func SlideAttacks(s Square, occupied Bitboard) Bitboard {
	e := slideMagics[s]
	occ := occupied & e.mask
	idx := (uint64(occ) * e.magic) >> e.shift
	return slideAttacks[e.offset+int(idx)]
}

// NumSteps returns the number of squares a slide from s in direction d can reach
// before the first blocker (standing stone or capstone), given occupied.
func NumSteps(s Square, d Direction, occupied Bitboard) int {
	return (SlideAttacks(s, occupied) & rayMask[s][d]).PopCount()
}
