package board

import (
	"math/bits"
	"strings"
)

// Bitboard is a bit-wise representation of the 36 valid squares of the board. Bit i
// corresponds to Square(i). It relies on CPU support for popcount and bitscan.
type Bitboard uint64

const EmptyBitboard Bitboard = 0

// BoardMask covers exactly the 36 valid squares.
var BoardMask = func() Bitboard {
	var b Bitboard
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		b |= BitMask(sq)
	}
	return b
}()

// BitMask returns a bitboard with the given square populated.
func BitMask(sq Square) Bitboard {
	return Bitboard(1) << sq
}

func (b Bitboard) IsSet(sq Square) bool {
	return b&BitMask(sq) != 0
}

func (b Bitboard) Set(sq Square) Bitboard {
	return b | BitMask(sq)
}

func (b Bitboard) Clear(sq Square) Bitboard {
	return b &^ BitMask(sq)
}

// PopCount returns the population count of the bitboard, i.e., the number of 1s.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// FirstSquare returns the lowest-indexed set square. Returns NumSquares if empty.
func (b Bitboard) FirstSquare() Square {
	if b == 0 {
		return NumSquares
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// Squares returns every set square, in increasing order. Only used off the hot path
// (debugging, tests); move generation iterates bitboards directly.
func (b Bitboard) Squares() []Square {
	var ret []Square
	for b != 0 {
		sq := b.FirstSquare()
		ret = append(ret, sq)
		b = b.Clear(sq)
	}
	return ret
}

// String renders the bitboard as 6 rows of 6 cells, rank 6 first (matching TPS order).
func (b Bitboard) String() string {
	var sb strings.Builder
	for y := int(Size) - 1; y >= 0; y-- {
		if y != int(Size)-1 {
			sb.WriteRune('/')
		}
		for x := 0; x < Size; x++ {
			sq := NewSquare(File(x), Rank(y))
			if b.IsSet(sq) {
				sb.WriteRune('X')
			} else {
				sb.WriteRune('-')
			}
		}
	}
	return sb.String()
}

// BitRank returns a bitboard for every square of the given rank.
func BitRank(r Rank) Bitboard {
	var b Bitboard
	for f := File(0); f < NumFiles; f++ {
		b = b.Set(NewSquare(f, r))
	}
	return b
}

// BitFile returns a bitboard for every square of the given file.
func BitFile(f File) Bitboard {
	var b Bitboard
	for r := Rank(0); r < NumRanks; r++ {
		b = b.Set(NewSquare(f, r))
	}
	return b
}

var (
	rankMasks [NumRanks]Bitboard
	fileMasks [NumFiles]Bitboard
)

func init() {
	for r := Rank(0); r < NumRanks; r++ {
		rankMasks[r] = BitRank(r)
	}
	for f := File(0); f < NumFiles; f++ {
		fileMasks[f] = BitFile(f)
	}
}

// shiftNorth/South/East/West move every bit of b one square in the given direction,
// dropping bits that would fall off the board. Used by road flood-fill and liberties.

func shiftNorth(b Bitboard) Bitboard {
	return (b << Size) & BoardMask
}

func shiftSouth(b Bitboard) Bitboard {
	return (b >> Size) & BoardMask
}

func shiftEast(b Bitboard) Bitboard {
	return (b &^ fileMasks[FileF]) << 1 & BoardMask
}

func shiftWest(b Bitboard) Bitboard {
	return (b &^ fileMasks[FileA]) >> 1 & BoardMask
}

// grow returns b with every square orthogonally adjacent to b added, clipped to within.
func grow(b, within Bitboard) Bitboard {
	return (shiftNorth(b) | shiftSouth(b) | shiftEast(b) | shiftWest(b) | b) & within
}
