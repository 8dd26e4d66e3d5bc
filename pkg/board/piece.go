package board

import "fmt"

// Kind represents a stone type, independent of color. 2 bits.
type Kind uint8

const (
	Flat Kind = iota
	Standing
	Capstone

	ZeroKind Kind = 0
	NumKinds Kind = 3
)

func (k Kind) IsValid() bool {
	return k <= Capstone
}

// IsRoad reports whether a top stone of this kind counts towards a road:
// flats and capstones do, standing stones (walls) do not.
func (k Kind) IsRoad() bool {
	return k == Flat || k == Capstone
}

func (k Kind) String() string {
	switch k {
	case Flat:
		return ""
	case Standing:
		return "S"
	case Capstone:
		return "C"
	default:
		return "?"
	}
}

// Piece is a single stone: a color and a kind. 3 bits, packed into a byte so that
// a Square's stack can be a plain array with no per-piece heap allocation.
type Piece uint8

const NoPiece Piece = 0xff

func MakePiece(c Color, k Kind) Piece {
	return Piece(c)<<2 | Piece(k)
}

func (p Piece) Color() Color {
	return Color(p >> 2)
}

func (p Piece) Kind() Kind {
	return Kind(p & 0x3)
}

func (p Piece) IsValid() bool {
	return p != NoPiece && p.Color().IsValid() && p.Kind().IsValid()
}

func (p Piece) String() string {
	if p == NoPiece {
		return "-"
	}
	return fmt.Sprintf("%v%v", p.Color(), p.Kind())
}
