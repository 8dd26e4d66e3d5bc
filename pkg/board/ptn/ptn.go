// Package ptn parses and prints individual Portable Tak Notation move tokens. A full
// PTN game tree is out of scope; only the move-token grammar is implemented.
package ptn

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zchown/haliax/pkg/board"
)

// Parse decodes a single PTN move token into a board.Move. It does not consult a
// Position, so a slide's drop pattern is built from the token's own count/drops/crush
// fields alone; callers that need the actual pickup count from a live stack should
// cross-check PickupCount against the square's depth themselves.
func Parse(token string) (board.Move, error) {
	if token == "" {
		return board.NoMove, newParseError(token, fmt.Errorf("empty move"))
	}

	switch token[0] {
	case 'S', 'C':
		if len(token) != 3 {
			return board.NoMove, newParseError(token, fmt.Errorf("expected <S|C><col><row>"))
		}
		sq, err := board.ParseSquareStr(token[1:])
		if err != nil {
			return board.NoMove, newParseError(token, err)
		}
		kind := board.Standing
		if token[0] == 'C' {
			kind = board.Capstone
		}
		return board.NewPlaceMove(sq, kind), nil
	}

	if len(token) == 2 {
		sq, err := board.ParseSquareStr(token)
		if err != nil {
			return board.NoMove, newParseError(token, err)
		}
		return board.NewPlaceMove(sq, board.Flat), nil
	}

	return parseSlide(token)
}

func parseSlide(token string) (board.Move, error) {
	rest := token

	count := 1
	if len(rest) > 0 && rest[0] >= '1' && rest[0] <= '9' {
		count = int(rest[0] - '0')
		rest = rest[1:]
	}

	if len(rest) < 3 {
		return board.NoMove, newParseError(token, fmt.Errorf("too short for a slide"))
	}
	sq, err := board.ParseSquareStr(rest[:2])
	if err != nil {
		return board.NoMove, newParseError(token, err)
	}
	rest = rest[2:]

	if len(rest) == 0 {
		return board.NoMove, newParseError(token, fmt.Errorf("missing direction"))
	}
	d, ok := board.ParseDirection(rune(rest[0]))
	if !ok {
		return board.NoMove, newParseError(token, fmt.Errorf("invalid direction %q", rest[0]))
	}
	rest = rest[1:]

	crush := strings.HasSuffix(rest, "*")
	if crush {
		rest = rest[:len(rest)-1]
	}

	var drops []uint8
	if rest == "" {
		// No drop list: drop everything on the last square.
		drops = []uint8{uint8(count)}
	} else {
		for _, r := range rest {
			n, err := strconv.Atoi(string(r))
			if err != nil {
				return board.NoMove, newParseError(token, fmt.Errorf("invalid drop digit %q", r))
			}
			drops = append(drops, uint8(n))
		}
		var sum int
		for _, n := range drops {
			sum += int(n)
		}
		if sum != count {
			return board.NoMove, newParseError(token, fmt.Errorf("drop counts sum to %d, want %d", sum, count))
		}
	}

	if crush {
		// The crush lands on the last square touched; its drop count there must be
		// exactly 1 (a single capstone flattening the wall), per spec.md section 4.2's
		// crush pattern shape.
		if drops[len(drops)-1] != 1 {
			return board.NoMove, newParseError(token, fmt.Errorf("crush must drop exactly 1 stone on the target square"))
		}
	}

	pattern, ok := board.EncodePattern(drops)
	if !ok {
		return board.NoMove, newParseError(token, fmt.Errorf("invalid drop pattern %v", drops))
	}
	return board.NewSlideMove(sq, d, pattern), nil
}

// Format renders m as a PTN move token. crush marks whether the slide's final drop
// flattens a wall, information not recoverable from the Move alone; callers that have
// a Position should determine it from the wall about to be landed on.
func Format(m board.Move, crush bool) string {
	if m.IsPlace() {
		switch m.Kind() {
		case board.Standing:
			return fmt.Sprintf("S%v", m.Square())
		case board.Capstone:
			return fmt.Sprintf("C%v", m.Square())
		default:
			return m.Square().String()
		}
	}

	drops := board.DecodePattern(m.Pattern())
	count := m.PickupCount()

	var sb strings.Builder
	if count != 1 {
		fmt.Fprintf(&sb, "%d", count)
	}
	fmt.Fprintf(&sb, "%v%v", m.Square(), m.Direction())

	if !(len(drops) == 1 && int(drops[0]) == count) {
		for _, d := range drops {
			fmt.Fprintf(&sb, "%d", d)
		}
	}
	if crush {
		sb.WriteByte('*')
	}
	return sb.String()
}

func newParseError(input string, err error) error {
	return board.NewParseError("ptn-move", input, err)
}
