// Package tps parses and prints positions in Tak Positional System notation.
package tps

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zchown/haliax/pkg/board"
)

// Initial is the TPS string for the empty starting position.
const Initial = "[TPS x6/x6/x6/x6/x6/x6 1 1]"

// Parse decodes a TPS string into a Position. It accepts the optional leading
// "[TPS " and trailing "]" wrapper and is strict about row and cell counts: exactly
// board.Size rows, each expanding to exactly board.Size cells.
func Parse(s string, komi uint8) (*board.Position, error) {
	body := strings.TrimSpace(s)
	body = strings.TrimPrefix(body, "[TPS ")
	body = strings.TrimSuffix(body, "]")

	fields := strings.Fields(body)
	if len(fields) != 3 {
		return nil, newParseError(s, fmt.Errorf("expected 3 fields (board, turn, move number), got %d", len(fields)))
	}
	boardField, turnField, moveField := fields[0], fields[1], fields[2]

	stacks, err := parseBoard(boardField)
	if err != nil {
		return nil, newParseError(s, err)
	}

	turn, err := parseTurn(turnField)
	if err != nil {
		return nil, newParseError(s, err)
	}

	moveNumber, err := strconv.Atoi(moveField)
	if err != nil || moveNumber < 1 {
		return nil, newParseError(s, fmt.Errorf("invalid move number: %q", moveField))
	}

	// half_move_count = 2*(move_number-1) + (0 if White to move else 1), the inverse
	// of Position.String()'s "move number = half_move_count/2 + 1" convention.
	halfMoveCount := 2 * (moveNumber - 1)
	if turn == board.Black {
		halfMoveCount++
	}

	pos, err := board.NewPositionFromStacks(stacks, turn, halfMoveCount, komi)
	if err != nil {
		return nil, newParseError(s, err)
	}
	return pos, nil
}

func parseTurn(field string) (board.Color, error) {
	switch field {
	case "1":
		return board.White, nil
	case "2":
		return board.Black, nil
	default:
		return 0, fmt.Errorf("invalid turn: %q", field)
	}
}

func parseBoard(field string) ([board.NumSquares][]board.Piece, error) {
	var stacks [board.NumSquares][]board.Piece

	rows := strings.Split(field, "/")
	if len(rows) != int(board.Size) {
		return stacks, fmt.Errorf("expected %d rows, got %d", board.Size, len(rows))
	}

	for i, row := range rows {
		// Row 0 of the string is the top row, y = Size-1.
		y := int(board.Size) - 1 - i

		cells := strings.Split(row, ",")
		var rowStacks [][]board.Piece
		for _, cell := range cells {
			if n, ok := parseEmptyRun(cell); ok {
				for j := 0; j < n; j++ {
					rowStacks = append(rowStacks, nil)
				}
				continue
			}
			stack, err := parseStack(cell)
			if err != nil {
				return stacks, err
			}
			rowStacks = append(rowStacks, stack)
		}
		if len(rowStacks) != int(board.Size) {
			return stacks, fmt.Errorf("row %d: expected %d cells, got %d", i, board.Size, len(rowStacks))
		}

		for x, stack := range rowStacks {
			sq := board.NewSquare(board.File(x), board.Rank(y))
			stacks[sq] = stack
		}
	}
	return stacks, nil
}

// parseEmptyRun parses an "xN" empty-run token (N defaults to 1).
func parseEmptyRun(cell string) (int, bool) {
	if !strings.HasPrefix(cell, "x") {
		return 0, false
	}
	rest := cell[1:]
	if rest == "" {
		return 1, true
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// parseStack parses a stack token: a run of "1"/"2" color digits, bottom to top,
// optionally followed by a single "S" or "C" marking the top piece's kind.
func parseStack(cell string) ([]board.Piece, error) {
	if cell == "" {
		return nil, fmt.Errorf("empty cell token")
	}

	kind := board.Flat
	colors := cell
	switch {
	case strings.HasSuffix(cell, "S"):
		kind = board.Standing
		colors = cell[:len(cell)-1]
	case strings.HasSuffix(cell, "C"):
		kind = board.Capstone
		colors = cell[:len(cell)-1]
	}
	if colors == "" {
		return nil, fmt.Errorf("cell %q: no stones", cell)
	}

	stack := make([]board.Piece, 0, len(colors))
	for _, r := range colors {
		var c board.Color
		switch r {
		case '1':
			c = board.White
		case '2':
			c = board.Black
		default:
			return nil, fmt.Errorf("cell %q: invalid color digit %q", cell, r)
		}
		stack = append(stack, board.MakePiece(c, board.Flat))
	}
	stack[len(stack)-1] = board.MakePiece(stack[len(stack)-1].Color(), kind)
	return stack, nil
}

// Format renders pos in TPS notation, wrapped as "[TPS ... ]".
func Format(pos *board.Position) string {
	var rows []string
	for y := int(board.Size) - 1; y >= 0; y-- {
		rows = append(rows, formatRow(pos, board.Rank(y)))
	}

	moveNumber := pos.HalfMoveCount()/2 + 1
	return fmt.Sprintf("[TPS %s %v %d]", strings.Join(rows, "/"), pos.ToMove(), moveNumber)
}

func formatRow(pos *board.Position, rank board.Rank) string {
	var cells []string
	emptyRun := 0
	flushEmpty := func() {
		if emptyRun > 0 {
			if emptyRun == 1 {
				cells = append(cells, "x")
			} else {
				cells = append(cells, fmt.Sprintf("x%d", emptyRun))
			}
			emptyRun = 0
		}
	}

	for x := 0; x < int(board.Size); x++ {
		sq := board.NewSquare(board.File(x), rank)
		if pos.IsEmpty(sq) {
			emptyRun++
			continue
		}
		flushEmpty()
		cells = append(cells, formatStack(pos.Stack(sq)))
	}
	flushEmpty()
	return strings.Join(cells, ",")
}

func formatStack(stack []board.Piece) string {
	var sb strings.Builder
	for _, p := range stack {
		sb.WriteString(p.Color().String())
	}
	top := stack[len(stack)-1]
	switch top.Kind() {
	case board.Standing:
		sb.WriteByte('S')
	case board.Capstone:
		sb.WriteByte('C')
	}
	return sb.String()
}

func newParseError(input string, err error) error {
	return board.NewParseError("tps", input, err)
}
