package board

import "fmt"

// ParseError reports a malformed TPS or PTN token. Callers match on the wrapped
// Input, not the string, since the message is only meant for a human reading logs.
type ParseError struct {
	Kind  string // "tps", "ptn-move", "square", ...
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s %q: %v", e.Kind, e.Input, e.Err)
	}
	return fmt.Sprintf("parse %s %q: malformed", e.Kind, e.Input)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(kind, input string, err error) *ParseError {
	return &ParseError{Kind: kind, Input: input, Err: err}
}

// NewParseError is the exported form of newParseError, used by the tps and ptn
// subpackages to report malformed wire input in the same shape as the core's own
// parse errors.
func NewParseError(kind, input string, err error) *ParseError {
	return newParseError(kind, input, err)
}

// MoveError reports a move that is well-formed but illegal in its position: wrong
// mover, blocked slide, exhausted reserve, and so on.
type MoveError struct {
	Move   Move
	Reason string
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("illegal move %v: %s", e.Move, e.Reason)
}

func newMoveError(m Move, reason string) *MoveError {
	return &MoveError{Move: m, Reason: reason}
}

// SearchError reports a condition the search layer cannot proceed past.
type SearchError struct {
	Reason string
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("search: %s", e.Reason)
}

// ErrNoLegalMoves is returned by a search asked to move from a terminal position.
var ErrNoLegalMoves = &SearchError{Reason: "no legal moves"}
