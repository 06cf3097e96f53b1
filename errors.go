package kleene

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrLexical         = errors.New("invalid character")
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrUnexpectedEnd   = errors.New("unexpected end of input")
	ErrUnmatchedParen  = errors.New("unmatched ')'")

	ErrIterationLimit = errors.New("simplification did not reach a fixed point")

	ErrNotDeterministic = errors.New("conflicting transition for a deterministic automaton")
	ErrUnknownState     = errors.New("state not in automaton")
	ErrUnknownSymbol    = errors.New("symbol not in alphabet")
)

// SyntaxError describes where parsing stopped. Kind is one of the parser sentinels.
type SyntaxError struct {
	Kind      error
	Token     string // offending token, empty at end of input
	Pos       int    // rune offset of the offending token
	Remaining string // unconsumed input starting at the offending token
}

func (e *SyntaxError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("%v at position %d", e.Kind, e.Pos)
	}
	return fmt.Sprintf("%v %q at position %d, remaining input %q", e.Kind, e.Token, e.Pos, e.Remaining)
}

func (e *SyntaxError) Unwrap() error {
	return e.Kind
}

// IterationLimitError accompanies a best-effort result when the simplifier gives up.
type IterationLimitError struct {
	Passes int
}

func (e *IterationLimitError) Error() string {
	return fmt.Sprintf("%v after %d passes", ErrIterationLimit, e.Passes)
}

func (e *IterationLimitError) Unwrap() error {
	return ErrIterationLimit
}
