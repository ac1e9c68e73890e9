package graph

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned for malformed distance matrices or rule
// parameters. Details are attached via wrapping.
var ErrInvalidInput = errors.New("invalid input")

// DegenerateClassError indicates that a label-gated rule saw a class with
// fewer than 2 members, leaving it without any intra-class pair.
type DegenerateClassError struct {
	Label int
	Count int
}

func (e *DegenerateClassError) Error() string {
	return fmt.Sprintf("degenerate class %d: %d member(s), need at least 2", e.Label, e.Count)
}
