package eigen

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned for malformed inputs (nil matrices, size
// mismatch between LHS and RHS, NaN/Inf entries).
var ErrInvalidInput = errors.New("invalid input matrix")

// InvalidDimensionError indicates a target dimension outside [1, p].
type InvalidDimensionError struct {
	D int
	P int
}

func (e *InvalidDimensionError) Error() string {
	return fmt.Sprintf("invalid target dimension %d for %d variables", e.D, e.P)
}

// RankDeficientError indicates that RHS is singular (Cholesky failed) and no
// ridge was configured.
type RankDeficientError struct {
	Size int
}

func (e *RankDeficientError) Error() string {
	return fmt.Sprintf("rank-deficient RHS of size %d: Cholesky factorization failed", e.Size)
}
