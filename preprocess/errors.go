package preprocess

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when the input matrix has an unusable shape or
// contains NaN/Inf entries. Details are attached via wrapping.
var ErrInvalidInput = errors.New("invalid input matrix")

// ZeroVarianceError indicates that a scaling mode hit a constant column.
type ZeroVarianceError struct {
	Column int
}

func (e *ZeroVarianceError) Error() string {
	return fmt.Sprintf("column %d has zero variance", e.Column)
}

// RankDeficientError indicates that whitening hit a numerically zero
// covariance eigenvalue and no ridge was configured.
type RankDeficientError struct {
	Component  int
	Eigenvalue float64
}

func (e *RankDeficientError) Error() string {
	return fmt.Sprintf("rank-deficient covariance: eigenvalue %d is %g", e.Component, e.Eigenvalue)
}

// DimensionMismatchError indicates that a row or matrix handed to Apply does
// not have the width the transform was fitted on.
type DimensionMismatchError struct {
	Expected int
	Actual   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}
