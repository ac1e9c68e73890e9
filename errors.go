package dimred

import (
	"errors"
	"fmt"

	"github.com/hupe1980/dimred/eigen"
	"github.com/hupe1980/dimred/graph"
	"github.com/hupe1980/dimred/preprocess"
	"github.com/hupe1980/dimred/reduction"
)

var (
	// ErrInvalidInput is returned for malformed inputs: wrong shapes,
	// NaN/Inf entries, bad rule parameters. Details are attached via
	// wrapping.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFitted is returned when prediction runs before fitting.
	ErrNotFitted = errors.New("model not fitted")

	// ErrNoProjection is returned by models whose method computes an
	// embedding without a linear projection (e.g. Laplacian Eigenmaps).
	ErrNoProjection = errors.New("model has no out-of-sample projection")
)

// DimensionMismatchError indicates a row or matrix whose width differs from
// what the fitted transform expects.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type DimensionMismatchError struct {
	Expected int
	Actual   int
	cause    error
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *DimensionMismatchError) Unwrap() error { return e.cause }

// InvalidDimensionError indicates a target dimension outside [1, p].
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type InvalidDimensionError struct {
	D     int
	P     int
	cause error
}

func (e *InvalidDimensionError) Error() string {
	return fmt.Sprintf("invalid target dimension %d for %d variables", e.D, e.P)
}

func (e *InvalidDimensionError) Unwrap() error { return e.cause }

// RankDeficientError indicates a singular covariance or RHS matrix with no
// regularization configured.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type RankDeficientError struct {
	cause error
}

func (e *RankDeficientError) Error() string {
	return fmt.Sprintf("rank deficient: %v", e.cause)
}

func (e *RankDeficientError) Unwrap() error { return e.cause }

// DegenerateClassError indicates a label-gated rule with a class of fewer
// than 2 members.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type DegenerateClassError struct {
	Label int
	Count int
	cause error
}

func (e *DegenerateClassError) Error() string {
	return fmt.Sprintf("degenerate class %d: %d member(s)", e.Label, e.Count)
}

func (e *DegenerateClassError) Unwrap() error { return e.cause }

// translateError maps subpackage errors into the public error contract.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Invalid-input unification.
	var zv *preprocess.ZeroVarianceError
	if errors.Is(err, preprocess.ErrInvalidInput) ||
		errors.Is(err, eigen.ErrInvalidInput) ||
		errors.Is(err, graph.ErrInvalidInput) ||
		errors.As(err, &zv) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	// Fit-state sentinels.
	if errors.Is(err, reduction.ErrNotFitted) {
		return fmt.Errorf("%w: %w", ErrNotFitted, err)
	}
	if errors.Is(err, reduction.ErrNoProjection) {
		return fmt.Errorf("%w: %w", ErrNoProjection, err)
	}

	// Typed taxonomy.
	var pdm *preprocess.DimensionMismatchError
	if errors.As(err, &pdm) {
		return &DimensionMismatchError{Expected: pdm.Expected, Actual: pdm.Actual, cause: err}
	}
	var eid *eigen.InvalidDimensionError
	if errors.As(err, &eid) {
		return &InvalidDimensionError{D: eid.D, P: eid.P, cause: err}
	}
	var prd *preprocess.RankDeficientError
	if errors.As(err, &prd) {
		return &RankDeficientError{cause: err}
	}
	var erd *eigen.RankDeficientError
	if errors.As(err, &erd) {
		return &RankDeficientError{cause: err}
	}
	var dc *graph.DegenerateClassError
	if errors.As(err, &dc) {
		return &DegenerateClassError{Label: dc.Label, Count: dc.Count, cause: err}
	}

	return err
}
