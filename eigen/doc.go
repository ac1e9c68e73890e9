// Package eigen solves the generalized symmetric eigenproblem
// LHS*v = lambda*RHS*v and selects a projection basis from it.
//
// The solver reduces the problem to a standard symmetric eigenproblem via a
// Cholesky factorization of RHS. A singular RHS fails with a
// RankDeficientError unless an explicit ridge is configured, in which case
// ridge*I is added and the factorization retried. All numeric thresholds are
// explicit options with documented defaults; there is no hidden global
// state, so identical inputs always produce identical bases.
package eigen
