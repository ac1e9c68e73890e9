// Package testutil provides seeded random data generators shared by the
// package tests.
package testutil
