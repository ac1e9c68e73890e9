// Package preprocess implements the column-wise preprocessing transforms
// applied to a data matrix before a reduction method runs.
//
// Fit computes the transformed matrix together with a Transform record that
// captures the exact affine map (offset, per-column scale, rotation). The
// record can replay the identical map on rows that were not part of the
// original matrix, which is what out-of-sample prediction needs.
//
// Scaling divides by the sample standard deviation (n-1 denominator). This
// matches gonum/stat and is applied uniformly across all modes.
package preprocess
