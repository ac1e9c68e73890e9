// Package reduction provides reference dimension-reduction methods built on
// the preprocess, eigen, and graph packages.
//
// Every method implements the Reducer interface: Fit learns the transform
// and projection basis from a data matrix, Transform maps rows (including
// out-of-sample rows) into the embedded space. Methods that solve for an
// embedding directly, like Laplacian Eigenmaps, carry no projection and
// reject Transform with ErrNoProjection.
package reduction
