// Package graph builds weighted adjacency matrices and graph Laplacians
// from pairwise distances.
//
// A Rule is one of a closed set of weighting variants (heat kernel,
// k-nearest-neighbor, label-gated); rules that produce a directed graph are
// symmetrized with W[i,j] = max(W[i,j], W[j,i]). The Laplacian is the
// unnormalized D - W by default, or the symmetric normalized variant
// I - D^{-1/2} W D^{-1/2} with WithNormalized.
package graph
