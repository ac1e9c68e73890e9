// Package dimred provides the shared machinery behind a family of linear
// and manifold dimension-reduction methods:
//
//   - preprocess: centering/scaling/whitening transforms with exact
//     out-of-sample replay
//   - eigen: a generalized symmetric eigensolver with a maximize/minimize
//     selection policy, explicit regularization, and deterministic sign
//     normalization
//   - graph: weighted adjacency and Laplacian construction from pairwise
//     distances (heat kernel, k-nearest-neighbor, label-gated rules)
//   - reduction: reference methods (PCA, LPP, Laplacian Eigenmaps) built on
//     the three components
//   - persistence + blobstore: binary model snapshots for serving
//     out-of-sample prediction from another process, stored locally, in
//     memory, on S3, or on MinIO
//
// Every call is a self-contained, synchronous numeric pipeline: no shared
// state survives between calls, so concurrent callers are independent by
// construction.
//
// # Quick Start
//
// Fit PCA and project new rows:
//
//	model, err := dimred.Fit(ctx, reduction.NewPCA(2), x)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	y, err := model.Predict(newRow)
//
// Persist a fitted model and reload it elsewhere:
//
//	store, _ := blobstore.NewLocalStore("./models")
//	_ = model.SaveTo(ctx, store, "pca-2d",
//	    persistence.WithCompression(persistence.CompressionZSTD))
//	model, _ = dimred.LoadModelFrom(ctx, store, "pca-2d")
//
// The core contracts are also exposed directly: Preprocess,
// SolveGeneralizedEigen and BuildGraph wrap the subpackages with a unified
// error contract.
package dimred
