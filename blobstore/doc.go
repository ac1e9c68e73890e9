// Package blobstore abstracts where fitted model snapshots live.
//
// The core never touches a store on its own; callers save and load models
// explicitly. LocalStore and MemoryStore live here; S3 and MinIO backends
// live in subpackages so their SDKs stay out of the default import graph.
package blobstore
