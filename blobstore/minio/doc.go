// Package minio implements blobstore.BlobStore for MinIO and other
// S3-compatible object stores via minio-go.
package minio
