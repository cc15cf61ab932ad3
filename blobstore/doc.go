// Package blobstore provides the storage abstraction for benchmark reports
// and ingested row files.
//
// BlobStore is the interface for reading and writing named blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem with atomic writes
//   - MemoryStore: in-memory, for tests
//   - s3.Store: Amazon S3 with multipart uploads
//   - minio.Store: MinIO and other S3-compatible storage
//
// Open resolves a sink URL ("file:///tmp/out", "s3://bucket/prefix",
// "minio://host:9000/bucket/prefix") into a store using the registered
// openers. The s3 and minio packages register themselves on import.
package blobstore
