// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("reports/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
//	err = bench.WriteReport(ctx, store, "bench.json", codec.Default, results)
//
// Importing the package registers the "s3" scheme with blobstore.Open:
//
//	store, err := blobstore.Open(ctx, "s3://my-bucket/reports")
//
// # Features
//
//   - Multipart uploads for large blobs via the upload manager
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
//   - Custom endpoints for S3-compatible services
package s3
