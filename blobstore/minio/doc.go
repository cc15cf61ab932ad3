// Package minio provides a BlobStore implementation using the MinIO client.
//
// MinIO is a high-performance, S3-compatible object storage system. This
// package works with MinIO and other S3-compatible storage systems like Ceph,
// SeaweedFS and Garage without any AWS dependencies.
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "my-bucket", "reports/")
//
// Importing the package registers the "minio" scheme with blobstore.Open.
// Credentials are read from MINIO_ACCESS_KEY and MINIO_SECRET_KEY, and
// "?secure=true" enables TLS:
//
//	store, err := blobstore.Open(ctx, "minio://localhost:9000/my-bucket/reports")
package minio
