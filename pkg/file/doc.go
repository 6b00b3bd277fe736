// Package file provides read-side access to file content for multipart uploads.
//
// The package exposes a small Source interface that opens a named object for
// reading and reports its metadata. Two implementations are provided:
//   - LocalSource: files on the local filesystem, optionally confined to a base directory
//   - S3Source: objects in AWS S3 and S3-compatible services (MinIO, Wasabi, etc.)
//
// Sources only hand out regular files. Directories, devices and S3 directory
// markers are rejected with ErrNotRegularFile so callers never queue content
// that cannot be streamed.
//
// # Usage
//
//	import "github.com/dmitrymomot/formdata/pkg/file"
//
//	src := &file.LocalSource{} // zero value opens paths as given
//	rc, info, err := src.Open(ctx, "reports/2024.csv")
//	if err != nil {
//		return err
//	}
//	defer rc.Close()
//
// Reading from S3:
//
//	src, err := file.NewS3Source(ctx, file.S3Config{
//		Bucket:      "my-bucket",
//		Region:      "us-east-1",
//		AccessKeyID: "key",
//		SecretKey:   "secret",
//	})
//	if err != nil {
//		return err
//	}
//	rc, info, err := src.Open(ctx, "uploads/document.pdf")
//
// # Content Types
//
// MIMETypeByExtension maps a file extension to a content type. A built-in
// table covering common image, video, audio, document and text formats is
// consulted first, then the system table from the mime package.
//
//	ct, ok := file.MIMETypeByExtension(".png") // "image/png", true
//
// # Error Handling
//
//	rc, _, err := src.Open(ctx, path)
//	if errors.Is(err, file.ErrNotRegularFile) {
//		// directory or special file
//	} else if errors.Is(err, file.ErrFailedToOpenFile) {
//		// missing file, permissions, ...
//	}
//
// S3-specific errors are mapped to generic file errors for consistency:
//   - NoSuchBucket -> ErrBucketNotFound
//   - NoSuchKey -> ErrFileNotFound
//   - AccessDenied -> ErrAccessDenied
package file
