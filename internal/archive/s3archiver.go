// Package archive implements the optional scan archiver described in
// SPEC_FULL.md §4.11/§7: upload a msgpack-encoded DetailedResult to S3
// after every completed scan. Archival failure is TransientExternal —
// logged and swallowed, never affecting the result already returned to
// the caller.
package archive

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/georisk/internal/domain"
)

// Uploader is the subset of the S3 manager's upload API this package
// needs, defined locally so tests can stub it without a real S3 client.
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Archiver uploads completed scans to a configured S3 bucket, keyed by
// scan ID, encoded with vmihailenco/msgpack for compactness (the same
// encoding internal/corpus uses for persisted snapshot events).
type S3Archiver struct {
	uploader Uploader
	bucket   string
	log      zerolog.Logger
}

// NewS3Archiver creates an archiver over an already-configured S3 client.
// Pass the result of manager.NewUploader(s3.NewFromConfig(cfg)) as
// uploader.
func NewS3Archiver(uploader Uploader, bucket string, log zerolog.Logger) *S3Archiver {
	return &S3Archiver{uploader: uploader, bucket: bucket, log: log.With().Str("component", "s3_archiver").Logger()}
}

// Archive uploads result to {scanId}.msgpack in the configured bucket.
func (a *S3Archiver) Archive(ctx context.Context, result domain.DetailedResult) error {
	encoded, err := msgpack.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode scan %s for archival: %w", result.ScanID, err)
	}

	key := result.ScanID + ".msgpack"
	_, err = a.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: &a.bucket,
		Key:    &key,
		Body:   bytes.NewReader(encoded),
	})
	if err != nil {
		return fmt.Errorf("failed to upload scan %s to s3://%s/%s: %w", result.ScanID, a.bucket, key, err)
	}
	return nil
}
