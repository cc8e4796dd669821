package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/sicko7947/statepass"
)

// S3BlobStore implements statepass.BlobStore using AWS S3. Object expiration
// is owned by the bucket's lifecycle configuration, not by this store.
type S3BlobStore struct {
	client S3Client
	bucket string
}

// NewS3BlobStore creates a new S3-backed blob store bound to one bucket.
func NewS3BlobStore(client S3Client, bucket string) statepass.BlobStore {
	return &S3BlobStore{
		client: client,
		bucket: bucket,
	}
}

// PutBlob writes an object at the derived address. Overwrites are idempotent.
func (s *S3BlobStore) PutBlob(ctx context.Context, address string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(address),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", address, err)
	}

	return nil
}

// GetBlob reads the object at the address.
func (s *S3BlobStore) GetBlob(ctx context.Context, address string) ([]byte, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(address),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("overflow object %s: %w", address, statepass.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get object %s: %w", address, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", address, err)
	}

	return data, nil
}
