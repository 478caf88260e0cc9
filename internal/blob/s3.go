// Package blob archives generated documents in S3 so a work order PDF can be
// re-downloaded long after the local copy is gone.
package blob

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader stores generated documents and hands out presigned links.
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	PresignedURL(ctx context.Context, key string) (string, error)
}

// S3Store implements Uploader against an S3 bucket.
type S3Store struct {
	client *s3.Client
	bucket string
}

// NewS3Store creates an S3-backed document store. Returns nil when the
// bucket is not configured; callers treat a nil store as "archiving off".
func NewS3Store(ctx context.Context, region, accessKeyID, secretAccessKey, bucket string) (*S3Store, error) {
	if bucket == "" {
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID,
			secretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Store{
		client: s3.NewFromConfig(awsCfg),
		bucket: bucket,
	}, nil
}

// Upload stores a document under the given key.
func (s *S3Store) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}
	return nil
}

// PresignedURL generates a download link valid for 1 hour.
func (s *S3Store) PresignedURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}

	presignClient := s3.NewPresignClient(s.client)
	request, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return request.URL, nil
}

// DocumentKey builds the bucket path for an order document.
// Format: orders/{order_number}/{kind}_{timestamp}.pdf
func DocumentKey(orderNumber, kind string, now time.Time) string {
	return fmt.Sprintf("orders/%s/%s_%d.pdf", orderNumber, kind, now.Unix())
}
