// Package storage signs object uploads against S3-compatible storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/fastygo/taskmaster/internal/config"
)

// S3Presigner issues presigned PUT URLs for a single bucket.
type S3Presigner struct {
	presign *s3.PresignClient
	bucket  string
}

// NewS3Presigner loads AWS configuration. Static credentials from cfg take
// precedence over the default provider chain. Endpoint enables path-style
// addressing for S3-compatible servers such as MinIO.
func NewS3Presigner(ctx context.Context, cfg config.StorageConfig) (*S3Presigner, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage: bucket name is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return NewS3PresignerFromConfig(awsCfg, cfg.Bucket, cfg.Endpoint), nil
}

// NewS3PresignerFromConfig builds a presigner from an already loaded aws.Config.
func NewS3PresignerFromConfig(awsCfg aws.Config, bucket, endpoint string) *S3Presigner {
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Presigner{presign: s3.NewPresignClient(client), bucket: bucket}
}

// PresignPut returns a URL the client can PUT the object body to until expiry.
// Only the host is signed, so the Content-Type of the upload is not enforced.
func (p *S3Presigner) PresignPut(ctx context.Context, key, contentType string, expiry time.Duration) (string, error) {
	req, err := p.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
