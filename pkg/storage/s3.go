package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// Config holds settings for the S3-compatible blob store.
type Config struct {
	Endpoint  string // Base URL, e.g. "http://localhost:9000"
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
}

// S3Store implements ObjectStore against any S3-compatible endpoint
// (MinIO, Supabase storage gateway, AWS itself).
type S3Store struct {
	client   *s3.Client
	endpoint string
	bucket   string
	logger   *zap.Logger
}

// NewS3Store creates an ObjectStore backed by an S3-compatible endpoint
// with static credentials. The client is constructed once at process
// start and injected where needed.
func NewS3Store(ctx context.Context, cfg *Config, logger *zap.Logger) (*S3Store, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("storage endpoint is required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		// Path-style addressing; virtual-host style does not work with
		// most self-hosted endpoints.
		o.UsePathStyle = true
	})

	return &S3Store{
		client:   client,
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		bucket:   cfg.Bucket,
		logger:   logger.Named("storage"),
	}, nil
}

// Put writes data under key and returns the public URL of the object.
func (s *S3Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object %q: %w", key, err)
	}

	s.logger.Debug("Stored object",
		zap.String("key", key),
		zap.Int("size", len(data)))

	return s.PublicURL(key), nil
}

// PublicURL returns the path-style URL for a stored object.
func (s *S3Store) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
}

// Ensure S3Store implements ObjectStore at compile time.
var _ ObjectStore = (*S3Store)(nil)
