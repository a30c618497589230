package objectstore

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/remy-site/internal/config"
	"github.com/MKhiriev/remy-site/internal/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// SDK entry points, replaced in tests.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}

	deleteObject = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
		return c.DeleteObject(ctx, in, optFns...)
	}
)

// S3Storage implements [ObjectStorage] on aws-sdk-go-v2.
type S3Storage struct {
	bucket  string
	client  *s3.Client
	presign *s3.PresignClient
	logger  *logger.Logger
}

// NewS3Storage builds the S3 clients for cfg. Static credentials are used;
// Endpoint overrides the AWS endpoint for R2 and MinIO.
func NewS3Storage(ctx context.Context, cfg config.Objects, log *logger.Logger) (*S3Storage, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	if err != nil {
		log.Err(err).Str("func", "NewS3Storage").Msg("error loading aws config")
		return nil, fmt.Errorf("error loading object storage config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	log.Info().Str("func", "NewS3Storage").
		Str("bucket", cfg.Bucket).
		Str("endpoint", cfg.Endpoint).
		Msg("object storage configured")

	return &S3Storage{
		bucket:  cfg.Bucket,
		client:  client,
		presign: newS3PresignClient(client),
		logger:  log,
	}, nil
}

func (s *S3Storage) PresignPut(ctx context.Context, key, contentType string, expires time.Duration) (string, error) {
	req, err := presignPutObject(s.presign, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*S3Storage.PresignPut").Str("key", key).Msg("presign failed")
		return "", fmt.Errorf("%w: %w", ErrPresign, err)
	}

	return req.URL, nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := deleteObject(s.client, ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*S3Storage.Delete").Str("key", key).Msg("delete failed")
		return fmt.Errorf("%w: %w", ErrDelete, err)
	}

	logger.FromContext(ctx).Info().Str("func", "*S3Storage.Delete").Str("key", key).Msg("object deleted")
	return nil
}
