package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3Storage implements BlobStorage using AWS S3 or an S3-compatible store.
type S3Storage struct {
	client            *s3.Client
	presignClient     *s3.PresignClient
	bucket            string
	region            string
	endpoint          string
	usePathStyle      bool
	publicBaseURL     string
	presignExpiration time.Duration
}

// NewS3Storage creates a new S3 storage client. Credentials come from the
// default AWS chain unless an access key pair is configured.
func NewS3Storage(ctx context.Context, cfg Config) (*S3Storage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket name cannot be empty")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("S3 region cannot be empty")
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &S3Storage{
		client:            client,
		presignClient:     s3.NewPresignClient(client),
		bucket:            cfg.Bucket,
		region:            cfg.Region,
		endpoint:          strings.TrimRight(cfg.Endpoint, "/"),
		usePathStyle:      cfg.UsePathStyle,
		publicBaseURL:     cfg.PublicBaseURL,
		presignExpiration: cfg.PresignExpiry,
	}, nil
}

// Upload stores data from the reader under key. The body is buffered so the
// request can be signed and retried.
func (s *S3Storage) Upload(ctx context.Context, key, contentType string, reader io.Reader) error {
	clean, err := cleanKey(key)
	if err != nil {
		return err
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read upload: %w", err)
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(clean),
		Body:   bytes.NewReader(body),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}

	return nil
}

// Delete removes the object at key.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	clean, err := cleanKey(key)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(clean),
	})
	if err != nil {
		if isS3NotFoundError(err) {
			return ErrFileNotFound
		}
		return fmt.Errorf("failed to delete from S3: %w", err)
	}

	return nil
}

// Exists checks if an object exists at key.
func (s *S3Storage) Exists(ctx context.Context, key string) (bool, error) {
	clean, err := cleanKey(key)
	if err != nil {
		return false, err
	}

	_, err = s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(clean),
	})
	if err != nil {
		if isS3NotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check S3 object existence: %w", err)
	}

	return true, nil
}

// GetURL returns the URL of the object at key. With a presign expiry set the
// URL is presigned; otherwise it is the object's public address.
func (s *S3Storage) GetURL(ctx context.Context, key string) (string, error) {
	clean, err := cleanKey(key)
	if err != nil {
		return "", err
	}

	if s.presignExpiration <= 0 {
		return s.objectURL(clean), nil
	}

	presignResult, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(clean),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = s.presignExpiration
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return presignResult.URL, nil
}

func (s *S3Storage) objectURL(key string) string {
	escaped := (&url.URL{Path: key}).EscapedPath()

	switch {
	case s.publicBaseURL != "":
		return joinURL(s.publicBaseURL, escaped)
	case s.endpoint != "" && s.usePathStyle:
		return joinURL(s.endpoint+"/"+s.bucket, escaped)
	case s.endpoint != "":
		u, err := url.Parse(s.endpoint)
		if err == nil && u.Host != "" {
			u.Host = s.bucket + "." + u.Host
			return joinURL(u.String(), escaped)
		}
		return joinURL(s.endpoint+"/"+s.bucket, escaped)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, escaped)
	}
}

// isS3NotFoundError checks if an error is an S3 "not found" error.
func isS3NotFoundError(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NoSuchKey" || code == "NotFound"
	}
	return false
}
