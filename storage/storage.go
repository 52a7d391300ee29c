// Package storage keeps uploaded user photos and hands out the absolute URL
// that goes into a user record.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ErrFileNotFound is returned when a requested object does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidPath is returned when a key is empty or escapes the store.
	ErrInvalidPath = errors.New("invalid path")
)

// Storage types accepted by New.
const (
	TypeLocal = "local"
	TypeS3    = "s3"
)

// BlobStorage stores objects under slash-separated keys.
type BlobStorage interface {
	// Upload stores data from the reader under key.
	Upload(ctx context.Context, key, contentType string, reader io.Reader) error

	// Delete removes the object at key.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object is stored at key.
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns an absolute URL for the object at key.
	GetURL(ctx context.Context, key string) (string, error)
}

// Config selects and configures a BlobStorage.
type Config struct {
	Type string

	// Local
	BaseDir string

	// S3
	Bucket        string
	Region        string
	Endpoint      string
	UsePathStyle  bool
	AccessKeyID   string
	SecretKey     string
	PresignExpiry time.Duration

	// PublicBaseURL, when set, prefixes keys to build URLs instead of the
	// backend's own addressing.
	PublicBaseURL string
}

// New creates a BlobStorage implementation based on configuration.
func New(ctx context.Context, cfg Config) (BlobStorage, error) {
	switch strings.ToLower(cfg.Type) {
	case TypeLocal, "":
		if cfg.BaseDir == "" {
			return nil, fmt.Errorf("base_dir is required for local storage")
		}
		return NewLocalStorage(cfg.BaseDir, cfg.PublicBaseURL)

	case TypeS3:
		s3Storage, err := NewS3Storage(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
		return s3Storage, nil

	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// cleanKey validates a key and returns it in slash form. Keys are relative
// and may not climb out of the store.
func cleanKey(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w: path cannot be empty", ErrInvalidPath)
	}

	clean := filepath.ToSlash(filepath.Clean(key))
	if strings.HasPrefix(clean, ".") {
		return "", fmt.Errorf("%w: path traversal detected", ErrInvalidPath)
	}
	if strings.HasPrefix(clean, "/") || filepath.IsAbs(key) {
		return "", fmt.Errorf("%w: absolute paths not allowed", ErrInvalidPath)
	}
	return clean, nil
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
