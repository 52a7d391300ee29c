package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
)

// LocalStorage implements BlobStorage using the local filesystem.
type LocalStorage struct {
	baseDir       string
	publicBaseURL string
}

// NewLocalStorage creates a new local filesystem storage rooted at baseDir,
// which is created if missing. Without publicBaseURL, GetURL returns file://
// URLs.
func NewLocalStorage(baseDir, publicBaseURL string) (*LocalStorage, error) {
	baseDir = filepath.Clean(baseDir)
	if baseDir == "" || baseDir == "." {
		return nil, fmt.Errorf("%w: base directory cannot be empty", ErrInvalidPath)
	}

	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}

	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &LocalStorage{
		baseDir:       abs,
		publicBaseURL: publicBaseURL,
	}, nil
}

// BaseDir returns the absolute directory objects are stored under.
func (s *LocalStorage) BaseDir() string {
	return s.baseDir
}

// Upload stores data from the reader under key. The content type is implied
// by the file extension and not recorded.
func (s *LocalStorage) Upload(ctx context.Context, key, contentType string, reader io.Reader) error {
	fullPath, err := s.resolve(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		os.Remove(fullPath)
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Delete removes the file at key.
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	fullPath, err := s.resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrFileNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// Exists checks if a file exists at key.
func (s *LocalStorage) Exists(ctx context.Context, key string) (bool, error) {
	fullPath, err := s.resolve(key)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(fullPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check file existence: %w", err)
	}

	return true, nil
}

// GetURL returns the public URL of the file, or its absolute file:// URL.
func (s *LocalStorage) GetURL(ctx context.Context, key string) (string, error) {
	fullPath, err := s.resolve(key)
	if err != nil {
		return "", err
	}

	exists, err := s.Exists(ctx, key)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", ErrFileNotFound
	}

	if s.publicBaseURL != "" {
		clean, _ := cleanKey(key)
		return joinURL(s.publicBaseURL, clean), nil
	}

	u := url.URL{Scheme: "file", Path: filepath.ToSlash(fullPath)}
	return u.String(), nil
}

// resolve validates key and joins it with the base directory, making sure
// the result stays inside it.
func (s *LocalStorage) resolve(key string) (string, error) {
	clean, err := cleanKey(key)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(s.baseDir, filepath.FromSlash(clean))

	rel, err := filepath.Rel(s.baseDir, fullPath)
	if err != nil || len(rel) > 0 && rel[0] == '.' {
		return "", fmt.Errorf("%w: path traversal detected", ErrInvalidPath)
	}

	return fullPath, nil
}
