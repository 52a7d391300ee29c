package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

// MaxPhotoSize is the largest photo UploadPhoto accepts.
const MaxPhotoSize = 10 << 20

var (
	// ErrUnsupportedPhoto is returned for files that are not a known image type.
	ErrUnsupportedPhoto = errors.New("unsupported photo type")

	// ErrPhotoTooLarge is returned when a photo exceeds MaxPhotoSize.
	ErrPhotoTooLarge = errors.New("photo too large")
)

var photoTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// PhotoKey builds the storage key for a photo of owner. An empty owner files
// the photo under "unassigned".
func PhotoKey(owner, filename string, now time.Time) (string, error) {
	ext := strings.ToLower(filepath.Ext(sanitizeFilename(filename)))
	if _, ok := photoTypes[ext]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedPhoto, ext)
	}

	owner = sanitizeOwner(owner)
	if owner == "" {
		owner = "unassigned"
	}

	return fmt.Sprintf("photos/%s/%d%s", owner, now.UTC().UnixNano(), ext), nil
}

// UploadPhoto checks that r holds an image matching filename's extension,
// stores it and returns its absolute URL.
func UploadPhoto(ctx context.Context, store BlobStorage, owner, filename string, r io.Reader) (string, string, error) {
	key, err := PhotoKey(owner, filename, time.Now())
	if err != nil {
		return "", "", err
	}

	br := bufio.NewReaderSize(io.LimitReader(r, MaxPhotoSize+1), 512)
	head, err := br.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", "", fmt.Errorf("failed to read photo: %w", err)
	}

	contentType := http.DetectContentType(head)
	if !strings.HasPrefix(contentType, "image/") {
		return "", "", fmt.Errorf("%w: content is %s", ErrUnsupportedPhoto, contentType)
	}

	counted := &countingReader{r: br}
	if err := store.Upload(ctx, key, contentType, counted); err != nil {
		return "", "", err
	}
	if counted.n > MaxPhotoSize {
		store.Delete(ctx, key)
		return "", "", ErrPhotoTooLarge
	}

	url, err := store.GetURL(ctx, key)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve photo URL: %w", err)
	}
	return key, url, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// sanitizeFilename removes directory parts and separators from filename.
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "/", "")
	filename = strings.ReplaceAll(filename, "\\", "")
	return strings.TrimSpace(filename)
}

func sanitizeOwner(owner string) string {
	var b strings.Builder
	for _, r := range owner {
		if r == '-' || r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
