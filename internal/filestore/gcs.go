package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSReader reads objects from Google Cloud Storage.
// It assumes Application Default Credentials are configured unless client
// options say otherwise.
type GCSReader struct {
	client *storage.Client
}

// NewGCSReader creates a storage client and wraps it in a GCSReader.
// Close releases the client.
func NewGCSReader(ctx context.Context, opts ...option.ClientOption) (*GCSReader, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCSReader{client: client}, nil
}

// Close closes the underlying storage client.
func (r *GCSReader) Close() error {
	return r.client.Close()
}

// ReadText downloads the object named by a gs://bucket/path URI and returns
// it as text. The object reader is closed on every path.
func (r *GCSReader) ReadText(ctx context.Context, gcsURI string) (string, error) {
	bucketName, objectPath, err := ParseGCSURI(gcsURI)
	if err != nil {
		return "", err
	}

	rc, err := r.client.Bucket(bucketName).Object(objectPath).NewReader(ctx)
	if err != nil {
		return "", mapGCSError(gcsURI, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read GCS object %q: %w", gcsURI, err)
	}

	return decodeText(gcsURI, data)
}

func mapGCSError(gcsURI string, err error) error {
	if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
		return fmt.Errorf("read %q: %w: %w", gcsURI, ErrNotFound, err)
	}
	return fmt.Errorf("open GCS object reader %q: %w", gcsURI, err)
}

// ParseGCSURI splits "gs://bucket/path/to/file" into bucket and object path.
func ParseGCSURI(gcsURI string) (bucket, object string, err error) {
	if !strings.HasPrefix(gcsURI, GCSScheme) {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidURI, gcsURI)
	}

	trimmed := strings.TrimPrefix(gcsURI, GCSScheme)
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w (no object path): %s", ErrInvalidURI, gcsURI)
	}

	return parts[0], parts[1], nil
}

// ExtractFilename returns the last path element of a local path or GCS URI.
// e.g., "gs://bucket/folder/file.json" → "file.json"
func ExtractFilename(name string) string {
	if !strings.HasPrefix(name, GCSScheme) {
		return filepath.Base(name)
	}

	trimmed := strings.TrimPrefix(name, GCSScheme)
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) < 2 {
		return trimmed
	}

	return path.Base(parts[1])
}
