// Package filestore reads whole text files from the local filesystem or from
// Google Cloud Storage.
//
// A missing file is reported as ErrNotFound so callers can tell "nothing
// there" apart from an empty file. Every other failure is returned wrapped.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// GCSScheme prefixes object names served by GCSReader.
const GCSScheme = "gs://"

var (
	// ErrNotFound is returned when the named file or object does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrInvalidEncoding is returned when content is not valid UTF-8 text.
	ErrInvalidEncoding = errors.New("file is not valid UTF-8 text")

	// ErrInvalidURI is returned for malformed gs:// URIs.
	ErrInvalidURI = errors.New("invalid GCS URI")

	// ErrUnsupportedScheme is returned by Router for gs:// names when no GCS
	// reader is configured.
	ErrUnsupportedScheme = errors.New("GCS reads are not enabled")
)

// Reader reads a named file in full and returns it as text.
type Reader interface {
	ReadText(ctx context.Context, name string) (string, error)
}

// Router sends gs:// names to a GCS reader and everything else to a local
// reader.
type Router struct {
	Local Reader
	GCS   Reader // optional
}

// NewRouter creates a Router. gcs may be nil.
func NewRouter(local, gcs Reader) *Router {
	if local == nil {
		local = NewLocalReader()
	}
	return &Router{Local: local, GCS: gcs}
}

// ReadText implements Reader.
func (r *Router) ReadText(ctx context.Context, name string) (string, error) {
	if strings.HasPrefix(name, GCSScheme) {
		if r.GCS == nil {
			return "", fmt.Errorf("read %q: %w", name, ErrUnsupportedScheme)
		}
		return r.GCS.ReadText(ctx, name)
	}
	return r.Local.ReadText(ctx, name)
}

// ReadFile reads a local file as text. See LocalReader.ReadText.
func ReadFile(ctx context.Context, filename string) (string, error) {
	return NewLocalReader().ReadText(ctx, filename)
}
