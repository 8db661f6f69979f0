package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"
)

// LocalReader reads files from the local filesystem.
type LocalReader struct {
	open func(name string) (io.ReadCloser, error)
}

// NewLocalReader creates a LocalReader backed by os.Open.
func NewLocalReader() *LocalReader {
	return &LocalReader{
		open: func(name string) (io.ReadCloser, error) {
			return os.Open(name)
		},
	}
}

// ReadText opens filename, reads it whole and closes it on every path.
// It returns ("", ErrNotFound) when the file does not exist; the error also
// matches fs.ErrNotExist.
func (r *LocalReader) ReadText(ctx context.Context, filename string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := r.open(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("read %q: %w: %w", filename, ErrNotFound, err)
		}
		return "", fmt.Errorf("open file %q: %w", filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read file %q: %w", filename, err)
	}

	return decodeText(filename, data)
}

// decodeText validates UTF-8 and turns "\r\n" and lone "\r" line endings
// into "\n".
func decodeText(name string, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("read %q: %w", name, ErrInvalidEncoding)
	}
	return newlines.Replace(string(data)), nil
}

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")
