package ingestor

import (
	"context"
	"io"
	"os"

	"github.com/go-errors/errors"
)

// Source reads the full content of a log file.
type Source interface {
	Read(ctx context.Context, path string) (string, error)
}

var _ Source = (*FileSource)(nil)

// FileSource reads log content from the filesystem, or from Stdin when the
// path is "-".
type FileSource struct {
	// Stdin overrides os.Stdin for the "-" path.
	Stdin io.Reader
}

// Read returns the whole content at path.
func (f *FileSource) Read(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if path == "-" {
		in := f.Stdin
		if in == nil {
			in = os.Stdin
		}
		b, err := io.ReadAll(in)
		if err != nil {
			return "", errors.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Errorf("read log file: %w", err)
	}
	return string(b), nil
}

// Read is a convenience function that reads path with a FileSource.
// Pass "-" to read from stdin.
func Read(ctx context.Context, path string) (string, error) {
	return (&FileSource{}).Read(ctx, path)
}
