// Package fsutil reads expression sources and writes generated files safely.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// StdinPath is the path that names standard input on the command line.
const StdinPath = "-"

// MaxSourceSize bounds the size of a single source read into memory.
const MaxSourceSize = 64 << 20

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrTooLarge indicates the input exceeds MaxSourceSize.
	ErrTooLarge = errors.New("file too large")
)

// FileInfo describes a file that was read.
type FileInfo struct {
	// Path is the path the file was read from.
	Path string

	// Mode is the file's permission and mode bits.
	Mode os.FileMode

	// Size is the file size in bytes.
	Size int64
}

// ReadFile reads a file and returns its content along with metadata.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if stat.Size() > MaxSourceSize {
		return nil, nil, fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, path, stat.Size())
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}

	return content, &FileInfo{Path: path, Mode: stat.Mode(), Size: stat.Size()}, nil
}

// ReadInput reads path, or all of stdin when path is StdinPath.
func ReadInput(ctx context.Context, path string, stdin io.Reader) ([]byte, error) {
	if path != StdinPath {
		content, _, err := ReadFile(ctx, path)
		return content, err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	content, err := io.ReadAll(io.LimitReader(stdin, MaxSourceSize+1))
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if len(content) > MaxSourceSize {
		return nil, fmt.Errorf("%w: stdin exceeds %d bytes", ErrTooLarge, MaxSourceSize)
	}
	return content, nil
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
