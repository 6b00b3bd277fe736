package file

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalSource implements Source for the local filesystem.
// The zero value opens paths exactly as given. A source created with
// NewLocalSource confines every path to its base directory.
// Safe for concurrent use.
type LocalSource struct {
	baseDir string // Absolute path, empty means unconfined
}

// NewLocalSource creates a source rooted at baseDir.
// baseDir is resolved to an absolute path and must be an existing directory.
func NewLocalSource(baseDir string) (*LocalSource, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve base directory: %v", ErrFailedToGetAbsolutePath, err)
	}

	info, err := os.Stat(absBaseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToStatPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: base directory %s is not a directory", ErrInvalidConfig, baseDir)
	}

	return &LocalSource{baseDir: absBaseDir}, nil
}

// Open opens path for reading and verifies it is a regular file.
// The check runs on the opened handle so the reported metadata always
// matches the content that will be read.
func (s *LocalSource) Open(ctx context.Context, path string) (io.ReadCloser, *Info, error) {
	select {
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	default:
	}

	absPath, err := s.resolvePath(path)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(absPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrFailedToOpenFile, err)
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("%w: %w", ErrFailedToStatPath, err)
	}

	info, err := localInfo(path, stat)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}

	return f, info, nil
}

func localInfo(path string, stat fs.FileInfo) (*Info, error) {
	if stat.IsDir() {
		return nil, fmt.Errorf("%w: %w: %s", ErrNotRegularFile, ErrIsDirectory, path)
	}
	if !stat.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s (%s)", ErrNotRegularFile, path, stat.Mode().Type())
	}

	return &Info{
		Name:    stat.Name(),
		Path:    path,
		Size:    stat.Size(),
	}, nil
}

// resolvePath validates and resolves a path within the base directory.
// Ensures all resolved paths stay within baseDir bounds using prefix checking.
func (s *LocalSource) resolvePath(path string) (string, error) {
	if s.baseDir == "" {
		return path, nil
	}

	path = filepath.Clean(path)
	absPath := filepath.Join(s.baseDir, path)

	absPath, err := filepath.Abs(absPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}

	if !strings.HasPrefix(absPath, s.baseDir+string(filepath.Separator)) && absPath != s.baseDir {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}

	return absPath, nil
}
