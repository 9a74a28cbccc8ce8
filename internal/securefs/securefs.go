// Package securefs provides a file store confined to a base directory.
// All paths are validated against the base before any filesystem operation,
// so a crafted filename can never escape the upload root.
package securefs

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/tastebase/tastebase/internal/errors"
)

// SecureFS restricts file operations to a base directory.
type SecureFS struct {
	baseDir string
}

// New creates a SecureFS rooted at baseDir, creating the directory if needed.
func New(baseDir string) (*SecureFS, error) {
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolving base directory: %w", err)
	}
	if err := os.MkdirAll(absBase, 0o755); err != nil {
		return nil, fmt.Errorf("creating base directory: %w", err)
	}
	return &SecureFS{baseDir: absBase}, nil
}

// BaseDir returns the absolute base directory.
func (sfs *SecureFS) BaseDir() string {
	return sfs.baseDir
}

// SanitizeFilename strips path separators, traversal sequences and control
// characters from a client-supplied filename. It returns an error when
// nothing safe remains.
func SanitizeFilename(name string) (string, error) {
	// Keep only the final path element regardless of separator style
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r == '/' || r == '\\' || r == 0:
			// dropped
		case unicode.IsControl(r):
			// dropped
		default:
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	// Collapse traversal remnants
	cleaned = strings.Trim(cleaned, ". ")
	if cleaned == "" {
		return "", errors.Newf("filename %q contains no usable characters", name).
			Component("securefs").
			Category(errors.CategoryValidation).
			Build()
	}
	return cleaned, nil
}

// resolve validates that name stays within the base directory and returns
// the absolute path.
func (sfs *SecureFS) resolve(name string) (string, error) {
	if name == "" {
		return "", errors.Newf("empty file name").
			Component("securefs").
			Category(errors.CategoryValidation).
			Build()
	}

	target := filepath.Join(sfs.baseDir, name)
	rel, err := filepath.Rel(sfs.baseDir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Newf("path %q escapes the base directory", name).
			Component("securefs").
			Category(errors.CategoryValidation).
			Build()
	}
	return target, nil
}

// Save writes the reader's content to name inside the base directory,
// refusing to write more than maxSize bytes. It returns the path of the
// stored file relative to the base directory.
func (sfs *SecureFS) Save(name string, r io.Reader, maxSize int64) (string, error) {
	target, err := sfs.resolve(name)
	if err != nil {
		return "", err
	}

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", errors.New(fmt.Errorf("creating file: %w", err)).
			Component("securefs").
			Category(errors.CategoryFileIO).
			Build()
	}
	// Read one byte past the limit to detect oversized input
	written, err := io.Copy(f, io.LimitReader(r, maxSize+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(target)
		return "", errors.New(fmt.Errorf("writing file: %w", err)).
			Component("securefs").
			Category(errors.CategoryFileIO).
			Build()
	}
	if written > maxSize {
		_ = os.Remove(target)
		return "", errors.Newf("file exceeds the maximum allowed size of %d bytes", maxSize).
			Component("securefs").
			Category(errors.CategoryValidation).
			Build()
	}

	rel, err := filepath.Rel(sfs.baseDir, target)
	if err != nil {
		return "", fmt.Errorf("computing relative path: %w", err)
	}
	return rel, nil
}

// Open opens a stored file for reading.
func (sfs *SecureFS) Open(name string) (*os.File, error) {
	target, err := sfs.resolve(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(err).
				Component("securefs").
				Category(errors.CategoryNotFound).
				Build()
		}
		return nil, errors.New(err).
			Component("securefs").
			Category(errors.CategoryFileIO).
			Build()
	}
	return f, nil
}

// Stat returns file info for a stored file.
func (sfs *SecureFS) Stat(name string) (fs.FileInfo, error) {
	target, err := sfs.resolve(name)
	if err != nil {
		return nil, err
	}
	return os.Stat(target)
}

// Exists reports whether a stored file exists.
func (sfs *SecureFS) Exists(name string) bool {
	info, err := sfs.Stat(name)
	return err == nil && !info.IsDir()
}
