// Package scanner walks a source tree and yields compilation-unit paths.
package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSuffix is the compilation-unit extension scanned when none is configured.
const DefaultSuffix = ".java"

var (
	// ErrSourceRootMissing is returned when the source root does not exist.
	ErrSourceRootMissing = errors.New("source root not found")
	// ErrNotDirectory is returned when the source root is not a directory.
	ErrNotDirectory = errors.New("source root is not a directory")
)

// SkipFunc is called for every unreadable directory entry. The walk continues afterwards.
type SkipFunc func(path string, err error)

// Scanner finds compilation units under a root directory
type Scanner struct {
	suffix string
	onSkip SkipFunc
}

// Option configures a Scanner
type Option func(*Scanner)

// WithSuffix sets the file extension that identifies a compilation unit
func WithSuffix(suffix string) Option {
	return func(s *Scanner) {
		if suffix != "" {
			s.suffix = suffix
		}
	}
}

// WithSkipHandler registers a callback for entries the walk could not read
func WithSkipHandler(fn SkipFunc) Option {
	return func(s *Scanner) {
		s.onSkip = fn
	}
}

// New creates a new scanner
func New(opts ...Option) *Scanner {
	s := &Scanner{suffix: DefaultSuffix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Suffix returns the configured compilation-unit extension
func (s *Scanner) Suffix() string {
	return s.suffix
}

// Scan returns every regular file under root ending in the configured suffix,
// in lexical order. Symlinked files are followed; symlinked directories are not
// descended into. Unreadable subdirectories and dangling links are reported to
// the skip handler and left out.
func (s *Scanner) Scan(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceRootMissing, root)
		}
		return nil, fmt.Errorf("failed to stat source root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			if s.onSkip != nil {
				s.onSkip(path, err)
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), s.suffix) {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err != nil {
				if s.onSkip != nil {
					s.onSkip(path, err)
				}
				return nil
			}
			if target.Mode().IsRegular() {
				files = append(files, path)
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return files, nil
}
