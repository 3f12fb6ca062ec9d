// Package source resolves #include paths to file contents. It is the one
// I/O seam in the language pipeline: lexer, parser, analyzer, and
// interpreter never touch a filesystem directly.
package source

import (
	"fmt"
	"os"
	"path/filepath"
)

// Loader yields the text of an included file given a path as written in
// the #include directive and the base directory of the file that
// contains it. It returns a canonical path suitable for include dedup
// alongside the text.
type Loader interface {
	Read(relativePath, baseDir string) (canonicalPath string, text []byte, err error)
}

// FSLoader is the default Loader, reading files off the local disk. It
// joins relativePath against baseDir when relativePath is not already
// absolute, then canonicalizes via filepath.Abs + filepath.Clean so that
// "./x" and "x" resolved from the same directory collide in the include
// dedup set.
//
// SearchPaths are consulted, in order, after baseDir fails to resolve the
// file -- configured via internal/config's include.search-paths.
type FSLoader struct {
	SearchPaths []string
}

func (l FSLoader) Read(relativePath, baseDir string) (string, []byte, error) {
	if filepath.IsAbs(relativePath) {
		return readAt(relativePath, relativePath)
	}

	if canonical, text, err := readAt(filepath.Join(baseDir, relativePath), relativePath); err == nil {
		return canonical, text, nil
	}
	for _, dir := range l.SearchPaths {
		if canonical, text, err := readAt(filepath.Join(dir, relativePath), relativePath); err == nil {
			return canonical, text, nil
		}
	}
	return "", nil, fmt.Errorf("IO_NOT_FOUND: %s", relativePath)
}

func readAt(path, relativePath string) (string, []byte, error) {
	canonical, err := filepath.Abs(path)
	if err != nil {
		return "", nil, fmt.Errorf("IO_NOT_FOUND: %s: %w", relativePath, err)
	}
	canonical = filepath.Clean(canonical)

	text, err := os.ReadFile(canonical)
	if err != nil {
		return "", nil, fmt.Errorf("IO_NOT_FOUND: %s: %w", relativePath, err)
	}
	return canonical, text, nil
}

// MapLoader is an in-memory Loader keyed by canonical path, used by parser
// tests that exercise include resolution without touching disk.
type MapLoader map[string]string

func (m MapLoader) Read(relativePath, baseDir string) (string, []byte, error) {
	canonical := filepath.Clean(filepath.Join(baseDir, relativePath))
	text, ok := m[canonical]
	if !ok {
		return "", nil, fmt.Errorf("IO_NOT_FOUND: %s", relativePath)
	}
	return canonical, []byte(text), nil
}
