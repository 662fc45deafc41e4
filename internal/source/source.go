// Package source turns SQL files on disk into script text for the parser.
// Files saved by SQL Server tooling are often UTF-16 with a byte order mark,
// so every file goes through Decode before it reaches the scanner.
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrInvalidUTF8 is returned for input without a UTF-16 byte order mark
// that is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

// Decode strips a UTF-8 or UTF-16 byte order mark and transcodes UTF-16 to
// UTF-8. Input without a byte order mark must already be UTF-8.
func Decode(data []byte) (string, error) {
	out, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	if !utf8.Valid(out) {
		return "", ErrInvalidUTF8
	}
	return string(out), nil
}

// ReadFile reads and decodes a single file.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	text, err := Decode(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return text, nil
}

// Discover expands files, directories and glob patterns into a sorted list
// of paths without duplicates. Directories are walked recursively for files
// with a .sql extension in any case. A plain path that does not exist is an
// error; a glob that matches nothing is not.
func Discover(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		if hasMeta(pattern) {
			matches, err := filepath.Glob(pattern)
			if err != nil {
				return nil, fmt.Errorf("glob %q: %w", pattern, err)
			}
			for _, m := range matches {
				found, err := expand(m)
				if err != nil {
					return nil, err
				}
				files = append(files, found...)
			}
			continue
		}
		found, err := expand(pattern)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

func expand(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{filepath.Clean(path)}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsSQLFile(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", path, err)
	}
	return files, nil
}

// IsSQLFile reports whether path has a .sql extension.
func IsSQLFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".sql")
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, `*?[`)
}
