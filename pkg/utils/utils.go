// Package utils provides small helpers shared across skillet: path
// resolution against a working root and binary content detection.
package utils

import (
	"path/filepath"
	"unicode/utf8"
)

// ResolvePath resolves a path against the given root unless it is already
// absolute. The result is cleaned so that "." and ".." segments are
// normalized before any filesystem operation.
func ResolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(root, path))
}

// IsBinaryContent reports whether data looks like binary rather than text.
// It checks the first 512 bytes for NUL bytes and falls back to a UTF-8
// validity check over the same window.
func IsBinaryContent(data []byte) bool {
	window := data
	if len(window) > 512 {
		window = window[:512]
	}

	for _, b := range window {
		if b == 0 {
			return true
		}
	}

	// The window edge may cut a multi-byte rune; trim at most three trailing
	// bytes to land on a rune boundary before validating.
	for i := 0; i < 3 && len(window) > 0 && !utf8.Valid(window); i++ {
		window = window[:len(window)-1]
	}

	return !utf8.Valid(window)
}
