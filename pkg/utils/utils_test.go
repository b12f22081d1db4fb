package utils

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name     string
		root     string
		path     string
		expected string
	}{
		{
			name:     "relative path joins root",
			root:     "/work",
			path:     "out.txt",
			expected: "/work/out.txt",
		},
		{
			name:     "absolute path passes through",
			root:     "/work",
			path:     "/etc/hosts",
			expected: "/etc/hosts",
		},
		{
			name:     "dot segments are normalized",
			root:     "/work",
			path:     "./a/../b.txt",
			expected: "/work/b.txt",
		},
		{
			name:     "parent escape is normalized not blocked",
			root:     "/work/sub",
			path:     "../other.txt",
			expected: "/work/other.txt",
		},
		{
			name:     "absolute path with dots is cleaned",
			root:     "/work",
			path:     "/tmp/./x/../y",
			expected: "/tmp/y",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, filepath.FromSlash(tt.expected), ResolvePath(tt.root, tt.path))
		})
	}
}

func TestIsBinaryContent(t *testing.T) {
	assert.False(t, IsBinaryContent([]byte("plain text\nwith lines\n")))
	assert.False(t, IsBinaryContent([]byte{}))
	assert.False(t, IsBinaryContent([]byte("日本語のテキスト")))

	assert.True(t, IsBinaryContent([]byte{0x00, 0x01, 0x02}))
	assert.True(t, IsBinaryContent(append([]byte("PK\x03\x04"), 0x00)))
	assert.True(t, IsBinaryContent(bytes.Repeat([]byte{0xff}, 32)))
}

func TestIsBinaryContentLongTextWithCutRune(t *testing.T) {
	// Force a multi-byte rune to straddle the 512-byte window edge.
	prefix := strings.Repeat("a", 511)
	content := prefix + "日本語テキストの続き"

	assert.False(t, IsBinaryContent([]byte(content)))
}

func TestIsBinaryContentNulBeyondWindow(t *testing.T) {
	// NUL bytes past the sniff window are not inspected.
	content := append([]byte(strings.Repeat("a", 600)), 0x00)

	assert.False(t, IsBinaryContent(content))
}
