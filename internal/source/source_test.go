package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func TestDecode(t *testing.T) {
	utf16le, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String("select N'ü'")
	require.NoError(t, err)
	utf16be, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder().String("select 1")
	require.NoError(t, err)

	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{"plain", []byte("select 1"), "select 1"},
		{"utf8_bom", append([]byte{0xEF, 0xBB, 0xBF}, "select 1"...), "select 1"},
		{"utf16le_bom", []byte(utf16le), "select N'ü'"},
		{"utf16be_bom", []byte(utf16be), "select 1"},
		{"empty", nil, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Decode(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecode_InvalidUTF8(t *testing.T) {
	_, err := Decode([]byte{'s', 0xFF, 0xFE, 'x'})
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.sql")
	writeFile(t, path, "\xEF\xBB\xBFprint 1")

	text, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "print 1", text)

	_, err = ReadFile(filepath.Join(dir, "missing.sql"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.sql"), "")
	writeFile(t, filepath.Join(dir, "nested", "b.SQL"), "")
	writeFile(t, filepath.Join(dir, "nested", "notes.txt"), "")
	writeFile(t, filepath.Join(dir, "c.sql"), "")

	files, err := Discover([]string{
		dir,
		filepath.Join(dir, "*.sql"),
		filepath.Join(dir, "a.sql"),
		filepath.Join(dir, "none-*.sql"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.sql"),
		filepath.Join(dir, "c.sql"),
		filepath.Join(dir, "nested", "b.SQL"),
	}, files)
}

func TestDiscover_MissingPath(t *testing.T) {
	_, err := Discover([]string{filepath.Join(t.TempDir(), "nope.sql")})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
