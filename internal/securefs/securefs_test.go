package securefs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastebase/tastebase/internal/errors"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain", "photo.png", "photo.png", false},
		{"unix path", "/etc/passwd", "passwd", false},
		{"windows path", `C:\Users\evil.png`, "evil.png", false},
		{"traversal", "../../secret.jpg", "secret.jpg", false},
		{"dots only", "..", "", true},
		{"empty", "", "", true},
		{"control chars", "a\x00b\nc.png", "abc.png", false},
		{"spaces kept", "my photo.png", "my photo.png", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeFilename(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSaveAndOpen(t *testing.T) {
	sfs, err := New(t.TempDir())
	require.NoError(t, err)

	rel, err := sfs.Save("a.png", strings.NewReader("image bytes"), 1024)
	require.NoError(t, err)
	assert.Equal(t, "a.png", rel)
	assert.True(t, sfs.Exists("a.png"))

	f, err := sfs.Open("a.png")
	require.NoError(t, err)
	defer f.Close()

	content := make([]byte, 32)
	n, _ := f.Read(content)
	assert.Equal(t, "image bytes", string(content[:n]))
}

func TestSave_RejectsOversizedFile(t *testing.T) {
	sfs, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = sfs.Save("big.png", strings.NewReader("0123456789"), 5)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	assert.False(t, sfs.Exists("big.png"), "Oversized file must not be left behind")
}

func TestResolve_RejectsEscape(t *testing.T) {
	base := t.TempDir()
	sfs, err := New(base)
	require.NoError(t, err)

	// Raw traversal must be rejected before any filesystem access
	_, err = sfs.Open("../outside.txt")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))

	_, err = sfs.Save("", strings.NewReader("x"), 10)
	require.Error(t, err)

	// Nothing may be created outside the base directory
	entries, err := os.ReadDir(filepath.Dir(base))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotEqual(t, "outside.txt", e.Name())
	}
}

func TestOpen_NotFound(t *testing.T) {
	sfs, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = sfs.Open("missing.png")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}
