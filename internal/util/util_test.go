package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(path, make([]byte, 123), 0o644))

	assert.Equal(t, int64(123), FileSize(path))
	assert.Equal(t, int64(0), FileSize(filepath.Join(dir, "missing")))
	assert.Equal(t, int64(0), FileSize(dir))
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	assert.True(t, FileExists(path))
	assert.False(t, FileExists(filepath.Join(dir, "missing")))
	assert.False(t, FileExists(dir))
}

func TestEnsureDirectoryWritable(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, EnsureDirectoryWritable(dir))
	assert.Error(t, EnsureDirectoryWritable(filepath.Join(dir, "missing")))

	file := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	assert.Error(t, EnsureDirectoryWritable(file))
}

func TestFormatBytesReadable(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{999, "999 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
		{3 << 30, "3.0 GiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytesReadable(tt.bytes))
	}
}

func TestCalculateSizeReduction(t *testing.T) {
	assert.InDelta(t, 50.0, CalculateSizeReduction(100, 50), 0.001)
	assert.InDelta(t, 0.0, CalculateSizeReduction(0, 50), 0.001)
	assert.InDelta(t, -25.0, CalculateSizeReduction(100, 125), 0.001)
}

func TestFormatDurationFromSecs(t *testing.T) {
	assert.Equal(t, "0s", FormatDurationFromSecs(-5))
	assert.Equal(t, "42s", FormatDurationFromSecs(42))
	assert.Equal(t, "2m05s", FormatDurationFromSecs(125))
	assert.Equal(t, "1h01m05s", FormatDurationFromSecs(3665))
}
