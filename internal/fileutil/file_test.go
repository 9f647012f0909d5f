package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFileBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.bin")
	require.NoError(t, os.WriteFile(path, []byte("image-bytes"), 0o644))

	data, err := ReadFileBytes(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), data)
}

func TestReadFileBytesMissingFile(t *testing.T) {
	_, err := ReadFileBytes(filepath.Join(t.TempDir(), "missing.bin"))
	assert.Error(t, err)
}
