package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ostafen/meshcheck/internal/fs"
	"github.com/stretchr/testify/require"
)

func TestReadHead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0644))

	head, size, err := fs.ReadHead(path, 4)
	require.NoError(t, err)
	require.Equal(t, []byte("0123"), head)
	require.Equal(t, int64(10), size)

	head, size, err = fs.ReadHead(path, 64)
	require.NoError(t, err)
	require.Equal(t, []byte("0123456789"), head)
	require.Equal(t, int64(10), size)
}

func TestReadHead_Missing(t *testing.T) {
	_, _, err := fs.ReadHead(filepath.Join(t.TempDir(), "missing"), 4)
	require.ErrorIs(t, err, os.ErrNotExist)
}
