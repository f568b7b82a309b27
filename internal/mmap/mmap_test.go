package mmap_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ostafen/meshcheck/internal/mmap"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.obj")
	require.NoError(t, os.WriteFile(path, []byte("v 0 0 0\n"), 0644))

	mf, err := mmap.Open(path)
	require.NoError(t, err)
	require.Equal(t, 8, mf.FileSize)
	require.Equal(t, []byte("v 0 0 0\n"), mf.Data)
	require.NoError(t, mf.Close())
	require.Nil(t, mf.Data)
}

func TestOpen_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.stl")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	mf, err := mmap.Open(path)
	require.NoError(t, err)
	require.Zero(t, mf.FileSize)
	require.Nil(t, mf.Data)
	require.NoError(t, mf.Close())
}

func TestOpen_Directory(t *testing.T) {
	_, err := mmap.Open(t.TempDir())
	require.Error(t, err)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.stl")
	require.NoError(t, os.WriteFile(path, []byte("solid x\nendsolid x\n"), 0644))

	data, err := mmap.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "solid x\nendsolid x\n", string(data))

	_, err = mmap.ReadFile(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
