package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaFileSystem_ReadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.mkv"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	mfs := &MediaFileSystem{}
	entries, err := mfs.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestMediaFileSystem_Stat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.mkv")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	mfs := &MediaFileSystem{}
	info, err := mfs.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, "a.mkv", info.Name())
}

func TestMediaFileSystem_Open(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.mkv")
	require.NoError(t, os.WriteFile(path, []byte("contents"), 0o644))

	mfs := &MediaFileSystem{}
	f, err := mfs.Open(path)
	require.NoError(t, err)
	defer f.Close()

	buf := make([]byte, 8)
	n, err := f.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "contents", string(buf[:n]))
}

func TestMediaFileSystem_Stat_NotFound(t *testing.T) {
	mfs := &MediaFileSystem{}
	_, err := mfs.Stat(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
