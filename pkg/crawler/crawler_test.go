package crawler

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	mio "github.com/ryanb/mediavault/pkg/io"
	"github.com/ryanb/mediavault/pkg/progress"
	"github.com/ryanb/mediavault/pkg/storage"
	"github.com/ryanb/mediavault/pkg/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingFileIO wraps the real filesystem but counts ReadDir calls, so a
// test can assert the walk actually goes through the injected seam rather
// than falling back to package-level os calls.
type recordingFileIO struct {
	mio.FileIO
	readDirCalls int
}

func (r *recordingFileIO) ReadDir(path string) ([]os.DirEntry, error) {
	r.readDirCalls++
	return r.FileIO.ReadDir(path)
}

func newStore(t *testing.T) storage.Store {
	t.Helper()
	s, err := sqlite.New(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	require.NoError(t, s.Init(context.Background()))
	t.Cleanup(func() { s.Close() })
	return s
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestScanCategory_DiscoversFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Inception (2010)", "Inception (2010) 1080p.BluRay.x264.mkv"))
	writeFile(t, filepath.Join(root, "Inception (2010)", "Inception.2010.EXTENDED.1080p.mkv"))
	writeFile(t, filepath.Join(root, "Adult", "hidden.mkv"))
	writeFile(t, filepath.Join(root, ".cache", "thumb.mkv"))

	store := newStore(t)
	c := New(store, progress.New())

	result, err := c.ScanCategory(context.Background(), root, storage.CategoryMovies)
	require.NoError(t, err)
	assert.Equal(t, 2, result.FilesSeen)

	n, err := store.CountEpisodes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestScanCategory_Idempotent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Show", "Show S01E01.mkv"))

	store := newStore(t)
	c := New(store, progress.New())

	_, err := c.ScanCategory(context.Background(), root, storage.CategoryDomesticTV)
	require.NoError(t, err)
	_, err = c.ScanCategory(context.Background(), root, storage.CategoryDomesticTV)
	require.NoError(t, err)

	n, err := store.CountEpisodes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestScanCategory_UsesInjectedFileIO(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Show", "Show S01E01.mkv"))

	store := newStore(t)
	fio := &recordingFileIO{FileIO: &mio.MediaFileSystem{}}
	c := NewWithFileIO(store, progress.New(), fio)

	_, err := c.ScanCategory(context.Background(), root, storage.CategoryDomesticTV)
	require.NoError(t, err)
	assert.Positive(t, fio.readDirCalls)
}

func TestScanCategory_DeletesVanishedFiles(t *testing.T) {
	root := t.TempDir()
	filePath := filepath.Join(root, "Show", "Show S01E01.mkv")
	writeFile(t, filePath)

	store := newStore(t)
	c := New(store, progress.New())

	_, err := c.ScanCategory(context.Background(), root, storage.CategoryDomesticTV)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filePath))

	result, err := c.ScanCategory(context.Background(), root, storage.CategoryDomesticTV)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.EpisodesDeleted)
	assert.Equal(t, int64(1), result.SeriesDeleted)
}
