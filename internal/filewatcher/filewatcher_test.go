package filewatcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func createTempFile(t *testing.T) string {
	fpath := filepath.Join(t.TempDir(), "image.png")
	err := os.WriteFile(fpath, []byte("content"), 0o644)
	require.NoError(t, err)
	return fpath
}

func waitSignal(t *testing.T, w *FileWatcher) {
	select {
	case <-w.Watch():
	case <-time.After(2 * time.Second):
		t.Errorf("timed out")
	}
}

func TestNoFile(t *testing.T) {
	w := &FileWatcher{FilePath: "/nonexistent"}
	err := w.Initialize()
	require.Error(t, err)
}

func TestWrite(t *testing.T) {
	fpath := createTempFile(t)

	w := &FileWatcher{FilePath: fpath}
	err := w.Initialize()
	require.NoError(t, err)
	defer w.Close()

	err = os.WriteFile(fpath, []byte("new content"), 0o644)
	require.NoError(t, err)

	waitSignal(t, w)
}

func TestRename(t *testing.T) {
	fpath := createTempFile(t)

	w := &FileWatcher{FilePath: fpath}
	err := w.Initialize()
	require.NoError(t, err)
	defer w.Close()

	tmpPath := fpath + ".tmp"
	err = os.WriteFile(tmpPath, []byte("new content"), 0o644)
	require.NoError(t, err)

	err = os.Rename(tmpPath, fpath)
	require.NoError(t, err)

	waitSignal(t, w)
}

func TestOtherFileIgnored(t *testing.T) {
	fpath := createTempFile(t)

	w := &FileWatcher{FilePath: fpath}
	err := w.Initialize()
	require.NoError(t, err)
	defer w.Close()

	err = os.WriteFile(filepath.Join(filepath.Dir(fpath), "other.png"), []byte("x"), 0o644)
	require.NoError(t, err)

	select {
	case <-w.Watch():
		t.Errorf("unexpected signal")
	case <-time.After(200 * time.Millisecond):
	}
}
