package tracker

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProc struct {
	calls int
	err   error
}

func (f *fakeProc) Terminate() error {
	f.calls++
	return f.err
}

func TestTracker_Lifecycle(t *testing.T) {
	tr := New()
	_, ok := tr.CurrentPath()
	assert.False(t, ok)

	tr.MarkActive("/out/a.mp4")
	path, ok := tr.CurrentPath()
	assert.True(t, ok)
	assert.Equal(t, "/out/a.mp4", path)

	tr.MarkComplete()
	_, ok = tr.CurrentPath()
	assert.False(t, ok)
}

func TestDeleteIfActive_RemovesPartialFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "a.mp4")
	require.NoError(t, os.WriteFile(out, []byte("partial"), 0o644))

	tr := New()
	tr.MarkActive(out)
	path, err := tr.DeleteIfActive()
	require.NoError(t, err)
	assert.Equal(t, out, path)
	assert.NoFileExists(t, out)

	_, ok := tr.CurrentPath()
	assert.False(t, ok)
}

func TestDeleteIfActive_MissingFileIsSuccess(t *testing.T) {
	tr := New()
	tr.MarkActive(filepath.Join(t.TempDir(), "never-created.webm"))
	_, err := tr.DeleteIfActive()
	assert.NoError(t, err)
}

func TestDeleteIfActive_SecondCallIsNoop(t *testing.T) {
	out := filepath.Join(t.TempDir(), "a.mp4")
	require.NoError(t, os.WriteFile(out, nil, 0o644))

	tr := New()
	tr.MarkActive(out)
	_, err := tr.DeleteIfActive()
	require.NoError(t, err)

	// A new file at the same path after cleanup must not be touched.
	require.NoError(t, os.WriteFile(out, []byte("new"), 0o644))
	path, err := tr.DeleteIfActive()
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.FileExists(t, out)
}

func TestDeleteIfActive_IdleDoesNothing(t *testing.T) {
	path, err := New().DeleteIfActive()
	assert.NoError(t, err)
	assert.Empty(t, path)
}

func TestDeleteIfActive_CompletedOutputSurvives(t *testing.T) {
	out := filepath.Join(t.TempDir(), "a.mp4")
	require.NoError(t, os.WriteFile(out, []byte("final"), 0o644))

	tr := New()
	tr.MarkActive(out)
	tr.MarkComplete()
	_, err := tr.DeleteIfActive()
	require.NoError(t, err)
	assert.FileExists(t, out)
}

func TestDeleteIfActive_RefusesNonVideo(t *testing.T) {
	out := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(out, []byte("keep"), 0o644))

	tr := New()
	tr.MarkActive(out)
	_, err := tr.DeleteIfActive()

	var de *DeleteError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, out, de.Path)
	assert.ErrorIs(t, err, ErrNotVideo)
	assert.FileExists(t, out)
}

func TestDeleteIfActive_ReportsRemoveFailure(t *testing.T) {
	// A non-empty directory named like a video cannot be removed.
	dir := filepath.Join(t.TempDir(), "a.mp4")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "inner"), 0o755))

	tr := New()
	tr.MarkActive(dir)
	_, err := tr.DeleteIfActive()

	var de *DeleteError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, dir, de.Path)
	assert.Contains(t, de.Error(), "delete incomplete output")
}

func TestTerminateProcess(t *testing.T) {
	tr := New()
	assert.NoError(t, tr.TerminateProcess())

	p := &fakeProc{}
	tr.SetProcess(p)
	assert.Equal(t, p, tr.Process())
	require.NoError(t, tr.TerminateProcess())
	assert.Equal(t, 1, p.calls)
	assert.Nil(t, tr.Process())

	// Cleared after the first call.
	require.NoError(t, tr.TerminateProcess())
	assert.Equal(t, 1, p.calls)
}

func TestTerminateProcess_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	tr := New()
	tr.SetProcess(&fakeProc{err: boom})
	assert.ErrorIs(t, tr.TerminateProcess(), boom)
}

func TestClearProcess(t *testing.T) {
	tr := New()
	tr.SetProcess(&fakeProc{})
	tr.ClearProcess()
	assert.Nil(t, tr.Process())
}

func TestTracker_ConcurrentAccess(t *testing.T) {
	tr := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			tr.MarkActive("/out/x.mp4")
			tr.MarkComplete()
		}()
		go func() {
			defer wg.Done()
			_, _ = tr.CurrentPath()
		}()
	}
	wg.Wait()
}
