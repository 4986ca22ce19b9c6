// Package tracker records which output file is currently incomplete and
// which encoder process, if any, is writing to it.
//
// A path is active from just before its first-pass encoder is spawned until
// its second pass exits successfully. While a path is active the file on
// disk must be assumed partial; the interrupt path uses [Tracker.DeleteIfActive]
// to remove it once the writer is gone.
package tracker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/backmassage/vp9batch/internal/naming"
)

// Terminator is a running child that can be force-stopped. Terminate must
// not return until the child has exited.
type Terminator interface {
	Terminate() error
}

// DeleteError reports that an incomplete output could not be removed.
type DeleteError struct {
	Path string
	Err  error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("delete incomplete output %s: %v", e.Path, e.Err)
}

func (e *DeleteError) Unwrap() error { return e.Err }

// ErrNotVideo is wrapped in a [*DeleteError] when the tracked path does not
// carry a recognized video extension and is therefore left alone.
var ErrNotVideo = errors.New("refusing to delete non-video file")

// Tracker is safe for concurrent use: the job loop updates it while the
// interrupt handler reads and clears it.
type Tracker struct {
	mu   sync.Mutex
	path string
	proc Terminator
}

// New returns an idle tracker.
func New() *Tracker {
	return &Tracker{}
}

// MarkActive records path as the in-progress output.
func (t *Tracker) MarkActive(path string) {
	t.mu.Lock()
	t.path = path
	t.mu.Unlock()
}

// MarkComplete clears the active path; the output is finished and must
// survive.
func (t *Tracker) MarkComplete() {
	t.mu.Lock()
	t.path = ""
	t.mu.Unlock()
}

// CurrentPath returns the active path and whether one is set.
func (t *Tracker) CurrentPath() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.path, t.path != ""
}

// SetProcess records the encoder currently writing toward the active path.
func (t *Tracker) SetProcess(p Terminator) {
	t.mu.Lock()
	t.proc = p
	t.mu.Unlock()
}

// ClearProcess forgets the current encoder after it has exited.
func (t *Tracker) ClearProcess() {
	t.SetProcess(nil)
}

// Process returns the in-flight encoder, or nil.
func (t *Tracker) Process() Terminator {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.proc
}

// TerminateProcess force-stops the in-flight encoder, if any, and clears
// it. It blocks until the child has exited.
func (t *Tracker) TerminateProcess() error {
	t.mu.Lock()
	p := t.proc
	t.proc = nil
	t.mu.Unlock()
	if p == nil {
		return nil
	}
	return p.Terminate()
}

// DeleteIfActive removes the active output file and clears the tracker. It
// returns the path it acted on ("" when nothing was active). A file that
// was never created is not an error. The active path is cleared before the
// delete is attempted, so a second call is always a no-op.
func (t *Tracker) DeleteIfActive() (string, error) {
	t.mu.Lock()
	path := t.path
	t.path = ""
	t.mu.Unlock()

	if path == "" {
		return "", nil
	}
	if !naming.IsVideoFile(path) {
		return path, &DeleteError{Path: path, Err: ErrNotVideo}
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return path, &DeleteError{Path: path, Err: err}
	}
	return path, nil
}
