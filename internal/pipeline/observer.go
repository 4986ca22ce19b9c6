package pipeline

import (
	"time"

	"github.com/backmassage/vp9batch/internal/planner"
)

// Observer receives batch progress events from the job loop. Events are
// delivered synchronously on the loop's goroutine, in order; a slow
// observer slows the batch.
type Observer interface {
	// OnJobStart fires before the output is marked active. idx is 1-based.
	OnJobStart(idx, total int, job Job)
	// OnPassStart fires after the output is marked active and before the
	// encoder for pass is spawned.
	OnPassStart(job Job, pass planner.Pass)
	// OnPassDone fires after the encoder for pass has exited. err is nil on
	// success.
	OnPassDone(job Job, pass planner.Pass, err error, dur time.Duration)
	// OnJobDone fires once per job that was started, after the tracker has
	// been updated.
	OnJobDone(job Job, res JobResult)
	// OnCleanup fires when an interrupted batch starts its cleanup, before
	// the encoder is stopped and the active output deleted.
	OnCleanup()
}

// NopObserver ignores all events.
type NopObserver struct{}

func (NopObserver) OnJobStart(int, int, Job)                           {}
func (NopObserver) OnPassStart(Job, planner.Pass)                      {}
func (NopObserver) OnPassDone(Job, planner.Pass, error, time.Duration) {}
func (NopObserver) OnJobDone(Job, JobResult)                           {}
func (NopObserver) OnCleanup()                                         {}
