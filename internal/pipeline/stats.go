package pipeline

import (
	"time"

	"github.com/backmassage/vp9batch/internal/report"
)

// JobStatus is the final state of one job in a batch.
type JobStatus string

const (
	StatusPending     JobStatus = "pending" // never reached
	StatusCompleted   JobStatus = "completed"
	StatusFailed      JobStatus = "failed"
	StatusSkipped     JobStatus = "skipped"
	StatusInterrupted JobStatus = "interrupted"
	StatusPlanned     JobStatus = "planned" // dry run
)

// JobResult is the outcome of one job.
type JobResult struct {
	Job         Job
	Status      JobStatus
	Attempted   bool // output was marked active and pass 1 reached
	Err         error
	InputBytes  int64
	OutputBytes int64
	Elapsed     time.Duration
}

// BatchResult aggregates a batch run. Attempted counts jobs whose first
// pass was reached; Completed counts jobs whose second pass succeeded.
type BatchResult struct {
	RunID     string
	Total     int
	Attempted int
	Completed int
	Skipped   int
	Planned   int

	TotalInputBytes  int64
	TotalOutputBytes int64

	Started time.Time
	Elapsed time.Duration

	Interrupted   bool
	DeletedOutput string // incomplete output removed by the interrupt path

	Jobs []JobResult
}

// SpaceSaved returns the aggregate byte difference between the inputs and
// outputs of completed jobs. Positive means outputs are smaller.
func (r *BatchResult) SpaceSaved() int64 {
	return r.TotalInputBytes - r.TotalOutputBytes
}

// Report converts r into the JSON report document. batchErr is the error
// RunBatch returned, if any.
func (r *BatchResult) Report(batchErr error) *report.Report {
	rep := &report.Report{
		RunID:         r.RunID,
		Started:       r.Started,
		Finished:      r.Started.Add(r.Elapsed),
		Total:         r.Total,
		Attempted:     r.Attempted,
		Completed:     r.Completed,
		Skipped:       r.Skipped,
		Interrupted:   r.Interrupted,
		DeletedOutput: r.DeletedOutput,
		Jobs:          make([]report.Entry, 0, len(r.Jobs)),
	}
	if batchErr != nil {
		rep.Error = batchErr.Error()
	}
	for _, j := range r.Jobs {
		e := report.Entry{
			Input:          j.Job.InputPath,
			Output:         j.Job.OutputPath,
			Status:         string(j.Status),
			OutputBytes:    j.OutputBytes,
			ElapsedSeconds: j.Elapsed.Seconds(),
		}
		if j.Err != nil {
			e.Error = j.Err.Error()
		}
		rep.Jobs = append(rep.Jobs, e)
	}
	return rep
}
