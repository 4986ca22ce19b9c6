package pipeline

import (
	"errors"
	"fmt"

	"github.com/backmassage/vp9batch/internal/ffmpeg"
	"github.com/backmassage/vp9batch/internal/planner"
)

// ErrInterrupted is returned by RunBatch when the batch was stopped by a
// signal or by cancellation of its context.
var ErrInterrupted = errors.New("batch interrupted")

// DiscoveryError reports that the input directory cannot be listed.
type DiscoveryError struct {
	Path   string
	Reason string
	Err    error
}

func (e *DiscoveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Reason, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Path)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// PassError names the job and pass at which the batch failed. Err is an
// [*ffmpeg.LaunchError] or an [*ffmpeg.ExitError].
type PassError struct {
	Job  Job
	Pass planner.Pass
	Err  error
}

func (e *PassError) Error() string {
	return fmt.Sprintf("%s of %s: %s: %v", e.Pass, e.Job.InputPath, e.Stage(), e.Err)
}

func (e *PassError) Unwrap() error { return e.Err }

// Stage is "launch" when the encoder never started and "encode" when it ran
// and failed.
func (e *PassError) Stage() string {
	var le *ffmpeg.LaunchError
	if errors.As(e.Err, &le) {
		return "launch"
	}
	return "encode"
}
