package pipeline

import (
	"errors"

	"github.com/backmassage/vp9batch/internal/display"
	"github.com/backmassage/vp9batch/internal/logging"
)

func (o *Orchestrator) logSummary(log *logging.Logger, res *BatchResult, batchErr error) {
	log.Info("==============================")
	switch {
	case o.opts.DryRun:
		log.Info("Dry run: %d planned, %d skipped of %d", res.Planned, res.Skipped, res.Total)
	case res.Interrupted:
		log.Warn("Interrupted: %d of %d jobs completed", res.Completed, res.Total)
	case batchErr != nil:
		log.Error("Batch failed: %d of %d jobs completed before failure", res.Completed, res.Total)
	default:
		log.Success("Done: %d of %d completed, %d skipped", res.Completed, res.Total, res.Skipped)
	}
	log.Info("  Elapsed: %s", display.FormatDuration(res.Elapsed))

	var perr *PassError
	if errors.As(batchErr, &perr) && perr.Stage() == "encode" {
		log.Warn("  Partial output left in place: %s", perr.Job.OutputPath)
	}

	if res.Completed == 0 {
		return
	}
	saved := res.SpaceSaved()
	if saved >= 0 {
		log.Success("  Total space saved: %s (input %s -> output %s)",
			display.FormatBytes(saved),
			display.FormatBytes(res.TotalInputBytes),
			display.FormatBytes(res.TotalOutputBytes))
	} else {
		log.Warn("  Total space saved: %s (overall output is larger)", display.FormatBytes(saved))
	}
}
