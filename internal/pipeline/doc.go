// Package pipeline turns a directory of videos into an ordered list of
// encode jobs and runs them as one batch.
//
// The batch is strictly sequential: for each [Job] the [Orchestrator] marks
// the output active in its tracker, runs encoder pass 1 then pass 2, and
// marks the output complete only after pass 2 succeeds. Any pass failure
// stops the batch. An interrupt (SIGINT/SIGTERM or context cancellation)
// kills the running encoder, waits for it to exit, deletes the one output
// still marked active, and ends the batch with [ErrInterrupted].
package pipeline
