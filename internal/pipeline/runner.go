package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/backmassage/vp9batch/internal/config"
	"github.com/backmassage/vp9batch/internal/display"
	"github.com/backmassage/vp9batch/internal/ffmpeg"
	"github.com/backmassage/vp9batch/internal/logging"
	"github.com/backmassage/vp9batch/internal/metrics"
	"github.com/backmassage/vp9batch/internal/planner"
	"github.com/backmassage/vp9batch/internal/probe"
	"github.com/backmassage/vp9batch/internal/tracker"
)

// Options configures an [Orchestrator].
type Options struct {
	Binary       string // encoder executable, resolved via PATH
	Params       planner.Params
	ProbeBinary  string // empty disables the pre-job source probe
	DryRun       bool
	SkipExisting bool

	Stdio    ffmpeg.Stdio     // zero value: encoder inherits our streams
	Signals  <-chan os.Signal // nil: subscribe to SIGINT and SIGTERM
	Observer Observer
	Metrics  *metrics.Batch
}

// OptionsFromConfig derives Options from a validated Config.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := Options{
		Binary:       cfg.Encoder.Binary,
		Params:       planner.FromConfig(cfg),
		DryRun:       cfg.DryRun,
		SkipExisting: cfg.Output.SkipExisting,
	}
	if cfg.Probe {
		opts.ProbeBinary = cfg.Encoder.ProbeBinary
	}
	return opts
}

// Orchestrator runs batches of jobs. Each call to RunBatch gets a fresh
// tracker; batches must not run concurrently on one Orchestrator.
type Orchestrator struct {
	opts    Options
	log     *logging.Logger
	tracker *tracker.Tracker
}

// NewOrchestrator returns an Orchestrator. A nil log discards output.
func NewOrchestrator(opts Options, log *logging.Logger) *Orchestrator {
	if opts.Observer == nil {
		opts.Observer = NopObserver{}
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Orchestrator{opts: opts, log: log, tracker: tracker.New()}
}

// Tracker returns the tracker of the current or most recent batch.
func (o *Orchestrator) Tracker() *tracker.Tracker {
	return o.tracker
}

// RunBatch runs jobs in order, pass 1 then pass 2 for each, and stops at
// the first failure.
//
// On success it returns a nil error and the tracker is idle. On a pass
// failure it returns a [*PassError]; the failed job's output stays marked
// active and its partial file is left on disk for the caller. On interrupt
// it stops the running encoder, deletes the active output, and returns
// [ErrInterrupted]. The BatchResult is valid in every case.
func (o *Orchestrator) RunBatch(ctx context.Context, jobs []Job) (BatchResult, error) {
	res := BatchResult{
		RunID:   uuid.NewString(),
		Total:   len(jobs),
		Started: time.Now(),
		Jobs:    make([]JobResult, len(jobs)),
	}
	for i, j := range jobs {
		res.Jobs[i] = JobResult{Job: j, Status: StatusPending}
	}

	log := o.log.With("run_id", res.RunID)
	tr := tracker.New()
	o.tracker = tr
	o.opts.Metrics.SetBatchJobs(len(jobs))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stopWatch := o.watchSignals(log, cancel)

	log.Info("Videos to convert: %d", len(jobs))

	var batchErr error
	for i, job := range jobs {
		if runCtx.Err() != nil {
			batchErr = ErrInterrupted
			break
		}
		jr, err := o.runJob(runCtx, log, tr, i+1, len(jobs), job)
		res.Jobs[i] = jr
		res.tally(jr)
		if err != nil {
			batchErr = err
			break
		}
	}

	if errors.Is(batchErr, ErrInterrupted) {
		res.Interrupted = true
		o.cleanup(log, tr, &res)
	}
	// Signals stay captured until cleanup has finished.
	stopWatch()

	res.Elapsed = time.Since(res.Started)
	o.logSummary(log, &res, batchErr)
	return res, batchErr
}

func (r *BatchResult) tally(jr JobResult) {
	if jr.Attempted {
		r.Attempted++
	}
	switch jr.Status {
	case StatusCompleted:
		r.Completed++
		r.TotalInputBytes += jr.InputBytes
		r.TotalOutputBytes += jr.OutputBytes
	case StatusSkipped:
		r.Skipped++
	case StatusPlanned:
		r.Planned++
	}
}

// watchSignals cancels the batch on the first signal. Later signals are
// logged and otherwise ignored; cleanup runs once, after the job loop
// unwinds. The returned func unsubscribes and waits for the watcher.
func (o *Orchestrator) watchSignals(log *logging.Logger, cancel context.CancelFunc) func() {
	sigs := o.opts.Signals
	var notify chan os.Signal
	if sigs == nil {
		notify = make(chan os.Signal, 2)
		signal.Notify(notify, os.Interrupt, syscall.SIGTERM)
		sigs = notify
	}

	quit := make(chan struct{})
	done := make(chan struct{})
	var once sync.Once
	go func() {
		defer close(done)
		for {
			select {
			case sig, ok := <-sigs:
				if !ok {
					return
				}
				first := false
				once.Do(func() {
					first = true
					log.Warn("Received %v, stopping batch", sig)
					cancel()
				})
				if !first {
					log.Warn("Received %v, cleanup already in progress", sig)
				}
			case <-quit:
				return
			}
		}
	}()

	return func() {
		if notify != nil {
			signal.Stop(notify)
		}
		close(quit)
		<-done
	}
}

// runJob drives one job through both passes. It returns ErrInterrupted
// when ctx is cancelled, a *PassError when a pass fails, and nil when the
// job completed, was skipped, or was only planned.
func (o *Orchestrator) runJob(ctx context.Context, log *logging.Logger, tr *tracker.Tracker, idx, total int, job Job) (jr JobResult, err error) {
	jr = JobResult{Job: job}
	start := time.Now()
	defer func() {
		jr.Elapsed = time.Since(start)
		jr.Err = err
		o.recordJob(jr)
		o.opts.Observer.OnJobDone(job, jr)
	}()

	o.opts.Observer.OnJobStart(idx, total, job)
	log.Info("Encoding (%d/%d):", idx, total)
	log.Info("\tFrom:\t%s", filepath.Base(job.InputPath))
	log.Info("\tTo:\t%s", filepath.Base(job.OutputPath))

	if fi, statErr := os.Stat(job.InputPath); statErr == nil {
		jr.InputBytes = fi.Size()
	}

	if o.opts.SkipExisting {
		if _, statErr := os.Stat(job.OutputPath); statErr == nil {
			log.Warn("Skip (exists): %s", filepath.Base(job.OutputPath))
			jr.Status = StatusSkipped
			return jr, nil
		}
	}

	o.logSource(ctx, log, job)

	if o.opts.DryRun {
		for _, pass := range planner.Passes {
			args := planner.Plan(o.opts.Params, job.InputPath, job.OutputPath, pass)
			log.Info("[DRY] %s: %s", pass, display.FormatCommand(o.opts.Binary, args))
		}
		jr.Status = StatusPlanned
		return jr, nil
	}

	if mkErr := os.MkdirAll(filepath.Dir(job.OutputPath), 0o755); mkErr != nil {
		log.Error("Cannot create output directory: %v", mkErr)
		jr.Status = StatusFailed
		return jr, fmt.Errorf("create output directory: %w", mkErr)
	}

	if ctx.Err() != nil {
		jr.Status = StatusInterrupted
		return jr, ErrInterrupted
	}

	tr.MarkActive(job.OutputPath)
	jr.Attempted = true

	for _, pass := range planner.Passes {
		if ctx.Err() != nil {
			jr.Status = StatusInterrupted
			return jr, ErrInterrupted
		}

		log.Info("Running %s...", pass)
		o.opts.Observer.OnPassStart(job, pass)

		args := planner.Plan(o.opts.Params, job.InputPath, job.OutputPath, pass)
		log.Debug("%s", display.FormatCommand(o.opts.Binary, args))

		passStart := time.Now()
		passErr := o.runPass(ctx, tr, args)
		dur := time.Since(passStart)
		o.opts.Metrics.ObservePass(int(pass), dur)
		o.opts.Observer.OnPassDone(job, pass, passErr, dur)

		if passErr != nil {
			if ctx.Err() != nil {
				jr.Status = StatusInterrupted
				return jr, ErrInterrupted
			}
			perr := &PassError{Job: job, Pass: pass, Err: passErr}
			log.Error("%s failed (%s): %v", pass, perr.Stage(), passErr)
			jr.Status = StatusFailed
			return jr, perr
		}
	}

	tr.MarkComplete()

	if fi, statErr := os.Stat(job.OutputPath); statErr == nil {
		jr.OutputBytes = fi.Size()
	}
	jr.Status = StatusCompleted
	log.Success("Encoding complete → %s (%s, %s of original, %s)",
		job.OutputPath,
		display.FormatBytes(jr.OutputBytes),
		display.FormatRatio(jr.InputBytes, jr.OutputBytes),
		display.FormatDuration(time.Since(start)))
	return jr, nil
}

// runPass runs one encoder invocation. The process is registered with the
// tracker for exactly as long as it is alive.
func (o *Orchestrator) runPass(ctx context.Context, tr *tracker.Tracker, args []string) error {
	p, err := ffmpeg.StartWithStdio(o.opts.Binary, args, o.opts.Stdio)
	if err != nil {
		return err
	}
	tr.SetProcess(p)
	defer tr.ClearProcess()
	return p.WaitContext(ctx)
}

// cleanup is the interrupt path: stop any encoder still registered, then
// delete the active output. Failures are logged, never returned.
func (o *Orchestrator) cleanup(log *logging.Logger, tr *tracker.Tracker, res *BatchResult) {
	o.opts.Observer.OnCleanup()
	if err := tr.TerminateProcess(); err != nil {
		log.Error("Cannot stop encoder: %v", err)
	}
	path, err := tr.DeleteIfActive()
	if err != nil {
		log.Error("%v", err)
		return
	}
	if path != "" {
		res.DeletedOutput = path
		log.Warn("Deleted incomplete output: %s", path)
	}
}

func (o *Orchestrator) logSource(ctx context.Context, log *logging.Logger, job Job) {
	if o.opts.ProbeBinary == "" {
		return
	}
	r, err := probe.Probe(ctx, o.opts.ProbeBinary, job.InputPath)
	if err != nil {
		if ctx.Err() == nil {
			log.Warn("Cannot probe source: %v", err)
		}
		return
	}
	log.Info("\tSource:\t%s | %s | %s",
		r.Resolution(),
		display.FormatDuration(r.Format.Duration),
		display.FormatBitrate(r.Format.BitRate))
	if r.Upscales(o.opts.Params.Height) {
		log.Warn("Source is %dp; output will be upscaled to %dp", r.PrimaryVideo.Height, o.opts.Params.Height)
	}
	if !r.HasAudio() {
		log.Debug("Source has no audio stream")
	}
}

func (o *Orchestrator) recordJob(jr JobResult) {
	switch jr.Status {
	case StatusCompleted:
		o.opts.Metrics.IncJob(metrics.ResultCompleted)
		o.opts.Metrics.AddOutputBytes(jr.OutputBytes)
	case StatusFailed:
		o.opts.Metrics.IncJob(metrics.ResultFailed)
	case StatusSkipped:
		o.opts.Metrics.IncJob(metrics.ResultSkipped)
	case StatusInterrupted:
		o.opts.Metrics.IncJob(metrics.ResultInterrupted)
	}
}
