// Package metrics provides Prometheus metrics for a single batch run.
//
// A batch is a short-lived process, so nothing is served over HTTP; the
// registry is written once at batch end in text exposition format for the
// node_exporter textfile collector.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Job result label values.
const (
	ResultCompleted   = "completed"
	ResultFailed      = "failed"
	ResultSkipped     = "skipped"
	ResultInterrupted = "interrupted"
)

// Batch owns a private registry. All methods are safe on a nil *Batch, so
// callers that run without metrics need no guards.
type Batch struct {
	reg *prometheus.Registry

	jobs         *prometheus.CounterVec
	passDuration *prometheus.HistogramVec
	outputBytes  prometheus.Counter
	batchJobs    prometheus.Gauge
}

// NewBatch creates the registry and registers all batch metrics on it.
func NewBatch() *Batch {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Batch{
		reg: reg,
		jobs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vp9batch",
			Name:      "jobs_total",
			Help:      "Jobs finished in this batch, by result",
		}, []string{"result"}),
		passDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vp9batch",
			Name:      "pass_duration_seconds",
			Help:      "Wall time of each encoder pass",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 14), // 1s .. ~2.3h
		}, []string{"pass"}),
		outputBytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: "vp9batch",
			Name:      "output_bytes_total",
			Help:      "Bytes written to completed outputs",
		}),
		batchJobs: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "vp9batch",
			Name:      "batch_jobs",
			Help:      "Number of jobs in the current batch",
		}),
	}
}

// Registry exposes the underlying registry.
func (b *Batch) Registry() *prometheus.Registry {
	if b == nil {
		return nil
	}
	return b.reg
}

// SetBatchJobs records the batch size.
func (b *Batch) SetBatchJobs(n int) {
	if b == nil {
		return
	}
	b.batchJobs.Set(float64(n))
}

// IncJob counts one finished job under result.
func (b *Batch) IncJob(result string) {
	if b == nil {
		return
	}
	b.jobs.WithLabelValues(result).Inc()
}

// ObservePass records the duration of one encoder pass.
func (b *Batch) ObservePass(pass int, d time.Duration) {
	if b == nil {
		return
	}
	b.passDuration.WithLabelValues(strconv.Itoa(pass)).Observe(d.Seconds())
}

// AddOutputBytes adds the size of a completed output.
func (b *Batch) AddOutputBytes(n int64) {
	if b == nil || n <= 0 {
		return
	}
	b.outputBytes.Add(float64(n))
}

// WriteTextfile writes the registry to path in text exposition format. The
// file is written to a temporary sibling and renamed into place.
func (b *Batch) WriteTextfile(path string) error {
	if b == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, b.reg)
}
