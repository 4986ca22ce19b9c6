// Package report writes a machine-readable JSON summary of a batch run.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Entry is the outcome of one job.
type Entry struct {
	Input          string  `json:"input"`
	Output         string  `json:"output"`
	Status         string  `json:"status"`
	Error          string  `json:"error,omitempty"`
	OutputBytes    int64   `json:"output_bytes,omitempty"`
	ElapsedSeconds float64 `json:"elapsed_seconds,omitempty"`
}

// Report is the document written at batch end.
type Report struct {
	RunID         string    `json:"run_id"`
	Started       time.Time `json:"started"`
	Finished      time.Time `json:"finished"`
	Total         int       `json:"total"`
	Attempted     int       `json:"attempted"`
	Completed     int       `json:"completed"`
	Skipped       int       `json:"skipped"`
	Interrupted   bool      `json:"interrupted"`
	DeletedOutput string    `json:"deleted_output,omitempty"`
	Error         string    `json:"error,omitempty"`
	Jobs          []Entry   `json:"jobs"`
}

// Write serializes r to path. Readers never observe a partially written
// file: the document is staged next to path and renamed over it.
func Write(path string, r *Report) error {
	if r.Jobs == nil {
		r.Jobs = []Entry{}
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	if err := writeAtomic(path, data); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

// Read loads a report written by Write.
func Read(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", path, err)
	}
	return &r, nil
}
