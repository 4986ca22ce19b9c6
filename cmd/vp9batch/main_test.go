package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/vp9batch/internal/pipeline"
	"github.com/backmassage/vp9batch/internal/report"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644))
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, exitInterrupted, exitCode(pipeline.ErrInterrupted))
	assert.Equal(t, exitInterrupted, exitCode(fmt.Errorf("batch: %w", pipeline.ErrInterrupted)))
	assert.Equal(t, 1, exitCode(errors.New("boom")))
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.mkv", "a.MP4", "notes.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.mp4"), 0o755))

	out, err := execute(t, "list", dir)
	require.NoError(t, err)
	assert.Equal(t, "a.MP4\nb.mkv\n", out)
}

func TestList_MissingArgument(t *testing.T) {
	_, err := execute(t, "list")
	assert.ErrorIs(t, err, errNoFolder)
}

func TestList_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.mp4")

	_, err := execute(t, "list", filepath.Join(dir, "a.mp4"))
	var de *pipeline.DiscoveryError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "Not a directory", de.Reason)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "vp9batch "+version)
}

func TestEncode_DryRunWritesReport(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.mov", "b.mkv", "skip.txt")
	reportPath := filepath.Join(t.TempDir(), "report.json")

	_, err := execute(t, "encode", dir,
		"--dry-run", "--probe=false", "--log-format", "json",
		"--ffmpeg", "definitely-not-installed-ffmpeg",
		"--report", reportPath)
	require.NoError(t, err)

	rep, err := report.Read(reportPath)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Total)
	assert.Zero(t, rep.Attempted)
	require.Len(t, rep.Jobs, 2)
	assert.Equal(t, filepath.Join(dir, "vp9", "a.mp4"), rep.Jobs[0].Output)
	assert.Equal(t, string(pipeline.StatusPlanned), rep.Jobs[0].Status)

	_, err = os.Stat(filepath.Join(dir, "vp9"))
	assert.True(t, os.IsNotExist(err), "dry run must not create the output directory")
}

func TestEncode_OutputEqualsInput(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.mov")

	_, err := execute(t, "encode", dir, "--dry-run", "--out", dir)
	assert.ErrorContains(t, err, "must differ")
}

func TestEncode_MissingEncoder(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.mov")

	_, err := execute(t, "encode", dir, "--probe=false", "--ffmpeg", "definitely-not-installed-ffmpeg")
	assert.ErrorContains(t, err, "definitely-not-installed-ffmpeg")
}

func TestEncode_InvalidConfig(t *testing.T) {
	_, err := execute(t, "encode", t.TempDir(), "--crf", "99")
	assert.Error(t, err)
}
