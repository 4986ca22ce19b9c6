package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/backmassage/vp9batch/internal/check"
	"github.com/backmassage/vp9batch/internal/config"
	"github.com/backmassage/vp9batch/internal/display"
	"github.com/backmassage/vp9batch/internal/logging"
	"github.com/backmassage/vp9batch/internal/metrics"
	"github.com/backmassage/vp9batch/internal/pipeline"
	"github.com/backmassage/vp9batch/internal/report"
	"github.com/backmassage/vp9batch/internal/term"
)

func newEncodeCmd() *cobra.Command {
	cfg := config.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "encode <input_dir>",
		Short: "Two-pass encode every video in a directory to VP9",
		Long: `Encode every video directly inside <input_dir> (no recursion) to VP9.

Settings are layered: built-in defaults, then the TOML config file
(vp9batch.toml or --config), then VP9BATCH_* environment variables, then
flags given on the command line.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.InputDir = config.NormalizeDirArg(args[0])
			return runEncode(cmd.Context(), &cfg, cmd.Flags())
		},
	}
	config.BindFlags(cmd.Flags(), &cfg)
	return cmd
}

func runEncode(ctx context.Context, cfg *config.Config, flags *pflag.FlagSet) error {
	// Bootstrap: the logger doesn't exist yet, so errors are returned and
	// printed by exitCode.
	if err := config.Load(cfg, flags); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	if cfg.Log.Format == config.LogFormatConsole && term.IsTerminal(os.Stdout) {
		display.PrintBanner(os.Stdout, version, term.ColorEnabled(cfg.Log.Color, os.Stdout))
	}

	inputs, err := pipeline.Discover(cfg.InputDir)
	if err != nil {
		return err
	}
	inputAbs, err := filepath.Abs(cfg.InputDir)
	if err != nil {
		return err
	}
	outputAbs, err := filepath.Abs(cfg.OutputDirFor(inputAbs))
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	if err := cfg.ValidatePaths(inputAbs, outputAbs); err != nil {
		return err
	}

	log.Info("In:  %s", inputAbs)
	log.Info("Out: %s", outputAbs)
	if cfg.DryRun {
		log.Warn("DRY RUN")
	}

	// A dry run never spawns the encoder, so it need not be installed.
	if !cfg.DryRun {
		if err := check.CheckDeps(cfg); err != nil {
			return err
		}
	}

	opts := pipeline.OptionsFromConfig(cfg)
	if cfg.MetricsFile != "" {
		opts.Metrics = metrics.NewBatch()
	}

	jobs := pipeline.BuildJobs(inputs, outputAbs, cfg.Output.Ext)
	res, runErr := pipeline.NewOrchestrator(opts, log).RunBatch(ctx, jobs)

	writeArtifacts(cfg, log, &res, opts.Metrics, runErr)
	return runErr
}

// writeArtifacts persists the optional report and metrics textfile. Their
// failures are logged; they never change the batch outcome.
func writeArtifacts(cfg *config.Config, log *logging.Logger, res *pipeline.BatchResult, m *metrics.Batch, runErr error) {
	if cfg.ReportFile != "" {
		if err := report.Write(cfg.ReportFile, res.Report(runErr)); err != nil {
			log.Error("%v", err)
		} else {
			log.Info("Report written: %s", cfg.ReportFile)
		}
	}
	if m != nil {
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Error("Cannot write metrics: %v", err)
		}
	}
}
