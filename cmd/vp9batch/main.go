// Command vp9batch transcodes every video in a directory to VP9 with a
// two-pass encode, one file at a time.
//
// Subcommands: encode, list, check, version. The exit status is 0 on
// success, 130 when a batch was interrupted (after the incomplete output
// has been removed), and 1 for any other failure.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/backmassage/vp9batch/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "0.1.0-dev"
	commit  = "unknown"
)

// exitInterrupted follows the shell convention of 128+SIGINT.
const exitInterrupted = 130

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)
	return exitCode(root.Execute())
}

// exitCode maps a command error to the process exit status. Errors are
// printed here, once, unless the batch was interrupted (cleanup has already
// reported what it did).
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, pipeline.ErrInterrupted):
		return exitInterrupted
	}
	fmt.Fprintf(os.Stderr, "vp9batch: %v\n", err)
	return 1
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vp9batch",
		Short:         "Two-pass VP9 batch transcoder",
		Long:          "vp9batch encodes every video in a directory to VP9 (two-pass, 720p, constant quality) by driving ffmpeg, one file at a time. An interrupted run never leaves a truncated output behind.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("vp9batch {{.Version}} (commit " + commit + ")\n")
	root.AddCommand(
		newEncodeCmd(),
		newListCmd(),
		newCheckCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vp9batch %s (commit %s)\n", version, commit)
		},
	}
}
