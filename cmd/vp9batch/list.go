package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/backmassage/vp9batch/internal/pipeline"
)

var errNoFolder = errors.New("a folder path argument is required\nUsage: vp9batch list <folder>")

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <folder>",
		Short: "Print the file name of each video in a folder",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errNoFolder
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			videos, err := pipeline.Discover(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, v := range videos {
				fmt.Fprintln(out, filepath.Base(v))
			}
			return nil
		},
	}
}
