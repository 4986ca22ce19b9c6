package main

import (
	"github.com/spf13/cobra"

	"github.com/backmassage/vp9batch/internal/check"
	"github.com/backmassage/vp9batch/internal/config"
	"github.com/backmassage/vp9batch/internal/logging"
)

func newCheckCmd() *cobra.Command {
	cfg := config.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify ffmpeg and the VP9 and audio encoders are available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(&cfg, cmd.Flags()); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			log, err := logging.NewLogger(&cfg)
			if err != nil {
				return err
			}
			defer log.Close()
			return check.RunCheck(&cfg, log)
		},
	}
	config.BindFlags(cmd.Flags(), &cfg)
	return cmd
}
