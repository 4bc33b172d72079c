package main

import (
	"github.com/spf13/cobra"

	"wxr_validator/internal/report"
)

func newRootCmd(sink report.Sink) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "wxrcheck",
		Short:         "Validate the images referenced by WordPress WXR exports",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.Version = "0.1.0"
	cmd.AddCommand(newImagesCmd(sink))

	return cmd
}
