package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information, set via -ldflags during build
var (
	Version = "dev"
	Commit  = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "withdraw-commission %s (%s)\n", Version, Commit)
		},
	}
}
