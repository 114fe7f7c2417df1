package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cbrit/withdraw-commission/config"
	"github.com/cbrit/withdraw-commission/log"
)

const defaultConfigFile = "~/.withdraw-commission/config.yaml"

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var out string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := log.NewLogger("info", log.FormatText, cmd.ErrOrStderr())

			written, err := config.WriteYamlWithComments(config.Default(), "withdraw-commission configuration", out, logger)
			if err != nil {
				return err
			}
			if written {
				fmt.Fprintln(cmd.OutOrStdout(), config.ExpandHomeDir(out))
			}
			return nil
		},
	}
	initCmd.Flags().StringVar(&out, "out", defaultConfigFile, "Where to write the configuration file. Existing files are never overwritten")

	configCmd.AddCommand(initCmd)
	return configCmd
}
