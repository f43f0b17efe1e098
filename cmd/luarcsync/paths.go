package main

import (
	"fmt"

	"luarcsync/pkg/updater"

	"github.com/spf13/cobra"
)

func newPathsCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print the plugin library paths that update would write",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			paths, err := updater.CollectPaths(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}
