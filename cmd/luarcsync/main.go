package main

import (
	"context"
	"log/slog"
	"os"

	"luarcsync/pkg/logging"
	"luarcsync/pkg/version"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		slog.Error("error", "err", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var verbose bool
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "luarcsync",
		Short:         "luarcsync - keep .luarc.json in sync with installed neovim plugins",
		Version:       version.GetBuildID(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			if verbose {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}
			c.SetContext(logging.WithLogger(c.Context(), slog.Default()))
			return nil
		},
		RunE: func(c *cobra.Command, args []string) error {
			return runUpdate(c, flags)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	flags.register(cmd)

	cmd.AddCommand(
		newUpdateCommand(flags),
		newPathsCommand(flags),
		newTypesCommand(flags),
		newVersionCommand(),
	)
	return cmd
}
