package main

import (
	"fmt"
	"os"
	"time"

	"luarcsync/pkg/updater"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func newUpdateCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Write plugin library paths into .luarc.json",
		Long: `Scan the lazy.nvim install root for plugins that ship a lua/ directory and
store their paths in the Lua.workspace.library field of .luarc.json.

Run it again after installing new plugins to get completion for them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, flags)
		},
	}
}

func runUpdate(cmd *cobra.Command, flags *globalFlags) error {
	cfg, err := flags.load(cmd)
	if err != nil {
		return err
	}

	var opts updater.Options
	if flags.progress && cfg.Extended {
		bar := progressbar.NewOptions(
			-1,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("scanning plugin specs"),
			progressbar.OptionShowCount(),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionThrottle(80*time.Millisecond),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(os.Stderr)
			}),
		)
		defer func() { _ = bar.Finish() }()
		opts.OnFile = func(string) { _ = bar.Add(1) }
	}

	res, err := updater.Run(cmd.Context(), cfg, opts)
	if err != nil {
		return err
	}
	if cfg.DryRun {
		diff := res.Change.Diff()
		if diff == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "no changes")
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), diff)
	}
	return nil
}
