package main

import (
	"luarcsync/pkg/config"

	"github.com/spf13/cobra"
)

type globalFlags struct {
	configRoot string
	appName    string
	lazyRoot   string
	extended   bool
	dryRun     bool
	progress   bool
}

func (f *globalFlags) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&f.configRoot, "config-root", "", "Neovim config directory holding .luarc.json (default: nearest parent with .luarc.json)")
	pf.StringVar(&f.appName, "appname", "", "NVIM_APPNAME used to locate the lazy.nvim install root")
	pf.StringVar(&f.lazyRoot, "lazy-root", "", "lazy.nvim install root (default: $XDG_DATA_HOME/nvim/<appname>/lazy)")
	pf.BoolVar(&f.extended, "extended", false, "Also list the config's own lua dir first and record plugin spec annotations")
	pf.BoolVar(&f.dryRun, "dry-run", false, "Show the changes without writing .luarc.json")
	pf.BoolVar(&f.progress, "progress", false, "Show a progress spinner while scanning plugin specs")
}

func (f *globalFlags) load(cmd *cobra.Command) (config.Config, error) {
	o := config.Overrides{
		ConfigRoot: f.configRoot,
		AppName:    f.appName,
		LazyRoot:   f.lazyRoot,
		DryRun:     f.dryRun,
	}
	if cmd.Flags().Changed("extended") {
		o.Extended = &f.extended
	}
	return config.Load(cmd.Context(), o)
}
