package main

import (
	"encoding/json"

	"luarcsync/pkg/annotation"
	"luarcsync/pkg/luarc"
	"luarcsync/pkg/updater"

	"github.com/spf13/cobra"
)

func newTypesCommand(flags *globalFlags) *cobra.Command {
	var current bool

	cmd := &cobra.Command{
		Use:   "types",
		Short: "Print the ---@module/---@type annotations found in plugin specs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}

			var records []annotation.Record
			if current {
				doc, err := luarc.Load(cfg.LuarcPath)
				if err != nil {
					return err
				}
				if _, err := doc.Get(cfg.PluginTypesKey, &records); err != nil {
					return err
				}
			} else {
				records, err = updater.CollectTypes(cmd.Context(), cfg, updater.Options{})
				if err != nil {
					return err
				}
			}
			if records == nil {
				records = []annotation.Record{}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		},
	}
	cmd.Flags().BoolVar(&current, "current", false, "Print the records stored in .luarc.json instead of scanning")
	return cmd
}
