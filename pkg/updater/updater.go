// Package updater runs the collect, scan and rewrite steps against a .luarc.json.
package updater

import (
	"context"
	"errors"
	"fmt"

	"luarcsync/pkg/annotation"
	"luarcsync/pkg/collector"
	"luarcsync/pkg/config"
	"luarcsync/pkg/logging"
	"luarcsync/pkg/luarc"
)

// ErrNoLibraryPaths is returned when no library directory was found from any source.
// The .luarc.json is left untouched in that case.
var ErrNoLibraryPaths = errors.New("no plugin lua dirs found")

type Options struct {
	// OnFile is forwarded to the annotation scanner.
	OnFile func(rel string)
}

type Result struct {
	Paths   []string
	Records []annotation.Record
	Change  luarc.Change
}

// CollectPaths returns the library paths for cfg. In extended mode the config's own lua
// directory comes first.
func CollectPaths(ctx context.Context, cfg config.Config) ([]string, error) {
	opts := collector.Options{
		Root:   cfg.LazyRoot,
		Marker: cfg.Marker,
	}
	if cfg.Extended {
		opts.Primary = cfg.PrimaryRoot
	}
	res, err := collector.Collect(ctx, opts)
	if err != nil {
		return nil, err
	}
	return res.Paths, nil
}

// CollectTypes scans the plugin spec sources of cfg for annotations.
func CollectTypes(ctx context.Context, cfg config.Config, opts Options) ([]annotation.Record, error) {
	return annotation.Scan(ctx, cfg.PluginSpecRoot, annotation.Options{
		Extension: cfg.Extension,
		OnFile:    opts.OnFile,
	})
}

// Run collects library paths (and plugin types in extended mode) and writes them to the
// .luarc.json of cfg.
func Run(ctx context.Context, cfg config.Config, opts Options) (Result, error) {
	logger := logging.GetLogger(ctx)
	var res Result

	paths, err := CollectPaths(ctx, cfg)
	if err != nil {
		return res, err
	}
	if len(paths) == 0 {
		return res, fmt.Errorf("%w under %s", ErrNoLibraryPaths, cfg.LazyRoot)
	}
	res.Paths = paths
	logger.Info("found plugin lua dirs", "count", len(paths))

	if cfg.Extended {
		records, err := CollectTypes(ctx, cfg, opts)
		if err != nil {
			return res, err
		}
		res.Records = records
		logger.Info("found plugin type records", "count", len(records))
	}

	change, err := luarc.Rewrite(cfg.LuarcPath, luarc.Update{
		LibraryKey:      cfg.LibraryKey,
		Library:         paths,
		WithPluginTypes: cfg.Extended,
		PluginTypesKey:  cfg.PluginTypesKey,
		PluginTypes:     res.Records,
		DryRun:          cfg.DryRun,
	})
	res.Change = change
	if err != nil {
		return res, err
	}

	if change.Written {
		logger.Info("updated", "path", change.Path, "changed", change.Changed())
	} else {
		logger.Info("dry run, not writing", "path", change.Path, "changed", change.Changed())
	}
	return res, nil
}
