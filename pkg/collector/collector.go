// Package collector discovers plugin library directories below a lazy.nvim install root.
package collector

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"luarcsync/pkg/constants"
	"luarcsync/pkg/logging"
)

type Options struct {
	// Root is the installation root, one directory per plugin.
	Root string
	// Marker is the subdirectory name a plugin must contain. Defaults to "lua".
	Marker string
	// Primary, when set and present on disk, is listed before every root-derived path.
	Primary string
}

type Result struct {
	Paths       []string
	RootMissing bool
}

// Collect lists the immediate children of opts.Root and returns <root>/<child>/<marker>
// for every child directory that has the marker subdirectory, sorted lexicographically.
// A missing root is not an error: the result is empty and RootMissing is set.
func Collect(ctx context.Context, opts Options) (Result, error) {
	logger := logging.GetLogger(ctx)
	marker := opts.Marker
	if marker == "" {
		marker = constants.LibraryMarker
	}

	var res Result
	paths, err := scanRoot(opts.Root, marker)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn("lazy root not found", "path", opts.Root)
		res.RootMissing = true
	case err != nil:
		return Result{}, err
	}
	sort.Strings(paths)

	if opts.Primary != "" && exists(opts.Primary) {
		logger.Debug("using primary library path", "path", opts.Primary)
		paths = append([]string{opts.Primary}, paths...)
	}
	res.Paths = paths
	return res, nil
}

func scanRoot(root, marker string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", root, err)
	}

	var paths []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		libDir := filepath.Join(root, entry.Name(), marker)
		if exists(libDir) {
			paths = append(paths, libDir)
		}
	}
	return paths, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
