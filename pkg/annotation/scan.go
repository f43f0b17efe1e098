package annotation

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"luarcsync/pkg/constants"
	"luarcsync/pkg/logging"
)

type Options struct {
	// Extension selects the files to inspect. Defaults to ".lua".
	Extension string
	// OnFile, if set, is called with the relative path of every inspected file.
	OnFile func(rel string)
}

// Scan walks root depth-first and returns one Record per source file that carries at
// least one annotation. Directories are visited in lexical order. Symlinked directories
// are not followed. A missing root yields no records and no error.
func Scan(ctx context.Context, root string, opts Options) ([]Record, error) {
	logger := logging.GetLogger(ctx)
	ext := opts.Extension
	if ext == "" {
		ext = constants.SourceExtension
	}

	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		logger.Debug("plugin spec root not found", "path", root)
		return nil, nil
	}

	var records []Record
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Type().IsRegular() || !strings.HasSuffix(d.Name(), ext) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if opts.OnFile != nil {
			opts.OnFile(rel)
		}

		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		rec := Parse(src)
		if rec.Empty() {
			return nil
		}
		rec.File = rel
		logger.Debug("annotations found", "file", rel, "types", len(rec.Types))
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	return records, nil
}
