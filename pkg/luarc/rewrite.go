package luarc

import (
	"bytes"
	"fmt"
	"os"

	"luarcsync/pkg/annotation"
	"luarcsync/pkg/constants"
)

// Update describes the owned keys to replace in a .luarc.json.
type Update struct {
	LibraryKey string
	Library    []string

	// PluginTypes is only written when WithPluginTypes is set.
	WithPluginTypes bool
	PluginTypesKey  string
	PluginTypes     []annotation.Record

	// DryRun computes the new content without writing it.
	DryRun bool
}

// Change is the outcome of a rewrite.
type Change struct {
	Path    string
	Before  []byte
	After   []byte
	Written bool
}

// Changed reports whether the rewrite alters the file content.
func (c Change) Changed() bool {
	return !bytes.Equal(c.Before, c.After)
}

func (u Update) keys() (library, pluginTypes string) {
	library, pluginTypes = u.LibraryKey, u.PluginTypesKey
	if library == "" {
		library = constants.LibraryKey
	}
	if pluginTypes == "" {
		pluginTypes = constants.PluginTypesKey
	}
	return library, pluginTypes
}

// Apply sets the owned keys of u on doc.
func Apply(doc *Document, u Update) error {
	libraryKey, typesKey := u.keys()
	library := u.Library
	if library == nil {
		library = []string{}
	}
	if err := doc.Set(libraryKey, library); err != nil {
		return err
	}

	if !u.WithPluginTypes {
		return nil
	}
	records := u.PluginTypes
	if records == nil {
		records = []annotation.Record{}
	}
	return doc.Set(typesKey, records)
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// Rewrite loads the document at path, applies u and writes it back in place.
// The file must already exist and hold a JSON object, and the rendered owned keys must
// match their schema; otherwise nothing is written.
func Rewrite(path string, u Update) (Change, error) {
	change := Change{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		return change, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		return change, fmt.Errorf("failed to read %s: %w", path, err)
	}
	change.Before = before

	doc, err := Parse(before)
	if err != nil {
		return change, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := Apply(doc, u); err != nil {
		return change, err
	}
	after, err := doc.Render()
	if err != nil {
		return change, fmt.Errorf("failed to render %s: %w", path, err)
	}
	if err := validateOwned(after, u); err != nil {
		return change, fmt.Errorf("refusing to write %s: %w", path, err)
	}
	change.After = after

	if u.DryRun {
		return change, nil
	}
	// Written in place: a symlinked .luarc.json keeps pointing at its target.
	if err := os.WriteFile(path, after, info.Mode().Perm()); err != nil {
		return change, fmt.Errorf("failed to write %s: %w", path, err)
	}
	change.Written = true
	return change, nil
}
