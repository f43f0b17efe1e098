// Package annotation extracts lua-language-server annotations from plugin spec sources.
//
// Two annotations are recognized at the start of a line (leading whitespace allowed):
//
//	---@module 'telescope'
//	---@type LazyPluginSpec
//
// A file with several ---@module lines keeps the last one (last match wins).
// Every ---@type line with a non-blank expression is kept, in file order, trimmed.
package annotation

import (
	"regexp"
	"strings"
)

var (
	moduleRe = regexp.MustCompile(`^\s*---@module\s+(?:'([^']+)'|"([^"]+)")`)
	typeRe   = regexp.MustCompile(`^\s*---@type\s+(\S.*)$`)
)

// Record is the annotation data of one source file.
type Record struct {
	Module *string  `json:"module,omitempty"`
	Types  []string `json:"types"`
	File   string   `json:"file"`
}

// Empty reports whether the record holds neither a module nor a type.
func (r Record) Empty() bool {
	return r.Module == nil && len(r.Types) == 0
}

// Parse extracts annotations from the text of a single file. File is left empty.
func Parse(src []byte) Record {
	rec := Record{Types: []string{}}
	for _, line := range strings.Split(string(src), "\n") {
		if m := moduleRe.FindStringSubmatch(line); m != nil {
			module := m[1]
			if module == "" {
				module = m[2]
			}
			rec.Module = &module
		}
		if m := typeRe.FindStringSubmatch(line); m != nil {
			rec.Types = append(rec.Types, strings.TrimSpace(m[1]))
		}
	}
	return rec
}
