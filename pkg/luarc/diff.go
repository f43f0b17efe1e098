package luarc

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff renders the changed lines of c, prefixed with "- " and "+ ".
// It returns an empty string when nothing changed.
func (c Change) Diff() string {
	if !c.Changed() {
		return ""
	}

	dmp := diffmatchpatch.New()
	before, after, lines := dmp.DiffLinesToChars(string(c.Before), string(c.After))
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var sb strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		default:
			continue
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			sb.WriteString(prefix)
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
