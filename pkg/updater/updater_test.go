package updater

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"luarcsync/pkg/annotation"
	"luarcsync/pkg/config"
)

type fixture struct {
	cfg  config.Config
	lazy string
}

func newFixture(t *testing.T, luarc string) fixture {
	t.Helper()
	base := t.TempDir()
	root := filepath.Join(base, "nvim")
	lazy := filepath.Join(base, "data", "nvim", "my-nvim", "lazy")
	for _, dir := range []string{root, lazy} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, ".luarc.json"), []byte(luarc), 0644); err != nil {
		t.Fatalf("write luarc: %v", err)
	}
	return fixture{
		lazy: lazy,
		cfg: config.Config{
			ConfigRoot:     root,
			LuarcPath:      filepath.Join(root, ".luarc.json"),
			LazyRoot:       lazy,
			Marker:         "lua",
			Extension:      ".lua",
			PluginSpecRoot: filepath.Join(root, "lua", "plugins"),
			PrimaryRoot:    filepath.Join(root, "lua"),
			LibraryKey:     "Lua.workspace.library",
			PluginTypesKey: "pluginTypes",
		},
	}
}

func (f fixture) plugin(t *testing.T, name string) string {
	t.Helper()
	dir := filepath.Join(f.lazy, name, "lua")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	return dir
}

func TestRunNoLibraryPaths(t *testing.T) {
	t.Parallel()

	const content = `{"other":1}`
	f := newFixture(t, content)
	if err := os.MkdirAll(filepath.Join(f.lazy, "no-lua", "doc"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	_, err := Run(context.Background(), f.cfg, Options{})
	if !errors.Is(err, ErrNoLibraryPaths) {
		t.Fatalf("expected ErrNoLibraryPaths, got %v", err)
	}
	b, _ := os.ReadFile(f.cfg.LuarcPath)
	if string(b) != content {
		t.Fatalf("luarc modified: %q", b)
	}
}

func TestRunMissingLazyRoot(t *testing.T) {
	t.Parallel()

	f := newFixture(t, `{}`)
	f.cfg.LazyRoot = filepath.Join(f.lazy, "missing")

	if _, err := Run(context.Background(), f.cfg, Options{}); !errors.Is(err, ErrNoLibraryPaths) {
		t.Fatalf("expected ErrNoLibraryPaths, got %v", err)
	}
}

func TestRunSimple(t *testing.T) {
	t.Parallel()

	f := newFixture(t, `{"runtime.version":"LuaJIT"}`)
	b := f.plugin(t, "b.nvim")
	a := f.plugin(t, "a.nvim")
	// ignored outside extended mode
	if err := os.MkdirAll(f.cfg.PrimaryRoot, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	res, err := Run(context.Background(), f.cfg, Options{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Paths) != 2 || res.Paths[0] != a || res.Paths[1] != b {
		t.Fatalf("paths mismatch: got=%q", res.Paths)
	}
	if !res.Change.Written {
		t.Fatal("expected luarc to be written")
	}

	var got map[string]any
	data, _ := os.ReadFile(f.cfg.LuarcPath)
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["runtime.version"] != "LuaJIT" {
		t.Fatalf("existing key lost: %s", data)
	}
	if _, ok := got["pluginTypes"]; ok {
		t.Fatalf("plugin types written outside extended mode: %s", data)
	}
}

func TestRunExtended(t *testing.T) {
	t.Parallel()

	f := newFixture(t, `{}`)
	f.cfg.Extended = true
	f.plugin(t, "telescope.nvim")
	spec := filepath.Join(f.cfg.PluginSpecRoot, "telescope.lua")
	if err := os.MkdirAll(filepath.Dir(spec), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(spec, []byte("---@module 'telescope'\n---@type LazyPluginSpec\nreturn {}\n"), 0644); err != nil {
		t.Fatalf("write spec: %v", err)
	}

	var seen int
	res, err := Run(context.Background(), f.cfg, Options{OnFile: func(string) { seen++ }})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if seen != 1 {
		t.Fatalf("scanned files mismatch: got=%d", seen)
	}
	if len(res.Paths) != 2 || res.Paths[0] != f.cfg.PrimaryRoot {
		t.Fatalf("primary path should come first: got=%q", res.Paths)
	}

	var got struct {
		Types []annotation.Record `json:"pluginTypes"`
	}
	data, _ := os.ReadFile(f.cfg.LuarcPath)
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got.Types) != 1 || got.Types[0].File != "telescope.lua" {
		t.Fatalf("plugin types mismatch: %s", data)
	}
}

func TestRunExtendedWithoutPluginSpecs(t *testing.T) {
	t.Parallel()

	f := newFixture(t, `{}`)
	f.cfg.Extended = true
	f.plugin(t, "a.nvim")

	res, err := Run(context.Background(), f.cfg, Options{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Records) != 0 {
		t.Fatalf("unexpected records: %+v", res.Records)
	}
	data, _ := os.ReadFile(f.cfg.LuarcPath)
	var got map[string]json.RawMessage
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(got["pluginTypes"]) != "[]" {
		t.Fatalf("expected empty plugin types, got %s", got["pluginTypes"])
	}
}

func TestRunDryRun(t *testing.T) {
	t.Parallel()

	const content = `{}`
	f := newFixture(t, content)
	f.cfg.DryRun = true
	f.plugin(t, "a.nvim")

	res, err := Run(context.Background(), f.cfg, Options{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Change.Written || !res.Change.Changed() {
		t.Fatalf("unexpected change state: written=%v changed=%v", res.Change.Written, res.Change.Changed())
	}
	data, _ := os.ReadFile(f.cfg.LuarcPath)
	if string(data) != content {
		t.Fatalf("dry run modified luarc: %q", data)
	}
}

func TestRunMissingLuarc(t *testing.T) {
	t.Parallel()

	f := newFixture(t, `{}`)
	f.plugin(t, "a.nvim")
	if err := os.Remove(f.cfg.LuarcPath); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := Run(context.Background(), f.cfg, Options{}); err == nil {
		t.Fatal("expected error for missing luarc")
	}
}
