package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"luarcsync/pkg/constants"
	"luarcsync/pkg/env"
	"luarcsync/pkg/logging"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Settings mirrors luarcsync.toml. Empty fields keep their defaults.
type Settings struct {
	AppName        string `toml:"appname"`
	LazyRoot       string `toml:"lazy_root"`
	Marker         string `toml:"marker"`
	Extension      string `toml:"extension"`
	Extended       bool   `toml:"extended"`
	LibraryKey     string `toml:"library_key"`
	PluginTypesKey string `toml:"plugin_types_key"`
	PluginSpecDir  string `toml:"plugin_spec_dir"`
	PrimaryDir     string `toml:"primary_dir"`
}

// Overrides are the command line values. They win over everything else.
type Overrides struct {
	WorkDir    string
	ConfigRoot string
	AppName    string
	LazyRoot   string
	// Extended, when set, replaces the extended setting of luarcsync.toml.
	Extended *bool
	DryRun   bool
}

// Config is built once per invocation and never mutated afterwards.
type Config struct {
	DataHome   string
	AppName    string
	LazyRoot   string
	ConfigRoot string
	LuarcPath  string

	Marker    string
	Extension string

	Extended       bool
	PluginSpecRoot string
	PrimaryRoot    string

	LibraryKey     string
	PluginTypesKey string

	DryRun bool
}

// LoadSettings reads a luarcsync.toml. A missing file yields empty settings.
func LoadSettings(path string) (*Settings, error) {
	out := &Settings{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return out, nil
	}
	if _, err := toml.DecodeFile(path, out); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return out, nil
}

// Load resolves the configuration. Precedence, lowest first: defaults, .env in the
// config root, process environment, luarcsync.toml, overrides.
func Load(ctx context.Context, o Overrides) (Config, error) {
	logger := logging.GetLogger(ctx)

	wd := o.WorkDir
	if wd == "" {
		var err error
		wd, err = os.Getwd()
		if err != nil {
			return Config{}, err
		}
	}

	root := env.ResolvePath(wd, o.ConfigRoot)
	if root == "" {
		if found, ok := FindConfigRoot(wd); ok {
			root = found
		} else {
			root = filepath.Clean(wd)
		}
	}

	envPath := filepath.Join(root, constants.EnvFileName)
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envPath, err)
	}

	settings, err := LoadSettings(filepath.Join(root, constants.SettingsFileName))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DataHome:       env.GetDataHome(),
		AppName:        firstNonEmpty(o.AppName, settings.AppName, env.GetAppName(constants.DefaultAppName)),
		ConfigRoot:     root,
		LuarcPath:      filepath.Join(root, constants.LuarcFileName),
		Marker:         firstNonEmpty(settings.Marker, constants.LibraryMarker),
		Extension:      firstNonEmpty(settings.Extension, constants.SourceExtension),
		Extended:       settings.Extended,
		LibraryKey:     firstNonEmpty(settings.LibraryKey, constants.LibraryKey),
		PluginTypesKey: firstNonEmpty(settings.PluginTypesKey, constants.PluginTypesKey),
		DryRun:         o.DryRun,
	}

	if o.Extended != nil {
		cfg.Extended = *o.Extended
	}

	cfg.LazyRoot = firstNonEmpty(
		env.ResolvePath(wd, o.LazyRoot),
		env.ResolvePath(root, settings.LazyRoot),
		filepath.Join(cfg.DataHome, "nvim", cfg.AppName, "lazy"),
	)
	cfg.PluginSpecRoot = firstNonEmpty(
		env.ResolvePath(root, settings.PluginSpecDir),
		filepath.Join(root, "lua", "plugins"),
	)
	cfg.PrimaryRoot = firstNonEmpty(
		env.ResolvePath(root, settings.PrimaryDir),
		filepath.Join(root, "lua"),
	)
	if !strings.HasPrefix(cfg.Extension, ".") {
		cfg.Extension = "." + cfg.Extension
	}

	logger.Debug("config loaded",
		"config_root", cfg.ConfigRoot,
		"lazy_root", cfg.LazyRoot,
		"extended", cfg.Extended,
	)
	return cfg, nil
}

// FindConfigRoot walks up from start looking for a directory holding one of
// constants.ConfigRootMarkers.
func FindConfigRoot(start string) (string, bool) {
	cur := filepath.Clean(start)
	for {
		for _, marker := range constants.ConfigRootMarkers {
			if st, err := os.Stat(filepath.Join(cur, marker)); err == nil && !st.IsDir() {
				return cur, true
			}
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}
	return "", false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
