package env

import (
	"os"
	"path/filepath"
)

// GetDataHome returns the XDG data directory.
// Falls back to $HOME/.local/share, and to ~/.local/share when HOME is unset.
func GetDataHome() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".local", "share")
	}
	return ExpandPath("~/.local/share")
}

// GetAppName returns the neovim application name from NVIM_APPNAME, or fallback if unset.
func GetAppName(fallback string) string {
	if name := os.Getenv("NVIM_APPNAME"); name != "" {
		return name
	}
	return fallback
}

// ExpandPath expands ~ to home directory and environment variables in a path.
// Examples:
//   - "~/.config" -> "/home/user/.config"
//   - "$HOME/bin" -> "/home/user/bin"
//   - "~/file with spaces" -> "/home/user/file with spaces"
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			if len(path) == 1 {
				return home
			}
			if path[1] == '/' {
				return filepath.Join(home, path[2:])
			}
		}
	}
	return os.ExpandEnv(path)
}

// ResolvePath expands path and makes it absolute relative to base when it is relative.
// An empty path stays empty.
func ResolvePath(base, path string) string {
	if path == "" {
		return ""
	}
	path = ExpandPath(path)
	if !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}
	return filepath.Clean(path)
}
