package version

import (
	_ "embed"
	"strings"
)

//go:embed version.txt
var versionFile string

// Version returns the current luarcsync version
func Version() string {
	return strings.TrimSpace(versionFile)
}

// GetBuildID returns the current luarcsync version (alias for Version)
func GetBuildID() string {
	return Version()
}
