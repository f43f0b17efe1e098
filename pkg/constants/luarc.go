package constants

const (
	// LuarcFileName is the lua-language-server project file kept in sync.
	LuarcFileName = ".luarc.json"

	// SettingsFileName is the optional luarcsync settings file, looked up in the config root.
	SettingsFileName = "luarcsync.toml"

	// EnvFileName is the optional dotenv file, looked up in the config root.
	EnvFileName = ".env"

	// DefaultAppName is the NVIM_APPNAME used to locate the lazy.nvim install root.
	DefaultAppName = "my-nvim"

	// LibraryMarker is the subdirectory that qualifies a plugin directory as a library source.
	LibraryMarker = "lua"

	// SourceExtension is the extension of files inspected for annotations.
	SourceExtension = ".lua"

	LibraryKey     = "Lua.workspace.library"
	PluginTypesKey = "pluginTypes"
)

// ConfigRootMarkers is the list of files that identify a neovim config root.
// Checked in order while walking up from the working directory, first match wins.
var ConfigRootMarkers = []string{
	LuarcFileName,
	SettingsFileName,
}
