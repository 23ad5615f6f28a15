package config

const (
	defaultConfigPath         = "~/.config/qbank/config.toml"
	defaultDataDir            = "~/.local/share/qbank"
	defaultStateDir           = "~/.local/state/qbank"
	defaultExportDir          = "~/.local/share/qbank/exports"
	defaultDatabaseFile       = "questions.db"
	defaultImageDirName       = "images"
	defaultLockTimeoutSeconds = 5
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			StateDir:  defaultStateDir,
			ExportDir: defaultExportDir,
		},
		Library: Library{
			DatabaseFile:       defaultDatabaseFile,
			LockTimeoutSeconds: defaultLockTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
