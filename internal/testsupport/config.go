package testsupport

import (
	"path/filepath"
	"testing"

	"qbank/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.ExportDir = filepath.Join(base, "exports")
	cfgVal.Library.ImageDir = filepath.Join(base, "data", "images")
	cfgVal.Library.LockTimeoutSeconds = 0

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithDatabaseFile overrides the database file name on the test config.
func WithDatabaseFile(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Library.DatabaseFile = name
	}
}

// WithLockTimeout sets how long the library waits for the advisory lock.
func WithLockTimeout(seconds int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Library.LockTimeoutSeconds = seconds
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
