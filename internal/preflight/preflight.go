package preflight

import (
	"context"

	"qbank/internal/config"
	"qbank/internal/images"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes every check for cfg. Image references are only checked
// when the database opened.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("State directory", cfg.Paths.StateDir),
		CheckDirectoryAccess("Image directory", cfg.Library.ImageDir),
		CheckDirectoryAccess("Export directory", cfg.Paths.ExportDir),
		CheckLock(cfg.LockPath()),
	}

	db, st := CheckDatabase(ctx, cfg.DatabasePath())
	results = append(results, db)
	if st != nil {
		defer st.Close()
		results = append(results, CheckImages(ctx, st, images.New(cfg.Library.ImageDir, nil)))
	}
	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
