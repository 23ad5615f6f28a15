package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"qbank/internal/export"
	"qbank/internal/library"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "export [file|-]",
		Short: "Write the questions matching the filter as JSON",
		Long: `Write the questions matching the saved filter and any filter flags as a
JSON array. A bare file name is placed in the configured export
directory; "-" writes to stdout. Without an argument the file is named
after the current time.

  qbank export waves.json --keyword waves --no-saved-filter`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := ctx.resolveFilter(&flags)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			target := "questions-" + time.Now().Format("20060102-150405") + ".json"
			if len(args) == 1 {
				target = strings.TrimSpace(args[0])
			}

			return ctx.withLibrary(cmd, func(runCtx context.Context, lib *library.Library) error {
				records, err := lib.View(runCtx, filter)
				if err != nil {
					return err
				}
				if target == "-" {
					return export.WriteJSON(cmd.OutOrStdout(), records)
				}
				path := exportPath(cfg.Paths.ExportDir, target)
				if err := export.WriteFile(path, records); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", pluralize(len(records), "question"), path)
				return nil
			})
		},
	}

	flags.register(cmd)
	return cmd
}

// exportPath places bare file names in dir and leaves paths alone.
func exportPath(dir, target string) string {
	if filepath.Base(target) == target {
		return filepath.Join(dir, target)
	}
	return target
}
