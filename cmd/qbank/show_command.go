package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"qbank/internal/library"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one question in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(cmd, func(runCtx context.Context, lib *library.Library) error {
				id, err := resolveID(runCtx, lib, args[0])
				if err != nil {
					return err
				}
				rec, err := lib.Get(runCtx, id)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, rec)
				}
				resolve := func(ref string) string {
					if ref == "" {
						return "-"
					}
					if path, err := lib.Images().Path(ref); err == nil {
						return path
					}
					return ref
				}
				fmt.Fprint(cmd.OutOrStdout(), renderRecordDetail(rec, resolve))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}
