package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"qbank/internal/library"
	"qbank/internal/question"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var flags filterFlags
	var asJSON bool
	var limit int

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List questions matching the saved filter and any filter flags",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := ctx.resolveFilter(&flags)
			if err != nil {
				return err
			}
			return ctx.withLibrary(cmd, func(runCtx context.Context, lib *library.Library) error {
				records, err := lib.View(runCtx, filter)
				if err != nil {
					return err
				}
				total := len(records)
				if limit > 0 && len(records) > limit {
					records = records[:limit]
				}
				if asJSON {
					if records == nil {
						records = []question.Record{}
					}
					return writeJSON(cmd, records)
				}

				out := cmd.OutOrStdout()
				if total == 0 {
					fmt.Fprintln(out, "No questions match the current filter.")
					return nil
				}
				fmt.Fprintln(out, renderRecordTable(records))
				if len(records) < total {
					fmt.Fprintf(out, "Showing %d of %d matching questions.\n", len(records), total)
				} else {
					fmt.Fprintf(out, "%s\n", pluralize(total, "matching question"))
				}
				if !filter.IsEmpty() {
					fmt.Fprintln(out, "Filter active; see `qbank filter show`.")
				}
				return nil
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many questions (0 for all)")
	return cmd
}
