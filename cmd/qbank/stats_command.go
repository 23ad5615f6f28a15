package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"qbank/internal/library"
	"qbank/internal/query"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarise the question bank",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(cmd, func(runCtx context.Context, lib *library.Library) error {
				stats, err := lib.Stats(runCtx)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, stats)
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				fmt.Fprintf(out, "%s in the bank\n", pluralize(stats.Total, "question"))
				if stats.Total == 0 {
					return nil
				}
				sections := []struct {
					title  string
					label  string
					counts []query.TagCount
				}{
					{"Papers", "Paper", stats.ByPaper},
					{"Years", "Year", stats.ByYear},
					{"Difficulty", "Difficulty", stats.Difficulty},
					{"Keywords", "Keyword", stats.ByKeyword},
					{"Topics", "Topic", stats.ByTopic},
				}
				for _, section := range sections {
					if len(section.counts) == 0 {
						continue
					}
					fmt.Fprintln(out)
					for _, line := range renderSectionHeader(section.title, colorize) {
						fmt.Fprintln(out, line)
					}
					rows := make([][]string, 0, len(section.counts))
					for _, tc := range section.counts {
						rows = append(rows, []string{tc.Tag, strconv.Itoa(tc.Count)})
					}
					fmt.Fprintln(out, renderTable([]string{section.label, "Questions"}, rows, []columnAlignment{alignLeft, alignRight}, 0))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}
