package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"qbank/internal/filterstate"
	"qbank/internal/library"
	"qbank/internal/query"
	"qbank/internal/tagstate"
)

type tagRow struct {
	Tag    string `json:"tag"`
	Count  int    `json:"count"`
	Filter string `json:"filter"`
}

func newTagsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tags [keywords|topics]",
		Short: "List keywords and topics in use with their filter state",
		Long: `List every keyword and topic in use, how many questions carry it, and
whether the saved filter includes or excludes it. Selections for tags no
longer in use are dropped from the saved filter.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			namespaces := []tagstate.Namespace{tagstate.Keywords, tagstate.Topics}
			if len(args) == 1 {
				ns, err := tagstate.ParseNamespace(args[0])
				if err != nil {
					return err
				}
				namespaces = []tagstate.Namespace{ns}
			}
			state, err := ctx.filterState()
			if err != nil {
				return err
			}

			return ctx.withLibrary(cmd, func(runCtx context.Context, lib *library.Library) error {
				keywords, topics, err := lib.Vocabulary(runCtx)
				if err != nil {
					return err
				}
				saved, err := state.Prune(query.TagNames(keywords), query.TagNames(topics))
				if err != nil {
					return err
				}

				vocab := map[tagstate.Namespace][]query.TagCount{
					tagstate.Keywords: keywords,
					tagstate.Topics:   topics,
				}
				if asJSON {
					payload := make(map[string][]tagRow, len(namespaces))
					for _, ns := range namespaces {
						payload[string(ns)+"s"] = tagRows(saved, ns, vocab[ns])
					}
					return writeJSON(cmd, payload)
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				title := cases.Title(language.English)
				for i, ns := range namespaces {
					if i > 0 {
						fmt.Fprintln(out)
					}
					for _, line := range renderSectionHeader(title.String(string(ns)+"s"), colorize) {
						fmt.Fprintln(out, line)
					}
					rows := tagRows(saved, ns, vocab[ns])
					if len(rows) == 0 {
						fmt.Fprintf(out, "No %ss in use.\n", ns)
						continue
					}
					fmt.Fprintln(out, renderTagTable(rows, colorize))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func tagRows(saved filterstate.Saved, ns tagstate.Namespace, counts []query.TagCount) []tagRow {
	rows := make([]tagRow, 0, len(counts))
	for _, tc := range counts {
		rows = append(rows, tagRow{
			Tag:    tc.Tag,
			Count:  tc.Count,
			Filter: saved.Tags.Classify(ns, tc.Tag).String(),
		})
	}
	return rows
}

func renderTagTable(rows []tagRow, colorize bool) string {
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, []string{row.Tag, strconv.Itoa(row.Count), classLabel(row.Filter, colorize)})
	}
	return renderTable([]string{"Tag", "Questions", "Filter"}, cells, []columnAlignment{alignLeft, alignRight}, 0)
}

func classLabel(class string, colorize bool) string {
	var colors text.Colors
	switch class {
	case tagstate.Include.String():
		class = "+ include"
		colors = text.Colors{text.FgGreen}
	case tagstate.Exclude.String():
		class = "- exclude"
		colors = text.Colors{text.FgRed}
	default:
		return ""
	}
	if colorize {
		return colors.Sprint(class)
	}
	return class
}
