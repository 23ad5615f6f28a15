package main

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"qbank/internal/filterstate"
	"qbank/internal/library"
	"qbank/internal/query"
	"qbank/internal/tagstate"
)

func newFilterCommand(ctx *commandContext) *cobra.Command {
	filterCmd := &cobra.Command{
		Use:   "filter",
		Short: "Inspect and change the saved filter",
		Long: `The saved filter narrows list and export until it is reset. Tags cycle
through neutral, include and exclude; an included tag must be present on
a question and an excluded tag must be absent.`,
	}

	filterCmd.AddCommand(newFilterShowCommand(ctx))
	filterCmd.AddCommand(newFilterToggleCommand(ctx))
	filterCmd.AddCommand(newFilterSetCommand(ctx))
	filterCmd.AddCommand(newFilterSelectCommand(ctx))
	filterCmd.AddCommand(newFilterResetCommand(ctx))
	return filterCmd
}

func newFilterShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the saved filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := ctx.filterState()
			if err != nil {
				return err
			}
			saved := state.Current()
			if asJSON {
				return writeJSON(cmd, saved)
			}
			renderSavedFilter(cmd.OutOrStdout(), saved)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newFilterToggleCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <keyword|topic> <tag>",
		Short: "Advance a tag one step: neutral, include, exclude, neutral",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ns, err := tagstate.ParseNamespace(args[0])
			if err != nil {
				return err
			}
			tag := strings.TrimSpace(args[1])
			if err := ctx.requireTag(cmd, ns, tag); err != nil {
				return err
			}
			state, err := ctx.filterState()
			if err != nil {
				return err
			}
			saved, err := state.Toggle(ns, tag)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %q: %s\n", ns, tag, saved.Tags.Classify(ns, tag))
			return nil
		},
	}
}

func newFilterSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <keyword|topic> <tag> <include|exclude|neutral>",
		Short: "Move a tag directly to a filter state",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ns, err := tagstate.ParseNamespace(args[0])
			if err != nil {
				return err
			}
			class, err := tagstate.ParseClass(args[2])
			if err != nil {
				return err
			}
			tag := strings.TrimSpace(args[1])
			if class != tagstate.Neutral {
				if err := ctx.requireTag(cmd, ns, tag); err != nil {
					return err
				}
			}
			state, err := ctx.filterState()
			if err != nil {
				return err
			}
			saved, err := state.Update(func(cur filterstate.Saved) filterstate.Saved {
				cur.Tags = cur.Tags.Set(ns, tag, class)
				return cur
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %q: %s\n", ns, tag, saved.Tags.Classify(ns, tag))
			return nil
		},
	}
}

func newFilterSelectCommand(ctx *commandContext) *cobra.Command {
	var search, paper, year, difficulty string

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Set the text search and the paper, year, and difficulty selectors",
		Long: `Set the text search and the categorical selectors of the saved filter.
Only the given flags change; "all" clears a selector and an empty
--search clears the text.

  qbank filter select --paper 2 --year 2021
  qbank filter select --year all --search ""`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("search") && !flags.Changed("paper") && !flags.Changed("year") && !flags.Changed("difficulty") {
				return fmt.Errorf("nothing to select; pass --search, --paper, --year, or --difficulty")
			}
			state, err := ctx.filterState()
			if err != nil {
				return err
			}
			saved, err := state.Update(func(cur filterstate.Saved) filterstate.Saved {
				if flags.Changed("search") {
					cur.Text = strings.TrimSpace(search)
				}
				cur.PaperType = selector(cur.PaperType, paper)
				cur.Year = selector(cur.Year, year)
				cur.Difficulty = selector(cur.Difficulty, difficulty)
				return cur
			})
			if err != nil {
				return err
			}
			renderSavedFilter(cmd.OutOrStdout(), saved)
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive text matched against keywords, topics, and question number")
	cmd.Flags().StringVar(&paper, "paper", "", "Paper type: 1, 2, or all")
	cmd.Flags().StringVar(&year, "year", "", "Exam year, Unknown, or all")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Easy, Medium, Hard, or all")
	return cmd
}

func newFilterResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the saved filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := ctx.filterState()
			if err != nil {
				return err
			}
			if err := state.Reset(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Saved filter cleared")
			return nil
		},
	}
}

// requireTag rejects tags no question carries, so a typo cannot leave a
// filter that hides every record.
func (c *commandContext) requireTag(cmd *cobra.Command, ns tagstate.Namespace, tag string) error {
	if tag == "" {
		return fmt.Errorf("%s must not be empty", ns)
	}
	return c.withLibrary(cmd, func(runCtx context.Context, lib *library.Library) error {
		keywords, topics, err := lib.Vocabulary(runCtx)
		if err != nil {
			return err
		}
		counts := keywords
		if ns == tagstate.Topics {
			counts = topics
		}
		if !slices.Contains(query.TagNames(counts), tag) {
			return fmt.Errorf("no question has %s %q; see `qbank tags`", ns, tag)
		}
		return nil
	})
}

func renderSavedFilter(out io.Writer, saved filterstate.Saved) {
	if saved.IsEmpty() {
		fmt.Fprintln(out, "No saved filter; every question is shown.")
		return
	}
	line := func(label, value string) {
		fmt.Fprintf(out, "%-18s %s\n", label+":", value)
	}
	line("Search", fallback(saved.Text, "-"))
	line("Include keywords", fallback(joinTags(saved.Tags.Keywords.Included), "-"))
	line("Exclude keywords", fallback(joinTags(saved.Tags.Keywords.Excluded), "-"))
	line("Include topics", fallback(joinTags(saved.Tags.Topics.Included), "-"))
	line("Exclude topics", fallback(joinTags(saved.Tags.Topics.Excluded), "-"))
	line("Paper", fallback(saved.PaperType, "All"))
	line("Year", fallback(saved.Year, "All"))
	line("Difficulty", fallback(saved.Difficulty, "All"))
}
