package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"qbank/internal/autotag"
	"qbank/internal/library"
)

func newAutoTagCommand(ctx *commandContext) *cobra.Command {
	var (
		topic    string
		triggers []string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "autotag",
		Short: "Add a topic to every question carrying any trigger keyword",
		Long: `Add --topic to every question that carries at least one trigger keyword
and does not already have the topic. Without --trigger the keywords
included by the saved filter are used.

  qbank autotag --topic B.4 --trigger waves --trigger interference`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(triggers) == 0 {
				state, err := ctx.filterState()
				if err != nil {
					return err
				}
				triggers = state.Current().Tags.Keywords.Included
			}
			rule := autotag.Rule{Topic: topic, Triggers: triggers}.Normalize()
			if rule.Topic == "" {
				return errors.New("--topic must not be empty")
			}
			if len(rule.Triggers) == 0 {
				return errors.New("no trigger keywords; pass --trigger or include keywords in the saved filter")
			}

			return ctx.withLibrary(cmd, func(runCtx context.Context, lib *library.Library) error {
				out := cmd.OutOrStdout()
				if dryRun {
					records, err := lib.Records(runCtx)
					if err != nil {
						return err
					}
					planned := autotag.Plan(records, rule)
					if len(planned) == 0 {
						fmt.Fprintln(out, "No questions would change.")
						return nil
					}
					fmt.Fprintln(out, renderRecordTable(planned))
					fmt.Fprintf(out, "Would add topic %q to %s\n", rule.Topic, pluralize(len(planned), "question"))
					return nil
				}

				updated, err := lib.AutoTag(runCtx, rule)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Added topic %q to %s\n", rule.Topic, pluralize(len(updated), "question"))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&topic, "topic", "t", "", "Topic to add (required)")
	cmd.Flags().StringArrayVarP(&triggers, "trigger", "k", nil, "Trigger keyword (repeatable)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the questions that would change without saving")
	_ = cmd.MarkFlagRequired("topic")
	return cmd
}
