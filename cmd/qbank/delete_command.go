package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"qbank/internal/library"
)

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>...",
		Aliases: []string{"rm"},
		Short:   "Delete questions",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(cmd, func(runCtx context.Context, lib *library.Library) error {
				out := cmd.OutOrStdout()
				for _, arg := range args {
					id, err := resolveID(runCtx, lib, arg)
					if errors.Is(err, library.ErrNotFound) {
						fmt.Fprintf(out, "Question %s not found; nothing to delete\n", arg)
						continue
					}
					if err != nil {
						return err
					}
					if err := lib.Delete(runCtx, id); err != nil {
						return err
					}
					fmt.Fprintf(out, "Deleted question %s\n", id)
				}
				return nil
			})
		},
	}
}

func newClearCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every question",
		Long: `Delete every question in the bank. This cannot be undone; export first
if you may want the records back. Imported image files are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(cmd, func(runCtx context.Context, lib *library.Library) error {
				out := cmd.OutOrStdout()
				records, err := lib.Records(runCtx)
				if err != nil {
					return err
				}
				if len(records) == 0 {
					fmt.Fprintln(out, "Question bank is already empty")
					return nil
				}
				if !yes {
					if !isTerminal(cmd.InOrStdin()) {
						return errors.New("refusing to clear without confirmation; pass --yes")
					}
					prompt := fmt.Sprintf("Delete all %s? This cannot be undone.", pluralize(len(records), "question"))
					if !confirm(cmd.InOrStdin(), out, prompt) {
						fmt.Fprintln(out, "Aborted")
						return nil
					}
				}
				removed, err := lib.Clear(runCtx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Removed %s\n", pluralize(int(removed), "question"))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
