package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"qbank/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var (
		lines       int
		level       string
		component   string
		correlation string
		follow      bool
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent entries from the qbank log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			var minLevel slog.Level
			if err := minLevel.UnmarshalText([]byte(level)); err != nil {
				return fmt.Errorf("log level %q: expected debug, info, warn, or error", level)
			}
			filter := logs.Filter{MinLevel: minLevel, Component: component, CorrelationID: correlation}

			path := cfg.LogPath()
			entries, offset, err := logs.Tail(path, lines, filter)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 && !follow {
				fmt.Fprintf(out, "No matching log entries in %s\n", path)
				return nil
			}
			for _, entry := range entries {
				fmt.Fprintln(out, formatLogEntry(entry))
			}
			if !follow {
				return nil
			}

			runCtx, stop := signal.NotifyContext(invocationContext(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			err = logs.Follow(runCtx, path, offset, 0, filter, func(entry logs.Entry) {
				fmt.Fprintln(out, formatLogEntry(entry))
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 20, "Number of entries to show")
	cmd.Flags().StringVar(&level, "level", "info", "Minimum level: debug, info, warn, or error")
	cmd.Flags().StringVar(&component, "component", "", "Only entries from this component")
	cmd.Flags().StringVar(&correlation, "invocation", "", "Only entries from the invocation with this correlation ID prefix")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new entries until interrupted")
	return cmd
}

func formatLogEntry(entry logs.Entry) string {
	var b strings.Builder
	ts := "--:--:--"
	if !entry.Time.IsZero() {
		ts = entry.Time.Local().Format("2006-01-02 15:04:05")
	}
	fmt.Fprintf(&b, "%s %-5s ", ts, entry.Level.String())
	if entry.Component != "" {
		b.WriteString(entry.Component)
		b.WriteString(": ")
	}
	b.WriteString(entry.Message)
	writeAttrs(&b, entry)
	return b.String()
}

func writeAttrs(w io.StringWriter, entry logs.Entry) {
	if entry.EventType != "" {
		_, _ = w.WriteString(" event=" + entry.EventType)
	}
	if entry.CorrelationID != "" {
		_, _ = w.WriteString(" invocation=" + shortID(entry.CorrelationID))
	}
	keys := make([]string, 0, len(entry.Attrs))
	for key := range entry.Attrs {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		_, _ = w.WriteString(fmt.Sprintf(" %s=%v", key, entry.Attrs[key]))
	}
}
