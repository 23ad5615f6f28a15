package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"qbank/internal/config"
	"qbank/internal/filterstate"
	"qbank/internal/library"
	"qbank/internal/logging"
)

type commandContext struct {
	configFlag *string
	verbose    *bool

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string, verbose *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		verbose:    verbose,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

// appLogger returns the invocation logger. Console output is limited to
// warnings unless --verbose is set; the log file follows the config level.
func (c *commandContext) appLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		consoleLevel := "warn"
		if c.verbose != nil && *c.verbose {
			consoleLevel = "debug"
		}
		logger, err := logging.NewFromConfig(c.config, consoleLevel)
		if err != nil {
			logger, _ = logging.New(logging.Options{ConsoleLevel: consoleLevel})
			logging.WarnWithContext(logger, "log file unavailable", "log_file_unavailable",
				logging.Error(err),
				logging.String(logging.FieldImpact, "this invocation is only logged to stderr"))
		}
		c.logger = logger
	})
	return c.logger
}

// invocationContext tags cmd's context with a fresh correlation ID.
func invocationContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithCorrelationID(ctx, uuid.NewString())
}

// withLibrary opens the library for the duration of fn.
func (c *commandContext) withLibrary(cmd *cobra.Command, fn func(context.Context, *library.Library) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	ctx := invocationContext(cmd)
	lib, err := library.Open(ctx, cfg, c.appLogger())
	if err != nil {
		return err
	}
	defer lib.Close()
	return fn(ctx, lib)
}

func (c *commandContext) filterState() (*filterstate.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return filterstate.Open(cfg.FilterStatePath(), c.appLogger()), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
