package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/unitconv/internal/cli/config"
	"github.com/leapstack-labs/unitconv/internal/cli/output"
	"github.com/leapstack-labs/unitconv/internal/history"
	"github.com/leapstack-labs/unitconv/pkg/units"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg       *config.Config
	Logger    *slog.Logger
	Converter *units.Converter
	Renderer  *output.Renderer
}

// NewCommandContext creates a CommandContext with converter and renderer.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
	r.SetTheme(cfg.Theme)

	return &CommandContext{
		Cfg:       cfg,
		Logger:    logger,
		Converter: cfg.Converter(),
		Renderer:  r,
	}
}

// OpenHistory opens and migrates the history database.
// Returns the store and a cleanup function that must be called (typically via defer).
func (c *CommandContext) OpenHistory(ctx context.Context) (*history.SQLiteStore, func(), error) {
	store, err := history.OpenStore(ctx, c.Cfg.HistoryPath, c.Cfg.HistoryLimit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history: %w", err)
	}
	c.Logger.Debug("history opened", "path", c.Cfg.HistoryPath, "limit", c.Cfg.HistoryLimit)
	return store, func() { _ = store.Close() }, nil
}

// Record stores one conversion in history when history is enabled.
// A failure is reported as a warning: the conversion itself succeeded.
func (c *CommandContext) Record(ctx context.Context, e history.Entry) {
	if !c.Cfg.HistoryEnabled {
		return
	}
	store, cleanup, err := c.OpenHistory(ctx)
	if err != nil {
		c.Renderer.Warning(err.Error())
		return
	}
	defer cleanup()

	if err := store.Add(ctx, e); err != nil {
		c.Renderer.Warning(fmt.Sprintf("failed to record conversion: %v", err))
	}
}

// getConfig returns the current configuration, or defaults when none was loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

// resolveQuantity returns flagValue when set, else the configured default.
func resolveQuantity(cfg *config.Config, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return cfg.DefaultQuantity
}

// completeQuantities completes quantity names.
func completeQuantities(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return units.Quantities(), cobra.ShellCompDirectiveNoFileComp
}
