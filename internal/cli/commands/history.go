package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/unitconv/internal/cli/output"
	"github.com/leapstack-labs/unitconv/internal/export"
	"github.com/leapstack-labs/unitconv/internal/history"
)

// NewHistoryCommand creates the history command and its subcommands.
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect, export or clear the conversion history",
		Long: `Inspect, export or clear the conversion history.

The history keeps the last history_limit conversions (50 by default) in a
SQLite database at history_path.`,
	}

	cmd.AddCommand(newHistoryListCommand())
	cmd.AddCommand(newHistoryClearCommand())
	cmd.AddCommand(newHistoryExportCommand())

	return cmd
}

func newHistoryListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded conversions, oldest first",
		Example: `  unitconv history list
  unitconv history list --limit 10 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistoryList(cmd, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most n entries (default: all kept entries)")
	return cmd
}

func runHistoryList(cmd *cobra.Command, limit int) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	store, cleanup, err := cmdCtx.OpenHistory(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	entries, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		out := output.HistoryOutput{Entries: make([]output.HistoryEntry, 0, len(entries)), Total: len(entries)}
		for _, e := range entries {
			out.Entries = append(out.Entries, output.HistoryEntry{
				ID:        e.ID,
				CreatedAt: e.CreatedAt,
				Quantity:  e.Quantity,
				Value:     e.Value,
				From:      e.From,
				To:        e.To,
				Result:    e.Result,
				Text:      e.Text(),
			})
		}
		return r.JSON(out)
	}

	if len(entries) == 0 {
		r.Muted("No conversions recorded yet")
		return nil
	}

	r.Header(1, fmt.Sprintf("History (%d)", len(entries)))
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		ts := e.CreatedAt.Local()
		rows = append(rows, []string{ts.Format(time.DateOnly), ts.Format(time.TimeOnly), e.Text(), e.Quantity})
	}
	r.Table([]string{"Date", "Heure", "Conversion", "Quantity"}, rows)
	return nil
}

func newHistoryClearCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "clear",
		Short:   "Delete every recorded conversion",
		Example: `  unitconv history clear --yes`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear history without --yes")
			}
			return runHistoryClear(cmd)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm deletion")
	return cmd
}

func runHistoryClear(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)

	store, cleanup, err := cmdCtx.OpenHistory(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	n, err := store.Clear(cmd.Context())
	if err != nil {
		return err
	}
	cmdCtx.Renderer.Success(fmt.Sprintf("Cleared %d conversion(s)", n))
	return nil
}

// HistoryExportOptions holds options for history export.
type HistoryExportOptions struct {
	Format string
	File   string
}

func newHistoryExportCommand() *cobra.Command {
	opts := &HistoryExportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the history as CSV, JSON or YAML",
		Long: `Export the history as CSV, JSON or YAML.

CSV exports use ';' as delimiter with the header Date;Heure;Conversion.
Without --file the export is written to standard output.`,
		Example: `  # CSV on stdout
  unitconv history export

  # CSV file next to the history database
  unitconv history export --file data/historique_conversions.csv

  # YAML
  unitconv history export --format yaml --file history.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistoryExport(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", string(export.FormatCSV), "Export format (csv|json|yaml)")
	cmd.Flags().StringVar(&opts.File, "file", "", "Write to file instead of stdout")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"csv", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runHistoryExport(cmd *cobra.Command, opts *HistoryExportOptions) error {
	cmdCtx := NewCommandContext(cmd)

	format, err := export.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	store, cleanup, err := cmdCtx.OpenHistory(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	entries, err := store.List(cmd.Context(), 0)
	if err != nil {
		return err
	}

	if opts.File == "" {
		return export.Write(cmd.OutOrStdout(), format, entries)
	}

	if err := writeExportFile(opts.File, format, entries); err != nil {
		return err
	}
	cmdCtx.Renderer.Success(fmt.Sprintf("Exported %d conversion(s) to %s", len(entries), opts.File))
	return nil
}

func writeExportFile(path string, format export.Format, entries []history.Entry) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path) //nolint:gosec // path comes from the --file flag
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return export.Write(f, format, entries)
}
