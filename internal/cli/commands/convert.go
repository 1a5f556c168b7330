package commands

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/unitconv/internal/cli/output"
	"github.com/leapstack-labs/unitconv/internal/history"
	"github.com/leapstack-labs/unitconv/pkg/units"
)

// ConvertOptions holds options for the convert command.
type ConvertOptions struct {
	Quantity  string
	NoHistory bool
}

// NewConvertCommand creates the convert command.
func NewConvertCommand() *cobra.Command {
	opts := &ConvertOptions{}

	cmd := &cobra.Command{
		Use:   "convert <value> <from> <to>",
		Short: "Convert a value between two units",
		Long: `Convert a value from one unit to another unit of the same quantity.

The quantity defaults to default_quantity from the configuration (longueur).
Temperature results are rounded to 2 decimal places; the other quantities are
returned unrounded unless the rounding option says otherwise.

Successful conversions are recorded in the history unless --no-history is given
or history_enabled is false.`,
		Example: `  # Convert a length
  unitconv convert 1 mile m

  # Convert a temperature
  unitconv convert 100 °C °F -q temperature

  # Negative values go after --
  unitconv convert -q temperature -- -40 °F °C

  # Machine-readable output
  unitconv convert 90 min h -q temps -o json`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, opts)
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 || len(args) > 2 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			list, err := units.ListUnits(resolveQuantity(getConfig(), opts.Quantity))
			if err != nil {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return list, cobra.ShellCompDirectiveNoFileComp
		},
	}

	cmd.Flags().StringVarP(&opts.Quantity, "quantity", "q", "", "Quantity of the units (default: default_quantity)")
	cmd.Flags().BoolVar(&opts.NoHistory, "no-history", false, "Do not record this conversion")
	_ = cmd.RegisterFlagCompletionFunc("quantity", completeQuantities)

	return cmd
}

func runConvert(cmd *cobra.Command, args []string, opts *ConvertOptions) error {
	cmdCtx := NewCommandContext(cmd)

	value, err := parseValue(args[0])
	if err != nil {
		return err
	}
	from, to := args[1], args[2]
	quantity := resolveQuantity(cmdCtx.Cfg, opts.Quantity)

	result, err := cmdCtx.Converter.Convert(value, from, to, quantity)
	if err != nil {
		return err
	}
	if err := checkResult(result, from, to); err != nil {
		return err
	}
	cmdCtx.Logger.Debug("converted",
		"quantity", quantity, "from", from, "to", to, "value", value, "result", result,
		"rounding", cmdCtx.Converter.Policy().String())

	if !opts.NoHistory {
		cmdCtx.Record(cmd.Context(), history.NewEntry(quantity, value, from, to, result))
	}

	return cmdCtx.Renderer.Conversion(output.ConversionOutput{
		Value:    value,
		From:     from,
		To:       to,
		Quantity: quantity,
		Result:   result,
	})
}

// parseValue parses a finite decimal value. A comma is accepted as decimal
// separator.
func parseValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid value %q: must be a finite number", s)
	}
	return v, nil
}

// checkResult rejects results that overflowed the float64 range.
func checkResult(result float64, from, to string) error {
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return fmt.Errorf("conversion result out of range: %s in %s", from, to)
	}
	return nil
}
