package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/unitconv/internal/cli/output"
	"github.com/leapstack-labs/unitconv/pkg/units"
)

// NewUnitsCommand creates the units command.
func NewUnitsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "units [quantity]",
		Short: "List the units of a quantity",
		Long: `List the units of a quantity in table order.

Linear quantities show the factor converting one unit into the reference unit.
Without an argument the configured default_quantity is listed.`,
		Example: `  # Units of the default quantity
  unitconv units

  # Temperature units as JSON
  unitconv units temperature -o json`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeQuantities,
		RunE: func(cmd *cobra.Command, args []string) error {
			var quantity string
			if len(args) > 0 {
				quantity = args[0]
			}
			return runUnits(cmd, quantity)
		},
	}

	return cmd
}

func runUnits(cmd *cobra.Command, quantity string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	quantity = resolveQuantity(cmdCtx.Cfg, quantity)

	q, err := cmdCtx.Converter.Registry().Lookup(quantity)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(output.UnitsOutput{Quantity: q.Name(), Units: q.Units()})
	}

	r.Header(1, fmt.Sprintf("%s (%d units)", output.QuantityLabel(q.Name()), len(q.Units())))
	r.Table(unitTable(q))
	r.Println("")
	r.Muted(fmt.Sprintf("Reference unit: %s", q.Reference()))
	return nil
}

// unitTable returns the headers and rows describing the units of q.
func unitTable(q units.Quantity) ([]string, [][]string) {
	switch q := q.(type) {
	case *units.LinearQuantity:
		rows := make([][]string, 0, len(q.Units()))
		for _, u := range q.Units() {
			f, _ := q.Factor(u)
			rows = append(rows, []string{u, output.FormatNumber(f)})
		}
		return []string{"Unit", "Factor (" + q.Reference() + ")"}, rows
	default:
		rows := make([][]string, 0, len(q.Units()))
		for _, u := range q.Units() {
			ref := ""
			if u == q.Reference() {
				ref = "yes"
			}
			rows = append(rows, []string{u, ref})
		}
		return []string{"Unit", "Reference"}, rows
	}
}
