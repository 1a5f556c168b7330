package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/unitconv/internal/cli/output"
)

// NewQuantitiesCommand creates the quantities command.
func NewQuantitiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "quantities",
		Short: "List the supported quantities",
		Long: `List every supported quantity with its kind, reference unit and units.

Volume, surface, speed, currency and data size are not supported.`,
		Example: `  unitconv quantities
  unitconv quantities -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuantities(cmd)
		},
	}
}

func runQuantities(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	reg := cmdCtx.Converter.Registry()

	infos := make([]output.QuantityInfo, 0, len(reg.Quantities()))
	for _, name := range reg.Quantities() {
		q, err := reg.Lookup(name)
		if err != nil {
			return err
		}
		infos = append(infos, output.QuantityInfo{
			Name:      q.Name(),
			Label:     output.QuantityLabel(q.Name()),
			Kind:      q.Kind().String(),
			Reference: q.Reference(),
			Units:     q.Units(),
		})
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(output.QuantitiesOutput{Quantities: infos})
	}

	r.Header(1, fmt.Sprintf("Quantities (%d)", len(infos)))
	rows := make([][]string, 0, len(infos))
	for _, qi := range infos {
		rows = append(rows, []string{qi.Name, qi.Label, qi.Kind, qi.Reference, strings.Join(qi.Units, ", ")})
	}
	r.Table([]string{"Name", "Label", "Kind", "Reference", "Units"}, rows)
	return nil
}
