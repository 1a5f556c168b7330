package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/unitconv/internal/cli/output"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version and built-in unit tables",
		Long: `Display the unitconv version, build information and the size of the
built-in unit tables. With -o json the same data is printed as JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVersion(cmd, info)
		},
	}
}

func runVersion(cmd *cobra.Command, info BuildInfo) error {
	cmdCtx := NewCommandContext(cmd)
	reg := cmdCtx.Converter.Registry()

	out := output.VersionOutput{
		Version:    info.Version,
		BuildDate:  info.BuildDate,
		GitCommit:  info.GitCommit,
		GoVersion:  runtime.Version(),
		Quantities: len(reg.Quantities()),
		Rounding:   cmdCtx.Converter.Policy().String(),
	}
	for _, name := range reg.Quantities() {
		list, err := reg.ListUnits(name)
		if err != nil {
			return err
		}
		out.Units += len(list)
	}

	if cmdCtx.Renderer.EffectiveMode() == output.ModeJSON {
		return cmdCtx.Renderer.JSON(out)
	}

	r := cmdCtx.Renderer
	r.Printf("unitconv v%s\n", out.Version)
	r.Printf("Unit converter built with %s (commit %s, %s)\n", out.GoVersion, out.GitCommit, out.BuildDate)
	r.Printf("%d quantities, %d units, rounding %s\n", out.Quantities, out.Units, out.Rounding)
	return nil
}
