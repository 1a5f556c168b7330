package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/unitconv/internal/cli/output"
	"github.com/leapstack-labs/unitconv/internal/history"
	"github.com/leapstack-labs/unitconv/pkg/units"
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	var quantity string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Convert interactively",
		Long: `Start an interactive session.

Type "<value> <from> <to>" to convert within the current quantity, for example
"1 mile km" or "100 °C to °F". Dot-commands change the session:

  .quantity <name>  Switch quantity
  .units            List units of the current quantity
  .quantities       List quantities
  .help             Show help
  .quit / .exit     Leave`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd, quantity)
		},
	}

	cmd.Flags().StringVarP(&quantity, "quantity", "q", "", "Initial quantity (default: default_quantity)")
	_ = cmd.RegisterFlagCompletionFunc("quantity", completeQuantities)

	return cmd
}

func runREPL(cmd *cobra.Command, quantity string) error {
	cmdCtx := NewCommandContext(cmd)
	ctx := cmd.Context()

	session, err := newREPLSession(cmdCtx.Converter, resolveQuantity(cmdCtx.Cfg, quantity), cmdCtx.Renderer)
	if err != nil {
		return err
	}
	if cmdCtx.Cfg.HistoryEnabled {
		store, cleanup, err := cmdCtx.OpenHistory(ctx)
		if err != nil {
			return err
		}
		defer cleanup()
		session.record = store.Add
	}

	// Line history next to the conversion history
	historyFile := ""
	if p := cmdCtx.Cfg.HistoryPath; p != "" && p != ":memory:" {
		historyFile = filepath.Join(filepath.Dir(p), "repl_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          session.prompt(),
		HistoryFile:     historyFile,
		AutoComplete:    newREPLCompleter(cmdCtx.Converter.Registry()),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "unitconv REPL. Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		if quit := session.handleLine(ctx, line); quit {
			break
		}
		rl.SetPrompt(session.prompt())
	}

	return nil
}

// replSession holds the state of one interactive session.
type replSession struct {
	conv     *units.Converter
	quantity string
	r        *output.Renderer
	record   func(context.Context, history.Entry) error
}

func newREPLSession(conv *units.Converter, quantity string, r *output.Renderer) (*replSession, error) {
	if _, err := conv.Registry().Lookup(quantity); err != nil {
		return nil, err
	}
	return &replSession{conv: conv, quantity: quantity, r: r}, nil
}

func (s *replSession) prompt() string {
	return s.quantity + "> "
}

// handleLine runs one input line and reports whether the session should end.
// Errors are printed; the session continues.
func (s *replSession) handleLine(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if strings.HasPrefix(line, ".") {
		return s.handleDotCommand(line)
	}

	value, from, to, err := parseConversionLine(line)
	if err != nil {
		s.r.Error(err.Error())
		return false
	}

	result, err := s.conv.Convert(value, from, to, s.quantity)
	if err == nil {
		err = checkResult(result, from, to)
	}
	if err != nil {
		s.r.Error(err.Error())
		return false
	}

	if s.record != nil {
		if err := s.record(ctx, history.NewEntry(s.quantity, value, from, to, result)); err != nil {
			s.r.Warning(fmt.Sprintf("failed to record conversion: %v", err))
		}
	}

	if err := s.r.Conversion(output.ConversionOutput{
		Value: value, From: from, To: to, Quantity: s.quantity, Result: result,
	}); err != nil {
		s.r.Error(err.Error())
	}
	return false
}

func (s *replSession) handleDotCommand(line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(s.r.Writer())

	case ".quantity", ".q":
		if len(parts) < 2 {
			s.r.Println("Current quantity: " + s.quantity)
			return false
		}
		if _, err := s.conv.Registry().Lookup(parts[1]); err != nil {
			s.r.Error(err.Error())
			return false
		}
		s.quantity = parts[1]

	case ".units":
		list, err := s.conv.ListUnits(s.quantity)
		if err != nil {
			s.r.Error(err.Error())
			return false
		}
		s.r.Println(strings.Join(list, "  "))

	case ".quantities":
		s.r.Println(strings.Join(s.conv.Quantities(), "  "))

	default:
		s.r.Error(fmt.Sprintf("unknown command: %s (type .help for commands)", command))
	}
	return false
}

// parseConversionLine parses "<value> <from> <to>". The target may be
// introduced by "to", "en" or "->".
func parseConversionLine(line string) (float64, string, string, error) {
	fields := strings.Fields(line)
	if len(fields) == 4 {
		switch strings.ToLower(fields[2]) {
		case "to", "en", "->":
			fields = []string{fields[0], fields[1], fields[3]}
		}
	}
	if len(fields) != 3 {
		return 0, "", "", fmt.Errorf("expected <value> <from> <to>, got %q", line)
	}

	value, err := parseValue(fields[0])
	if err != nil {
		return 0, "", "", err
	}
	return value, fields[1], fields[2], nil
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .quantity <name>  Switch quantity (no argument shows the current one)
  .units            List units of the current quantity
  .quantities       List quantities
  .help             Show this help message
  .quit / .exit     Exit the REPL

Conversions:
  1 mile km
  100 °C to °F
  -40 °F °C

Tips:
  - Use arrow keys to navigate history
  - Tab completion works for dot-commands and quantity names
`
	_, _ = fmt.Fprintln(w, help)
}

// newREPLCompleter completes dot-commands, quantity names and unit names.
func newREPLCompleter(reg *units.Registry) *readline.PrefixCompleter {
	var quantityItems []readline.PrefixCompleterInterface
	for _, name := range reg.Quantities() {
		quantityItems = append(quantityItems, readline.PcItem(name))
	}

	items := []readline.PrefixCompleterInterface{
		readline.PcItem(".quantity", quantityItems...),
		readline.PcItem(".units"),
		readline.PcItem(".quantities"),
		readline.PcItem(".help"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	}
	return readline.NewPrefixCompleter(items...)
}
