package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keytrace/swipepath/pkg/keyboard"
)

// layoutCommand groups the layout subcommands.
func (c *CLI) layoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Inspect and calibrate keyboard layouts",
	}

	cmd.AddCommand(c.layoutShowCommand())
	cmd.AddCommand(c.layoutCalibrateCommand())

	return cmd
}

// layoutShowCommand creates the "layout show" subcommand.
func (c *CLI) layoutShowCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "show [FILE]",
		Short: "Print the key centers of a layout",
		Long: `Print the key centers of a layout.

Without FILE the built-in compact layout is shown. FILE may be a .toml
layout or a .grid file, which is calibrated first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return c.runLayoutShow(cmd.Context(), path, noCache)
		},
	}
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the layout cache")
	return cmd
}

func (c *CLI) runLayoutShow(ctx context.Context, path string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	l, cached, err := runner.LoadLayout(ctx, path, false)
	if err != nil {
		return err
	}

	keys := l.Keys()
	rows := make([][]string, len(keys))
	for i, k := range keys {
		p, _ := l.Lookup(k)
		rows[i] = []string{k, fmt.Sprintf("%.4f", p.X), fmt.Sprintf("%.4f", p.Y)}
	}

	printInfo("Layout %s", StyleHighlight.Render(l.Name()))
	if cached {
		printDetail("calibration loaded from cache")
	}
	fmt.Fprintln(c.out, renderTable([]string{"Key", "X", "Y"}, rows, nil))
	return nil
}

// layoutCalibrateCommand creates the "layout calibrate" subcommand.
func (c *CLI) layoutCalibrateCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "calibrate FILE.grid",
		Short: "Calibrate key centers from a grid file and write TOML",
		Long: `Calibrate key centers from a grid file and write TOML.

Every cell of the grid is a sample at the cell center; a key's center is
the mean of its samples. The result is written as a .toml layout that
loads without recalibration.

Grid syntax:

  # comment
  grid COLUMNS ROWS [scale SX SY]
  row KEY[*SPAN] ...

A key is a bare token or a quoted string; _ is an empty cell.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayoutCalibrate(cmd.Context(), args[0], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.toml)")
	return cmd
}

func (c *CLI) runLayoutCalibrate(ctx context.Context, input, output string) error {
	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open grid %s: %w", input, err)
	}
	defer f.Close()

	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	samples, err := keyboard.ParseGrid(input, f)
	if err != nil {
		return err
	}
	l, err := keyboard.Calibrate(name, samples)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Calibrated %d keys from %d cells", l.Len(), len(samples)))

	for _, k := range l.Keys() {
		p, _ := l.Lookup(k)
		logger.Debug("key center", "key", k, "x", p.X, "y", p.Y)
	}

	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + keyboard.ExtTOML
	}
	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	if err := l.WriteTOML(out); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", output, err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	printSuccess("Layout %s calibrated", l.Name())
	printFile(output)
	printNewline()
	printNextStep("Generate paths", appName+" path --layout "+output+" WORD")
	return nil
}
