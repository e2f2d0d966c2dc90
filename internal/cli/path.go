package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keytrace/swipepath/pkg/geom"
	"github.com/keytrace/swipepath/pkg/pathio"
	"github.com/keytrace/swipepath/pkg/pipeline"
)

const formatTable = "table"

// pathCommand creates the path command for generating resampled paths.
func (c *CLI) pathCommand() *cobra.Command {
	var (
		output    string
		format    string
		noCache   bool
		showAll   bool
		wordsFrom string
		from      string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "path WORD...",
		Short: "Generate swipe paths for words",
		Long: `Generate swipe paths for words.

Each word is normalized (repeated letters collapsed, lowercased), mapped to
key centers on the layout and resampled. Use --density for a target spacing
between points or --count for a fixed number of points. Without either the
spacing is 0.01.

Words that cannot be typed on the layout are reported and do not stop the
batch.

With --from, paths previously written with -o are read back and rendered
instead of generated, for example to inspect a .cbor file as a table or
convert it to JSON.`,
		Example: `  swipepath path hello world
  swipepath path --count 32 --format json hello
  swipepath path --layout phone.grid --density 0.05 -o paths.cbor swipe
  swipepath path --from paths.cbor --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if from != "" {
				if len(args) > 0 {
					return fmt.Errorf("--from cannot be combined with words")
				}
				return c.runRender(from, format, output, showAll)
			}
			words, err := collectWords(args, wordsFrom, cmd.InOrStdin())
			if err != nil {
				return err
			}
			opts.Words = words
			return c.runPath(cmd.Context(), opts, format, output, noCache, showAll)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (format from extension: .json or .cbor)")
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: table, json, cbor")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the layout cache")
	cmd.Flags().BoolVar(&showAll, "points", false, "list every point in table output")
	cmd.Flags().StringVar(&wordsFrom, "words-from", "", "read words from a file, one per line (- for stdin)")
	cmd.Flags().StringVar(&from, "from", "", "render paths from a .json or .cbor file instead of generating them")

	cmd.Flags().StringVarP(&opts.LayoutPath, "layout", "l", "", "layout file (.toml or .grid; default: built-in)")
	cmd.Flags().Float64VarP(&opts.Density, "density", "d", 0, "target spacing between points")
	cmd.Flags().IntVarP(&opts.Count, "count", "n", 0, "exact number of points per path")
	cmd.Flags().IntVarP(&opts.Workers, "workers", "w", pipeline.DefaultWorkers, "words generated in parallel")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recalibrate grid layouts even when cached")
	cmd.MarkFlagsMutuallyExclusive("density", "count")
	for _, f := range []string{"words-from", "layout", "density", "count", "refresh"} {
		cmd.MarkFlagsMutuallyExclusive("from", f)
	}

	return cmd
}

// runPath executes the pipeline and writes the result.
func (c *CLI) runPath(ctx context.Context, opts pipeline.Options, format, output string, noCache, showAll bool) error {
	format, err := resolveFormat(format, output)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)
	prog := newProgress(opts.Logger)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating %d paths...", len(opts.Words)))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Path generation failed")
		return err
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done(fmt.Sprintf("Generated %d paths", len(result.Paths)))

	if err := c.emitPaths(result.Paths, format, output, showAll); err != nil {
		return err
	}
	if output == "" && format != formatTable {
		return nil
	}
	printStats(result.Stats.Words, result.Stats.Failed, result.Stats.Points, result.CacheInfo.LayoutHit)
	if output == "" && result.Stats.Failed > 0 {
		printWarning("%d of %d words have no path on layout %s", result.Stats.Failed, result.Stats.Words, result.Layout.Name())
		printNextStep("Inspect the layout", appName+" layout show "+opts.LayoutPath)
	}
	return nil
}

// runRender reads previously exported paths and writes them like runPath.
func (c *CLI) runRender(input, format, output string, showAll bool) error {
	format, err := resolveFormat(format, output)
	if err != nil {
		return err
	}
	paths, err := pathio.ImportFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}
	return c.emitPaths(paths, format, output, showAll)
}

// resolveFormat picks the output format: the extension of output wins over
// the table default.
func resolveFormat(format, output string) (string, error) {
	if output != "" && format == formatTable {
		format = string(pathio.FormatFromPath(output))
	}
	if format != formatTable {
		if _, err := pathio.ParseFormat(format); err != nil {
			return "", err
		}
	}
	return format, nil
}

// emitPaths writes paths to output, or to the command output in format.
func (c *CLI) emitPaths(paths []pathio.Path, format, output string, showAll bool) error {
	if output != "" {
		if err := pathio.ExportFile(output, paths); err != nil {
			return fmt.Errorf("write output %s: %w", output, err)
		}
		printSuccess("Paths written")
		printFile(output)
		return nil
	}
	if format != formatTable {
		return pathio.Write(c.out, pathio.Format(format), paths)
	}
	fmt.Fprintln(c.out, renderPathTable(paths))
	if showAll {
		writePoints(c.out, paths)
	}
	return nil
}

func renderPathTable(paths []pathio.Path) string {
	rows := make([][]string, len(paths))
	for i, p := range paths {
		status := fmt.Sprintf("%d", len(p.Points))
		if !p.OK() {
			status = p.Error.Code
		}
		rows[i] = []string{
			p.Word,
			p.Normalized,
			formatPoint(p.First),
			formatPoint(p.Last),
			fmt.Sprintf("%d", len(p.Waypoints)),
			fmt.Sprintf("%.4f", p.Length),
			status,
		}
	}
	return renderTable(
		[]string{"Word", "Normalized", "First", "Last", "Keys", "Length", "Points"},
		rows,
		func(row int) bool { return row < len(paths) && !paths[row].OK() },
	)
}

func writePoints(w io.Writer, paths []pathio.Path) {
	for _, p := range paths {
		if !p.OK() {
			continue
		}
		fmt.Fprintln(w, StyleTitle.Render(p.Word))
		for i, pt := range p.Points {
			fmt.Fprintf(w, "  %4d  %.6f  %.6f\n", i, pt.X, pt.Y)
		}
	}
}

func formatPoint(p *geom.Point) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%.3f, %.3f", p.X, p.Y)
}

// collectWords merges positional words with words read from a file.
func collectWords(args []string, from string, stdin io.Reader) ([]string, error) {
	words := append([]string(nil), args...)
	if from != "" {
		var r io.Reader = stdin
		if from != "-" {
			f, err := os.Open(from)
			if err != nil {
				return nil, fmt.Errorf("open word list: %w", err)
			}
			defer f.Close()
			r = f
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read word list: %w", err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if w := strings.TrimSpace(line); w != "" {
				words = append(words, w)
			}
		}
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("no words given")
	}
	return words, nil
}
