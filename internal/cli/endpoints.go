package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keytrace/swipepath/pkg/wordpath"
)

// endpointsCommand creates the endpoints command.
func (c *CLI) endpointsCommand() *cobra.Command {
	var (
		layoutPath string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "endpoints WORD...",
		Short: "Print the first and last key centers of words",
		Long: `Print the first and last key centers of words.

Only the first and last letters are looked up, so a word whose middle
cannot be typed still has endpoints. A dash marks a letter without a key.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEndpoints(cmd.Context(), args, layoutPath, noCache)
		},
	}

	cmd.Flags().StringVarP(&layoutPath, "layout", "l", "", "layout file (.toml or .grid; default: built-in)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the layout cache")

	return cmd
}

func (c *CLI) runEndpoints(ctx context.Context, words []string, layoutPath string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	l, _, err := runner.LoadLayout(ctx, layoutPath, false)
	if err != nil {
		return err
	}

	logger := loggerFromContext(ctx)
	rows := make([][]string, len(words))
	missing := make([]bool, len(words))
	for i, w := range words {
		wp := wordpath.New(l, w, wordpath.WithLogger(logger))
		first, last := wp.FirstLast()
		missing[i] = first == nil || last == nil
		rows[i] = []string{w, string(wp.Runes()), formatPoint(first), formatPoint(last)}
	}

	fmt.Fprintln(c.out, renderTable(
		[]string{"Word", "Normalized", "First", "Last"},
		rows,
		func(row int) bool { return row < len(missing) && missing[row] },
	))
	return nil
}
