package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/masonry/pkg/board"
	"github.com/matzehuels/masonry/pkg/pipeline"
)

// layoutCommand creates the layout command for computing masonry layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		summary bool
	)
	flags := newLayoutFlags()

	cmd := &cobra.Command{
		Use:   "layout [items.json|items.toml]",
		Short: "Compute a masonry layout from an item set",
		Long: `Compute a masonry layout from an item set.

The layout command reads an item set (JSON or TOML, or --demo N random items),
runs one pass of the box or flow engine over the region and writes a
layout.json document with every item's column and rectangle. The document
can be rendered with the 'visualize' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, input, err := flags.loadItems(args)
			if err != nil {
				return err
			}
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), items, input, opts, output, noCache, summary)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&summary, "summary", true, "print a per-column summary")
	flags.register(cmd)

	return cmd
}

// runLayout computes the layout and writes it.
func (c *CLI) runLayout(ctx context.Context, items board.ItemSet, input string, opts pipeline.Options, output string, noCache, summary bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Placing %d items...", len(items.Items)))
	spinner.Start()

	p := newProgress(loggerFromContext(ctx))
	l, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, items, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	p.done(fmt.Sprintf("Placed %d items in %d columns", len(l.Items), l.Grid.Count))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".layout.json"
	}

	if err := board.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(l.Items), l.Grid.Count, l.Height, cacheHit)
	if summary {
		printNewline()
		printLayoutSummary(l)
	}
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}
