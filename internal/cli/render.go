package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/masonry/pkg/board"
	"github.com/matzehuels/masonry/pkg/pipeline"
	"github.com/matzehuels/masonry/pkg/render"
)

// renderCommand creates the render command, a shortcut from items to output.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	flags := newLayoutFlags()
	var renderOpts render.Options

	cmd := &cobra.Command{
		Use:   "render [items.json|items.toml]",
		Short: "Lay out an item set and render it",
		Long: `Lay out an item set and render it.

The render command runs 'layout' and 'visualize' in one step. Both stages are
cached, so rerunning with only different output formats skips the pass.

Formats:
  svg      item rectangles with labels (default)
  png      SVG rasterized with rsvg-convert
  pdf      SVG converted with rsvg-convert
  json     the layout document
  dot      Graphviz source of the column assignment
  columns  the column assignment rendered by Graphviz`,
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
			if cmd.Flags().Changed("format") || len(opts.Formats) == 0 {
				opts.Formats = parseFormats(formatsStr)
			}
			if err := render.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			mergeRenderOptions(cmd, &opts.Render, renderOpts)
			return c.runRender(cmd.Context(), items, input, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot, columns (comma-separated)")
	registerRenderFlags(cmd, &renderOpts)
	flags.register(cmd)

	return cmd
}

// runRender executes the full pipeline and writes every artifact.
func (c *CLI) runRender(ctx context.Context, items board.ItemSet, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d items...", len(items.Items)))
	spinner.Start()

	result, err := runner.Execute(ctx, items, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
	}); err != nil {
		return err
	}
	printStats(result.Stats.ItemCount, result.Stats.ColumnCount, result.Stats.Height, result.CacheInfo.LayoutHit)
	return nil
}

// registerRenderFlags binds the artifact styling flags.
func registerRenderFlags(cmd *cobra.Command, o *render.Options) {
	cmd.Flags().BoolVar(&o.Guides, "guides", false, "draw column guides")
	cmd.Flags().BoolVar(&o.NoLabels, "no-labels", false, "omit item labels")
	cmd.Flags().StringVar(&o.Background, "background", "", "background fill color")
	cmd.Flags().Float64Var(&o.Scale, "scale", 0, "PNG scale factor (default 2)")
	cmd.Flags().StringSliceVar(&o.Palette, "palette", nil, "comma-separated column fill colors")
}

// mergeRenderOptions copies the render flags that were set explicitly over
// the values loaded from a config file.
func mergeRenderOptions(cmd *cobra.Command, dst *render.Options, src render.Options) {
	if cmd.Flags().Changed("guides") {
		dst.Guides = src.Guides
	}
	if cmd.Flags().Changed("no-labels") {
		dst.NoLabels = src.NoLabels
	}
	if cmd.Flags().Changed("background") {
		dst.Background = src.Background
	}
	if cmd.Flags().Changed("scale") {
		dst.Scale = src.Scale
	}
	if cmd.Flags().Changed("palette") {
		dst.Palette = src.Palette
	}
}

// =============================================================================
// Artifact Output
// =============================================================================

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	cacheHit  bool
}

// writeArtifacts writes one file per format. A single format goes to the
// output path as given; several formats share a base path.
func writeArtifacts(p artifactWriteParams) error {
	paths := make([]string, 0, len(p.formats))
	if len(p.formats) == 1 && p.output != "" {
		format := p.formats[0]
		if err := os.WriteFile(p.output, p.artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", p.output, err)
		}
		paths = append(paths, p.output)
	} else {
		base := basePath(p.output, p.input)
		for _, format := range p.formats {
			path := base + "." + render.Extension(format)
			if path == p.input {
				path = base + ".layout." + render.Extension(format)
			}
			if err := os.WriteFile(path, p.artifacts[format], 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			paths = append(paths, path)
		}
	}

	if p.cacheHit {
		printSuccess("Rendered %s %s", strings.Join(p.formats, ", "), styleCached.Render("("+iconCached+")"))
	} else {
		printSuccess("Rendered %s", strings.Join(p.formats, ", "))
	}
	for _, path := range paths {
		printFile(path)
	}
	return nil
}

// trimLayoutSuffix turns "board.layout.json" into "board" so rendered files
// sit next to the items they came from.
func trimLayoutSuffix(path string) string {
	return strings.TrimSuffix(path, ".layout.json")
}
