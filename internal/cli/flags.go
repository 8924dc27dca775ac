package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/masonry/pkg/board"
	"github.com/matzehuels/masonry/pkg/masonry"
	"github.com/matzehuels/masonry/pkg/pipeline"
	"github.com/matzehuels/masonry/pkg/render"
)

// layoutFlags holds the flags shared by every command that runs a pass.
// Values from --config are loaded first; flags given explicitly override
// them.
type layoutFlags struct {
	config      string
	engine      string
	width       float64
	height      float64
	columns     int
	columnWidth float64
	hAdapt      string
	vExpand     string
	overflow    string
	spacing     float64
	hSpacing    float64
	vSpacing    float64
	margin      float64
	seed        uint64
	demo        int
}

func newLayoutFlags() *layoutFlags {
	cfg := masonry.DefaultConfig()
	return &layoutFlags{
		engine:      pipeline.DefaultEngine,
		width:       pipeline.DefaultWidth,
		height:      pipeline.DefaultHeight,
		columns:     cfg.ColumnCount,
		columnWidth: cfg.ColumnWidth,
		hAdapt:      cfg.HAdapt.String(),
		vExpand:     cfg.VExpand.String(),
		overflow:    cfg.Overflow.String(),
		spacing:     cfg.HSpacing,
		seed:        pipeline.DefaultSeed,
	}
}

// register binds the flags to cmd.
func (f *layoutFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.config, "config", "", "TOML config file")
	fs.StringVarP(&f.engine, "engine", "e", f.engine, "engine: box (fixed column count), flow (fixed column width)")
	fs.Float64Var(&f.width, "width", f.width, "region width")
	fs.Float64Var(&f.height, "height", f.height, "region height (canvas only)")
	fs.IntVarP(&f.columns, "columns", "c", f.columns, "column count (box)")
	fs.Float64Var(&f.columnWidth, "column-width", f.columnWidth, "column width (flow)")
	fs.StringVar(&f.hAdapt, "h-adapt", f.hAdapt, "horizontal adaption: noadaption, spacing, zoom")
	fs.StringVar(&f.vExpand, "v-expand", f.vExpand, "vertical expansion: heightbalance, orderinsert, randominsert")
	fs.StringVar(&f.overflow, "overflow", f.overflow, "overflow: ignore, autozoom, autocrop")
	fs.Float64Var(&f.spacing, "spacing", f.spacing, "horizontal and vertical spacing")
	fs.Float64Var(&f.hSpacing, "h-spacing", 0, "horizontal spacing (overrides --spacing)")
	fs.Float64Var(&f.vSpacing, "v-spacing", 0, "vertical spacing (overrides --spacing)")
	fs.Float64Var(&f.margin, "margin", 0, "uniform contents margin")
	fs.Uint64Var(&f.seed, "seed", f.seed, "seed for randominsert and demo items")
	fs.IntVar(&f.demo, "demo", 0, "use N random demo items instead of an input file")
}

// options builds pipeline options from the config file and the flags set
// on cmd.
func (f *layoutFlags) options(cmd *cobra.Command) (pipeline.Options, error) {
	opts := pipeline.Options{}
	if f.config != "" {
		loaded, err := pipeline.LoadConfigFile(f.config)
		if err != nil {
			return opts, fmt.Errorf("load config %s: %w", f.config, err)
		}
		opts = loaded
	}
	if opts.Config == nil {
		cfg := masonry.DefaultConfig()
		opts.Config = &cfg
	}

	// Without a config file every flag applies, defaults included.
	set := func(name string) bool {
		return f.config == "" || cmd.Flags().Changed(name)
	}
	cfg := opts.Config

	if set("engine") {
		opts.Engine = f.engine
	}
	if set("width") {
		opts.Width = f.width
	}
	if set("height") {
		opts.Height = f.height
	}
	if set("seed") {
		opts.Seed = f.seed
	}
	if set("columns") {
		cfg.ColumnCount = f.columns
	}
	if set("column-width") {
		cfg.ColumnWidth = f.columnWidth
	}
	if set("h-adapt") {
		h, err := masonry.ParseHAdapt(f.hAdapt)
		if err != nil {
			return opts, err
		}
		cfg.HAdapt = h
	}
	if set("v-expand") {
		v, err := masonry.ParseVExpand(f.vExpand)
		if err != nil {
			return opts, err
		}
		cfg.VExpand = v
	}
	if set("overflow") {
		o, err := masonry.ParseOverflow(f.overflow)
		if err != nil {
			return opts, err
		}
		cfg.Overflow = o
	}
	if set("spacing") {
		cfg.HSpacing, cfg.VSpacing = f.spacing, f.spacing
	}
	if cmd.Flags().Changed("h-spacing") {
		cfg.HSpacing = f.hSpacing
	}
	if cmd.Flags().Changed("v-spacing") {
		cfg.VSpacing = f.vSpacing
	}
	if cmd.Flags().Changed("margin") {
		cfg.Margins = masonry.Uniform(f.margin)
	}
	return opts, nil
}

// loadItems reads the item set named by args, or generates demo items.
// It returns the item set and a base name for derived output paths.
func (f *layoutFlags) loadItems(args []string) (board.ItemSet, string, error) {
	if f.demo > 0 {
		return board.Demo(f.demo, f.seed), "demo", nil
	}
	if len(args) == 0 {
		return board.ItemSet{}, "", fmt.Errorf("an items file or --demo N is required")
	}
	items, err := board.ReadItemsFile(args[0])
	if err != nil {
		return board.ItemSet{}, "", fmt.Errorf("load items %s: %w", args[0], err)
	}
	return items, args[0], nil
}

// basePath derives the base output path from the output and input paths.
// If output is empty it strips the extension from input. If output carries
// a format extension it strips that too.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	for _, f := range render.Formats {
		if ext == f {
			return strings.TrimSuffix(output, filepath.Ext(output))
		}
	}
	return output
}
