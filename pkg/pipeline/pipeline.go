// Package pipeline runs the items → layout → render pipeline for the CLI and
// the HTTP server.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Layout: run a masonry pass over an item set inside a region
//  2. Render: turn the resulting layout into artifacts (SVG, PNG, PDF, JSON, DOT)
//
// Each stage can be run on its own, and both are cached by content hash
// when run through a [Runner].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Engine:  "flow",
//	    Width:   1024,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, items, opts)
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/masonry/pkg/board"
	"github.com/matzehuels/masonry/pkg/cache"
	merr "github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/masonry"
	"github.com/matzehuels/masonry/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultEngine is the engine used when none is named.
	DefaultEngine = string(masonry.KindBox)

	// DefaultWidth is the default region width.
	DefaultWidth = 800.0

	// DefaultHeight is the default region height. The engine ignores region
	// height; it only bounds the canvas of rendered output.
	DefaultHeight = 600.0

	// DefaultSeed seeds RandomInsert so repeated runs agree.
	DefaultSeed = uint64(42)

	// MaxItems bounds the size of a single layout request.
	MaxItems = 10000
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline. It is the JSON body
// of API requests and the decoded form of a TOML config file.
type Options struct {
	// Layout options
	Engine string          `json:"engine,omitempty"`
	Width  float64         `json:"width,omitempty"`
	Height float64         `json:"height,omitempty"`
	Config *masonry.Config `json:"config,omitempty"`
	Seed   uint64          `json:"seed,omitempty"`

	// Render options
	Formats []string       `json:"formats,omitempty"`
	Render  render.Options `json:"render,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Logger receives pass diagnostics. Not serialized.
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ItemsHash is the content hash of the item set.
	ItemsHash string

	// Layout is the computed layout.
	Layout board.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ItemCount   int
	ColumnCount int
	Height      float64
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}

// =============================================================================
// Options Methods
// =============================================================================

// SetLayoutDefaults fills unset layout fields.
func (o *Options) SetLayoutDefaults() {
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Config == nil {
		cfg := masonry.DefaultConfig()
		o.Config = &cfg
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout applies layout defaults and validates them. Strategy and
// spacing faults surface here so no pass starts with a bad configuration.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if _, err := masonry.ParseKind(o.Engine); err != nil {
		return err
	}
	if o.Width <= 0 || o.Height < 0 {
		return merr.New(merr.ErrCodeInvalidConfig, "region must have positive width (got %vx%v)", o.Width, o.Height)
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	return o.Config.ValidateSpacing()
}

// SetRenderDefaults fills unset render fields.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{render.FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender applies render defaults and validates the formats.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return render.ValidateFormats(o.Formats)
}

// ValidateAndSetDefaults prepares options for a full run.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// Kind returns the engine kind. Call after validation.
func (o *Options) Kind() masonry.Kind {
	return masonry.Kind(o.Engine)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	k := cache.LayoutKeyOpts{
		Engine: o.Engine,
		Width:  o.Width,
		Height: o.Height,
		Seed:   o.Seed,
	}
	if o.Config != nil {
		k.Config = *o.Config
	}
	return k
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Guides:     o.Render.Guides,
		NoLabels:   o.Render.NoLabels,
		Background: o.Render.Background,
		Scale:      o.Render.Scale,
		Palette:    o.Render.Palette,
	}
}
