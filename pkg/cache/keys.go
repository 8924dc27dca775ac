package cache

import (
	"github.com/matzehuels/masonry/pkg/masonry"
)

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey is the key of a layout computed from the item set whose
	// content hash is itemsHash.
	LayoutKey(itemsHash string, opts LayoutKeyOpts) string

	// ArtifactKey is the key of an artifact rendered from the layout whose
	// content hash is layoutHash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts lists every input of a layout pass besides the items.
type LayoutKeyOpts struct {
	Engine string         `json:"engine"`
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
	Config masonry.Config `json:"config"`
	Seed   uint64         `json:"seed"`
}

// ArtifactKeyOpts lists every render option that changes the output bytes.
type ArtifactKeyOpts struct {
	Format     string   `json:"format"`
	Guides     bool     `json:"guides"`
	NoLabels   bool     `json:"no_labels"`
	Background string   `json:"background"`
	Scale      float64  `json:"scale"`
	Palette    []string `json:"palette,omitempty"`
}

// DefaultKeyer produces "layout:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey hashes the items hash together with opts.
func (DefaultKeyer) LayoutKey(itemsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", itemsHash, opts)
}

// ArtifactKey hashes the layout hash together with opts.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
