package pipeline

import (
	"os"

	"github.com/BurntSushi/toml"

	merr "github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/masonry"
	"github.com/matzehuels/masonry/pkg/render"
)

// fileConfig is the TOML layout of a config file:
//
//	engine  = "flow"
//	width   = 1024
//	formats = ["svg", "png"]
//
//	[layout]
//	h_adapt      = "spacing"
//	v_expand     = "heightbalance"
//	column_width = 180
//
//	[layout.margins]
//	left = 8
//
//	[render]
//	guides = true
type fileConfig struct {
	Engine  string         `toml:"engine"`
	Width   float64        `toml:"width"`
	Height  float64        `toml:"height"`
	Seed    uint64         `toml:"seed"`
	Formats []string       `toml:"formats"`
	Layout  masonry.Config `toml:"layout"`
	Render  render.Options `toml:"render"`
}

// ParseConfig decodes TOML config data into Options. Keys missing from the
// [layout] table keep their [masonry.DefaultConfig] values.
func ParseConfig(data []byte) (Options, error) {
	fc := fileConfig{Layout: masonry.DefaultConfig()}
	md, err := toml.Decode(string(data), &fc)
	if err != nil {
		return Options{}, merr.Wrap(merr.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Options{}, merr.New(merr.ErrCodeInvalidConfig, "unknown config key: %s", undecoded[0].String())
	}
	cfg := fc.Layout
	return Options{
		Engine:  fc.Engine,
		Width:   fc.Width,
		Height:  fc.Height,
		Seed:    fc.Seed,
		Formats: fc.Formats,
		Config:  &cfg,
		Render:  fc.Render,
	}, nil
}

// LoadConfigFile reads a TOML config file.
func LoadConfigFile(path string) (Options, error) {
	if err := merr.ValidatePath(path); err != nil {
		return Options{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Options{}, merr.Wrap(merr.ErrCodeFileNotFound, err, "read config %s", path)
		}
		return Options{}, merr.Wrap(merr.ErrCodeInvalidPath, err, "read config %s", path)
	}
	return ParseConfig(data)
}
