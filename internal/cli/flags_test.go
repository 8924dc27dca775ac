package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/masonry/pkg/masonry"
	"github.com/matzehuels/masonry/pkg/pipeline"
)

// parseLayoutFlags registers layout flags on a bare command and parses args.
func parseLayoutFlags(t *testing.T, args ...string) (*layoutFlags, *cobra.Command) {
	t.Helper()
	f := newLayoutFlags()
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v) error: %v", args, err)
	}
	return f, cmd
}

func TestLayoutFlagsDefaults(t *testing.T) {
	f, cmd := parseLayoutFlags(t)
	opts, err := f.options(cmd)
	if err != nil {
		t.Fatalf("options() error: %v", err)
	}

	if opts.Engine != pipeline.DefaultEngine {
		t.Errorf("Engine = %q, want %q", opts.Engine, pipeline.DefaultEngine)
	}
	if opts.Width != pipeline.DefaultWidth {
		t.Errorf("Width = %v, want %v", opts.Width, pipeline.DefaultWidth)
	}
	if *opts.Config != masonry.DefaultConfig() {
		t.Errorf("Config = %+v, want defaults", *opts.Config)
	}
}

func TestLayoutFlagsOverrides(t *testing.T) {
	f, cmd := parseLayoutFlags(t,
		"--engine", "flow",
		"--column-width", "120",
		"--h-adapt", "spacing",
		"--v-expand", "order",
		"--overflow", "autocrop",
		"--spacing", "4",
		"--v-spacing", "10",
		"--margin", "8",
	)
	opts, err := f.options(cmd)
	if err != nil {
		t.Fatalf("options() error: %v", err)
	}

	cfg := opts.Config
	if opts.Engine != "flow" {
		t.Errorf("Engine = %q, want flow", opts.Engine)
	}
	if cfg.ColumnWidth != 120 {
		t.Errorf("ColumnWidth = %v, want 120", cfg.ColumnWidth)
	}
	if cfg.HAdapt != masonry.Spacing || cfg.VExpand != masonry.OrderInsert || cfg.Overflow != masonry.AutoCrop {
		t.Errorf("strategies = %v/%v/%v, want spacing/orderinsert/autocrop", cfg.HAdapt, cfg.VExpand, cfg.Overflow)
	}
	if cfg.HSpacing != 4 || cfg.VSpacing != 10 {
		t.Errorf("spacing = %v/%v, want 4/10", cfg.HSpacing, cfg.VSpacing)
	}
	if cfg.Margins != masonry.Uniform(8) {
		t.Errorf("Margins = %+v, want uniform 8", cfg.Margins)
	}
}

func TestLayoutFlagsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "masonry.toml")
	data := `engine = "flow"
width = 1024

[layout]
column_width = 180
v_expand = "randominsert"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	f, cmd := parseLayoutFlags(t, "--config", path, "--width", "500")
	opts, err := f.options(cmd)
	if err != nil {
		t.Fatalf("options() error: %v", err)
	}

	if opts.Engine != "flow" {
		t.Errorf("Engine = %q, want flow from file", opts.Engine)
	}
	if opts.Width != 500 {
		t.Errorf("Width = %v, want 500 from flag", opts.Width)
	}
	if opts.Config.ColumnWidth != 180 {
		t.Errorf("ColumnWidth = %v, want 180 from file", opts.Config.ColumnWidth)
	}
	if opts.Config.VExpand != masonry.RandomInsert {
		t.Errorf("VExpand = %v, want randominsert from file", opts.Config.VExpand)
	}
	if opts.Config.HAdapt != masonry.Zoom {
		t.Errorf("HAdapt = %v, want default zoom", opts.Config.HAdapt)
	}
}

func TestLayoutFlagsInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"h-adapt", []string{"--h-adapt", "stretch"}},
		{"v-expand", []string{"--v-expand", "sideways"}},
		{"overflow", []string{"--overflow", "wrap"}},
		{"missing config", []string{"--config", "does-not-exist.toml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, cmd := parseLayoutFlags(t, tt.args...)
			if _, err := f.options(cmd); err == nil {
				t.Errorf("options(%v) expected error", tt.args)
			}
		})
	}
}

func TestLoadItems(t *testing.T) {
	f, _ := parseLayoutFlags(t, "--demo", "5")
	items, input, err := f.loadItems(nil)
	if err != nil {
		t.Fatalf("loadItems() error: %v", err)
	}
	if len(items.Items) != 5 {
		t.Errorf("len(Items) = %d, want 5", len(items.Items))
	}
	if input != "demo" {
		t.Errorf("input = %q, want demo", input)
	}

	f, _ = parseLayoutFlags(t)
	if _, _, err := f.loadItems(nil); err == nil {
		t.Error("loadItems() without file or --demo expected error")
	}
	if _, _, err := f.loadItems([]string{filepath.Join(t.TempDir(), "missing.json")}); err == nil {
		t.Error("loadItems() with missing file expected error")
	}
}
