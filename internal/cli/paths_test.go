package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	if !strings.HasPrefix(dir, home) {
		t.Errorf("cacheDir() = %q, should be under home %q", dir, home)
	}

	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := filepath.Join(t.TempDir(), "custom-cache")
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"from input", "", "items.json", "items"},
		{"from toml input", "", "boards/photos.toml", "boards/photos"},
		{"output without extension", "out/board", "items.json", "out/board"},
		{"output with format extension", "out/board.svg", "items.json", "out/board"},
		{"output with other extension", "out/board.v2", "items.json", "out/board.v2"},
		{"demo input", "", "demo", "demo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestTrimLayoutSuffix(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"board.layout.json", "board"},
		{"dir/board.layout.json", "dir/board"},
		{"board.json", "board.json"},
	}
	for _, tt := range tests {
		if got := trimLayoutSuffix(tt.in); got != tt.want {
			t.Errorf("trimLayoutSuffix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
