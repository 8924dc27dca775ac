package board

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	merr "github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/masonry"
)

// Document encodings.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// FormatFromPath picks the document encoding from a file extension.
// Anything that is not .toml is treated as JSON.
func FormatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// =============================================================================
// ItemSet - Engine Input
// =============================================================================

// ItemSet is the input document: natural item sizes in insertion order.
type ItemSet struct {
	Items []ItemSpec `json:"items" toml:"items"`
}

// ItemSpec describes one item by its natural size.
type ItemSpec struct {
	ID     string  `json:"id,omitempty" toml:"id,omitempty"`
	Label  string  `json:"label,omitempty" toml:"label,omitempty"`
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (s ItemSpec) DisplayLabel() string {
	if s.Label != "" {
		return s.Label
	}
	return s.ID
}

// Normalize assigns a UUID to items without an ID and validates every item.
// Duplicate IDs are rejected since renderers and caches key on them.
func (s *ItemSet) Normalize() error {
	seen := make(map[string]int, len(s.Items))
	for i := range s.Items {
		it := &s.Items[i]
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		if err := merr.ValidateItemID(it.ID); err != nil {
			return merr.Wrap(merr.ErrCodeInvalidItem, err, "item %d", i)
		}
		if err := merr.ValidateSize(it.Width, it.Height); err != nil {
			return merr.Wrap(merr.ErrCodeInvalidItem, err, "item %s", it.ID)
		}
		if j, dup := seen[it.ID]; dup {
			return merr.New(merr.ErrCodeInvalidItem, "duplicate item id %q (items %d and %d)", it.ID, j, i)
		}
		seen[it.ID] = i
	}
	return nil
}

// Boxes converts the set into engine items, preserving order.
func (s ItemSet) Boxes() []*masonry.Box {
	out := make([]*masonry.Box, len(s.Items))
	for i, it := range s.Items {
		b := masonry.NewBox(it.ID, it.Width, it.Height)
		b.Label = it.DisplayLabel()
		out[i] = b
	}
	return out
}

// =============================================================================
// ItemSet Serialization API
// =============================================================================

// ReadItems decodes an item set in the given format and normalizes it.
func ReadItems(r io.Reader, format string) (ItemSet, error) {
	var s ItemSet
	switch format {
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(&s); err != nil {
			return ItemSet{}, merr.Wrap(merr.ErrCodeInvalidInput, err, "decode items")
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&s); err != nil {
			return ItemSet{}, merr.Wrap(merr.ErrCodeInvalidInput, err, "decode items")
		}
	default:
		return ItemSet{}, merr.New(merr.ErrCodeInvalidFormat, "unsupported item format: %s", format)
	}
	if err := s.Normalize(); err != nil {
		return ItemSet{}, err
	}
	return s, nil
}

// ReadItemsFile reads an item set from path, choosing the format by extension.
func ReadItemsFile(path string) (ItemSet, error) {
	if err := merr.ValidatePath(path); err != nil {
		return ItemSet{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ItemSet{}, merr.Wrap(merr.ErrCodeFileNotFound, err, "open %s", path)
		}
		return ItemSet{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadItems(f, FormatFromPath(path))
}

// MarshalItems encodes an item set in the given format.
func MarshalItems(s ItemSet, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteItems(s, &buf, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteItems encodes an item set to w.
func WriteItems(s ItemSet, w io.Writer, format string) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(s); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	default:
		return merr.New(merr.ErrCodeInvalidFormat, "unsupported item format: %s", format)
	}
	return nil
}

// WriteItemsFile writes an item set to path, choosing the format by extension.
func WriteItemsFile(s ItemSet, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteItems(s, f, FormatFromPath(path))
}
