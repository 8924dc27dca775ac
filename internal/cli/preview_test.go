package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/masonry/pkg/board"
	"github.com/matzehuels/masonry/pkg/masonry"
	"github.com/matzehuels/masonry/pkg/pipeline"
)

func testPreviewModel(t *testing.T) previewModel {
	t.Helper()
	items := board.ItemSet{Items: []board.ItemSpec{
		{ID: "a", Label: "Alpha", Width: 150, Height: 100},
		{ID: "b", Label: "Beta", Width: 150, Height: 200},
		{ID: "c", Label: "Gamma", Width: 150, Height: 60},
		{ID: "d", Label: "Delta", Width: 150, Height: 140},
	}}
	opts := pipeline.Options{}
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatalf("ValidateForLayout() error: %v", err)
	}
	m, err := newPreviewModel(items, opts)
	if err != nil {
		t.Fatalf("newPreviewModel() error: %v", err)
	}
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCellConfig(t *testing.T) {
	cfg := masonry.DefaultConfig()
	cfg.Margins = masonry.Margins{Left: 20, Top: 40, Right: 20, Bottom: 0}

	got := cellConfig(cfg)
	if got.HSpacing != 2 || got.VSpacing != 1 {
		t.Errorf("spacing = %v/%v, want 2/1", got.HSpacing, got.VSpacing)
	}
	if got.Margins != (masonry.Margins{Left: 2, Top: 2, Right: 2}) {
		t.Errorf("Margins = %+v, want 2/2/2/0", got.Margins)
	}
	if got.ColumnWidth != 20 {
		t.Errorf("ColumnWidth = %v, want 20", got.ColumnWidth)
	}
	if got.HAdapt != cfg.HAdapt || got.ColumnCount != cfg.ColumnCount {
		t.Error("cellConfig() should keep strategies and column count")
	}
}

func TestPreviewResizeRunsPass(t *testing.T) {
	m := testPreviewModel(t)
	if m.View() != "" {
		t.Error("View() before the first resize should be empty")
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 30})
	m = updated.(previewModel)

	if m.err != nil {
		t.Fatalf("pass error: %v", m.err)
	}
	if got := len(m.engine.Placements()); got != 4 {
		t.Errorf("len(Placements()) = %d, want 4", got)
	}
	if g := m.engine.Geometry(); g.W != 60 || g.H != 30-previewChrome {
		t.Errorf("Geometry() = %v, want 60x%d", g, 30-previewChrome)
	}
	for _, p := range m.engine.Placements() {
		if p.Rect.Right() > 60+1e-9 {
			t.Errorf("item %d ends at %v, past the terminal width", p.Index, p.Rect.Right())
		}
	}

	view := m.View()
	if !strings.Contains(view, "Alpha") {
		t.Error("View() should contain item labels")
	}
	if lines := strings.Count(view, "\n"); lines != 30-1 {
		t.Errorf("View() has %d line breaks, want %d", lines, 30-1)
	}

	// A narrower window is a new bounding rectangle and a new pass.
	updated, _ = m.Update(tea.WindowSizeMsg{Width: 30, Height: 30})
	m = updated.(previewModel)
	if g := m.engine.Geometry(); g.W != 30 {
		t.Errorf("Geometry().W = %v after resize, want 30", g.W)
	}
}

func TestPreviewKeys(t *testing.T) {
	m := testPreviewModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(previewModel)

	updated, _ = m.Update(key("e"))
	m = updated.(previewModel)
	if m.kind != masonry.KindFlow || m.engine.Kind() != masonry.KindFlow {
		t.Errorf("kind = %v, want flow after 'e'", m.kind)
	}

	updated, _ = m.Update(key("h"))
	m = updated.(previewModel)
	if m.cfg.HAdapt != masonry.NoAdaption {
		t.Errorf("HAdapt = %v, want noadaption after cycling from zoom", m.cfg.HAdapt)
	}

	updated, _ = m.Update(key("v"))
	m = updated.(previewModel)
	if m.cfg.VExpand != masonry.OrderInsert {
		t.Errorf("VExpand = %v, want orderinsert", m.cfg.VExpand)
	}

	width := m.cfg.ColumnWidth
	updated, _ = m.Update(key("+"))
	m = updated.(previewModel)
	if m.cfg.ColumnWidth != width+1 {
		t.Errorf("ColumnWidth = %v, want %v", m.cfg.ColumnWidth, width+1)
	}

	updated, _ = m.Update(key("e"))
	m = updated.(previewModel)
	for range 10 {
		updated, _ = m.Update(key("-"))
		m = updated.(previewModel)
	}
	if m.cfg.ColumnCount != 1 {
		t.Errorf("ColumnCount = %d, want floor of 1", m.cfg.ColumnCount)
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("'q' should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("'q' should quit")
	}
}

func TestPaintCells(t *testing.T) {
	boxes := []*masonry.Box{masonry.NewBox("a", 4, 2), masonry.NewBox("b", 2, 1)}
	boxes[0].Label = "xyz"
	placements := []masonry.Placement{
		{Index: 0, Column: 0, Rect: masonry.Rect{X: 1, Y: 0, W: 4, H: 2}},
		{Index: 1, Column: 1, Rect: masonry.Rect{X: 5, Y: 2, W: 2, H: 1}},
	}

	cells, labels := paintCells(placements, boxes, 6, 3)

	want := [][]int{
		{-1, 0, 0, 0, 0, -1},
		{-1, 0, 0, 0, 0, -1},
		{-1, -1, -1, -1, -1, 1},
	}
	for y := range want {
		for x := range want[y] {
			if cells[y][x] != want[y][x] {
				t.Errorf("cells[%d][%d] = %d, want %d", y, x, cells[y][x], want[y][x])
			}
		}
	}
	if got := string(labels[0]); got != "  xy  " {
		t.Errorf("labels[0] = %q, want %q", got, "  xy  ")
	}
}

func TestRenderCellRowKeepsText(t *testing.T) {
	row := renderCellRow([]int{-1, 0, 0, -1}, []rune(" ab "), map[int]int{0: 0})
	if !strings.Contains(row, "ab") {
		t.Errorf("renderCellRow() = %q, should contain the label", row)
	}
}
