package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/masonry/pkg/board"
	"github.com/matzehuels/masonry/pkg/masonry"
	"github.com/matzehuels/masonry/pkg/pipeline"
)

// Item sizes are given in pixels; a terminal cell is roughly 10x20.
const (
	pxPerCol = 10.0
	pxPerRow = 20.0

	// previewChrome is the number of lines taken by the status and help rows.
	previewChrome = 2

	previewEmptyCell = -1
)

const previewHelp = "e engine · h h-adapt · v v-expand · o overflow · +/- columns · r reseed · ↑/↓ scroll · q quit"

var previewLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("232"))

// previewCommand creates the interactive terminal preview.
func (c *CLI) previewCommand() *cobra.Command {
	flags := newLayoutFlags()

	cmd := &cobra.Command{
		Use:   "preview [items.json|items.toml]",
		Short: "Preview a layout in the terminal",
		Long: `Preview a layout in the terminal.

The terminal window is the layout region: every resize runs a new pass, the
same way a widget host relayouts when its bounding rectangle changes. Item
sizes are scaled to cells (10 pixels per column, 20 per row). Keys switch
the engine and the three strategies live.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, _, err := flags.loadItems(args)
			if err != nil {
				return err
			}
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			if err := opts.ValidateForLayout(); err != nil {
				return err
			}
			m, err := newPreviewModel(items, opts)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	flags.register(cmd)

	return cmd
}

// =============================================================================
// previewModel - bubbletea model
// =============================================================================

type previewModel struct {
	items  board.ItemSet
	kind   masonry.Kind
	cfg    masonry.Config
	seed   uint64
	engine masonry.Engine
	boxes  []*masonry.Box

	width  int
	height int
	offset int
	err    error
}

// newPreviewModel builds the model from validated pipeline options.
func newPreviewModel(items board.ItemSet, opts pipeline.Options) (previewModel, error) {
	m := previewModel{
		items: items,
		kind:  opts.Kind(),
		cfg:   cellConfig(*opts.Config),
		seed:  opts.Seed,
	}
	if err := m.rebuild(); err != nil {
		return m, err
	}
	return m, nil
}

// cellConfig converts pixel spacing, margins and column width to cells.
func cellConfig(cfg masonry.Config) masonry.Config {
	cells := func(v, per float64) float64 { return math.Round(v / per) }
	cfg.HSpacing = cells(cfg.HSpacing, pxPerCol)
	cfg.VSpacing = cells(cfg.VSpacing, pxPerRow)
	cfg.Margins = masonry.Margins{
		Left:   cells(cfg.Margins.Left, pxPerCol),
		Top:    cells(cfg.Margins.Top, pxPerRow),
		Right:  cells(cfg.Margins.Right, pxPerCol),
		Bottom: cells(cfg.Margins.Bottom, pxPerRow),
	}
	cfg.ColumnWidth = max(1, cells(cfg.ColumnWidth, pxPerCol))
	return cfg
}

// rebuild creates a fresh engine and fresh boxes. Fixed sizes from an
// earlier zoom pass do not carry over into the new configuration.
func (m *previewModel) rebuild() error {
	e, err := masonry.New(m.kind, masonry.WithConfig(m.cfg), masonry.WithSeed(m.seed))
	if err != nil {
		return err
	}
	boxes := make([]*masonry.Box, 0, len(m.items.Items))
	for _, spec := range m.items.Items {
		b := masonry.NewBox(spec.ID,
			max(1, math.Round(spec.Width/pxPerCol)),
			max(1, math.Round(spec.Height/pxPerRow)))
		b.Label = spec.DisplayLabel()
		if err := e.AddItem(b); err != nil {
			return err
		}
		boxes = append(boxes, b)
	}
	m.engine = e
	m.boxes = boxes
	return nil
}

// relayout runs a pass over the current terminal size.
func (m *previewModel) relayout() {
	if m.width <= 0 {
		return
	}
	_, m.err = m.engine.SetGeometry(masonry.Rect{
		W: float64(m.width),
		H: float64(max(0, m.height-previewChrome)),
	})
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.relayout()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.offset = max(0, m.offset-1)
			return m, nil
		case "down", "j":
			m.offset++
			return m, nil
		case "e":
			if m.kind == masonry.KindBox {
				m.kind = masonry.KindFlow
			} else {
				m.kind = masonry.KindBox
			}
		case "h":
			m.cfg.HAdapt = (m.cfg.HAdapt + 1) % (masonry.Zoom + 1)
		case "v":
			m.cfg.VExpand = (m.cfg.VExpand + 1) % (masonry.RandomInsert + 1)
		case "o":
			m.cfg.Overflow = (m.cfg.Overflow + 1) % (masonry.AutoCrop + 1)
		case "+", "=":
			m.step(1)
		case "-":
			m.step(-1)
		case "r":
			m.seed++
		default:
			return m, nil
		}
		if err := m.rebuild(); err != nil {
			m.err = err
			return m, nil
		}
		m.relayout()
	}
	return m, nil
}

// step grows or shrinks the engine parameter: column count for box,
// column width for flow.
func (m *previewModel) step(d int) {
	if m.kind == masonry.KindBox {
		m.cfg.ColumnCount = max(1, m.cfg.ColumnCount+d)
		return
	}
	m.cfg.ColumnWidth = max(1, m.cfg.ColumnWidth+float64(d))
}

func (m previewModel) View() string {
	if m.width == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.statusLine())
	b.WriteString("\n")

	rows := max(0, m.height-previewChrome)
	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error())
		b.WriteString(strings.Repeat("\n", max(1, rows)))
	} else {
		cells, labels := paintCells(m.engine.Placements(), m.boxes, m.width, m.offset+rows)
		columns := make(map[int]int, len(m.boxes))
		for _, p := range m.engine.Placements() {
			columns[p.Index] = p.Column
		}
		for y := m.offset; y < m.offset+rows; y++ {
			b.WriteString(renderCellRow(cells[y], labels[y], columns))
			b.WriteString("\n")
		}
	}

	b.WriteString(StyleDim.Render(truncate(previewHelp, max(1, m.width))))
	return b.String()
}

func (m previewModel) statusLine() string {
	param := fmt.Sprintf("%d columns", m.cfg.ColumnCount)
	if m.kind == masonry.KindFlow {
		param = fmt.Sprintf("width %s", formatFloat(m.cfg.ColumnWidth))
	}
	if m.engine != nil {
		param += fmt.Sprintf(" (%d resolved)", m.engine.Grid().Count)
	}
	line := fmt.Sprintf("%s · %s · %s / %s / %s · %d items",
		m.kind, param, m.cfg.HAdapt, m.cfg.VExpand, m.cfg.Overflow, len(m.boxes))
	return StyleTitle.Render(truncate(line, max(1, m.width)))
}

// paintCells rasterizes placements into a width x height grid of item
// indices. Cells without an item hold -1. The label of each item is written
// into the first row of its rectangle.
func paintCells(placements []masonry.Placement, boxes []*masonry.Box, width, height int) ([][]int, [][]rune) {
	cells := make([][]int, height)
	labels := make([][]rune, height)
	for y := range cells {
		cells[y] = make([]int, width)
		labels[y] = make([]rune, width)
		for x := range cells[y] {
			cells[y][x] = previewEmptyCell
			labels[y][x] = ' '
		}
	}

	for _, p := range placements {
		x0 := int(math.Floor(p.Rect.X))
		y0 := int(math.Floor(p.Rect.Y))
		x1 := x0 + max(1, int(math.Round(p.Rect.W)))
		y1 := y0 + max(1, int(math.Round(p.Rect.H)))
		for y := max(0, y0); y < min(height, y1); y++ {
			for x := max(0, x0); x < min(width, x1); x++ {
				cells[y][x] = p.Index
			}
		}
		if y0 < 0 || y0 >= height || p.Index >= len(boxes) {
			continue
		}
		for i, r := range []rune(boxes[p.Index].Label) {
			x := x0 + 1 + i
			if x >= min(width, x1-1) {
				break
			}
			if x >= 0 {
				labels[y0][x] = r
			}
		}
	}
	return cells, labels
}

// renderCellRow styles runs of cells that belong to the same item.
func renderCellRow(cells []int, labels []rune, columns map[int]int) string {
	var b strings.Builder
	for start := 0; start < len(cells); {
		end := start + 1
		for end < len(cells) && cells[end] == cells[start] {
			end++
		}
		text := string(labels[start:end])
		if owner := cells[start]; owner == previewEmptyCell {
			b.WriteString(text)
		} else {
			b.WriteString(previewLabelStyle.Background(columnColor(columns[owner])).Render(text))
		}
		start = end
	}
	return b.String()
}
