package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/carousel/pkg/carousel"
)

// Animation and canvas tuning for the interactive viewer.
const (
	viewFPS         = 60
	springFrequency = 6.0
	springDamping   = 0.8
	scrollStep      = 30.0
	settleEpsilon   = 0.05

	defaultCols   = 80
	minCanvasRows = 6
	maxCanvasRows = 18
)

var (
	viewCardStyle  = lipgloss.NewStyle().Foreground(colorGray)
	viewFocusStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
)

// viewCommand creates the view command for the interactive terminal preview.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		catalogPath string
		start       int
	)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Scroll the carousel interactively in the terminal",
		Long: `Preview a catalog as a carousel drawn with box characters.

Arrow keys move between items and the scroll animates to each item with a
spring. Every animation frame runs a full layout pass, so the focused card
grows and moves to the front as it crosses the viewport center.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			car, cat, err := c.loadCarousel(cmd.Context(), cfg, catalogPath)
			if err != nil {
				return err
			}
			if car.Len() == 0 {
				printWarning("Catalog %q is empty", cat.Name)
				return nil
			}

			m := newViewModel(car, cfg.Viewport.Rect(), start)
			m.title = cat.Name
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&catalogPath, "catalog", "c", "", "catalog file (TOML)")
	cmd.Flags().IntVar(&start, "index", 0, "item to start on")

	return cmd
}

// =============================================================================
// viewModel - Interactive carousel preview
// =============================================================================

type tickMsg time.Time

// viewModel is the bubbletea model for the carousel preview. The tracker is
// owned by the model and only touched from Update.
type viewModel struct {
	car      *carousel.Carousel
	tracker  *carousel.Tracker
	viewport carousel.Rect
	spring   harmonica.Spring

	offset   float64
	velocity float64
	target   float64
	index    int

	pass      carousel.Pass
	animating bool
	quitting  bool

	title string
	cols  int
}

// newViewModel creates a model resting on item start.
func newViewModel(car *carousel.Carousel, viewport carousel.Rect, start int) viewModel {
	m := viewModel{
		car:      car,
		tracker:  carousel.NewTracker(car),
		viewport: viewport,
		spring:   harmonica.NewSpring(harmonica.FPS(viewFPS), springFrequency, springDamping),
		cols:     defaultCols,
	}
	m.index = clampIndex(start, car.Len())
	m.target = m.snapTarget(m.index)
	m.offset = m.target
	m.layout()
	return m
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "left", "h":
			m.focus(m.index - 1)
		case "right", "l":
			m.focus(m.index + 1)
		case "home", "g":
			m.focus(0)
		case "end", "G":
			m.focus(m.car.Len() - 1)
		case "[":
			m.scrollBy(-scrollStep)
		case "]":
			m.scrollBy(scrollStep)
		case "s", "enter":
			m.focus(m.car.NearestIndex(m.offset))
		default:
			return m, nil
		}
		cmd := m.animate()
		return m, cmd

	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.cols = msg.Width
		}

	case tickMsg:
		m.step()
		if !m.animating {
			return m, nil
		}
		return m, tick()
	}
	return m, nil
}

func (m viewModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("carousel " + m.title))
	b.WriteString("\n\n")
	b.WriteString(drawStrip(m.pass, m.cols, m.canvasRows()).render())
	b.WriteString("\n\n")

	focused := -1
	stack := 0.0
	if fc, ok := m.pass.Focused(); ok {
		focused = fc.Item.Index
		stack = m.tracker.StackOrder(focused)
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf("offset %s · focus #%d · stack %s · pass %d",
		formatNumber(m.offset), focused, formatNumber(stack), m.tracker.Generation())))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ move  [/] scroll  s snap  q quit"))
	return b.String()
}

// focus animates to item i, clamped to the catalog.
func (m *viewModel) focus(i int) {
	m.index = clampIndex(i, m.car.Len())
	m.target = m.snapTarget(m.index)
}

// scrollBy moves the target freely without snapping.
func (m *viewModel) scrollBy(d float64) {
	m.target = math.Min(math.Max(m.target+d, 0), m.car.MaxOffset(m.viewport.W))
	m.index = m.car.NearestIndex(m.target)
}

func (m viewModel) snapTarget(i int) float64 {
	return math.Min(math.Max(m.car.SnapTarget(i), 0), m.car.MaxOffset(m.viewport.W))
}

// animate starts the tick loop unless it is already running.
func (m *viewModel) animate() tea.Cmd {
	if m.animating {
		return nil
	}
	m.animating = true
	return tick()
}

// step advances the spring by one frame and lays out the new offset.
func (m *viewModel) step() {
	m.offset, m.velocity = m.spring.Update(m.offset, m.velocity, m.target)
	if math.Abs(m.offset-m.target) < settleEpsilon && math.Abs(m.velocity) < settleEpsilon {
		m.offset = m.target
		m.velocity = 0
		m.animating = false
	}
	m.layout()
}

// layout runs one pass at the current offset and commits it to the tracker.
func (m *viewModel) layout() {
	gen := m.tracker.Begin()
	m.pass = m.car.Layout(m.offset, m.viewport)
	m.tracker.Commit(gen, m.pass)
}

// canvasRows keeps the viewport's aspect ratio for terminal cells, which are
// about twice as tall as they are wide.
func (m viewModel) canvasRows() int {
	if !(m.viewport.W > 0) {
		return minCanvasRows
	}
	rows := int(math.Round(m.viewport.H * float64(m.cols) / m.viewport.W / 2))
	return min(max(rows, minCanvasRows), maxCanvasRows)
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/viewFPS, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func clampIndex(i, n int) int {
	return min(max(i, 0), max(n-1, 0))
}

// =============================================================================
// Canvas
// =============================================================================

// canvas is a grid of runes with the item that painted each cell, or -1.
type canvas struct {
	cols, rows int
	cells      []rune
	owner      []int
	focused    int
}

func newCanvas(cols, rows int) *canvas {
	c := &canvas{
		cols:    cols,
		rows:    rows,
		cells:   make([]rune, cols*rows),
		owner:   make([]int, cols*rows),
		focused: -1,
	}
	for i := range c.cells {
		c.cells[i] = ' '
		c.owner[i] = -1
	}
	return c
}

// drawStrip paints the cards of p back to front, so the frontmost card
// covers its neighbors.
func drawStrip(p carousel.Pass, cols, rows int) *canvas {
	c := newCanvas(cols, rows)
	if !(p.Viewport.W > 0) || !(p.Viewport.H > 0) {
		return c
	}
	if fc, ok := p.Focused(); ok {
		c.focused = fc.Item.Index
	}

	sx := float64(cols) / p.Viewport.W
	sy := float64(rows) / p.Viewport.H
	for _, card := range p.DrawOrder() {
		r := card.Rect
		x0 := int(math.Round((r.X - p.Viewport.X) * sx))
		x1 := int(math.Round((r.MaxX()-p.Viewport.X)*sx)) - 1
		y0 := int(math.Round((r.Y - p.Viewport.Y) * sy))
		y1 := int(math.Round((r.Y+r.H-p.Viewport.Y)*sy)) - 1
		c.box(x0, y0, x1, y1, card.Item.Index)
	}
	return c
}

// box draws a bordered, blank-filled rectangle labeled with its item index.
func (c *canvas) box(x0, y0, x1, y1, owner int) {
	if x1 <= x0 || y1 <= y0 {
		return
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			ch := ' '
			switch {
			case y == y0 && x == x0:
				ch = '╭'
			case y == y0 && x == x1:
				ch = '╮'
			case y == y1 && x == x0:
				ch = '╰'
			case y == y1 && x == x1:
				ch = '╯'
			case y == y0 || y == y1:
				ch = '─'
			case x == x0 || x == x1:
				ch = '│'
			}
			c.set(x, y, ch, owner)
		}
	}

	label := strconv.Itoa(owner)
	lx := (x0+x1)/2 - len(label)/2
	ly := (y0 + y1) / 2
	for i, ch := range label {
		if x := lx + i; x > x0 && x < x1 {
			c.set(x, ly, ch, owner)
		}
	}
}

func (c *canvas) set(x, y int, ch rune, owner int) {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return
	}
	c.cells[y*c.cols+x] = ch
	c.owner[y*c.cols+x] = owner
}

// ownerAt returns the item that painted cell (x, y), or -1.
func (c *canvas) ownerAt(x, y int) int {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return -1
	}
	return c.owner[y*c.cols+x]
}

// render styles runs of cells by owner: the focused card stands out and the
// rest are muted.
func (c *canvas) render() string {
	var b strings.Builder
	for y := 0; y < c.rows; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		row := c.cells[y*c.cols : (y+1)*c.cols]
		owners := c.owner[y*c.cols : (y+1)*c.cols]
		for x := 0; x < c.cols; {
			end := x + 1
			for end < c.cols && owners[end] == owners[x] {
				end++
			}
			run := string(row[x:end])
			switch owners[x] {
			case -1:
				b.WriteString(run)
			case c.focused:
				b.WriteString(viewFocusStyle.Render(run))
			default:
				b.WriteString(viewCardStyle.Render(run))
			}
			x = end
		}
	}
	return b.String()
}
