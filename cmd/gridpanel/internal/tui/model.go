// Package tui hosts a virtualizing grid panel in a terminal.
//
// The model owns the scroll position and plays the role of the panel's
// scrollable parent: it reports the viewport, flushes layout after every
// event, and scrolls when the panel asks for a container to be brought into
// view. Geometry is in terminal cells.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/gridpanel/cmd/gridpanel/internal/telemetry"
	"github.com/go-drift/gridpanel/pkg/focus"
	"github.com/go-drift/gridpanel/pkg/graphics"
	"github.com/go-drift/gridpanel/pkg/items"
	"github.com/go-drift/gridpanel/pkg/layout"
	"github.com/go-drift/gridpanel/pkg/text"
	"github.com/go-drift/gridpanel/pkg/virtualizing"
)

// Options configures a Model.
type Options struct {
	Source   items.Source
	Label    string
	ItemSize float64
	Spacing  float64
	Logger   *slog.Logger
	Tracer   *telemetry.Tracer
}

// Model is the bubbletea model for the grid.
type Model struct {
	ctx    context.Context
	panel  *virtualizing.Panel
	owner  *layout.PipelineOwner
	focus  *focus.Manager
	tracer *telemetry.Tracer
	logger *slog.Logger

	keys KeyMap
	help help.Model

	width    int
	height   int
	scrollY  float64
	quitting bool
}

var _ tea.Model = (*Model)(nil)

// New creates a model. The panel is laid out once the first window size
// message arrives.
func New(ctx context.Context, opts Options) *Model {
	if opts.Label == "" {
		opts.Label = "Item %d"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m := &Model{
		ctx:    ctx,
		owner:  &layout.PipelineOwner{},
		tracer: opts.Tracer,
		logger: logger,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	m.help.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHighlight)).Bold(true)
	m.help.Styles.ShortDesc = Styles.Status
	m.help.Styles.ShortSeparator = Styles.Status

	m.panel = virtualizing.New(opts.Source, cellFactory{format: opts.Label},
		virtualizing.WithItemSize(opts.ItemSize),
		virtualizing.WithSpacing(opts.Spacing),
		virtualizing.WithHost(scroller{m}),
		virtualizing.WithPipelineOwner(m.owner),
		virtualizing.WithLogger(logger),
	)
	m.focus = focus.NewManager(m.panel)
	m.focus.OnFocusChange = func(from, to int) {
		m.logger.Debug("focus changed", slog.Int("from", from), slog.Int("to", to))
	}
	m.focus.Focus(0)
	return m
}

// Panel returns the hosted panel.
func (m *Model) Panel() *virtualizing.Panel {
	return m.panel
}

// Focused returns the focused item index, or -1.
func (m *Model) Focused() int {
	return m.focus.Focused()
}

// ScrollY returns the scroll offset in rows of cells.
func (m *Model) ScrollY() float64 {
	return m.scrollY
}

// Close releases the panel's containers.
func (m *Model) Close() {
	m.panel.Close()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.panel.SetViewport(m.viewport())
		m.panel.InvalidateRange()
		m.layout()
		// The extent may have shrunk with a wider window.
		m.scrollTo(m.scrollY)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.panel.SetViewport(m.viewport())
		case key.Matches(msg, m.keys.Up):
			m.move(focus.TraversalDirectionUp)
		case key.Matches(msg, m.keys.Down):
			m.move(focus.TraversalDirectionDown)
		case key.Matches(msg, m.keys.Left):
			m.move(focus.TraversalDirectionLeft)
		case key.Matches(msg, m.keys.Right):
			m.move(focus.TraversalDirectionRight)
		case key.Matches(msg, m.keys.PageUp):
			m.jump(m.focus.Focused() - m.pageItems())
		case key.Matches(msg, m.keys.PageDown):
			m.jump(m.focus.Focused() + m.pageItems())
		case key.Matches(msg, m.keys.Home):
			m.jump(0)
		case key.Matches(msg, m.keys.End):
			m.jump(m.panel.ItemCount() - 1)
		}
	}

	m.layout()
	return m, nil
}

// move steps focus, scrolling a target outside the realized rows into view
// and retrying once the next layout has realized it.
func (m *Model) move(direction focus.TraversalDirection) {
	if m.focus.Move(direction) {
		return
	}
	pending, ok := m.focus.Pending()
	if !ok {
		return
	}
	if bounds, ok := m.panel.BoundsForIndex(pending); ok {
		m.reveal(bounds)
		m.layout()
		m.focus.AfterLayout()
	}
}

// jump focuses index, clamped to the source, and scrolls it into view.
func (m *Model) jump(index int) {
	count := m.panel.ItemCount()
	if count == 0 {
		return
	}
	index = max(0, min(index, count-1))
	if bounds, ok := m.panel.BoundsForIndex(index); ok {
		m.reveal(bounds)
		m.layout()
	}
	m.focus.Focus(index)
}

// pageItems returns the number of items in one screenful of rows.
func (m *Model) pageItems() int {
	stride := m.panel.RowHeight() + m.panel.Spacing()
	rows := 1
	if stride > 0 {
		rows = max(1, int(float64(m.gridHeight())/stride))
	}
	return rows * m.panel.Columns()
}

// reveal scrolls by the least amount that makes bounds visible.
func (m *Model) reveal(bounds graphics.Rect) {
	view := float64(m.gridHeight())
	switch {
	case bounds.Top < m.scrollY:
		m.scrollTo(bounds.Top)
	case bounds.Bottom > m.scrollY+view:
		m.scrollTo(bounds.Bottom - view)
	}
}

// scrollTo moves the viewport top to y, snapped up to a whole row. With a
// row-aligned top the rows the panel realizes cover the whole viewport, so
// a revealed target is realized by the next layout.
func (m *Model) scrollTo(y float64) {
	limit := math.Max(0, m.panel.ExtentHeight()-float64(m.gridHeight()))
	if stride := m.panel.RowHeight() + m.panel.Spacing(); stride > 0 {
		y = snapUp(y, stride)
		limit = snapUp(limit, stride)
	}
	m.scrollY = math.Max(0, math.Min(y, limit))
	m.panel.SetViewport(m.viewport())
}

func snapUp(v, stride float64) float64 {
	return math.Ceil(v/stride-1e-9) * stride
}

func (m *Model) viewport() graphics.Rect {
	return graphics.RectFromLTWH(0, m.scrollY, float64(m.width), float64(m.gridHeight()))
}

// gridHeight is the number of lines left for cells below the title and
// above the help view.
func (m *Model) gridHeight() int {
	return max(1, m.height-1-lipgloss.Height(m.help.View(m.keys)))
}

// layout flushes pending layout work at the terminal width.
func (m *Model) layout() {
	if m.width <= 0 {
		return
	}
	m.tracer.LayoutPass(m.ctx, m.owner, m.panel, graphics.Unbounded(float64(m.width)))
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting || m.width <= 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.title())
	b.WriteByte('\n')
	b.WriteString(m.grid())
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) title() string {
	count := m.panel.ItemCount()
	status := "empty"
	if start, end, ok := m.panel.Window(); ok {
		status = fmt.Sprintf("realized %d-%d  focus %d", start, end, m.focus.Focused())
	}
	line := Styles.Title.Render("gridpanel") + " " +
		Styles.Status.Render(fmt.Sprintf("%d items  %d cols  %s", count, m.panel.Columns(), status))
	return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
}

type segment struct {
	x       int
	width   int
	text    string
	focused bool
}

// grid renders the realized cells that intersect the viewport, one string
// per terminal line.
func (m *Model) grid() string {
	height := m.gridHeight()
	if m.panel.ItemCount() == 0 {
		return Styles.Empty.Render("no items") + strings.Repeat("\n", height)
	}

	lines := make([][]segment, height)
	focused := m.focus.Focused()
	screen := graphics.RectFromLTWH(0, 0, float64(m.width), float64(height))
	for _, c := range m.panel.RealizedContainers() {
		cell, ok := c.(*Cell)
		if !ok {
			continue
		}
		bounds := c.Bounds().Translate(0, -m.scrollY)
		width := int(bounds.Width())
		if width <= 0 || !bounds.Overlaps(screen) {
			continue
		}
		x := int(math.Round(bounds.Left))
		top := int(math.Round(bounds.Top))
		visible := bounds.Intersect(screen)
		wrapped := cell.Lines()
		for y := int(math.Round(visible.Top)); y < int(math.Round(visible.Bottom)) && y < height; y++ {
			line := ""
			if i := y - top; i >= 0 && i < len(wrapped) {
				line = wrapped[i].Text
			}
			lines[y] = append(lines[y], segment{
				x:       x,
				width:   width,
				text:    text.PadRight(line, width),
				focused: cell.Index == focused,
			})
		}
	}

	var b strings.Builder
	for _, segments := range lines {
		slices.SortFunc(segments, func(l, r segment) int { return l.x - r.x })
		cursor := 0
		for _, s := range segments {
			if s.x < cursor || s.x+s.width > m.width {
				continue
			}
			b.WriteString(strings.Repeat(" ", s.x-cursor))
			style := Styles.Cell
			if s.focused {
				style = Styles.Focused
			}
			b.WriteString(style.Render(s.text))
			cursor = s.x + s.width
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// scroller is the panel's host. It turns BringIntoView requests into scroll
// offset changes on the model.
type scroller struct {
	m *Model
}

func (s scroller) ChildAttached(layout.Container) {}

func (s scroller) ChildDetached(layout.Container) {}

func (s scroller) BringIntoView(_ layout.Container, bounds graphics.Rect) {
	s.m.reveal(bounds)
}
