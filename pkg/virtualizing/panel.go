// Package virtualizing implements a recycling grid panel for very large lists.
//
// A [Panel] lays items out row-major in equal-width columns and only
// realizes containers for the rows that cover the current viewport.
// Containers whose index stays inside the window survive from one layout
// pass to the next; the rest are detached and left to their owner.
//
// The panel is driven synchronously from a single UI goroutine:
//
//	panel := virtualizing.New(items.Range(1_000_000), factory,
//	    virtualizing.WithItemSize(100),
//	    virtualizing.WithSpacing(4),
//	)
//	panel.SetViewport(graphics.RectFromLTWH(0, scrollY, 800, 600))
//	size := panel.Measure(graphics.Unbounded(800))
//	panel.Arrange(size)
//
// Rows are assumed to share one height. The height is learned from the first
// containers measured and only ever grows afterwards.
package virtualizing

import (
	"log/slog"

	"github.com/go-drift/gridpanel/pkg/graphics"
	"github.com/go-drift/gridpanel/pkg/items"
	"github.com/go-drift/gridpanel/pkg/layout"
)

const (
	// DefaultItemSize is the nominal item size used when none is configured.
	DefaultItemSize = 100.0
	// fallbackItemSize replaces a non-positive item size in column math.
	fallbackItemSize = 120.0
)

// Factory creates and binds containers for items. It is supplied by the
// panel's owner; the panel never disposes containers itself beyond
// detaching them.
type Factory interface {
	// CreateContainer returns a new container for item. recycleKey is the
	// index the panel will tag the container with.
	CreateContainer(item any, index, recycleKey int) layout.Container
	// PrepareContainer binds item data to a freshly created container.
	PrepareContainer(container layout.Container, item any, index int)
	// ContainerPrepared is called once the container is attached.
	ContainerPrepared(container layout.Container, item any, index int)
}

// FactoryFunc adapts a plain constructor to the Factory interface. The
// prepare hooks are no-ops.
type FactoryFunc func(item any, index int) layout.Container

// CreateContainer calls f.
func (f FactoryFunc) CreateContainer(item any, index, _ int) layout.Container {
	return f(item, index)
}

// PrepareContainer does nothing.
func (f FactoryFunc) PrepareContainer(layout.Container, any, int) {}

// ContainerPrepared does nothing.
func (f FactoryFunc) ContainerPrepared(layout.Container, any, int) {}

// Host is the owner of the panel's child set.
type Host interface {
	// ChildAttached is called after a container joins the child set.
	ChildAttached(container layout.Container)
	// ChildDetached is called after a container leaves the child set.
	ChildDetached(container layout.Container)
	// BringIntoView asks the scrollable owner to make bounds visible.
	BringIntoView(container layout.Container, bounds graphics.Rect)
}

type noopHost struct{}

func (noopHost) ChildAttached(layout.Container)                 {}
func (noopHost) ChildDetached(layout.Container)                 {}
func (noopHost) BringIntoView(layout.Container, graphics.Rect) {}

// Option configures a Panel.
type Option func(*Panel)

// WithItemSize sets the nominal item size used to derive the column count.
func WithItemSize(size float64) Option {
	return func(p *Panel) { p.itemSize = size }
}

// WithSpacing sets the gap between columns and between rows.
func WithSpacing(spacing float64) Option {
	return func(p *Panel) { p.spacing = spacing }
}

// WithHost sets the owner notified about child changes and scroll requests.
func WithHost(host Host) Option {
	return func(p *Panel) {
		if host != nil {
			p.host = host
		}
	}
}

// WithPipelineOwner schedules invalidations on owner instead of only
// flagging the panel.
func WithPipelineOwner(owner *layout.PipelineOwner) Option {
	return func(p *Panel) { p.owner = owner }
}

// WithLogger sets the logger for layout diagnostics. Records are written
// at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Panel) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Panel is a virtualizing grid panel.
type Panel struct {
	source  items.Source
	factory Factory
	host    Host
	owner   *layout.PipelineOwner
	logger  *slog.Logger

	itemSize float64
	spacing  float64
	viewport graphics.Rect

	// children is the attached set in attach order. keys and byKey are the
	// recycle-key side table in both directions.
	children []layout.Container
	keys     map[layout.Container]int
	byKey    map[int]layout.Container

	// Last served reconciliation request.
	served      bool
	reset       bool
	reqStart    int
	reqEnd      int
	winStart    int
	winEnd      int
	reconciling bool

	// Layout state from the last measure pass.
	rowHeight    float64
	start        int
	end          int
	columns      int
	columnWidth  float64
	needsMeasure bool

	removeListener func()
	stats          Stats
}

// New creates a panel over source using factory to realize containers.
// If source implements items.Observable, the panel subscribes to it and
// invalidates all containers on every change; call Close to unsubscribe.
func New(source items.Source, factory Factory, opts ...Option) *Panel {
	p := &Panel{
		factory:  factory,
		host:     noopHost{},
		logger:   slog.New(slog.DiscardHandler),
		itemSize: DefaultItemSize,
		keys:     make(map[layout.Container]int),
		byKey:    make(map[int]layout.Container),
		end:      -1,
		winEnd:   -1,
		columns:  1,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.SetSource(source)
	return p
}

// Source returns the item source.
func (p *Panel) Source() items.Source {
	return p.source
}

// SetSource replaces the item source and invalidates every container.
func (p *Panel) SetSource(source items.Source) {
	if p.removeListener != nil {
		p.removeListener()
		p.removeListener = nil
	}
	if source == nil {
		source = items.Range(0)
	}
	p.source = source
	if observable, ok := source.(items.Observable); ok {
		p.removeListener = observable.AddListener(p.ItemsChanged)
	}
	p.InvalidateAll()
}

// ItemCount returns the number of items in the source.
func (p *Panel) ItemCount() int {
	return p.source.Len()
}

// ItemsChanged handles a change notification from the item source. Every
// change is treated as a structural reset.
func (p *Panel) ItemsChanged(change items.Change) {
	p.logger.Debug("items changed", slog.String("kind", change.Kind.String()),
		slog.Int("index", change.Index), slog.Int("count", change.Count))
	p.InvalidateAll()
}

// ItemSize returns the nominal item size.
func (p *Panel) ItemSize() float64 {
	return p.itemSize
}

// SetItemSize changes the nominal item size and schedules a layout.
func (p *Panel) SetItemSize(size float64) {
	if p.itemSize == size {
		return
	}
	p.itemSize = size
	p.InvalidateRange()
}

// Spacing returns the gap between columns and rows.
func (p *Panel) Spacing() float64 {
	return p.spacing
}

// SetSpacing changes the gap and schedules a layout.
func (p *Panel) SetSpacing(spacing float64) {
	if p.spacing == spacing {
		return
	}
	p.spacing = spacing
	p.InvalidateRange()
}

// Children returns the attached containers in attach order.
func (p *Panel) Children() []layout.Container {
	out := make([]layout.Container, len(p.children))
	copy(out, p.children)
	return out
}

// Stats returns the panel's counters.
func (p *Panel) Stats() Stats {
	return p.stats
}

// Close unsubscribes from the item source and detaches every container.
func (p *Panel) Close() {
	if p.removeListener != nil {
		p.removeListener()
		p.removeListener = nil
	}
	for _, c := range p.children {
		p.forget(c)
		p.host.ChildDetached(c)
	}
	p.children = nil
	p.served = false
}
