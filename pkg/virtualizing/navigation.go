package virtualizing

import (
	"github.com/go-drift/gridpanel/pkg/focus"
	"github.com/go-drift/gridpanel/pkg/layout"
)

// ContainerAt returns the realized container for index, or nil.
func (p *Panel) ContainerAt(index int) layout.Container {
	return p.byKey[index]
}

// IndexOf returns the index a realized container represents, or -1.
func (p *Panel) IndexOf(container layout.Container) int {
	if key, ok := p.keys[container]; ok {
		return key
	}
	return -1
}

// RealizedContainers returns the realized containers sorted by index.
// It does not trigger a reconciliation.
func (p *Panel) RealizedContainers() []layout.Container {
	return p.sorted()
}

// ScrollIntoView asks the host to bring the container for index into view
// and returns it. It returns nil without contacting the host when the index
// is not realized.
func (p *Panel) ScrollIntoView(index int) layout.Container {
	c := p.ContainerAt(index)
	if c == nil {
		return nil
	}
	p.host.BringIntoView(c, c.Bounds())
	return c
}

// Navigate resolves one directional step from a realized container.
//
// Up and down move by the current column count, left/previous and
// right/next move by one. The target is not clamped; an index outside the
// window or the source simply yields nil, and the caller may retry after a
// later layout realizes it.
func (p *Panel) Navigate(from layout.Container, direction focus.TraversalDirection) layout.Container {
	if from == nil {
		return nil
	}
	index, ok := p.keys[from]
	if !ok {
		return nil
	}
	p.stats.Navigations++
	return p.ScrollIntoView(index + focus.IndexDelta(direction, p.columns))
}

var (
	_ focus.Navigator = (*Panel)(nil)
	_ layout.Layouter = (*Panel)(nil)
)
