// Package focus provides directional focus traversal over an indexed grid.
package focus

import "github.com/go-drift/gridpanel/pkg/layout"

// TraversalDirection indicates the focus traversal direction.
type TraversalDirection int

const (
	// TraversalDirectionUp moves focus upward.
	TraversalDirectionUp TraversalDirection = iota

	// TraversalDirectionDown moves focus downward.
	TraversalDirectionDown

	// TraversalDirectionLeft moves focus leftward.
	TraversalDirectionLeft

	// TraversalDirectionRight moves focus rightward.
	TraversalDirectionRight

	// TraversalDirectionNext moves focus to the following item.
	TraversalDirectionNext

	// TraversalDirectionPrevious moves focus to the preceding item.
	TraversalDirectionPrevious
)

func (d TraversalDirection) String() string {
	switch d {
	case TraversalDirectionUp:
		return "up"
	case TraversalDirectionDown:
		return "down"
	case TraversalDirectionLeft:
		return "left"
	case TraversalDirectionRight:
		return "right"
	case TraversalDirectionNext:
		return "next"
	case TraversalDirectionPrevious:
		return "previous"
	default:
		return "unknown"
	}
}

// IndexDelta returns how far an index moves for one step in direction when
// items flow row-major through the given number of columns.
// No bounds are applied; the result may point outside the sequence.
func IndexDelta(direction TraversalDirection, columns int) int {
	switch direction {
	case TraversalDirectionUp:
		return -columns
	case TraversalDirectionDown:
		return columns
	case TraversalDirectionLeft, TraversalDirectionPrevious:
		return -1
	case TraversalDirectionRight, TraversalDirectionNext:
		return 1
	}
	return 0
}

// Navigator is the index lookup surface of a virtualizing panel.
type Navigator interface {
	// Navigate resolves a step from a realized container, returning nil when
	// the target is not realized.
	Navigate(from layout.Container, direction TraversalDirection) layout.Container
	// ScrollIntoView returns the realized container for index after asking
	// the host to bring it into view, or nil when it is not realized.
	ScrollIntoView(index int) layout.Container
	// IndexOf returns the index a container represents, or -1.
	IndexOf(container layout.Container) int
	// Columns returns the current column count.
	Columns() int
	// ItemCount returns the number of items in the source.
	ItemCount() int
}

// Manager tracks the focused index of one panel.
//
// Navigation to an index that is not realized yet leaves the target pending.
// The host is expected to bring the target row into view and call
// AfterLayout once the next layout pass has run; the pending target is
// retried there.
type Manager struct {
	nav     Navigator
	focused int
	pending int

	// OnFocusChange is called with the old and new index whenever focus moves.
	OnFocusChange func(from, to int)
}

// NewManager creates a manager with nothing focused.
func NewManager(nav Navigator) *Manager {
	return &Manager{nav: nav, focused: -1, pending: -1}
}

// Focused returns the focused index, or -1.
func (m *Manager) Focused() int {
	return m.focused
}

// Pending returns the index waiting to be realized, if any.
func (m *Manager) Pending() (int, bool) {
	return m.pending, m.pending >= 0
}

// Focus sets the focused index directly. Out-of-range indexes clear focus.
func (m *Manager) Focus(index int) {
	if index < 0 || index >= m.nav.ItemCount() {
		index = -1
	}
	m.pending = -1
	m.setFocused(index)
}

// Move steps focus in direction. It reports whether focus moved immediately;
// false with a pending target means the move completes after a layout.
func (m *Manager) Move(direction TraversalDirection) bool {
	if m.focused < 0 {
		if m.nav.ItemCount() == 0 {
			return false
		}
		m.request(0)
		return m.pending < 0
	}

	if from := m.nav.ScrollIntoView(m.focused); from != nil {
		if to := m.nav.Navigate(from, direction); to != nil {
			m.pending = -1
			m.setFocused(m.nav.IndexOf(to))
			return true
		}
	}

	target := m.focused + IndexDelta(direction, m.nav.Columns())
	if target < 0 || target >= m.nav.ItemCount() {
		return false
	}
	m.request(target)
	return m.pending < 0
}

// AfterLayout retries a pending target. It reports whether focus moved.
func (m *Manager) AfterLayout() bool {
	if m.pending < 0 {
		return false
	}
	if m.pending >= m.nav.ItemCount() {
		m.pending = -1
		return false
	}
	target := m.pending
	m.request(target)
	return m.pending < 0
}

func (m *Manager) request(index int) {
	if m.nav.ScrollIntoView(index) != nil {
		m.pending = -1
		m.setFocused(index)
		return
	}
	m.pending = index
}

func (m *Manager) setFocused(index int) {
	if index == m.focused {
		return
	}
	from := m.focused
	m.focused = index
	if m.OnFocusChange != nil {
		m.OnFocusChange(from, index)
	}
}
