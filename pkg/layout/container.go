package layout

import "github.com/go-drift/gridpanel/pkg/graphics"

// Container is a realized visual that takes part in a two-pass layout.
//
// Measure is called with the space offered by the parent; the container
// records the size it would like in DesiredSize. Arrange assigns the final
// bounds in the parent's coordinate space.
//
// Containers are used as map keys by their owners, so implementations must
// be comparable (pointer receivers are the normal choice).
type Container interface {
	Measure(available graphics.Size)
	DesiredSize() graphics.Size
	Arrange(bounds graphics.Rect)
	Bounds() graphics.Rect
}

// Layouter is implemented by anything the PipelineOwner can lay out:
// a measure pass that reports the desired size followed by an arrange pass
// with the final size.
type Layouter interface {
	Measure(available graphics.Size) graphics.Size
	Arrange(final graphics.Size) graphics.Size
}

// ContainerBase provides the bookkeeping half of Container.
//
// Embed it and implement Measure, calling SetDesiredSize with the result:
//
//	type label struct {
//	    layout.ContainerBase
//	    text string
//	}
//
//	func (l *label) Measure(available graphics.Size) {
//	    l.SetDesiredSize(available, graphics.Size{Width: available.Width, Height: 20})
//	}
type ContainerBase struct {
	desired       graphics.Size
	bounds        graphics.Rect
	lastAvailable graphics.Size
	measureCount  int
	arrangeCount  int
}

// DesiredSize returns the size recorded by the last measure pass.
func (c *ContainerBase) DesiredSize() graphics.Size {
	return c.desired
}

// SetDesiredSize records the measured size and the constraint it was measured under.
func (c *ContainerBase) SetDesiredSize(available, desired graphics.Size) {
	c.lastAvailable = available
	c.desired = desired
	c.measureCount++
}

// LastAvailable returns the size offered by the last measure pass.
func (c *ContainerBase) LastAvailable() graphics.Size {
	return c.lastAvailable
}

// Arrange stores the final bounds.
func (c *ContainerBase) Arrange(bounds graphics.Rect) {
	c.bounds = bounds
	c.arrangeCount++
}

// Bounds returns the bounds assigned by the last arrange pass.
func (c *ContainerBase) Bounds() graphics.Rect {
	return c.bounds
}

// MeasureCount returns how many times the container has been measured.
func (c *ContainerBase) MeasureCount() int {
	return c.measureCount
}

// ArrangeCount returns how many times the container has been arranged.
func (c *ContainerBase) ArrangeCount() int {
	return c.arrangeCount
}
