package testing

import (
	"slices"
	"testing"

	"github.com/go-drift/gridpanel/pkg/errors"
	"github.com/go-drift/gridpanel/pkg/graphics"
	"github.com/go-drift/gridpanel/pkg/items"
	"github.com/go-drift/gridpanel/pkg/layout"
	"github.com/go-drift/gridpanel/pkg/virtualizing"
)

const (
	// DefaultTestWidth is the default viewport width.
	DefaultTestWidth = 800
	// DefaultTestHeight is the default viewport height.
	DefaultTestHeight = 600
)

// PanelTester drives a panel the way a scrollable host would: it owns the
// viewport, schedules layout through a PipelineOwner and records factory
// and host traffic.
type PanelTester struct {
	Panel   *virtualizing.Panel
	Factory *RecordingFactory
	Host    *RecordingHost
	Owner   *layout.PipelineOwner

	width   float64
	height  float64
	scrollY float64
	extent  graphics.Size
}

// NewPanelTester creates a tester over source with a default-sized viewport.
// Call Cleanup() when done, or use NewPanelTesterWithT() instead.
func NewPanelTester(source items.Source, opts ...virtualizing.Option) *PanelTester {
	t := &PanelTester{
		Factory: &RecordingFactory{},
		Host:    &RecordingHost{},
		Owner:   &layout.PipelineOwner{},
		width:   DefaultTestWidth,
		height:  DefaultTestHeight,
	}
	opts = append([]virtualizing.Option{
		virtualizing.WithHost(t.Host),
		virtualizing.WithPipelineOwner(t.Owner),
	}, opts...)
	t.Panel = virtualizing.New(source, t.Factory, opts...)
	t.applyViewport()
	return t
}

// NewPanelTesterWithT creates a tester that cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewPanelTesterWithT(tb testing.TB, source items.Source, opts ...virtualizing.Option) *PanelTester {
	tester := NewPanelTester(source, opts...)
	tb.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup closes the panel.
func (t *PanelTester) Cleanup() {
	t.Panel.Close()
}

// SetSize changes the viewport size.
func (t *PanelTester) SetSize(width, height float64) {
	t.width, t.height = width, height
	t.applyViewport()
	// A width change needs a new column layout even if the range is equal.
	t.Panel.InvalidateRange()
}

// ScrollTo moves the viewport top to y.
func (t *PanelTester) ScrollTo(y float64) {
	t.scrollY = y
	t.applyViewport()
}

// ScrollY returns the viewport top.
func (t *PanelTester) ScrollY() float64 {
	return t.scrollY
}

// Viewport returns the current viewport rectangle.
func (t *PanelTester) Viewport() graphics.Rect {
	return graphics.RectFromLTWH(0, t.scrollY, t.width, t.height)
}

func (t *PanelTester) applyViewport() {
	t.Panel.SetViewport(t.Viewport())
}

// Pump runs one layout cycle if any is scheduled and returns the number of
// passes run. The panel is measured with the viewport width and unbounded
// height, then arranged at its measured height.
func (t *PanelTester) Pump() int {
	n := t.Owner.FlushLayout(graphics.Unbounded(t.width))
	if n > 0 {
		t.extent = graphics.Size{Width: t.width, Height: t.Panel.ExtentHeight()}
	}
	return n
}

// ForcePump schedules a layout and runs it.
func (t *PanelTester) ForcePump() int {
	t.Owner.ScheduleLayout(t.Panel)
	return t.Pump()
}

// Extent returns the content size reported by the last pump.
func (t *PanelTester) Extent() graphics.Size {
	return t.extent
}

// Keys returns the indexes of the realized containers in ascending order.
func (t *PanelTester) Keys() []int {
	realized := t.Panel.RealizedContainers()
	keys := make([]int, 0, len(realized))
	for _, c := range realized {
		keys = append(keys, t.Panel.IndexOf(c))
	}
	return keys
}

// Container returns the realized fake container for index, or nil.
func (t *PanelTester) Container(index int) *FakeContainer {
	c, _ := t.Panel.ContainerAt(index).(*FakeContainer)
	return c
}

// Row returns the realized indexes arranged at the given top offset.
func (t *PanelTester) Row(top float64) []int {
	var row []int
	for _, c := range t.Panel.RealizedContainers() {
		if graphics.NearlyEqual(c.Bounds().Top, top) {
			row = append(row, t.Panel.IndexOf(c))
		}
	}
	slices.Sort(row)
	return row
}

// CaptureErrors installs an ErrorRecorder as the global error handler for
// the duration of the test.
func CaptureErrors(tb testing.TB) *ErrorRecorder {
	rec := &ErrorRecorder{}
	prev := errors.DefaultHandler
	errors.SetHandler(rec)
	tb.Cleanup(func() { errors.SetHandler(prev) })
	return rec
}
