package testing

import (
	"math"
	"sync"

	"github.com/go-drift/gridpanel/pkg/errors"
	"github.com/go-drift/gridpanel/pkg/graphics"
	"github.com/go-drift/gridpanel/pkg/layout"
)

// DefaultRowHeight is the desired height of containers made by a
// RecordingFactory with no height configured.
const DefaultRowHeight = 50

// FakeContainer is a container with a fixed desired height.
type FakeContainer struct {
	layout.ContainerBase

	// Item and Index are the values the factory created it for.
	Item  any
	Index int
	// Height is reported as the desired height on every measure.
	Height float64
	// Prepared and Completed record the factory's bind and completion hooks.
	Prepared  bool
	Completed bool
	// Serial is a creation counter unique per factory, usable to tell
	// instances with the same index apart.
	Serial int
}

// Measure reports the available width (zero when unbounded) and Height.
func (c *FakeContainer) Measure(available graphics.Size) {
	width := available.Width
	if math.IsInf(width, 0) {
		width = 0
	}
	c.SetDesiredSize(available, graphics.Size{Width: width, Height: c.Height})
}

// RecordingFactory creates FakeContainers and records every call.
type RecordingFactory struct {
	// HeightFunc returns the desired height for index. Nil uses Height.
	HeightFunc func(index int) float64
	// Height is the desired height when HeightFunc is nil; zero means
	// DefaultRowHeight.
	Height float64
	// PanicOn makes CreateContainer panic for the matching indexes.
	PanicOn func(index int) bool
	// OnCreate runs inside CreateContainer after the container is built.
	OnCreate func(c *FakeContainer)

	Created     []*FakeContainer
	Prepares    int
	Completions int
}

// CreateContainer builds a FakeContainer for index.
func (f *RecordingFactory) CreateContainer(item any, index, _ int) layout.Container {
	if f.PanicOn != nil && f.PanicOn(index) {
		panic("recording factory: refusing index")
	}
	c := &FakeContainer{
		Item:   item,
		Index:  index,
		Height: f.heightFor(index),
		Serial: len(f.Created),
	}
	f.Created = append(f.Created, c)
	if f.OnCreate != nil {
		f.OnCreate(c)
	}
	return c
}

// PrepareContainer marks the container as bound.
func (f *RecordingFactory) PrepareContainer(container layout.Container, _ any, _ int) {
	f.Prepares++
	if c, ok := container.(*FakeContainer); ok {
		c.Prepared = true
	}
}

// ContainerPrepared marks the container as complete.
func (f *RecordingFactory) ContainerPrepared(container layout.Container, _ any, _ int) {
	f.Completions++
	if c, ok := container.(*FakeContainer); ok {
		c.Completed = true
	}
}

func (f *RecordingFactory) heightFor(index int) float64 {
	if f.HeightFunc != nil {
		return f.HeightFunc(index)
	}
	if f.Height != 0 {
		return f.Height
	}
	return DefaultRowHeight
}

// RecordingHost records child and scroll notifications from a panel.
type RecordingHost struct {
	Attached []layout.Container
	Detached []layout.Container
	// Scrolled holds the bounds passed to BringIntoView, in call order.
	Scrolled []graphics.Rect
	// OnBringIntoView, when set, runs for every BringIntoView call.
	OnBringIntoView func(container layout.Container, bounds graphics.Rect)
}

// ChildAttached records an attach.
func (h *RecordingHost) ChildAttached(container layout.Container) {
	h.Attached = append(h.Attached, container)
}

// ChildDetached records a detach.
func (h *RecordingHost) ChildDetached(container layout.Container) {
	h.Detached = append(h.Detached, container)
}

// BringIntoView records a scroll request.
func (h *RecordingHost) BringIntoView(container layout.Container, bounds graphics.Rect) {
	h.Scrolled = append(h.Scrolled, bounds)
	if h.OnBringIntoView != nil {
		h.OnBringIntoView(container, bounds)
	}
}

// ErrorRecorder is an errors.ErrorHandler that keeps everything reported.
// Recovered panics show up as errors wrapping an *errors.PanicError.
type ErrorRecorder struct {
	mu   sync.Mutex
	errs []*errors.GridError
}

// HandleError records err.
func (r *ErrorRecorder) HandleError(err *errors.GridError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

// Errors returns the recorded errors.
func (r *ErrorRecorder) Errors() []*errors.GridError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*errors.GridError(nil), r.errs...)
}
