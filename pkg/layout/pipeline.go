package layout

import (
	"math"

	"github.com/go-drift/gridpanel/pkg/errors"
	"github.com/go-drift/gridpanel/pkg/graphics"
)

// PipelineOwner tracks layouters that need a layout pass.
//
// Scheduling is deduplicated: any number of invalidations of the same
// layouter before the next flush collapse into one pass. A flush runs the
// measure pass and then the arrange pass for each layouter with the same
// width, so column math derived from the width agrees between the two.
//
// Layout is not reentrant. A layouter scheduled while a flush is running is
// held back for the next flush instead of being laid out again inside the
// current one.
type PipelineOwner struct {
	dirtyLayout    []Layouter
	dirtyLayoutSet map[Layouter]bool
	deferred       []Layouter
	deferredSet    map[Layouter]bool
	flushing       bool
	needsLayout    bool
	passes         int
}

// ScheduleLayout marks a layouter as needing layout.
func (p *PipelineOwner) ScheduleLayout(object Layouter) {
	if object == nil {
		return
	}
	if p.flushing {
		if p.deferredSet == nil {
			p.deferredSet = make(map[Layouter]bool)
		}
		if p.deferredSet[object] {
			return
		}
		p.deferredSet[object] = true
		p.deferred = append(p.deferred, object)
		return
	}
	if p.dirtyLayoutSet == nil {
		p.dirtyLayoutSet = make(map[Layouter]bool)
	}
	if p.dirtyLayoutSet[object] {
		return
	}
	p.dirtyLayoutSet[object] = true
	p.dirtyLayout = append(p.dirtyLayout, object)
	p.needsLayout = true
}

// NeedsLayout reports if any layouters are scheduled.
func (p *PipelineOwner) NeedsLayout() bool {
	return p.needsLayout
}

// Flushing reports whether a flush is currently running.
func (p *PipelineOwner) Flushing() bool {
	return p.flushing
}

// Passes returns the number of measure/arrange passes run so far.
func (p *PipelineOwner) Passes() int {
	return p.passes
}

// FlushLayout measures and arranges every scheduled layouter in scheduling order.
//
// Each layouter is measured with available and arranged with the available
// width and the measured height (or the available height when the measured
// height is not finite). A layouter that panics is reported as a KindLayout
// error and does not count as a pass; the rest of the flush still runs.
// Returns the number of layouters flushed.
func (p *PipelineOwner) FlushLayout(available graphics.Size) int {
	if !p.needsLayout || p.flushing {
		return 0
	}

	dirty := p.dirtyLayout
	p.dirtyLayout = nil
	p.dirtyLayoutSet = nil
	p.needsLayout = false

	p.flushing = true
	for _, node := range dirty {
		if errors.Guard("layout.flush", errors.KindLayout, -1, func() {
			layoutNode(node, available)
		}) == nil {
			p.passes++
		}
	}
	p.flushing = false

	// Work scheduled during the flush waits for the next one.
	for _, node := range p.deferred {
		p.ScheduleLayout(node)
	}
	p.deferred = nil
	p.deferredSet = nil

	return len(dirty)
}

func layoutNode(node Layouter, available graphics.Size) {
	desired := node.Measure(available)
	final := available
	if !math.IsInf(desired.Height, 0) && !math.IsNaN(desired.Height) {
		final = available.WithHeight(desired.Height)
	}
	node.Arrange(final)
}

// Reset drops all scheduled work without laying anything out.
func (p *PipelineOwner) Reset() {
	p.dirtyLayout = nil
	p.dirtyLayoutSet = nil
	p.deferred = nil
	p.deferredSet = nil
	p.needsLayout = false
}
