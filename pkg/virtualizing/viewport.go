package virtualizing

import (
	"log/slog"

	"github.com/go-drift/gridpanel/pkg/graphics"
)

// Viewport returns the visible rectangle in panel coordinates.
func (p *Panel) Viewport() graphics.Rect {
	return p.viewport
}

// SetViewport records the effective viewport reported by the scrollable
// owner and schedules a layout. Repeated notifications before the next pass
// resolve to a single reconciliation when the required range is unchanged.
func (p *Panel) SetViewport(viewport graphics.Rect) {
	if p.viewport == viewport {
		return
	}
	p.viewport = viewport
	p.stats.ViewportChanges++
	p.InvalidateRange()
}

// InvalidateRange schedules a layout that recomputes the required range.
// Containers that stay in range are kept.
func (p *Panel) InvalidateRange() {
	p.needsMeasure = true
	if p.owner != nil {
		p.owner.ScheduleLayout(p)
	}
}

// InvalidateAll schedules a layout that discards every realized container.
// Called while a reconciliation is running, the reset applies to the next one.
func (p *Panel) InvalidateAll() {
	if !p.reset {
		p.logger.Debug("reset scheduled", slog.Bool("reconciling", p.reconciling))
	}
	p.reset = true
	p.InvalidateRange()
}

// NeedsLayout reports whether an invalidation is waiting for a measure pass.
func (p *Panel) NeedsLayout() bool {
	return p.needsMeasure
}
