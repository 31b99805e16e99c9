package virtualizing

import (
	"log/slog"
	"math"

	"github.com/go-drift/gridpanel/pkg/graphics"
)

// maxColumns bounds the column count so float-to-int conversion stays defined
// for absurd widths.
const maxColumns = 1 << 20

// columnLayout derives the column count and column width for width.
func (p *Panel) columnLayout(width float64) (int, float64) {
	itemSize := p.itemSize
	if itemSize <= 0 {
		itemSize = fallbackItemSize
	}
	if math.IsInf(width, 0) || math.IsNaN(width) {
		return 1, itemSize
	}

	spacing := p.spacing
	columns := 1
	if denom := itemSize + spacing; denom > 0 {
		if c := math.Floor((width + spacing) / denom); c > 1 {
			columns = int(math.Min(c, maxColumns))
		}
	}
	columnWidth := math.Max(0, (width-spacing*float64(columns-1))/float64(columns))
	return columns, columnWidth
}

// Columns returns the column count computed by the last measure pass.
func (p *Panel) Columns() int {
	return p.columns
}

// ColumnWidth returns the column width computed by the last measure pass.
func (p *Panel) ColumnWidth() float64 {
	return p.columnWidth
}

// RowHeight returns the learned uniform row height.
func (p *Panel) RowHeight() float64 {
	return p.rowHeight
}

// RequiredRange returns the index range the last measure pass asked for,
// before clamping to the item source.
func (p *Panel) RequiredRange() (start, end int) {
	return p.start, p.end
}

// rowCount returns the number of rows needed for every item.
func (p *Panel) rowCount(columns int) int {
	count := p.source.Len()
	if count <= 0 || columns <= 0 {
		return 0
	}
	return (count + columns - 1) / columns
}

// ExtentHeight returns the total content height for the current column
// count: every row plus the spacing between rows, without trailing spacing.
func (p *Panel) ExtentHeight() float64 {
	rows := p.rowCount(p.columns)
	if rows == 0 {
		return 0
	}
	return math.Max(0, float64(rows)*(p.rowHeight+p.spacing)-p.spacing)
}

// growRowHeight raises the row height to h. Row height never shrinks.
func (p *Panel) growRowHeight(h float64) {
	if math.IsInf(h, 0) || math.IsNaN(h) || h <= p.rowHeight {
		return
	}
	p.logger.Debug("row height grew", slog.Float64("from", p.rowHeight), slog.Float64("to", h))
	p.rowHeight = h
}

// visibleRows returns the top row and number of rows the viewport touches.
func (p *Panel) visibleRows(columns int) (topRow, rows int) {
	stride := p.rowHeight + p.spacing
	if stride <= 0 {
		return 0, 1
	}
	limit := float64(p.rowCount(columns))

	top := math.Floor(p.viewport.Top / stride)
	if math.IsNaN(top) || top < 0 {
		top = 0
	}
	top = math.Min(top, limit)

	visible := math.Ceil(p.viewport.Height() / stride)
	if math.IsNaN(visible) || visible < 0 {
		visible = 0
	}
	visible = math.Min(visible, limit+1)

	return int(top), int(visible)
}

// Measure computes the column layout, realizes the rows covering the
// viewport and measures them at the column width with unbounded height.
// It returns the available width and the total content height.
//
// While the row height is still zero every pass first realizes items 0 and 1
// to learn it. With zero-height items and no spacing that pass and the
// viewport pass ask for different ranges, so items past 1 in the first row
// are recreated on each measure.
//
// Invalidations raised by factory hooks during the pass leave the panel
// needing another layout.
func (p *Panel) Measure(available graphics.Size) graphics.Size {
	p.needsMeasure = false

	columns, columnWidth := p.columnLayout(available.Width)
	if columns != p.columns {
		p.logger.Debug("columns changed", slog.Int("from", p.columns), slog.Int("to", columns))
	}
	p.columns, p.columnWidth = columns, columnWidth
	childSize := graphics.Unbounded(columnWidth)

	if p.rowHeight == 0 {
		for _, c := range p.Reconcile(0, 1) {
			c.Measure(childSize)
			p.growRowHeight(c.DesiredSize().Height)
		}
	}

	topRow, rows := p.visibleRows(columns)
	p.start = topRow * columns
	p.end = p.start + rows*columns - 1

	for _, c := range p.Reconcile(p.start, p.end) {
		c.Measure(childSize)
		p.growRowHeight(c.DesiredSize().Height)
	}

	p.stats.Measures++
	return graphics.Size{Width: available.Width, Height: p.ExtentHeight()}
}

// Arrange places the realized containers row by row starting at the top row
// of the range computed by Measure. final must have the width Measure was
// given, or the column counts of the two passes disagree.
func (p *Panel) Arrange(final graphics.Size) graphics.Size {
	columns, columnWidth := p.columnLayout(final.Width)
	stride := p.rowHeight + p.spacing
	topRow := p.start / columns
	top := float64(topRow) * stride

	// A reset raised after Measure waits for the next measure pass, so a
	// range that was already served is arranged as it stands.
	realized := p.sorted()
	if !p.served || p.reqStart != p.start || p.reqEnd != p.end {
		realized = p.Reconcile(p.start, p.end)
	}

	// Rows are grouped by key offset from the range start; with every index
	// realized this is the same as taking consecutive runs of columns.
	for _, c := range realized {
		offset := p.keys[c] - p.start
		row, col := offset/columns, offset%columns
		c.Arrange(graphics.RectFromLTWH(
			float64(col)*(columnWidth+p.spacing),
			top+float64(row)*stride,
			columnWidth,
			p.rowHeight,
		))
	}

	p.stats.Arranges++
	return final
}

// BoundsForIndex returns where index would be arranged with the current
// layout, whether or not it is realized. ok is false for indexes outside
// the item source.
func (p *Panel) BoundsForIndex(index int) (graphics.Rect, bool) {
	if index < 0 || index >= p.source.Len() {
		return graphics.Rect{}, false
	}
	columns := max(1, p.columns)
	stride := p.rowHeight + p.spacing
	row, col := index/columns, index%columns
	return graphics.RectFromLTWH(
		float64(col)*(p.columnWidth+p.spacing),
		float64(row)*stride,
		p.columnWidth,
		p.rowHeight,
	), true
}
