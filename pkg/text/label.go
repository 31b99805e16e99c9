package text

import (
	"math"

	"github.com/go-drift/gridpanel/pkg/graphics"
	"github.com/go-drift/gridpanel/pkg/layout"
)

// Label is a container that shows wrapped text. Its desired height grows
// with the number of wrapped lines, which makes it a natural row-height
// probe for a virtualizing panel.
type Label struct {
	layout.ContainerBase

	Text     string
	Measurer Measurer
	// Padding is applied on every side.
	Padding float64

	measured Layout
}

// NewLabel returns a label measured with m. A nil m uses FaceMeasurer.
func NewLabel(text string, m Measurer) *Label {
	if m == nil {
		m = FaceMeasurer{}
	}
	return &Label{Text: text, Measurer: m}
}

// Measure wraps the text to the available width minus padding.
func (l *Label) Measure(available graphics.Size) {
	m := l.Measurer
	if m == nil {
		m = FaceMeasurer{}
	}
	inner := available.Width - 2*l.Padding
	if math.IsInf(available.Width, 0) {
		inner = 0
	} else if inner <= 0 {
		// Too narrow for anything; wrap per rune.
		inner = math.SmallestNonzeroFloat64
	}
	l.measured = LayoutText(l.Text, inner, m)

	width := available.Width
	if math.IsInf(width, 0) || math.IsNaN(width) {
		width = l.measured.Size.Width + 2*l.Padding
	}
	l.SetDesiredSize(available, graphics.Size{
		Width:  width,
		Height: l.measured.Size.Height + 2*l.Padding,
	})
}

// Lines returns the lines from the last measure.
func (l *Label) Lines() []Line {
	return l.measured.Lines
}
