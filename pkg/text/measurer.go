package text

import (
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// FaceMeasurer measures text in pixels with a font face.
type FaceMeasurer struct {
	// Face is the font face. Nil uses basicfont.Face7x13.
	Face font.Face
}

func (m FaceMeasurer) face() font.Face {
	if m.Face == nil {
		return basicfont.Face7x13
	}
	return m.Face
}

// Width returns the advance width of s.
func (m FaceMeasurer) Width(s string) float64 {
	return fixedToFloat(font.MeasureString(m.face(), s))
}

// LineHeight returns the recommended line height of the face.
func (m FaceMeasurer) LineHeight() float64 {
	metrics := m.face().Metrics()
	if metrics.Height > 0 {
		return fixedToFloat(metrics.Height)
	}
	return fixedToFloat(metrics.Ascent + metrics.Descent)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// CellMeasurer measures text in terminal cells. East Asian wide runes count
// as two cells.
type CellMeasurer struct{}

// Width returns the number of cells s occupies.
func (CellMeasurer) Width(s string) float64 {
	return float64(runewidth.StringWidth(s))
}

// LineHeight is one cell.
func (CellMeasurer) LineHeight() float64 {
	return 1
}

// Ellipsis is appended by Truncate.
const Ellipsis = "…"

// Truncate shortens s to at most cells terminal cells, ending in Ellipsis
// when anything was cut.
func Truncate(s string, cells int) string {
	if cells <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= cells {
		return s
	}
	return runewidth.Truncate(s, cells, Ellipsis)
}

// PadRight pads s with spaces to exactly cells terminal cells, truncating
// first when it is wider.
func PadRight(s string, cells int) string {
	return runewidth.FillRight(Truncate(s, cells), cells)
}
