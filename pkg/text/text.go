// Package text measures and wraps item labels for grid containers.
//
// Two measurers are provided: [FaceMeasurer] for pixel layouts backed by a
// golang.org/x/image font face, and [CellMeasurer] for terminal layouts where
// widths are counted in cells.
package text

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-drift/gridpanel/pkg/graphics"
)

// Measurer reports the width of a string and the height of one line.
type Measurer interface {
	Width(s string) float64
	LineHeight() float64
}

// Line is a single laid-out line of text.
type Line struct {
	Text  string
	Width float64
}

// Layout contains measured text metrics.
type Layout struct {
	Text       string
	Size       graphics.Size
	LineHeight float64
	Lines      []Line
}

// LayoutText measures text and wraps it within maxWidth. A zero, negative or
// infinite maxWidth disables wrapping; explicit newlines always break.
func LayoutText(text string, maxWidth float64, m Measurer) Layout {
	lineHeight := m.LineHeight()
	lines := layoutLines(text, maxWidth, m.Width)
	if len(lines) == 0 {
		lines = []Line{{}}
	}
	widest := 0.0
	for _, line := range lines {
		widest = math.Max(widest, line.Width)
	}
	return Layout{
		Text:       text,
		Size:       graphics.Size{Width: widest, Height: lineHeight * float64(len(lines))},
		LineHeight: lineHeight,
		Lines:      lines,
	}
}

func layoutLines(text string, maxWidth float64, measure func(string) float64) []Line {
	if maxWidth < 0 || math.IsInf(maxWidth, 0) || math.IsNaN(maxWidth) {
		maxWidth = 0
	}
	paragraphs := strings.Split(text, "\n")
	lines := make([]Line, 0, len(paragraphs))
	for _, paragraph := range paragraphs {
		if paragraph == "" {
			lines = append(lines, Line{})
			continue
		}
		if maxWidth == 0 {
			lines = append(lines, Line{Text: paragraph, Width: measure(paragraph)})
			continue
		}
		for _, line := range wrapParagraph(paragraph, maxWidth, measure) {
			lines = append(lines, Line{Text: line, Width: measure(line)})
		}
	}
	return lines
}

// wrapParagraph breaks text at the last space that fits, or mid-word when a
// single word is wider than maxWidth. Every line holds at least one rune.
func wrapParagraph(text string, maxWidth float64, measure func(string) float64) []string {
	var lines []string
	start := 0
	for start < len(text) {
		lastBreak := -1
		lastFit := -1
		for i := start; i < len(text); {
			r, size := utf8.DecodeRuneInString(text[i:])
			next := i + size
			if measure(text[start:next]) > maxWidth {
				break
			}
			lastFit = next
			if unicode.IsSpace(r) {
				lastBreak = next
			}
			i = next
		}
		if lastFit == -1 {
			_, size := utf8.DecodeRuneInString(text[start:])
			lastFit = start + size
		}
		cut := lastFit
		if lastFit < len(text) && lastBreak > start && lastBreak < lastFit {
			cut = lastBreak
		}
		lines = append(lines, strings.TrimRightFunc(text[start:cut], unicode.IsSpace))
		start = cut
		for start < len(text) {
			r, size := utf8.DecodeRuneInString(text[start:])
			if !unicode.IsSpace(r) {
				break
			}
			start += size
		}
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
