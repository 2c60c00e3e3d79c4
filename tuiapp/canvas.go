package tuiapp

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/micutio/airradar/internal"
)

const (
	brailleBase = 0x2800
	dotsWide    = 2
	dotsHigh    = 4
)

// brailleDots maps a dot position within a cell, [x][y], to its bit in the braille pattern.
var brailleDots = [dotsWide][dotsHigh]rune{ //nolint: gochecknoglobals // lookup table
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// canvas rasterises a Scene onto terminal cells. Every cell holds a 2x4 braille dot matrix,
// labels replace the dots of the cells they cover.
type canvas struct {
	width, height int
	dots          []rune
	text          []rune
	styles        []internal.Style
}

func newCanvas(width, height int) *canvas {
	width = max(width, 0)
	height = max(height, 0)
	cells := width * height

	return &canvas{
		width:  width,
		height: height,
		dots:   make([]rune, cells),
		text:   make([]rune, cells),
		styles: make([]internal.Style, cells),
	}
}

// toDots maps plot coordinates onto the dot grid. Points outside the plot are rejected.
func (c *canvas) toDots(x, y float64) (int, int, bool) {
	const span = 2 * internal.DisplayRadius

	dotsX := c.width*dotsWide - 1
	dotsY := c.height*dotsHigh - 1

	px := int(math.Round((x + internal.DisplayRadius) / span * float64(dotsX)))
	py := int(math.Round((internal.DisplayRadius - y) / span * float64(dotsY)))

	if px < 0 || py < 0 || px > dotsX || py > dotsY {
		return 0, 0, false
	}

	return px, py, true
}

func (c *canvas) setDot(px, py int, style internal.Style) {
	cell := (py/dotsHigh)*c.width + px/dotsWide
	c.dots[cell] |= brailleDots[px%dotsWide][py%dotsHigh]
	c.styles[cell] = max(c.styles[cell], style)
}

func (c *canvas) point(x, y float64, style internal.Style) {
	if px, py, ok := c.toDots(x, y); ok {
		c.setDot(px, py, style)
	}
}

// line samples the segment at dot resolution.
func (c *canvas) line(l internal.Line) {
	const span = 2 * internal.DisplayRadius

	resolution := float64(max(c.width*dotsWide, c.height*dotsHigh))
	length := math.Hypot(l.X2-l.X1, l.Y2-l.Y1)
	steps := max(int(math.Ceil(length/span*resolution)), 1)

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.point(l.X1+(l.X2-l.X1)*t, l.Y1+(l.Y2-l.Y1)*t, internal.StylePlain)
	}
}

func (c *canvas) label(l internal.Label) {
	px, py, ok := c.toDots(l.X, l.Y)
	if !ok {
		return
	}

	row := py / dotsHigh
	col := px / dotsWide

	for _, r := range l.Text {
		if col >= c.width {
			return
		}

		cell := row*c.width + col
		c.text[cell] = r
		c.styles[cell] = l.Style
		col++
	}
}

// draw paints lines first, then markers, then labels.
func (c *canvas) draw(scene internal.Scene) {
	if c.width == 0 || c.height == 0 {
		return
	}

	for _, l := range scene.Lines {
		c.line(l)
	}

	for _, m := range scene.Markers {
		c.point(m.X, m.Y, m.Style)
	}

	for _, l := range scene.Labels {
		c.label(l)
	}
}

func (c *canvas) cell(idx int) rune {
	if c.text[idx] != 0 {
		return c.text[idx]
	}

	if c.dots[idx] == 0 {
		return ' '
	}

	return brailleBase + c.dots[idx]
}

// lines returns the unstyled rows.
func (c *canvas) lines() []string {
	rows := make([]string, c.height)

	for y := range c.height {
		var row strings.Builder
		for x := range c.width {
			row.WriteRune(c.cell(y*c.width + x))
		}
		rows[y] = row.String()
	}

	return rows
}

// render colours runs of cells sharing a style.
func (c *canvas) render(theme Theme) string {
	styles := map[internal.Style]lipgloss.Style{
		internal.StylePlain: lipgloss.NewStyle().Foreground(theme.Primary),
		internal.StyleCity:  lipgloss.NewStyle().Foreground(theme.Green),
	}

	rows := make([]string, c.height)

	for y := range c.height {
		var row, run strings.Builder

		current := internal.StylePlain
		flush := func() {
			if run.Len() > 0 {
				row.WriteString(styles[current].Render(run.String()))
				run.Reset()
			}
		}

		for x := range c.width {
			idx := y*c.width + x
			if c.styles[idx] != current {
				flush()
				current = c.styles[idx]
			}
			run.WriteRune(c.cell(idx))
		}
		flush()

		rows[y] = row.String()
	}

	return strings.Join(rows, "\n")
}
