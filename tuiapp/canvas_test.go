package tuiapp

import (
	"strings"
	"testing"

	"github.com/micutio/airradar/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvasBlank(t *testing.T) {
	c := newCanvas(10, 5)
	c.draw(internal.Scene{})

	rows := c.lines()
	require.Len(t, rows, 5)
	for _, row := range rows {
		assert.Equal(t, strings.Repeat(" ", 10), row)
	}
}

func TestCanvasZeroSize(t *testing.T) {
	c := newCanvas(-3, 0)
	c.draw(internal.Scene{Markers: []internal.Marker{{X: 0, Y: 0}}})

	assert.Empty(t, c.lines())
	assert.Empty(t, c.render(Color))
}

func TestCanvasCrosshair(t *testing.T) {
	c := newCanvas(10, 5)
	c.draw(internal.Scene{Lines: []internal.Line{
		{X1: internal.DisplayRadius, Y1: 0, X2: -internal.DisplayRadius, Y2: 0},
		{X1: 0, Y1: internal.DisplayRadius, X2: 0, Y2: -internal.DisplayRadius},
	}})

	rows := c.lines()
	assert.NotContains(t, rows[2], " ", "horizontal line crosses every cell")

	for _, row := range rows {
		assert.NotEqual(t, ' ', []rune(row)[5], "vertical line crosses every row")
	}
}

func TestCanvasMarkerCorner(t *testing.T) {
	c := newCanvas(4, 2)
	c.draw(internal.Scene{Markers: []internal.Marker{
		{X: -internal.DisplayRadius, Y: internal.DisplayRadius},
	}})

	assert.Equal(t, []rune{brailleBase + 0x01, ' ', ' ', ' '}, []rune(c.lines()[0]))
}

func TestCanvasClipsOutside(t *testing.T) {
	c := newCanvas(10, 5)
	c.draw(internal.Scene{
		Markers: []internal.Marker{{X: 3 * internal.DisplayRadius, Y: 0}},
		Labels:  []internal.Label{{X: 0, Y: -2 * internal.DisplayRadius, Text: "gone"}},
	})

	for _, row := range c.lines() {
		assert.Equal(t, strings.Repeat(" ", 10), row)
	}
}

func TestCanvasLabel(t *testing.T) {
	c := newCanvas(10, 5)
	c.draw(internal.Scene{Labels: []internal.Label{
		{X: 0, Y: 0, Text: "JFK", Style: internal.StyleCity},
		{X: internal.DisplayRadius, Y: internal.DisplayRadius, Text: "truncated"},
	}})

	rows := c.lines()
	assert.Equal(t, "JFK", string([]rune(rows[2])[5:8]))
	assert.Equal(t, 't', []rune(rows[0])[9], "labels stop at the right edge")
	assert.Contains(t, c.render(Color), "JFK")
}
