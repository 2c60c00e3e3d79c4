package internal

import (
	"fmt"
	"strconv"
)

// labelOffset shifts labels right of their point, in plot units.
const labelOffset = 3

// Style tells the backend how to colour a primitive.
type Style int

const (
	StylePlain Style = iota
	StyleCity
)

// Marker is a single dot on the plot.
type Marker struct {
	X, Y  float64
	Style Style
}

// Line is a straight segment on the plot.
type Line struct {
	X1, Y1, X2, Y2 float64
}

// Label is text anchored with its first character at (X, Y).
type Label struct {
	X, Y  float64
	Text  string
	Style Style
}

// Scene holds the draw primitives of one plot in plot space, nominally
// [-DisplayRadius, DisplayRadius] on both axes. Anything outside is for the backend to clip.
type Scene struct {
	Title   string
	Markers []Marker
	Lines   []Line
	Labels  []Label
}

func newScene(title string, settings Settings, cities []City) Scene {
	scene := Scene{
		Title: title,
		Lines: []Line{
			{X1: DisplayRadius, Y1: 0, X2: -DisplayRadius, Y2: 0},
			{X1: 0, Y1: DisplayRadius, X2: 0, Y2: -DisplayRadius},
		},
	}

	centre := settings.Centre()
	for _, city := range cities {
		x, y := Project(city.Point(), centre, settings.Scale)
		scene.Markers = append(scene.Markers, Marker{X: x, Y: y, Style: StyleCity})
		scene.Labels = append(scene.Labels, Label{X: x + labelOffset, Y: y, Text: city.Name, Style: StyleCity})
	}

	return scene
}

// MapScene plots cities, crosshairs and every track with a resolved position.
// Tracks are labelled with their address and, unless hideLatLong is set, their coordinates.
func MapScene(settings Settings, cities []City, tracks []Track, hideLatLong bool) Scene {
	scene := newScene(TabMap.String(), settings, cities)
	centre := settings.Centre()

	for _, track := range tracks {
		if !track.HasPosition() {
			continue
		}

		x, y := Project(track.Position.Point(), centre, settings.Scale)
		scene.Markers = append(scene.Markers, Marker{X: x, Y: y})
		scene.Labels = append(scene.Labels, Label{
			X:    x + labelOffset,
			Y:    y,
			Text: trackLabel(track, hideLatLong),
		})
	}

	return scene
}

// CoverageScene plots cities, crosshairs and every coverage sample, without labels.
func CoverageScene(settings Settings, cities []City, samples []Point) Scene {
	scene := newScene(TabCoverage.String(), settings, cities)
	centre := settings.Centre()

	for _, sample := range samples {
		x, y := Project(sample, centre, settings.Scale)
		scene.Markers = append(scene.Markers, Marker{X: x, Y: y})
	}

	return scene
}

func trackLabel(track Track, hideLatLong bool) string {
	if hideLatLong || track.Position == nil {
		return track.Address.String()
	}

	return fmt.Sprintf("%s (%s, %s)",
		track.Address,
		formatDegrees(track.Position.Latitude),
		formatDegrees(track.Position.Longitude))
}

// formatDegrees prints the shortest representation that round-trips.
func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CentreTitle is the tab bar title, the current plot centre as "(lat,long)".
func CentreTitle(settings Settings) string {
	return fmt.Sprintf("(%s,%s)", formatDegrees(settings.Latitude), formatDegrees(settings.Longitude))
}

// AirplaneColumns are the headers of the airplanes listing.
var AirplaneColumns = []string{ //nolint: gochecknoglobals // fixed table layout
	"ICAO", "Call sign", "Longitude", "Latitude", "Altitude", "FPM", "Speed", "Msgs",
}

// AirplaneRow is one row of the airplanes listing, cells in AirplaneColumns order.
type AirplaneRow []string

// AirplanesTitle is the block title of the listing, e.g. "Airplanes(12)".
func AirplanesTitle(n int) string {
	return fmt.Sprintf("%s(%d)", TabAirplanes, n)
}

// AirplaneRows formats one row per track in enumeration order. Unknown values stay blank.
func AirplaneRows(tracks []Track) []AirplaneRow {
	rows := make([]AirplaneRow, 0, len(tracks))

	for _, track := range tracks {
		var lon, lat, alt, fpm, speed string

		if track.Position != nil {
			lon = formatDegrees(track.Position.Longitude)
			lat = formatDegrees(track.Position.Latitude)
			alt = strconv.Itoa(track.Position.Altitude)
		}

		if track.Velocity != nil {
			fpm = strconv.Itoa(track.Velocity.VerticalRate)
			speed = fmt.Sprintf("%.0f", track.Velocity.Speed)
		}

		rows = append(rows, AirplaneRow{
			track.Address.String(),
			track.Callsign,
			lon,
			lat,
			fmt.Sprintf("%8s", alt),
			fmt.Sprintf("%6s", fpm),
			fmt.Sprintf("%5s", speed),
			fmt.Sprintf("%8d", track.Messages),
		})
	}

	return rows
}
