package internal

import (
	"math"
	"testing"
)

func TestProjectReferenceIsOrigin(t *testing.T) {
	refs := []Point{
		{Latitude: 0, Longitude: 0},
		{Latitude: 40.7128, Longitude: -74.0060},
		{Latitude: -33.8688, Longitude: 151.2093},
		{Latitude: 89.9, Longitude: -179.9},
	}
	scales := []float64{0.1, 0.2, 1.2, 5, 100}

	for _, ref := range refs {
		for _, scale := range scales {
			x, y := Project(ref, ref, scale)
			if x != 0 || y != 0 {
				t.Errorf("Project(%v, %v, %v) = (%v, %v), want (0, 0)", ref, ref, scale, x, y)
			}
		}
	}
}

func TestProject(t *testing.T) {
	ref := Point{Latitude: 50, Longitude: 10}

	tests := []struct {
		name  string
		point Point
		scale float64
		wantX float64
		wantY float64
	}{
		{"one lat step north", Point{Latitude: 51, Longitude: 10}, 1, 0, DisplayRadius},
		{"one long step east", Point{Latitude: 50, Longitude: 13}, 1, DisplayRadius, 0},
		{"half step south west", Point{Latitude: 49.5, Longitude: 8.5}, 1, -DisplayRadius / 2, -DisplayRadius / 2},
		{"outside is not clipped", Point{Latitude: 54, Longitude: 10}, 1, 0, 4 * DisplayRadius},
		{"zoomed in", Point{Latitude: 50.1, Longitude: 10}, 0.2, 0, DisplayRadius / 2},
	}

	const epsilon = 1e-9

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := Project(tt.point, ref, tt.scale)
			if math.Abs(x-tt.wantX) > epsilon || math.Abs(y-tt.wantY) > epsilon {
				t.Errorf("Project() = (%v, %v), want (%v, %v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestProjectMonotonicInScale(t *testing.T) {
	ref := Point{Latitude: 47.0, Longitude: 8.0}
	pairs := [][2]Point{
		{{Latitude: 47.1, Longitude: 8.2}, {Latitude: 46.9, Longitude: 7.5}},
		{{Latitude: 48.0, Longitude: 7.0}, {Latitude: 48.0, Longitude: 9.0}},
		{{Latitude: 45.0, Longitude: 8.0}, {Latitude: 49.0, Longitude: 8.0}},
	}

	sign := func(v float64) int {
		switch {
		case v > 0:
			return 1
		case v < 0:
			return -1
		default:
			return 0
		}
	}

	for _, pair := range pairs {
		ax0, ay0 := Project(pair[0], ref, 0.2)
		bx0, by0 := Project(pair[1], ref, 0.2)
		for scale := 0.3; scale < 10; scale += 0.7 {
			ax, ay := Project(pair[0], ref, scale)
			bx, by := Project(pair[1], ref, scale)
			if sign(ax-bx) != sign(ax0-bx0) {
				t.Errorf("x order of %v flipped at scale %v", pair, scale)
			}
			if sign(ay-by) != sign(ay0-by0) {
				t.Errorf("y order of %v flipped at scale %v", pair, scale)
			}
		}
	}
}

func TestBearing(t *testing.T) {
	tests := []struct {
		name     string
		p1       Point
		p2       Point
		expected float64
	}{
		{"Due North", Point{0, 0}, Point{10, 0}, 0.0},
		{"Due East", Point{0, 0}, Point{0, 10}, 90.0},
		{"Due South", Point{10, 0}, Point{0, 0}, 180.0},
		{"Due West", Point{0, 10}, Point{0, 0}, 270.0},
		{"New York to London", Point{40.7128, -74.0060}, Point{51.5074, -0.1278}, 51.21},
		{"London to New York", Point{51.5074, -0.1278}, Point{40.7128, -74.0060}, 288.33},
		{"Auckland to Honolulu", Point{-36.8485, 174.7633}, Point{21.3069, -157.8583}, 28.57},
	}

	// Precision threshold for floating point comparison
	const epsilon = 0.01

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bearing(tt.p1, tt.p2)
			if math.Abs(got-tt.expected) > epsilon {
				t.Errorf("Bearing() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDirection(t *testing.T) {
	origin := Point{Latitude: 0, Longitude: 0}

	tests := []struct {
		to   Point
		want string
	}{
		{Point{Latitude: 1, Longitude: 0}, "north"},
		{Point{Latitude: 0, Longitude: 1}, "east"},
		{Point{Latitude: -1, Longitude: 0}, "south"},
		{Point{Latitude: 0, Longitude: -1}, "west"},
		{Point{Latitude: 1, Longitude: 1}, "northeast"},
		{Point{Latitude: 1, Longitude: -0.01}, "north"},
	}

	for _, tt := range tests {
		if got := Direction(origin, tt.to); got != tt.want {
			t.Errorf("Direction(%v) = %q, want %q", tt.to, got, tt.want)
		}
	}
}

func TestDistance(t *testing.T) {
	nyc := Point{Latitude: 40.7128, Longitude: -74.0060}
	london := Point{Latitude: 51.5074, Longitude: -0.1278}

	km := Distance(nyc, london).Kilometers()
	if math.Abs(km-5570) > 10 {
		t.Errorf("Distance(NYC, London) = %.1f km, want about 5570 km", km)
	}

	if d := Distance(nyc, nyc).Kilometers(); d != 0 {
		t.Errorf("Distance(p, p) = %v, want 0", d)
	}
}
