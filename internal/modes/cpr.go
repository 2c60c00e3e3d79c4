package modes

import (
	"math"
	"time"
)

const (
	// nz is the number of latitude zones between the equator and a pole.
	nz = 15
	// cprScale is 2^17, the resolution of an airborne CPR coordinate.
	cprScale = 131072.0
	// pairWindow is how far apart an even and an odd frame may be to be paired.
	pairWindow = 10 * time.Second
)

// cprFrame is one half of a position pair.
type cprFrame struct {
	lat, lon float64 // normalised to [0, 1)
	at       time.Time
}

// mod is the floored modulo, always non-negative for positive y.
func mod(x, y float64) float64 {
	return x - y*math.Floor(x/y)
}

// nl returns the number of longitude zones at the given latitude.
func nl(lat float64) int {
	lat = math.Abs(lat)

	switch {
	case lat == 0:
		return 59 //nolint: mnd // zones at the equator
	case lat == 87: //nolint: mnd // polar boundary
		return 2
	case lat > 87: //nolint: mnd // polar boundary
		return 1
	}

	a := 1 - math.Cos(math.Pi/(2*nz))
	b := math.Pow(math.Cos(math.Pi/180*lat), 2)

	return int(math.Floor(2 * math.Pi / math.Acos(1-a/b)))
}

// globalPosition resolves an even/odd pair into latitude and longitude. The newer of the two
// frames decides which latitude zone is used. It fails when the pair straddles a zone boundary.
func globalPosition(even, odd cprFrame) (float64, float64, bool) {
	const (
		dLatEven = 360.0 / (4 * nz)
		dLatOdd  = 360.0 / (4*nz - 1)
	)

	j := math.Floor(59*even.lat - 60*odd.lat + 0.5)

	latEven := dLatEven * (mod(j, 60) + even.lat)
	latOdd := dLatOdd * (mod(j, 59) + odd.lat)

	if latEven >= 270 {
		latEven -= 360
	}

	if latOdd >= 270 {
		latOdd -= 360
	}

	if nl(latEven) != nl(latOdd) {
		return 0, 0, false
	}

	var lat, lon float64
	if even.at.After(odd.at) {
		lat = latEven
		zones := nl(latEven)
		ni := float64(max(zones, 1))
		m := math.Floor(even.lon*float64(zones-1) - odd.lon*float64(zones) + 0.5)
		lon = (360 / ni) * (mod(m, ni) + even.lon)
	} else {
		lat = latOdd
		zones := nl(latOdd)
		ni := float64(max(zones-1, 1))
		m := math.Floor(even.lon*float64(zones-1) - odd.lon*float64(zones) + 0.5)
		lon = (360 / ni) * (mod(m, ni) + odd.lon)
	}

	if lon >= 180 {
		lon -= 360
	}

	return lat, lon, true
}
