package internal

import (
	"math"
)

// Inspired by https://github.com/LucaTheHacker/go-haversine

// Constants

const (
	// DisplayRadius is the nominal half-extent of the plot in plot-space units.
	// Points projected outside [-DisplayRadius, DisplayRadius] are left to the backend.
	DisplayRadius float64 = 400

	// longAspect approximates how much wider a degree of longitude is drawn than a degree of
	// latitude. It is not geodesically exact.
	longAspect float64 = 3

	earthRadiusKilometers    float64 = 6371 // Radius of Earth in kilometers
	earthRadiusNauticalMiles float64 = 3443 // Radius of Earth in nautical miles
	piHalf                   float64 = math.Pi / 180
)

// Conversion function

func degreesToRadian(d float64) float64 {
	return d * piHalf
}

func radianToDegrees(r float64) float64 {
	return r / piHalf
}

// Coordinate type

// Point is a geographic location in decimal degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

func (p Point) toRadians() Point {
	return Point{
		Latitude:  degreesToRadian(p.Latitude),
		Longitude: degreesToRadian(p.Longitude),
	}
}

// Projection

// ScaleSteps returns the latitude and longitude span, in degrees, that maps onto DisplayRadius
// for the given zoom scale.
func ScaleSteps(scale float64) (latStep, longStep float64) {
	return scale, scale * longAspect
}

// Project maps point onto plot coordinates with reference at the origin.
// x grows eastwards, y grows northwards. The result is not clipped.
func Project(point, reference Point, scale float64) (x, y float64) {
	latStep, longStep := ScaleSteps(scale)

	x = ((point.Longitude - reference.Longitude) / longStep) * DisplayRadius
	y = ((point.Latitude - reference.Latitude) / latStep) * DisplayRadius

	return x, y
}

// distance type

type DistanceStruct struct {
	C float64 // Must be multiplied to obtain distance. Public in order to allow unexpected calculations.
}

func (d DistanceStruct) Kilometers() float64 {
	return d.C * earthRadiusKilometers
}

func (d DistanceStruct) NauticalMiles() float64 {
	return d.C * earthRadiusNauticalMiles
}

// Distance calculates distance using the haversine formula.
//
//nolint:mnd // readability of mathmatic formula
func Distance(p, q Point) DistanceStruct {
	fromPos := p.toRadians()
	toPos := q.toRadians()

	deltaLat := toPos.Latitude - fromPos.Latitude
	deltaLon := toPos.Longitude - fromPos.Longitude

	a := math.Pow(math.Sin(deltaLat/2), 2) +
		math.Cos(fromPos.Latitude)*
			math.Cos(toPos.Latitude)*
			math.Pow(math.Sin(deltaLon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return DistanceStruct{C: c}
}

// Compass

var directions = [...]string{ //nolint: gochecknoglobals // lookup table
	"north", "north by east", "north-northeast", "northeast by north",
	"northeast", "northeast by east", "east-northeast", "east by north",
	"east", "east by south", "east-southeast", "southeast by east",
	"southeast", "southeast by south", "south-southeast", "south by east",
	"south", "south by west", "south-southwest", "southwest by south",
	"southwest", "southwest by west", "west-southwest", "west by south",
	"west", "west by north", "west-northwest", "northwest by west",
	"northwest", "northwest by north", "north-northwest", "north by west",
}

// Bearing calculates the initial bearing (forward azimuth) from p to q in degrees [0, 360).
func Bearing(p, q Point) float64 {
	from := p.toRadians()
	to := q.toRadians()

	dLon := to.Longitude - from.Longitude

	y := math.Sin(dLon) * math.Cos(to.Latitude)
	x := math.Cos(from.Latitude)*math.Sin(to.Latitude) -
		math.Sin(from.Latitude)*math.Cos(to.Latitude)*math.Cos(dLon)

	// Atan2 ranges from -180 to +180
	return math.Mod(radianToDegrees(math.Atan2(y, x))+360.0, 360.0) //nolint: mnd // readability
}

// Direction names the 32-point compass direction from p towards q.
func Direction(p, q Point) string {
	const step = 360.0 / float64(len(directions))

	idx := int(math.Floor(Bearing(p, q)/step+0.5)) % len(directions)

	return directions[idx]
}
