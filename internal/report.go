package internal

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrNotUsable is returned by a Decoder for buffers that do not carry a usable message.
var ErrNotUsable = errors.New("not a usable message")

// Address is the 24-bit ICAO address that identifies an aircraft.
type Address uint32

// String formats the address as six upper-case hex digits, the way it is printed on the plot
// and in the airplanes table.
func (a Address) String() string {
	return fmt.Sprintf("%06X", uint32(a))
}

// ParseAddress parses a hex address such as "4840D6".
func ParseAddress(s string) (Address, error) {
	v, err := strconv.ParseUint(s, 16, 24)
	if err != nil {
		return 0, fmt.Errorf("parseAddress: %w", err)
	}

	return Address(v), nil
}

// Position is a resolved aircraft position. Altitude is in feet.
type Position struct {
	Latitude  float64
	Longitude float64
	Altitude  int
}

// Point drops the altitude.
func (p Position) Point() Point {
	return Point{Latitude: p.Latitude, Longitude: p.Longitude}
}

// Velocity holds ground speed in knots and vertical rate in feet per minute.
type Velocity struct {
	Speed        float64
	VerticalRate int
}

// ReportKind tags the payload carried by a Report.
type ReportKind int

const (
	KindOther ReportKind = iota
	KindIdentification
	KindVelocity
	KindPosition
)

// Report is the structured output of a Decoder.
// Only the field matching Kind is meaningful.
type Report struct {
	Kind     ReportKind
	Address  Address
	Callsign string
	Velocity Velocity
	// Altitude is carried by every position report, Resolved only once the decoder has paired
	// enough frames to compute a latitude and longitude.
	Altitude int
	Resolved *Position
}

// Decoder turns a raw frame into a Report. Multi-frame position pairing is its own business.
type Decoder interface {
	Decode(frame []byte) (Report, error)
}

// forgetter is implemented by decoders that keep per-aircraft state.
type forgetter interface {
	Forget(addr Address)
}
