// Package modes decodes the ADS-B extended squitters (DF17 and DF18) a demodulator emits on
// its raw output port. It is deliberately small: identification, airborne position and
// airborne velocity are decoded, everything else is reported as an ignored kind.
package modes

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/micutio/airradar/internal"
)

const (
	// squitterLength is the size of a long Mode S frame in bytes.
	squitterLength = 14

	dfExtendedSquitter    = 17
	dfNonTransponderAdsb  = 18
	cfAdsbWithICAOAddress = 0
	cfAdsbRebroadcast     = 6

	// callsignAlphabet maps the six bit identification characters. '#' marks unused codes.
	callsignAlphabet = "#ABCDEFGHIJKLMNOPQRSTUVWXYZ##### ###############0123456789######"

	feetPerMeter = 3.28084
)

var (
	errShortFrame = errors.New("frame too short for an extended squitter")
	errParity     = errors.New("parity mismatch")
	errNotADSB    = errors.New("not an ADS-B downlink format")
)

// Decoder turns raw frames into reports. It keeps the last even and odd position frame per
// aircraft so that a position can be resolved once both halves arrived within pairWindow.
// A Decoder is not safe for concurrent use.
type Decoder struct {
	now   func() time.Time
	pairs map[internal.Address]*cprPair
}

type cprPair struct {
	even, odd *cprFrame
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithClock replaces time.Now as the source of frame arrival times.
func WithClock(now func() time.Time) Option {
	return func(d *Decoder) {
		d.now = now
	}
}

func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		now:   time.Now,
		pairs: make(map[internal.Address]*cprPair),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Forget drops position pairing state for addr.
func (d *Decoder) Forget(addr internal.Address) {
	delete(d.pairs, addr)
}

// Decode implements internal.Decoder. Every error wraps internal.ErrNotUsable.
func (d *Decoder) Decode(frame []byte) (internal.Report, error) {
	if len(frame) < squitterLength {
		return internal.Report{}, fmt.Errorf("decoder.Decode: %w: %w", internal.ErrNotUsable, errShortFrame)
	}

	frame = frame[:squitterLength]

	df := frame[0] >> 3
	ca := frame[0] & 0x07

	switch {
	case df == dfExtendedSquitter:
	case df == dfNonTransponderAdsb && (ca == cfAdsbWithICAOAddress || ca == cfAdsbRebroadcast):
	default:
		return internal.Report{}, fmt.Errorf("decoder.Decode: %w: %w (DF%d)", internal.ErrNotUsable, errNotADSB, df)
	}

	if !validParity(frame) {
		return internal.Report{}, fmt.Errorf("decoder.Decode: %w: %w", internal.ErrNotUsable, errParity)
	}

	addr := internal.Address(bits(frame, 9, 24))
	me := frame[4:11]
	typeCode := me[0] >> 3

	switch {
	case typeCode >= 1 && typeCode <= 4:
		return d.identification(addr, frame), nil
	case typeCode >= 9 && typeCode <= 18, typeCode >= 20 && typeCode <= 22:
		return d.airbornePosition(addr, frame, typeCode), nil
	case typeCode == 19:
		return d.velocity(addr, frame), nil
	default:
		return internal.Report{Kind: internal.KindOther, Address: addr}, nil
	}
}

func (d *Decoder) identification(addr internal.Address, frame []byte) internal.Report {
	var callsign strings.Builder

	for i := range 8 {
		c := callsignAlphabet[bits(frame, 41+6*i, 6)]
		if c != '#' {
			callsign.WriteByte(c)
		}
	}

	return internal.Report{
		Kind:     internal.KindIdentification,
		Address:  addr,
		Callsign: strings.TrimSpace(callsign.String()),
	}
}

func (d *Decoder) airbornePosition(addr internal.Address, frame []byte, typeCode byte) internal.Report {
	altitude, ok := decodeAltitude(uint32(bits(frame, 41, 12)), typeCode)
	if !ok {
		// Gillham coded altitudes are not decoded; the frame still counts as a message.
		return internal.Report{Kind: internal.KindOther, Address: addr}
	}

	report := internal.Report{
		Kind:     internal.KindPosition,
		Address:  addr,
		Altitude: altitude,
	}

	half := &cprFrame{
		lat: float64(bits(frame, 55, 17)) / cprScale,
		lon: float64(bits(frame, 72, 17)) / cprScale,
		at:  d.now(),
	}

	pair, ok := d.pairs[addr]
	if !ok {
		pair = &cprPair{}
		d.pairs[addr] = pair
	}

	if bits(frame, 54, 1) == 1 {
		pair.odd = half
	} else {
		pair.even = half
	}

	if pair.even == nil || pair.odd == nil {
		return report
	}

	gap := pair.even.at.Sub(pair.odd.at)
	if gap < 0 {
		gap = -gap
	}

	if gap > pairWindow {
		return report
	}

	lat, lon, ok := globalPosition(*pair.even, *pair.odd)
	if !ok {
		return report
	}

	report.Resolved = &internal.Position{Latitude: lat, Longitude: lon, Altitude: altitude}

	return report
}

// decodeAltitude decodes the 12 bit altitude field. Barometric altitudes must use 25 ft
// increments (Q bit set), GNSS heights are converted from metres.
func decodeAltitude(field uint32, typeCode byte) (int, bool) {
	if field == 0 {
		return 0, false
	}

	if typeCode >= 20 {
		return int(math.Round(float64(field) * feetPerMeter)), true
	}

	if field&0x10 == 0 {
		return 0, false
	}

	n := (field&0xFE0)>>1 | field&0x0F

	return int(n)*25 - 1000, true //nolint: mnd // 25 ft steps from -1000 ft
}

func (d *Decoder) velocity(addr internal.Address, frame []byte) internal.Report {
	other := internal.Report{Kind: internal.KindOther, Address: addr}

	subtype := bits(frame, 38, 3)
	if subtype != 1 && subtype != 2 {
		return other
	}

	vEW := int(bits(frame, 47, 10))
	vNS := int(bits(frame, 58, 10))
	vRate := int(bits(frame, 70, 9))

	if vEW == 0 || vNS == 0 {
		return other
	}

	vx := float64(vEW - 1)
	vy := float64(vNS - 1)

	if bits(frame, 46, 1) == 1 {
		vx = -vx
	}

	if bits(frame, 57, 1) == 1 {
		vy = -vy
	}

	if subtype == 2 { // supersonic
		vx *= 4
		vy *= 4
	}

	var verticalRate int
	if vRate != 0 {
		verticalRate = (vRate - 1) * 64 //nolint: mnd // 64 fpm steps
		if bits(frame, 69, 1) == 1 {
			verticalRate = -verticalRate
		}
	}

	return internal.Report{
		Kind:    internal.KindVelocity,
		Address: addr,
		Velocity: internal.Velocity{
			Speed:        math.Hypot(vx, vy),
			VerticalRate: verticalRate,
		},
	}
}

// bits extracts length bits starting at the 1-based bit position first, counted from the most
// significant bit of frame[0].
func bits(frame []byte, first, length int) uint64 {
	var v uint64

	for pos := first - 1; pos < first-1+length; pos++ {
		bit := (frame[pos/8] >> (7 - pos%8)) & 1
		v = v<<1 | uint64(bit)
	}

	return v
}
