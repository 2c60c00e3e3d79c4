package internal

import (
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/iancoleman/orderedmap"
)

const (
	// DefaultStaleThreshold is how long a track may stay silent before it is pruned.
	DefaultStaleThreshold = 60 * time.Second
	// operatorUnknown is used for tracks that have not broadcast a callsign yet.
	operatorUnknown = "n/a"
)

// Track is everything known about one aircraft.
// Velocity and Position are nil until the first report of that kind arrives. They are replaced,
// never mutated, so a Track copy can be handed out safely.
type Track struct {
	Address  Address
	Messages uint64
	Callsign string
	Velocity *Velocity
	Position *Position
	LastSeen time.Time
}

// HasPosition reports whether a position has ever been resolved for this track.
func (t *Track) HasPosition() bool {
	return t.Position != nil
}

// OperatorCode trims whitespace and digits from the callsign, resulting in the three letter
// ICAO code for airline flights and arbitrary length codes for military, government and
// private flights.
func (t *Track) OperatorCode() string {
	callsign := strings.TrimSpace(t.Callsign)
	if callsign == "" {
		return operatorUnknown
	}

	return stripDigits(callsign)
}

func stripDigits(str string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return -1
		}
		return r
	}, str)
}

// TrackStore holds all live tracks keyed by address.
// Enumeration follows insertion order, so row N of a listing maps to the same address for as
// long as no track is added or pruned.
type TrackStore struct {
	tracks  *orderedmap.OrderedMap // Address.String() -> *Track
	created []Address              // since the last TakeCreated
}

func NewTrackStore() *TrackStore {
	return &TrackStore{tracks: orderedmap.New()}
}

func (s *TrackStore) lookup(addr Address) (*Track, bool) {
	value, ok := s.tracks.Get(addr.String())
	if !ok {
		return nil, false
	}

	track, ok := value.(*Track)

	return track, ok
}

// RecordMessage creates the track if absent, counts one message and refreshes LastSeen.
func (s *TrackStore) RecordMessage(addr Address, now time.Time) *Track {
	track, ok := s.lookup(addr)
	if !ok {
		track = &Track{Address: addr}
		s.tracks.Set(addr.String(), track)
		s.created = append(s.created, addr)
	}

	track.Messages++
	track.LastSeen = now

	return track
}

// ApplyIdentification records a message and sets the callsign.
func (s *TrackStore) ApplyIdentification(addr Address, callsign string, now time.Time) {
	track := s.RecordMessage(addr, now)
	track.Callsign = strings.TrimSpace(callsign)
}

// ApplyVelocity records a message and replaces the velocity.
func (s *TrackStore) ApplyVelocity(addr Address, velocity Velocity, now time.Time) {
	track := s.RecordMessage(addr, now)
	track.Velocity = &velocity
}

// ApplyPosition records a message and, if the decoder managed to resolve one, replaces the
// position. A report without a resolution never clears a known position.
func (s *TrackStore) ApplyPosition(addr Address, report Report, now time.Time) {
	track := s.RecordMessage(addr, now)
	if report.Resolved == nil {
		return
	}

	position := *report.Resolved
	track.Position = &position
}

// Apply dispatches a decoded report to the matching update.
func (s *TrackStore) Apply(report Report, now time.Time) {
	switch report.Kind {
	case KindIdentification:
		s.ApplyIdentification(report.Address, report.Callsign, now)
	case KindVelocity:
		s.ApplyVelocity(report.Address, report.Velocity, now)
	case KindPosition:
		s.ApplyPosition(report.Address, report, now)
	case KindOther:
		s.RecordMessage(report.Address, now)
	}
}

// TakeCreated returns the addresses of tracks created since the previous call.
func (s *TrackStore) TakeCreated() []Address {
	created := s.created
	s.created = nil

	return created
}

// Get returns a copy of the track for addr.
func (s *TrackStore) Get(addr Address) (Track, bool) {
	track, ok := s.lookup(addr)
	if !ok {
		return Track{}, false
	}

	return *track, true
}

// ResolvedPosition returns the latest known position for addr.
func (s *TrackStore) ResolvedPosition(addr Address) (Position, bool) {
	track, ok := s.lookup(addr)
	if !ok || track.Position == nil {
		return Position{}, false
	}

	return *track.Position, true
}

// ResolvedPositions snapshots every resolved position in enumeration order.
func (s *TrackStore) ResolvedPositions() []Position {
	positions := make([]Position, 0, s.Len())
	for _, key := range s.tracks.Keys() {
		value, _ := s.tracks.Get(key)
		if track, ok := value.(*Track); ok && track.Position != nil {
			positions = append(positions, *track.Position)
		}
	}

	return positions
}

// Len returns the number of live tracks.
func (s *TrackStore) Len() int {
	return len(s.tracks.Keys())
}

// Tracks snapshots all tracks in enumeration order.
func (s *TrackStore) Tracks() []Track {
	tracks := make([]Track, 0, s.Len())
	for _, key := range s.tracks.Keys() {
		value, _ := s.tracks.Get(key)
		if track, ok := value.(*Track); ok {
			tracks = append(tracks, *track)
		}
	}

	return tracks
}

// At returns the track at row idx of the enumeration.
func (s *TrackStore) At(idx int) (Track, bool) {
	keys := s.tracks.Keys()
	if idx < 0 || idx >= len(keys) {
		return Track{}, false
	}

	value, _ := s.tracks.Get(keys[idx])
	track, ok := value.(*Track)
	if !ok {
		return Track{}, false
	}

	return *track, true
}

// Prune removes every track whose silence exceeds threshold and returns their addresses.
// Tracks silent for exactly threshold are kept.
func (s *TrackStore) Prune(now time.Time, threshold time.Duration) []Address {
	var removed []Address

	// Keys exposes the map's own slice, which Delete rewrites.
	for _, key := range slices.Clone(s.tracks.Keys()) {
		value, _ := s.tracks.Get(key)
		track, ok := value.(*Track)
		if !ok || now.Sub(track.LastSeen) <= threshold {
			continue
		}

		s.tracks.Delete(key)
		removed = append(removed, track.Address)
	}

	return removed
}
