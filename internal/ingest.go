package internal

import (
	"encoding/hex"
	"log/slog"
	"strings"
	"time"
)

// IngestStats counts what happened to every line handed to the Ingestor.
type IngestStats struct {
	Lines     uint64
	Accepted  uint64
	Discarded uint64
}

// Ingestor turns feed lines into track updates. Every line is best-effort telemetry: anything
// that does not decode is dropped without telling the caller.
type Ingestor struct {
	decoder Decoder
	store   *TrackStore
	logger  *slog.Logger
	stats   IngestStats
}

func NewIngestor(decoder Decoder, store *TrackStore, logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Ingestor{
		decoder: decoder,
		store:   store,
		logger:  logger,
	}
}

// ParseLine strips the line ending and the delimiter pair around the hex payload, e.g.
// "*8D4840D6202CC371C32CE0576098;\n", and decodes the hex.
func ParseLine(line string) ([]byte, bool) {
	payload := strings.TrimRight(line, "\r\n")
	if len(payload) < 2 { //nolint: mnd // the two delimiters
		return nil, false
	}

	payload = payload[1 : len(payload)-1]

	frame, err := hex.DecodeString(payload)
	if err != nil || len(frame) == 0 {
		return nil, false
	}

	return frame, true
}

// allZero reports whether the frame is idle filler.
func allZero(frame []byte) bool {
	for _, b := range frame {
		if b != 0 {
			return false
		}
	}

	return true
}

// Ingest applies one feed line to the track store. It returns the decoded report and whether
// the line was accepted.
func (in *Ingestor) Ingest(line string, now time.Time) (Report, bool) {
	in.stats.Lines++

	frame, ok := ParseLine(line)
	if !ok || allZero(frame) {
		in.stats.Discarded++
		return Report{}, false
	}

	report, err := in.decoder.Decode(frame)
	if err != nil {
		in.stats.Discarded++
		in.logger.Debug("ingest: frame discarded", slog.String("line", strings.TrimSpace(line)), slog.Any("error", err))
		return Report{}, false
	}

	in.store.Apply(report, now)
	in.stats.Accepted++

	return report, true
}

// Discard counts lines the feed dropped before they reached Ingest.
func (in *Ingestor) Discard(n int) {
	if n <= 0 {
		return
	}

	in.stats.Lines += uint64(n)
	in.stats.Discarded += uint64(n)
	in.logger.Debug("ingest: overlong lines dropped", slog.Int("count", n))
}

// Forget drops any per-aircraft decoder state, if the decoder keeps some.
func (in *Ingestor) Forget(addrs []Address) {
	f, ok := in.decoder.(forgetter)
	if !ok {
		return
	}

	for _, addr := range addrs {
		f.Forget(addr)
	}
}

func (in *Ingestor) Stats() IngestStats {
	return in.stats
}
