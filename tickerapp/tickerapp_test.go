package tickerapp

import (
	"bytes"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/micutio/airradar/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// closingFeed hands out its lines, then reports the connection as closed.
type closingFeed struct {
	lines []string
	open  bool
}

func (f *closingFeed) ReadLine() (string, error) {
	if len(f.lines) > 0 {
		line := f.lines[0]
		f.lines = f.lines[1:]

		return line, nil
	}

	if f.open {
		return "", internal.ErrNoData
	}

	return "", internal.ErrFeedClosed
}

type velocityDecoder struct{}

func (velocityDecoder) Decode([]byte) (internal.Report, error) {
	return internal.Report{
		Kind:     internal.KindVelocity,
		Address:  0x3C6586,
		Velocity: internal.Velocity{Speed: 412, VerticalRate: 1024},
	}, nil
}

func testConfig() internal.Config {
	return internal.Config{
		Home:    internal.Point{Latitude: 50.03, Longitude: 8.57},
		Stale:   internal.DefaultStaleThreshold,
		Batch:   internal.DefaultBatch,
		Tick:    time.Millisecond,
		Summary: time.Hour,
	}
}

func TestLoopEndsWhenFeedCloses(t *testing.T) {
	var out bytes.Buffer

	cfg := testConfig()
	session := internal.NewSession(cfg, &closingFeed{}, velocityDecoder{}, nil, nil)

	reason := loop(cfg, session, newPrinter(&out), make(chan os.Signal))

	assert.Equal(t, internal.QuitFeedClosed, reason)
}

func TestLoopEndsOnSignal(t *testing.T) {
	var out bytes.Buffer

	cfg := testConfig()
	session := internal.NewSession(cfg, &closingFeed{open: true}, velocityDecoder{}, nil, nil)

	stop := make(chan os.Signal, 1)
	stop <- syscall.SIGTERM

	reason := loop(cfg, session, newPrinter(&out), stop)

	assert.Equal(t, internal.QuitUser, reason)
}

func TestPrintStep(t *testing.T) {
	var out bytes.Buffer

	cfg := testConfig()
	session := internal.NewSession(cfg, &closingFeed{lines: []string{"*8D3C6586;\n"}, open: true}, velocityDecoder{}, nil, nil)
	p := newPrinter(&out)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p.PrintStep(session.Store(), session.Step(now))
	assert.Contains(t, out.String(), "new aircraft: ICAO 3C6586")

	out.Reset()
	p.PrintStep(session.Store(), session.Step(now.Add(2*internal.DefaultStaleThreshold)))
	assert.Equal(t, "lost aircraft: ICAO 3C6586\n", out.String())
}

func TestPrintSummary(t *testing.T) {
	var out bytes.Buffer

	tracks := []internal.Track{
		{
			Address:  0x3C6586,
			Callsign: "DLH4AB",
			Velocity: &internal.Velocity{Speed: 412},
			Position: &internal.Position{Latitude: 50.1, Longitude: 8.6, Altitude: 36000},
		},
		{Address: 0x4840D6},
	}

	newPrinter(&out).PrintSummary(internal.Summarize(tracks, testConfig().Home))

	lines := out.String()
	require.NotEmpty(t, lines)
	assert.Contains(t, lines, "=== Summary ===")
	assert.Contains(t, lines, "Tracks: 2, with position: 1")
	assert.Contains(t, lines, "     1 - DLHAB")
	assert.Contains(t, lines, "Closest Aircraft:\nICAO 3C6586")
	assert.Contains(t, lines, " km (")
	assert.Contains(t, lines, "=== End Summary ===")
}

func TestPrintSummaryEmpty(t *testing.T) {
	var out bytes.Buffer

	newPrinter(&out).PrintSummary(internal.Summarize(nil, testConfig().Home))

	assert.Contains(t, out.String(), "Fastest Aircraft:\n-\n")
}
