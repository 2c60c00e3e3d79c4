package tickerapp

import (
	"io"
	"log" //nolint:depguard // Don't feel like using slog

	"github.com/micutio/airradar/internal"
)

// printer writes track events and summaries as plain lines, one event per line.
type printer struct {
	Stdout *log.Logger
}

func newPrinter(consoleOut io.Writer) *printer {
	return &printer{
		Stdout: log.New(consoleOut, "", 0),
	}
}

// PrintStep lists the tracks that appeared and disappeared in one iteration.
func (p *printer) PrintStep(store *internal.TrackStore, result internal.StepResult) {
	for _, addr := range result.Created {
		if track, ok := store.Get(addr); ok {
			p.Stdout.Printf("new aircraft: %s\n", internal.TrackToString(track))
		}
	}

	for _, addr := range result.Removed {
		p.Stdout.Printf("lost aircraft: ICAO %s\n", addr)
	}
}

// PrintSummary prints the highest, fastest and closest aircraft and the operator rarities.
func (p *printer) PrintSummary(summary internal.Summary) {
	p.Stdout.Println("=== Summary ===")
	p.Stdout.Printf("Tracks: %d, with position: %d\n", summary.Tracks, summary.Resolved)
	p.listByRarity("operator", summary.Operators)
	p.printTrack("Fastest Aircraft:", summary.Fastest)
	p.printTrack("Highest Aircraft:", summary.Highest)
	p.printTrack("Closest Aircraft:", summary.Closest)
	if summary.Closest != nil {
		p.Stdout.Printf("%.1f km (%.1f NM) %s\n",
			summary.Distance.Kilometers(),
			summary.Distance.NauticalMiles(),
			summary.Direction)
	}
	p.Stdout.Println("=== End Summary ===")
}

func (p *printer) printTrack(heading string, track *internal.Track) {
	p.Stdout.Println(heading)
	if track == nil {
		p.Stdout.Println("-")
		return
	}

	p.Stdout.Println(internal.TrackToString(*track))
}

func (p *printer) listByRarity(propertyName string, counts []internal.PropertyCount) {
	p.Stdout.Printf("Rarity from least to most common %s\n", propertyName)
	for _, count := range counts {
		p.Stdout.Printf("%6d - %s\n", count.Count, count.Property)
	}
}
