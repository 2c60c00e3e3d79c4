package internal

import (
	"cmp"
	"slices"
)

// PropertyCount is how many live tracks share one property value.
type PropertyCount struct {
	Property string
	Count    int
}

// SortedCounts orders counts from least to most common, ties by name.
func SortedCounts(counts map[string]int) []PropertyCount {
	sorted := make([]PropertyCount, 0, len(counts))
	for property, count := range counts {
		sorted = append(sorted, PropertyCount{Property: property, Count: count})
	}

	slices.SortFunc(sorted, func(a, b PropertyCount) int {
		return cmp.Or(cmp.Compare(a.Count, b.Count), cmp.Compare(a.Property, b.Property))
	})

	return sorted
}

// Summary condenses the live tracks into a few highlights.
type Summary struct {
	Tracks    int
	Resolved  int
	Highest   *Track
	Fastest   *Track
	Closest   *Track
	Distance  DistanceStruct // of Closest from home
	Direction string         // of Closest from home
	Operators []PropertyCount
}

// Summarize computes the highlights relative to home. Tracks without the relevant data are
// skipped for each highlight.
func Summarize(tracks []Track, home Point) Summary {
	summary := Summary{Tracks: len(tracks)}
	operators := make(map[string]int)

	for i := range tracks {
		track := &tracks[i]
		operators[track.OperatorCode()]++

		if track.Velocity != nil && (summary.Fastest == nil || track.Velocity.Speed > summary.Fastest.Velocity.Speed) {
			summary.Fastest = track
		}

		if track.Position == nil {
			continue
		}

		summary.Resolved++

		if summary.Highest == nil || track.Position.Altitude > summary.Highest.Position.Altitude {
			summary.Highest = track
		}

		distance := Distance(home, track.Position.Point())
		if summary.Closest == nil || distance.Kilometers() < summary.Distance.Kilometers() {
			summary.Closest = track
			summary.Distance = distance
			summary.Direction = Direction(home, track.Position.Point())
		}
	}

	summary.Operators = SortedCounts(operators)

	return summary
}
