package internal

import "math"

// coverageBucket is the grid size, in degrees, used when deduplicating coverage samples.
const coverageBucket = 0.001

// Coverage accumulates every resolved position seen during the session, independent of track
// pruning. Without dedup it grows for as long as the session runs.
type Coverage struct {
	samples []Point
	dedup   bool
	seen    map[[2]int64]struct{}
}

// NewCoverage creates an empty history. With dedup enabled only the first sample per
// coverageBucket grid cell is kept.
func NewCoverage(dedup bool) *Coverage {
	c := &Coverage{dedup: dedup}
	if dedup {
		c.seen = make(map[[2]int64]struct{})
	}

	return c
}

// Add appends one sample per position.
func (c *Coverage) Add(positions []Position) {
	for _, pos := range positions {
		point := pos.Point()
		if c.dedup {
			cell := [2]int64{
				int64(math.Floor(point.Latitude / coverageBucket)),
				int64(math.Floor(point.Longitude / coverageBucket)),
			}
			if _, ok := c.seen[cell]; ok {
				continue
			}
			c.seen[cell] = struct{}{}
		}
		c.samples = append(c.samples, point)
	}
}

// Samples returns the history. The slice must not be modified.
func (c *Coverage) Samples() []Point {
	return c.samples
}

func (c *Coverage) Len() int {
	return len(c.samples)
}
