package render

import "time"

// Stats summarises a run of frames. Mean is the average time spent on a
// frame before pacing.
type Stats struct {
	Frames  int           `json:"frames"`
	Painted int           `json:"painted"`
	Skipped int           `json:"skipped"`
	Mean    time.Duration `json:"meanNs"`
}

type frameCounter struct {
	period  int
	frames  int
	painted int
	total   time.Duration
}

// add records a frame and returns a report once every period frames.
func (c *frameCounter) add(d time.Duration, painted bool) (Stats, bool) {
	c.frames++
	c.total += d
	if painted {
		c.painted++
	}

	if c.frames < c.period {
		return Stats{}, false
	}

	s := Stats{
		Frames:  c.frames,
		Painted: c.painted,
		Skipped: c.frames - c.painted,
		Mean:    c.total / time.Duration(c.frames),
	}
	c.frames = 0
	c.painted = 0
	c.total = 0

	return s, true
}
