package pulse

import "github.com/matt-g-everett/pulsar/util"

// A PhaseSet is a fixed size ring of circle phases. Phases at or below zero
// belong to circles that have not started yet, positive phases are the
// visible fraction of a pulse cycle.
type PhaseSet struct {
	phases []float64
	first  int
}

// NewPhaseSet creates a ring of count phases staggered by 1/count of a cycle.
func NewPhaseSet(count int) *PhaseSet {
	if count < 0 {
		count = 0
	}

	s := new(PhaseSet)
	s.phases = make([]float64, count)
	for i := 0; i < count; i++ {
		s.phases[i] = -float64(i) / float64(count)
	}
	s.first = 0

	return s
}

// Len returns the number of circles in the ring.
func (s *PhaseSet) Len() int {
	return len(s.phases)
}

// First returns the ring slot holding the oldest circle.
func (s *PhaseSet) First() int {
	return s.first
}

// Phases returns a copy of the ring in storage order.
func (s *PhaseSet) Phases() []float64 {
	out := make([]float64, len(s.phases))
	copy(out, s.phases)
	return out
}

// Progress converts elapsed milliseconds into a fraction of a cycle.
func Progress(elapsedMs int64, cycleSeconds float64) float64 {
	if elapsedMs <= 0 || cycleSeconds <= 0 {
		return 0
	}
	return float64(elapsedMs) / 1000.0 / cycleSeconds
}

// Advance moves every circle forward by elapsedMs and returns the phases that
// were visible before the move, oldest first. A circle that passes the end of
// its cycle wraps around and the oldest slot moves on by one.
func (s *PhaseSet) Advance(elapsedMs int64, cycleSeconds float64) []float64 {
	n := len(s.phases)
	if n == 0 {
		return nil
	}

	progress := Progress(elapsedMs, cycleSeconds)
	visible := make([]float64, 0, n)
	start := s.first
	for i := start; i < start+n; i++ {
		index := i % n
		phase := s.phases[index]
		if phase > 0 {
			visible = append(visible, phase)
		}

		phase += progress
		if phase > 1.0 {
			phase -= 1.0
			s.first = (s.first + 1) % n
		}
		s.phases[index] = phase
	}

	return visible
}

// RenderParams returns the alpha and radius of a circle at phase. Circles at
// or below phase zero are not visible.
func RenderParams(phase, startSize, endSize float64) (alpha uint8, radius float64, visible bool) {
	if phase <= 0 {
		return 0, startSize, false
	}

	alpha = uint8(255.0 * util.Clamp01(1.0-phase))
	return alpha, startSize + (endSize-startSize)*phase, true
}
