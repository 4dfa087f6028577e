package pulse

import (
	"image"
	"sync"
)

// StartRatio is the radius a circle starts at, relative to its end radius.
const StartRatio = 0.2

// Geometry is the placement of the circles on a surface.
type Geometry struct {
	Center    image.Point
	StartSize float64
	EndSize   float64
}

// NewGeometry derives the circle placement from the surface size.
func NewGeometry(width, height int) Geometry {
	smallest := width
	if height < smallest {
		smallest = height
	}
	radius := float64(smallest) / 2.0

	return Geometry{
		Center:    image.Pt(width/2, height/2),
		StartSize: radius * StartRatio,
		EndSize:   radius,
	}
}

// Circle is a single circle ready to paint.
type Circle struct {
	Alpha  uint8
	Radius float64
}

// Frame is everything needed to paint one frame.
type Frame struct {
	Center  image.Point
	Circles []Circle
}

// Easing maps linear progress in [0, 1] onto a curve.
type Easing func(t float64) float64

// Model is a PhaseSet and Geometry that can be shared between the render
// loop and preview draws.
type Model struct {
	mu           sync.Mutex
	set          *PhaseSet
	geometry     Geometry
	cycleSeconds float64
	easing       Easing
}

// NewModel creates a Model of count circles that pulse once per cycleSeconds.
// A nil easing grows the radius linearly.
func NewModel(count int, cycleSeconds float64, easing Easing) *Model {
	m := new(Model)
	m.set = NewPhaseSet(count)
	m.cycleSeconds = cycleSeconds
	m.easing = easing
	return m
}

// Resize recomputes the geometry for a new surface size.
func (m *Model) Resize(width, height int) {
	m.mu.Lock()
	m.geometry = NewGeometry(width, height)
	m.mu.Unlock()
}

// Geometry returns the current geometry.
func (m *Model) Geometry() Geometry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.geometry
}

// Phases returns a copy of the phase ring and its rotation offset.
func (m *Model) Phases() ([]float64, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.set.Phases(), m.set.First()
}

// Step advances the animation by elapsedMs and returns the frame to paint.
// A zero elapsedMs paints the current state without changing it.
func (m *Model) Step(elapsedMs int64) Frame {
	m.mu.Lock()
	defer m.mu.Unlock()

	visible := m.set.Advance(elapsedMs, m.cycleSeconds)
	f := Frame{Center: m.geometry.Center}
	if len(visible) == 0 {
		return f
	}

	f.Circles = make([]Circle, 0, len(visible))
	for _, phase := range visible {
		alpha, radius, _ := RenderParams(phase, m.geometry.StartSize, m.geometry.EndSize)
		if m.easing != nil {
			radius = m.geometry.StartSize + (m.geometry.EndSize-m.geometry.StartSize)*m.easing(phase)
		}
		f.Circles = append(f.Circles, Circle{Alpha: alpha, Radius: radius})
	}

	return f
}
