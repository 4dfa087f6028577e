package render

import (
	"errors"
	"image"
	"log"
	"sync"

	"github.com/matt-g-everett/pulsar/pulse"
	"github.com/matt-g-everett/pulsar/surface"
	"github.com/matt-g-everett/pulsar/util"
)

// ErrNoSurface is returned when there is nothing to draw on.
var ErrNoSurface = errors.New("render: no surface")

// pulseScene paints a pulse.Model.
type pulseScene struct {
	model   *pulse.Model
	painter *Painter
}

func (s *pulseScene) Draw(dst *image.RGBA, elapsedMs int64) error {
	if dst == nil {
		return ErrNoSurface
	}
	s.painter.Paint(dst, s.model.Step(elapsedMs))
	return nil
}

// Pulsar animates pulsing circles on a surface. It follows the surface
// lifecycle: a render loop runs from OnCreated until OnDestroyed.
type Pulsar struct {
	config   Config
	provider surface.Provider
	model    *pulse.Model
	scene    *pulseScene

	mu   sync.Mutex
	loop *Loop

	statsMu sync.Mutex
	stats   Stats
}

// NewPulsar creates a Pulsar drawing onto provider.
func NewPulsar(config Config, provider surface.Provider) (*Pulsar, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	easing, err := util.Easing(config.Animation.Easing)
	if err != nil {
		return nil, err
	}
	colour, background, err := config.Animation.Colours()
	if err != nil {
		return nil, err
	}

	p := new(Pulsar)
	p.config = config
	p.provider = provider
	p.model = pulse.NewModel(config.Animation.Circles, config.Animation.CycleSeconds, easing)
	p.scene = &pulseScene{model: p.model, painter: NewPainter(colour, background)}

	return p, nil
}

// Model returns the animation state.
func (p *Pulsar) Model() *pulse.Model {
	return p.model
}

// OnCreated starts the render loop.
func (p *Pulsar) OnCreated() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.loop != nil {
		return
	}

	l := NewLoop(p.provider, p.scene, p.config.Loop)
	l.OnStats = p.setStats
	if err := l.Start(); err != nil {
		log.Printf("Render loop failed to start: %v", err)
		return
	}
	p.loop = l
	log.Println("Render loop started")
}

// OnResized recentres the circles for the new surface size.
func (p *Pulsar) OnResized(width, height int) {
	p.model.Resize(width, height)
	log.Printf("Surface resized to %dx%d", width, height)
}

// OnDestroyed stops the render loop and waits for it to finish.
func (p *Pulsar) OnDestroyed() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.loop == nil {
		return
	}
	p.loop.Stop()
	p.loop = nil
	log.Println("Render loop stopped")
}

// Running reports whether the render loop is active.
func (p *Pulsar) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loop != nil && p.loop.State() == Running
}

// Preview draws the current state into dst without advancing the animation.
// It does not need the render loop.
func (p *Pulsar) Preview(dst *image.RGBA) error {
	return p.scene.Draw(dst, 0)
}

// Stats returns the most recent timing report.
func (p *Pulsar) Stats() Stats {
	p.statsMu.Lock()
	defer p.statsMu.Unlock()
	return p.stats
}

func (p *Pulsar) setStats(s Stats) {
	p.statsMu.Lock()
	p.stats = s
	p.statsMu.Unlock()
}
