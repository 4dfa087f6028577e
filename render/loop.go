package render

import (
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/matt-g-everett/pulsar/surface"
)

// ErrLoopStarted is returned when starting a Loop more than once.
var ErrLoopStarted = errors.New("render: loop already started")

// State is the lifecycle stage of a Loop.
type State int32

const (
	Idle State = iota
	Running
	StopRequested
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case StopRequested:
		return "stop requested"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// Loop draws a Scene onto a surface from its own goroutine, pacing frames to
// a target interval. Presenting is part of the frame, so a surface that is
// slow to present shortens the pacing sleep and may lower the frame rate.
type Loop struct {
	provider surface.Provider
	scene    Scene
	interval time.Duration

	// OnStats, when set before Start, receives every timing report.
	OnStats func(Stats)

	state    atomic.Int32
	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	lastFrame time.Time
	counter   frameCounter
}

// NewLoop creates a Loop drawing scene onto provider.
func NewLoop(provider surface.Provider, scene Scene, config LoopConfig) *Loop {
	l := new(Loop)
	l.provider = provider
	l.scene = scene
	l.interval = config.Interval()
	l.counter.period = config.ReportFrames
	if l.counter.period < 1 {
		l.counter.period = 1
	}
	l.quit = make(chan struct{})
	l.done = make(chan struct{})
	return l
}

// State returns the current lifecycle stage.
func (l *Loop) State() State {
	return State(l.state.Load())
}

// Start launches the render goroutine. A Loop can only be started once.
func (l *Loop) Start() error {
	if !l.state.CompareAndSwap(int32(Idle), int32(Running)) {
		return ErrLoopStarted
	}

	go l.run()
	return nil
}

// Stop asks the render goroutine to finish and waits until it has. Nothing
// touches the surface once Stop returns.
func (l *Loop) Stop() {
	for {
		s := l.State()
		if s == Idle {
			return
		}
		if s != Running || l.state.CompareAndSwap(int32(Running), int32(StopRequested)) {
			break
		}
	}

	l.stopOnce.Do(func() { close(l.quit) })
	<-l.done
}

func (l *Loop) run() {
	defer close(l.done)
	defer l.state.Store(int32(Stopped))

	for l.State() == Running {
		l.frame()
	}
}

func (l *Loop) frame() {
	timeStarted := time.Now()
	painted := l.paint(timeStarted)
	l.lastFrame = timeStarted

	// Framerate
	frameDuration := time.Since(timeStarted)
	if frameDuration < l.interval {
		l.sleep(l.interval - frameDuration)
	}

	if s, ok := l.counter.add(frameDuration, painted); ok {
		log.Printf("Avg drawing time = %v over %d frames (%d skipped)", s.Mean, s.Frames, s.Skipped)
		if l.OnStats != nil {
			l.OnStats(s)
		}
	}
}

// paint draws one frame if the surface has a buffer for it. A drawn buffer
// is always presented, even if drawing fails. A buffer acquired from an
// invalid surface is released unpainted.
func (l *Loop) paint(timeStarted time.Time) bool {
	buf, ok := l.provider.Acquire()
	if !ok {
		return false
	}
	if !l.provider.Valid() {
		if err := l.provider.Release(buf); err != nil {
			log.Printf("Release failed: %v", err)
		}
		return false
	}
	defer func() {
		if err := l.provider.Present(buf); err != nil {
			log.Printf("Present failed: %v", err)
		}
	}()

	var elapsedMs int64
	if !l.lastFrame.IsZero() {
		elapsedMs = timeStarted.Sub(l.lastFrame).Milliseconds()
	}
	if err := l.scene.Draw(buf, elapsedMs); err != nil {
		log.Printf("Draw failed: %v", err)
	}

	return true
}

// sleep waits for d or until Stop is called.
func (l *Loop) sleep(d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
	case <-l.quit:
	}
}
