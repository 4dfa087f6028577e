// Package surface defines the drawable surface the render loop paints on and
// provides in-memory and MQTT backed implementations of it.
package surface

import (
	"errors"
	"image"
)

var (
	// ErrNotAcquired is returned when presenting a buffer that was never acquired.
	ErrNotAcquired = errors.New("surface: buffer not acquired")
	// ErrPublishTimeout is returned when a frame is not delivered in time.
	ErrPublishTimeout = errors.New("surface: publish timed out")
)

// A Callback is told about the lifecycle of a surface.
type Callback interface {
	OnCreated()
	OnResized(width, height int)
	// OnDestroyed must not return until nothing draws on the surface any more.
	OnDestroyed()
}

// A Provider hands out exclusive drawable buffers and presents them.
type Provider interface {
	// Acquire locks the back buffer for drawing. It reports false when no
	// buffer is available.
	Acquire() (*image.RGBA, bool)
	Valid() bool
	// Present releases an acquired buffer and shows it.
	Present(buf *image.RGBA) error
	// Release gives an acquired buffer back without showing it.
	Release(buf *image.RGBA) error
}
