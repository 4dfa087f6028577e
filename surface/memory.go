package surface

import (
	"image"
	"sync"
)

// Memory is a double buffered RGBA surface held in memory.
type Memory struct {
	mu        sync.Mutex
	width     int
	height    int
	front     *image.RGBA
	back      *image.RGBA
	acquired  bool
	presented uint64
	callbacks []Callback
}

// NewMemory creates a Memory surface. It has no buffers until Create is called.
func NewMemory() *Memory {
	m := new(Memory)
	return m
}

// AddCallback registers c for lifecycle notifications.
func (m *Memory) AddCallback(c Callback) {
	m.mu.Lock()
	m.callbacks = append(m.callbacks, c)
	m.mu.Unlock()
}

func (m *Memory) listeners() []Callback {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Callback, len(m.callbacks))
	copy(out, m.callbacks)
	return out
}

func (m *Memory) allocate(width, height int) {
	m.width = width
	m.height = height
	m.front = image.NewRGBA(image.Rect(0, 0, width, height))
	m.back = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Create allocates the buffers and notifies OnCreated followed by OnResized.
func (m *Memory) Create(width, height int) {
	m.mu.Lock()
	m.allocate(width, height)
	m.acquired = false
	m.mu.Unlock()

	for _, c := range m.listeners() {
		c.OnCreated()
		c.OnResized(width, height)
	}
}

// Resize reallocates the buffers and notifies OnResized.
func (m *Memory) Resize(width, height int) {
	m.mu.Lock()
	if m.front == nil {
		m.mu.Unlock()
		return
	}
	m.allocate(width, height)
	m.mu.Unlock()

	for _, c := range m.listeners() {
		c.OnResized(width, height)
	}
}

// Destroy notifies OnDestroyed and then releases the buffers.
func (m *Memory) Destroy() {
	// Callbacks run unlocked so a render loop blocked in Acquire can finish.
	for _, c := range m.listeners() {
		c.OnDestroyed()
	}

	m.mu.Lock()
	m.front = nil
	m.back = nil
	m.acquired = false
	m.mu.Unlock()
}

// Size returns the surface dimensions.
func (m *Memory) Size() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width, m.height
}

// Acquire returns the back buffer if the surface exists and nobody else holds it.
func (m *Memory) Acquire() (*image.RGBA, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.back == nil || m.acquired {
		return nil, false
	}
	m.acquired = true
	return m.back, true
}

// Valid reports whether the surface has buffers.
func (m *Memory) Valid() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.back != nil
}

// Present swaps buf to the front. A buffer from before a resize is released
// without being shown.
func (m *Memory) Present(buf *image.RGBA) error {
	_, err := m.swap(buf)
	return err
}

// swap releases buf and reports whether it became the front buffer.
func (m *Memory) swap(buf *image.RGBA) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.acquired {
		return false, ErrNotAcquired
	}
	m.acquired = false

	if buf != m.back {
		return false, nil
	}
	m.front, m.back = m.back, m.front
	m.presented++

	return true, nil
}

// Release gives buf back without showing it.
func (m *Memory) Release(buf *image.RGBA) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.acquired {
		return ErrNotAcquired
	}
	m.acquired = false
	return nil
}

// Presented returns the number of frames shown so far.
func (m *Memory) Presented() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.presented
}

// Snapshot copies the front buffer.
func (m *Memory) Snapshot() (*image.RGBA, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.front == nil {
		return nil, false
	}
	out := image.NewRGBA(m.front.Rect)
	copy(out.Pix, m.front.Pix)
	return out, true
}
