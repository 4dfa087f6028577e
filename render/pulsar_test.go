package render

import (
	"image"
	"testing"
	"time"

	"github.com/matt-g-everett/pulsar/surface"
)

func TestPulsarFollowsSurfaceLifecycle(t *testing.T) {
	mem := surface.NewMemory()
	p, err := NewPulsar(DefaultConfig(), mem)
	if err != nil {
		t.Fatal(err)
	}
	mem.AddCallback(p)

	mem.Create(32, 32)
	if !p.Running() {
		t.Fatal("loop not running after create")
	}
	if g := p.Model().Geometry(); g.Center != image.Pt(16, 16) || g.EndSize != 16 {
		t.Errorf("geometry = %+v", g)
	}

	deadline := time.Now().Add(5 * time.Second)
	for mem.Presented() < 5 {
		if time.Now().After(deadline) {
			t.Fatalf("only %d frames presented", mem.Presented())
		}
		time.Sleep(5 * time.Millisecond)
	}

	mem.Destroy()
	if p.Running() {
		t.Fatal("loop still running after destroy")
	}
	n := mem.Presented()
	time.Sleep(50 * time.Millisecond)
	if mem.Presented() != n {
		t.Error("frames presented after destroy")
	}

	// A new surface gets a new loop.
	mem.Create(16, 16)
	if !p.Running() {
		t.Error("loop not restarted")
	}
	mem.Destroy()
}

func TestPulsarCreatedTwiceKeepsOneLoop(t *testing.T) {
	mem := surface.NewMemory()
	p, err := NewPulsar(DefaultConfig(), mem)
	if err != nil {
		t.Fatal(err)
	}

	p.OnCreated()
	first := p.loop
	p.OnCreated()
	if p.loop != first {
		t.Error("second OnCreated replaced the loop")
	}
	p.OnDestroyed()
	p.OnDestroyed()
}

func TestPulsarPreviewDoesNotAdvance(t *testing.T) {
	p, err := NewPulsar(DefaultConfig(), surface.NewMemory())
	if err != nil {
		t.Fatal(err)
	}
	p.OnResized(40, 40)
	p.Model().Step(1500)
	before, first := p.Model().Phases()

	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for i := 0; i < 3; i++ {
		if err := p.Preview(dst); err != nil {
			t.Fatal(err)
		}
	}

	after, afterFirst := p.Model().Phases()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("phase %d moved from %v to %v", i, before[i], after[i])
		}
	}
	if first != afterFirst {
		t.Errorf("offset moved from %d to %d", first, afterFirst)
	}
	if c := dst.RGBAAt(20, 20); c.A == 0 {
		t.Error("preview drew nothing at the center")
	}
}

func TestPulsarPreviewWithoutBuffer(t *testing.T) {
	p, err := NewPulsar(DefaultConfig(), surface.NewMemory())
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Preview(nil); err != ErrNoSurface {
		t.Errorf("err = %v, want ErrNoSurface", err)
	}
}

func TestNewPulsarRejectsBadConfig(t *testing.T) {
	c := DefaultConfig()
	c.Animation.Circles = 0
	if _, err := NewPulsar(c, surface.NewMemory()); err == nil {
		t.Error("expected error")
	}
}
