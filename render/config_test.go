package render

import (
	"image/color"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	if c.Animation.Circles != 3 || c.Animation.CycleSeconds != 3.0 {
		t.Errorf("animation = %+v", c.Animation)
	}
	if c.Loop.Interval() != 16*time.Millisecond || c.Loop.ReportFrames != 60 {
		t.Errorf("loop = %+v", c.Loop)
	}
}

func TestReadConfig(t *testing.T) {
	c, err := ReadConfig(strings.NewReader(`
animation:
  circles: 5
  cycleSeconds: 1.5
  easing: outQuad
  colour: "#ff0000"
  background: "#000010"
loop:
  frameIntervalMs: 33
surface:
  width: 30
  height: 20
  brightness: 0.25
mqtt:
  url: tcp://localhost:1883
  topic: home/xmastree/stream
  qos: 1
`))
	if err != nil {
		t.Fatal(err)
	}

	if c.Animation.Circles != 5 || c.Animation.CycleSeconds != 1.5 || c.Animation.Easing != "outQuad" {
		t.Errorf("animation = %+v", c.Animation)
	}
	if c.Loop.FrameIntervalMs != 33 || c.Loop.ReportFrames != 60 {
		t.Errorf("loop = %+v", c.Loop)
	}
	if c.Surface.Width != 30 || c.Surface.Height != 20 || c.Surface.Brightness != 0.25 {
		t.Errorf("surface = %+v", c.Surface)
	}
	if c.Mqtt.URL != "tcp://localhost:1883" || c.Mqtt.Qos != 1 || c.Mqtt.ClientID != "pulsar" {
		t.Errorf("mqtt = %+v", c.Mqtt)
	}

	circle, background, err := c.Animation.Colours()
	if err != nil {
		t.Fatal(err)
	}
	if circle != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Errorf("circle = %v", circle)
	}
	if background != (color.RGBA{B: 0x10, A: 0xff}) {
		t.Errorf("background = %v", background)
	}
}

func TestReadConfigEmpty(t *testing.T) {
	c, err := ReadConfig(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if c != DefaultConfig() {
		t.Errorf("empty config = %+v", c)
	}

	_, background, err := c.Animation.Colours()
	if err != nil {
		t.Fatal(err)
	}
	if background != (color.RGBA{}) {
		t.Errorf("default background = %v, want transparent", background)
	}
}

func TestReadConfigRejects(t *testing.T) {
	tests := map[string]string{
		"unknown key":    "animation:\n  circels: 3\n",
		"no circles":     "animation:\n  circles: 0\n",
		"zero cycle":     "animation:\n  cycleSeconds: 0\n",
		"bad easing":     "animation:\n  easing: wobble\n",
		"bad colour":     "animation:\n  colour: white\n",
		"bad background": "animation:\n  background: \"#zz\"\n",
		"zero interval":  "loop:\n  frameIntervalMs: 0\n",
		"zero report":    "loop:\n  reportFrames: 0\n",
		"no width":       "surface:\n  width: 0\n",
		"too bright":     "surface:\n  brightness: 2\n",
		"bad qos":        "mqtt:\n  qos: 3\n",
		"not yaml":       "animation: [",
	}

	for name, doc := range tests {
		if _, err := ReadConfig(strings.NewReader(doc)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("does/not/exist.yaml"); err == nil {
		t.Error("expected error")
	}
}
