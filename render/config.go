package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/pulsar/util"
	"gopkg.in/yaml.v2"
)

// AnimationConfig describes the circles. Colours are hex strings; an empty
// Background clears to transparent.
type AnimationConfig struct {
	Circles      int     `yaml:"circles"`
	CycleSeconds float64 `yaml:"cycleSeconds"`
	Easing       string  `yaml:"easing"`
	Colour       string  `yaml:"colour"`
	Background   string  `yaml:"background"`
}

// LoopConfig describes frame pacing and reporting.
type LoopConfig struct {
	FrameIntervalMs int `yaml:"frameIntervalMs"`
	ReportFrames    int `yaml:"reportFrames"`
}

// SurfaceConfig describes the drawing surface.
type SurfaceConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Brightness float64 `yaml:"brightness"`
}

// MqttConfig describes the broker frames are published to.
type MqttConfig struct {
	URL              string `yaml:"url"`
	Username         string `yaml:"username"`
	Password         string `yaml:"password"`
	ClientID         string `yaml:"clientId"`
	Topic            string `yaml:"topic"`
	Qos              byte   `yaml:"qos"`
	PublishTimeoutMs int    `yaml:"publishTimeoutMs"`
}

// HTTPConfig describes the preview server.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// Config is the complete application configuration.
type Config struct {
	Animation AnimationConfig `yaml:"animation"`
	Loop      LoopConfig      `yaml:"loop"`
	Surface   SurfaceConfig   `yaml:"surface"`
	Mqtt      MqttConfig      `yaml:"mqtt"`
	HTTP      HTTPConfig      `yaml:"http"`
}

// DefaultConfig returns three white circles pulsing every three seconds at
// roughly 60 frames per second.
func DefaultConfig() Config {
	var c Config
	c.Animation.Circles = 3
	c.Animation.CycleSeconds = 3.0
	c.Animation.Easing = "linear"
	c.Animation.Colour = "#ffffff"
	c.Loop.FrameIntervalMs = 16
	c.Loop.ReportFrames = 60
	c.Surface.Width = 64
	c.Surface.Height = 64
	c.Surface.Brightness = 1.0
	c.Mqtt.ClientID = "pulsar"
	c.Mqtt.Topic = "home/pulsar/stream"
	c.Mqtt.PublishTimeoutMs = 100
	c.HTTP.Addr = ":3000"
	return c
}

// LoadConfig reads a YAML file over the defaults.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	return ReadConfig(f)
}

// ReadConfig decodes YAML from r over the defaults and validates the result.
// Unknown keys are rejected.
func ReadConfig(r io.Reader) (Config, error) {
	c := DefaultConfig()

	decoder := yaml.NewDecoder(r)
	decoder.SetStrict(true)
	if err := decoder.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks that every value is usable.
func (c Config) Validate() error {
	if c.Animation.Circles < 1 {
		return fmt.Errorf("animation.circles must be at least 1, got %d", c.Animation.Circles)
	}
	if c.Animation.CycleSeconds <= 0 {
		return fmt.Errorf("animation.cycleSeconds must be positive, got %v", c.Animation.CycleSeconds)
	}
	if _, err := util.Easing(c.Animation.Easing); err != nil {
		return fmt.Errorf("animation.easing: %w", err)
	}
	if _, _, err := c.Animation.Colours(); err != nil {
		return err
	}
	if c.Loop.FrameIntervalMs < 1 {
		return fmt.Errorf("loop.frameIntervalMs must be at least 1, got %d", c.Loop.FrameIntervalMs)
	}
	if c.Loop.ReportFrames < 1 {
		return fmt.Errorf("loop.reportFrames must be at least 1, got %d", c.Loop.ReportFrames)
	}
	if c.Surface.Width < 1 || c.Surface.Height < 1 || c.Surface.Width > 0xffff || c.Surface.Height > 0xffff {
		return fmt.Errorf("surface size %dx%d out of range", c.Surface.Width, c.Surface.Height)
	}
	if c.Surface.Brightness < 0 || c.Surface.Brightness > 1 {
		return fmt.Errorf("surface.brightness must be within [0, 1], got %v", c.Surface.Brightness)
	}
	if c.Mqtt.Qos > 2 {
		return fmt.Errorf("mqtt.qos must be 0, 1 or 2, got %d", c.Mqtt.Qos)
	}
	return nil
}

// Colours parses the circle and background colours.
func (c AnimationConfig) Colours() (circle, background color.RGBA, err error) {
	fore, err := colorful.Hex(c.Colour)
	if err != nil {
		return circle, background, fmt.Errorf("animation.colour: %w", err)
	}
	circle = color.RGBAModel.Convert(fore).(color.RGBA)

	if c.Background == "" {
		return circle, color.RGBA{}, nil
	}
	back, err := colorful.Hex(c.Background)
	if err != nil {
		return circle, background, fmt.Errorf("animation.background: %w", err)
	}
	background = color.RGBAModel.Convert(back).(color.RGBA)

	return circle, background, nil
}

// Interval returns the target time between frames.
func (c LoopConfig) Interval() time.Duration {
	return time.Duration(c.FrameIntervalMs) * time.Millisecond
}

// PublishTimeout returns how long to wait for a frame to be delivered.
func (c MqttConfig) PublishTimeout() time.Duration {
	return time.Duration(c.PublishTimeoutMs) * time.Millisecond
}
