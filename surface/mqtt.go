package surface

import (
	"image"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
)

// Mqtt is a Memory surface that publishes every presented frame over MQTT.
type Mqtt struct {
	*Memory
	client     mqtt.Client
	topic      string
	qos        byte
	brightness float64
	timeout    time.Duration
}

// NewMqtt creates an Mqtt surface publishing to topic.
func NewMqtt(client mqtt.Client, topic string, qos byte, brightness float64, timeout time.Duration) *Mqtt {
	s := new(Mqtt)
	s.Memory = NewMemory()
	s.client = client
	s.topic = topic
	s.qos = qos
	s.brightness = brightness
	s.timeout = timeout
	return s
}

// Valid reports whether the surface exists and the broker connection is up.
func (s *Mqtt) Valid() bool {
	return s.Memory.Valid() && s.client.IsConnectionOpen()
}

// Present shows buf and sends it to the device. A buffer from before a
// resize is released without being sent.
func (s *Mqtt) Present(buf *image.RGBA) error {
	shown, err := s.Memory.swap(buf)
	if err != nil || !shown {
		return err
	}

	b := EncodeFrame(buf, s.brightness)
	token := s.client.Publish(s.topic, s.qos, false, b)
	if !token.WaitTimeout(s.timeout) {
		return ErrPublishTimeout
	}
	return token.Error()
}
