// Package mqttsink publishes keyword detections to an MQTT broker.
package mqttsink

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/obinnaokechukwu/snowgo"
	"github.com/obinnaokechukwu/snowgo/internal/config"
)

const (
	connectTimeout    = 10 * time.Second
	publishTimeout    = 5 * time.Second
	disconnectQuiesce = 250 // milliseconds
)

var (
	// ErrConnectionFailed is returned when the broker cannot be reached.
	ErrConnectionFailed = errors.New("mqttsink: connection failed")

	// ErrPublishFailed is returned when a detection could not be delivered.
	ErrPublishFailed = errors.New("mqttsink: publish failed")

	// ErrInvalidTopic is returned for an empty topic.
	ErrInvalidTopic = errors.New("mqttsink: topic cannot be empty")

	// ErrInvalidQoS is returned for a QoS outside 0..2.
	ErrInvalidQoS = errors.New("mqttsink: invalid QoS level (must be 0, 1, or 2)")
)

// client is the subset of pahomqtt.Client the sink uses.
type client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) pahomqtt.Token
	Disconnect(quiesce uint)
}

// Sink publishes listener events as JSON.
type Sink struct {
	client client
	topic  string
	qos    byte
	log    *slog.Logger
}

// Connect dials the broker described by cfg.
func Connect(cfg config.MQTTConfig, log *slog.Logger) (*Sink, error) {
	if err := validate(cfg.Topic, cfg.QoS); err != nil {
		return nil, err
	}

	opts := pahomqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout).
		SetCleanSession(true)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	c := pahomqtt.NewClient(opts)
	token := c.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, connectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	return newSink(c, cfg.Topic, byte(cfg.QoS), log), nil
}

func newSink(c client, topic string, qos byte, log *slog.Logger) *Sink {
	if log == nil {
		log = snowgo.Logger()
	}
	return &Sink{
		client: c,
		topic:  topic,
		qos:    qos,
		log:    log.With("component", "mqttsink"),
	}
}

func validate(topic string, qos int) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if qos < 0 || qos > 2 {
		return fmt.Errorf("%w: got %d", ErrInvalidQoS, qos)
	}
	return nil
}

// Payload encodes an event for the wire.
func Payload(ev snowgo.Event) ([]byte, error) {
	return json.Marshal(ev)
}

// Publish sends ev to the configured topic and waits for delivery.
func (s *Sink) Publish(ev snowgo.Event) error {
	payload, err := Payload(ev)
	if err != nil {
		return fmt.Errorf("%w: encoding event: %w", ErrPublishFailed, err)
	}

	token := s.client.Publish(s.topic, s.qos, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, publishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}
	return nil
}

// Handler adapts the sink to a listener event handler. Publish errors are
// logged rather than stopping the listener.
func (s *Sink) Handler() snowgo.EventHandler {
	return func(ev snowgo.Event) {
		if err := s.Publish(ev); err != nil {
			s.log.Warn("publishing detection", "topic", s.topic, "error", err)
		}
	}
}

// Close disconnects from the broker.
func (s *Sink) Close() {
	s.client.Disconnect(disconnectQuiesce)
}
