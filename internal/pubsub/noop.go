package pubsub

import "github.com/charmbracelet/log"

// Noop drops every event after logging it.
type Noop struct{}

var _ PubSubClient = Noop{}

func NewNoop() Noop { return Noop{} }

func (Noop) SendMessage(topic EventType, data any) error {
	log.Debug("Dropping event, no pubsub project configured", "topic", topic)
	return nil
}

func (Noop) ProcessMessage(data []byte, returnValue any) error {
	return Decode(data, returnValue)
}
