package mq

import "log"

// Publisher and Subscriber decouple task-change notifications from any
// concrete broker; swap in RabbitMQ / Kafka implementations when needed.

type Publisher interface {
	Publish(topic string, payload []byte) error
}

type Subscriber interface {
	Subscribe(topic string, handler func([]byte) error) error
}

type Noop struct{}

func (Noop) Publish(topic string, payload []byte) error               { return nil }
func (Noop) Subscribe(topic string, handler func([]byte) error) error { return nil }

// LogPublisher writes events to the process log; the default wiring until
// a real broker is attached.
type LogPublisher struct {
	l *log.Logger
}

func NewLogPublisher(l *log.Logger) *LogPublisher { return &LogPublisher{l: l} }

func (p *LogPublisher) Publish(topic string, payload []byte) error {
	p.l.Printf("mq %s %s", topic, payload)
	return nil
}
