// Package messaging publishes and consumes domain events over a pluggable
// broker. Business code depends on Publisher and Subscriber only; the driver
// (memory, NSQ, NATS, Kafka or Google Pub/Sub) is picked from configuration.
package messaging

import (
	"context"
	"errors"
	"io"
	"maps"
	"time"
)

var (
	// ErrTopicRequired is returned when publishing or subscribing without a topic.
	ErrTopicRequired = errors.New("messaging: topic is required")
	// ErrHandlerRequired is returned when Subscribe is called with a nil handler.
	ErrHandlerRequired = errors.New("messaging: handler is required")
	// ErrGroupRequired is returned by drivers that need a consumer group.
	ErrGroupRequired = errors.New("messaging: consumer group is required")
	// ErrClosed is returned after Close.
	ErrClosed = io.ErrClosedPipe
)

// Message is a broker-agnostic message.
type Message struct {
	ID        string
	Topic     string
	Key       string
	Headers   map[string]string
	Body      []byte
	Timestamp time.Time
}

// Header returns the named header or "".
func (m Message) Header(key string) string {
	return m.Headers[key]
}

// WithHeader returns a copy of m with key set.
func (m Message) WithHeader(key, value string) Message {
	h := make(map[string]string, len(m.Headers)+1)
	maps.Copy(h, m.Headers)
	h[key] = value
	m.Headers = h
	return m
}

// Handler processes one delivery. A non-nil error asks the broker to
// redeliver where the driver supports it; otherwise the message is dropped
// after logging.
type Handler func(ctx context.Context, msg Message) error

// Publisher sends messages to a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, msg Message) error
}

// Subscriber delivers messages from a topic to a handler. Subscribe blocks
// until ctx is done or the client is closed.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, h Handler, opts ...Option) error
}

// Messaging is a full broker client.
type Messaging interface {
	io.Closer
	Publisher
	Subscriber
}

func validate(topic string, h Handler) error {
	if topic == "" {
		return ErrTopicRequired
	}
	if h == nil {
		return ErrHandlerRequired
	}
	return nil
}
