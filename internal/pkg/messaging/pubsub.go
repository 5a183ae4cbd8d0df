package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cloud.google.com/go/pubsub/v2"
	"google.golang.org/api/option"
)

var (
	// ErrPubSubProjectIDRequired is returned when the project id is missing.
	ErrPubSubProjectIDRequired = errors.New("messaging: pubsub project id is required")
)

const pubsubKeyAttr = "x-message-key"

// PubSubConfig configures the Google Pub/Sub driver.
type PubSubConfig struct {
	ProjectID string
	// Endpoint overrides the API endpoint, e.g. the local emulator.
	Endpoint string
}

// PubSub is a Messaging backed by Google Pub/Sub. Headers travel as message
// attributes; the subscription is named by WithGroup and defaults to topic.
type PubSub struct {
	client *pubsub.Client

	mu         sync.Mutex
	publishers map[string]*pubsub.Publisher
	closed     bool
}

// NewPubSub constructs a Pub/Sub client.
func NewPubSub(ctx context.Context, cfg PubSubConfig) (*PubSub, error) {
	if cfg.ProjectID == "" {
		return nil, ErrPubSubProjectIDRequired
	}

	var opts []option.ClientOption
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint), option.WithoutAuthentication())
	}

	c, err := pubsub.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("messaging: pubsub client: %w", err)
	}
	return &PubSub{client: c, publishers: make(map[string]*pubsub.Publisher)}, nil
}

func (p *PubSub) publisher(topic string) (*pubsub.Publisher, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrClosed
	}
	pub, ok := p.publishers[topic]
	if !ok {
		pub = p.client.Publisher(topic)
		p.publishers[topic] = pub
	}
	return pub, nil
}

// Publish sends msg to topic and waits for the server id.
func (p *PubSub) Publish(ctx context.Context, topic string, msg Message) error {
	if topic == "" {
		return ErrTopicRequired
	}
	pub, err := p.publisher(topic)
	if err != nil {
		return err
	}

	attrs := make(map[string]string, len(msg.Headers)+1)
	for k, v := range msg.Headers {
		attrs[k] = v
	}
	if msg.Key != "" {
		attrs[pubsubKeyAttr] = msg.Key
	}

	if _, err := pub.Publish(ctx, &pubsub.Message{Data: msg.Body, Attributes: attrs}).Get(ctx); err != nil {
		return fmt.Errorf("messaging: pubsub publish: %w", err)
	}
	return nil
}

// Subscribe receives from the subscription named by WithGroup (or topic).
func (p *PubSub) Subscribe(ctx context.Context, topic string, h Handler, opts ...Option) error {
	if err := validate(topic, h); err != nil {
		return err
	}
	o := newOptions(opts...)

	name := o.group
	if name == "" {
		name = topic
	}

	sub := p.client.Subscriber(name)
	sub.ReceiveSettings.NumGoroutines = o.concurrency
	sub.ReceiveSettings.MaxOutstandingMessages = o.concurrency * 10

	return sub.Receive(ctx, func(ctx context.Context, m *pubsub.Message) {
		msg := Message{ID: m.ID, Topic: topic, Body: m.Data, Timestamp: m.PublishTime}
		if len(m.Attributes) > 0 {
			msg.Headers = make(map[string]string, len(m.Attributes))
			for k, v := range m.Attributes {
				if k == pubsubKeyAttr {
					msg.Key = v
					continue
				}
				msg.Headers[k] = v
			}
		}

		if err := dispatch(ctx, DriverGooglePubSub, h, msg); err != nil {
			m.Nack()
			return
		}
		m.Ack()
	})
}

// Close stops publishers and the client.
func (p *PubSub) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	pubs := p.publishers
	p.mu.Unlock()

	for _, pub := range pubs {
		pub.Stop()
	}
	return p.client.Close()
}
