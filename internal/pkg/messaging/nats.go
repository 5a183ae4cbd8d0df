package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nats-io/nats.go"
)

// ErrNATSURLRequired is returned when the NATS server URL is missing.
var ErrNATSURLRequired = errors.New("messaging: nats url is required")

const natsKeyHeader = "Nats-Msg-Key"

// NATSConfig configures the NATS driver.
type NATSConfig struct {
	URL     string
	Options []nats.Option
}

// NATS is a Messaging backed by core NATS. Delivery is at most once, so a
// failing handler only gets logged.
type NATS struct {
	conn *nats.Conn
}

// NewNATS connects to the NATS server.
func NewNATS(cfg NATSConfig) (*NATS, error) {
	if cfg.URL == "" {
		return nil, ErrNATSURLRequired
	}

	conn, err := nats.Connect(cfg.URL, cfg.Options...)
	if err != nil {
		return nil, fmt.Errorf("messaging: nats connect: %w", err)
	}
	return &NATS{conn: conn}, nil
}

// Publish sends msg to the subject named topic.
func (n *NATS) Publish(ctx context.Context, topic string, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if topic == "" {
		return ErrTopicRequired
	}

	nm := nats.NewMsg(topic)
	nm.Data = msg.Body
	for k, v := range msg.Headers {
		nm.Header.Set(k, v)
	}
	if msg.Key != "" {
		nm.Header.Set(natsKeyHeader, msg.Key)
	}

	if err := n.conn.PublishMsg(nm); err != nil {
		return fmt.Errorf("messaging: nats publish: %w", err)
	}
	return n.conn.FlushWithContext(ctx)
}

// Subscribe joins the queue group named by WithGroup, or a plain subscription
// when no group is set.
func (n *NATS) Subscribe(ctx context.Context, topic string, h Handler, opts ...Option) error {
	if err := validate(topic, h); err != nil {
		return err
	}
	o := newOptions(opts...)

	queue := make(chan *nats.Msg, o.concurrency)
	sub, err := n.conn.QueueSubscribe(topic, o.group, func(m *nats.Msg) {
		select {
		case queue <- m:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return fmt.Errorf("messaging: nats subscribe: %w", err)
	}

	stop := make(chan struct{})
	var wg sync.WaitGroup
	for range o.concurrency {
		wg.Go(func() {
			for {
				select {
				case m := <-queue:
					_ = dispatch(ctx, DriverNATS, h, fromNATS(m))
				case <-stop:
					return
				}
			}
		})
	}

	<-ctx.Done()
	derr := sub.Drain()
	close(stop)
	wg.Wait()

	return errors.Join(ctx.Err(), derr)
}

func fromNATS(m *nats.Msg) Message {
	msg := Message{Topic: m.Subject, Body: m.Data}
	if len(m.Header) > 0 {
		msg.Headers = make(map[string]string, len(m.Header))
		for k := range m.Header {
			if k == natsKeyHeader {
				msg.Key = m.Header.Get(k)
				continue
			}
			msg.Headers[k] = m.Header.Get(k)
		}
	}
	return msg
}

// Close drains the connection.
func (n *NATS) Close() error {
	if n.conn.IsClosed() {
		return nil
	}
	return n.conn.Drain()
}
