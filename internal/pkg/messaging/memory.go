package messaging

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/atomic"
)

const memoryBuffer = 256

// Memory is an in-process broker for tests and single-node deployments.
// Messages published to a topic with no subscribers are dropped.
type Memory struct {
	mu     sync.RWMutex
	topics map[string]map[string]chan Message // topic -> group -> queue
	seq    atomic.Uint64
	done   chan struct{}
	closed atomic.Bool
}

// NewMemory returns an empty Memory broker.
func NewMemory() *Memory {
	return &Memory{
		topics: make(map[string]map[string]chan Message),
		done:   make(chan struct{}),
	}
}

func (m *Memory) queue(topic, group string) chan Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	groups, ok := m.topics[topic]
	if !ok {
		groups = make(map[string]chan Message)
		m.topics[topic] = groups
	}
	q, ok := groups[group]
	if !ok {
		q = make(chan Message, memoryBuffer)
		groups[group] = q
	}
	return q
}

// Publish enqueues msg once per subscribed group.
func (m *Memory) Publish(ctx context.Context, topic string, msg Message) error {
	if topic == "" {
		return ErrTopicRequired
	}
	if m.closed.Load() {
		return ErrClosed
	}

	msg.Topic = topic
	msg.ID = strconv.FormatUint(m.seq.Inc(), 10)
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	m.mu.RLock()
	queues := make([]chan Message, 0, len(m.topics[topic]))
	for _, q := range m.topics[topic] {
		queues = append(queues, q)
	}
	m.mu.RUnlock()

	for _, q := range queues {
		select {
		case q <- msg:
		case <-ctx.Done():
			return ctx.Err()
		case <-m.done:
			return ErrClosed
		}
	}
	return nil
}

// Subscribe consumes topic until ctx is done or the broker is closed.
func (m *Memory) Subscribe(ctx context.Context, topic string, h Handler, opts ...Option) error {
	if err := validate(topic, h); err != nil {
		return err
	}
	if m.closed.Load() {
		return ErrClosed
	}

	o := newOptions(opts...)
	q := m.queue(topic, o.group)

	var wg sync.WaitGroup
	for range o.concurrency {
		wg.Go(func() {
			for {
				select {
				case msg := <-q:
					_ = dispatch(ctx, DriverMemory, h, msg)
				case <-ctx.Done():
					return
				case <-m.done:
					return
				}
			}
		})
	}
	wg.Wait()

	return ctx.Err()
}

// Close stops all subscriptions.
func (m *Memory) Close() error {
	if m.closed.CompareAndSwap(false, true) {
		close(m.done)
	}
	return nil
}
