package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/bazaar/internal/identity/usecase"
	"github.com/shandysiswandi/bazaar/internal/pkg/instrument"
	"github.com/shandysiswandi/bazaar/internal/pkg/messaging"
	"github.com/shandysiswandi/bazaar/internal/shared/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subscribeOnce(t *testing.T, broker *messaging.Memory, topic string) <-chan messaging.Message {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	got := make(chan messaging.Message, 1)
	ready := make(chan struct{})
	go func() {
		close(ready)
		_ = broker.Subscribe(ctx, topic, func(_ context.Context, msg messaging.Message) error {
			select {
			case got <- msg:
			default:
			}
			return nil
		}, messaging.WithGroup("test"))
	}()
	<-ready

	return got
}

func publishUntilReceived(t *testing.T, publish func() error, got <-chan messaging.Message) messaging.Message {
	t.Helper()

	// The subscriber goroutine registers its queue asynchronously; the memory
	// broker drops messages for topics without a queue.
	deadline := time.After(2 * time.Second)
	for {
		require.NoError(t, publish())
		select {
		case msg := <-got:
			return msg
		case <-time.After(20 * time.Millisecond):
		case <-deadline:
			t.Fatal("message was not delivered")
		}
	}
}

func TestMessaging_PublishUserRegistered(t *testing.T) {
	// Arrange
	broker := messaging.NewMemory()
	t.Cleanup(func() { _ = broker.Close() })
	got := subscribeOnce(t, broker, event.UserRegisteredTopic)

	m := NewMessaging(broker, instrument.NewNoop())
	ctx := instrument.SetCorrelationID(context.Background(), "req-1")
	at := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

	// Act
	msg := publishUntilReceived(t, func() error {
		return m.PublishUserRegistered(ctx, usecase.UserRegisteredEvent{UserID: 42, Username: "neo", Email: "neo@b.com", RegisteredAt: at})
	}, got)

	// Assert
	assert.Equal(t, "42", msg.Key)
	assert.Equal(t, "req-1", msg.Header(event.HeaderCorrelationID))

	var body event.UserRegisteredMessage
	require.NoError(t, json.Unmarshal(msg.Body, &body))
	assert.Equal(t, event.UserRegisteredMessage{UserID: 42, Username: "neo", Email: "neo@b.com", RegisteredAt: at}, body)
}

func TestMessaging_PublishUserPasswordReset(t *testing.T) {
	broker := messaging.NewMemory()
	t.Cleanup(func() { _ = broker.Close() })
	got := subscribeOnce(t, broker, event.UserPasswordResetTopic)

	m := NewMessaging(broker, instrument.NewNoop())

	msg := publishUntilReceived(t, func() error {
		return m.PublishUserPasswordReset(context.Background(), usecase.UserPasswordResetEvent{UserID: 7, Email: "a@b.com"})
	}, got)

	assert.Empty(t, msg.Header(event.HeaderCorrelationID))
	assert.JSONEq(t, `{"user_id":7,"email":"a@b.com","reset_at":"0001-01-01T00:00:00Z"}`, string(msg.Body))
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, string, messaging.Message) error {
	return errors.New("broker down")
}

func TestMessaging_PublishError(t *testing.T) {
	m := NewMessaging(failingPublisher{}, instrument.NewNoop())

	err := m.PublishUserRegistered(context.Background(), usecase.UserRegisteredEvent{UserID: 1})

	assert.EqualError(t, err, "broker down")
}
