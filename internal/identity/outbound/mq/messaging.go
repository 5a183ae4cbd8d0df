package mq

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/shandysiswandi/bazaar/internal/identity/usecase"
	"github.com/shandysiswandi/bazaar/internal/pkg/instrument"
	"github.com/shandysiswandi/bazaar/internal/pkg/messaging"
	"github.com/shandysiswandi/bazaar/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

type Messaging struct {
	client messaging.Publisher
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Publisher, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishUserRegistered(ctx context.Context, msg usecase.UserRegisteredEvent) error {
	return m.publish(ctx, "PublishUserRegistered", event.UserRegisteredTopic, msg.UserID, event.UserRegisteredMessage{
		UserID:       msg.UserID,
		Username:     msg.Username,
		Email:        msg.Email,
		RegisteredAt: msg.RegisteredAt,
	})
}

func (m *Messaging) PublishUserPasswordReset(ctx context.Context, msg usecase.UserPasswordResetEvent) error {
	return m.publish(ctx, "PublishUserPasswordReset", event.UserPasswordResetTopic, msg.UserID, event.UserPasswordResetMessage{
		UserID:  msg.UserID,
		Email:   msg.Email,
		ResetAt: msg.ResetAt,
	})
}

func (m *Messaging) publish(ctx context.Context, op, topic string, userID int64, payload any) error {
	ctx, span := m.ins.Tracer("identity.outbound.mq").Start(ctx, op)
	defer span.End()

	body, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	out := messaging.Message{Key: strconv.FormatInt(userID, 10), Body: body}
	if cID := instrument.GetCorrelationID(ctx); cID != "" {
		out = out.WithHeader(event.HeaderCorrelationID, cID)
	}

	if err := m.client.Publish(ctx, topic, out); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
