package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/shandysiswandi/bazaar/internal/notification/usecase"
	"github.com/shandysiswandi/bazaar/internal/pkg/instrument"
	"github.com/shandysiswandi/bazaar/internal/pkg/messaging"
	"github.com/shandysiswandi/bazaar/internal/pkg/uid"
	"github.com/shandysiswandi/bazaar/internal/shared/event"
)

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, msg messaging.Message) context.Context {
	if cID := msg.Header(event.HeaderCorrelationID); cID != "" {
		return instrument.SetCorrelationID(ctx, cID)
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) UserRegistered(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg)

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "UserRegistered")
	defer span.End()

	slog.InfoContext(ctx, "consume: user registered", "message_id", msg.ID)

	var payload event.UserRegisteredMessage
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of user registered", "msg_body", string(msg.Body), "error", err)
		return nil
	}

	return h.uc.ConsumeUserRegistered(ctx, usecase.ConsumeUserRegisteredInput{
		UserID:   payload.UserID,
		Username: payload.Username,
		Email:    payload.Email,
	})
}

func (h *MQHandler) UserPasswordReset(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg)

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "UserPasswordReset")
	defer span.End()

	slog.InfoContext(ctx, "consume: user password reset", "message_id", msg.ID)

	var payload event.UserPasswordResetMessage
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of user password reset", "msg_body", string(msg.Body), "error", err)
		return nil
	}

	return h.uc.ConsumeUserPasswordReset(ctx, usecase.ConsumeUserPasswordResetInput{
		UserID:  payload.UserID,
		Email:   payload.Email,
		ResetAt: payload.ResetAt,
	})
}
