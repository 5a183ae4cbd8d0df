package inbound

import (
	"context"
	"log/slog"

	"github.com/samber/lo"
	"github.com/shandysiswandi/bazaar/internal/pkg/config"
	"github.com/shandysiswandi/bazaar/internal/pkg/goroutine"
	"github.com/shandysiswandi/bazaar/internal/pkg/instrument"
	"github.com/shandysiswandi/bazaar/internal/pkg/messaging"
	"github.com/shandysiswandi/bazaar/internal/pkg/uid"
	"github.com/shandysiswandi/bazaar/internal/shared/event"
)

const defaultConcurrency = 4

type consumer struct {
	name    string // consumer group; also the switch in modules.notification.consumer_names
	topic   string
	handler messaging.Handler
}

func consumers(h *MQHandler) []consumer {
	return []consumer{
		{
			name:    event.UserRegisteredConsumerWelcomeEmail,
			topic:   event.UserRegisteredTopic,
			handler: h.UserRegistered,
		},
		{
			name:    event.UserPasswordResetConsumerNotice,
			topic:   event.UserPasswordResetTopic,
			handler: h.UserPasswordReset,
		},
	}
}

// RegisterMQConsumer starts one subscription per consumer enabled in
// modules.notification.consumer_names. Subscriptions stop with ctx.
func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	subscriber messaging.Subscriber,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) []string {
	h := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enabled := cfg.GetArray("modules.notification.consumer_names")
	concurrency := cfg.GetInt("modules.notification.concurrency")
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	active := lo.Filter(consumers(h), func(c consumer, _ int) bool {
		return lo.Contains(enabled, c.name)
	})

	for _, c := range active {
		routine.Go(ctx, func(pCtx context.Context) error {
			slog.InfoContext(ctx, "Running job for handling consumer", "consumer", c.name, "topic", c.topic)
			err := subscriber.Subscribe(pCtx, c.topic, c.handler,
				messaging.WithGroup(c.name),
				messaging.WithConcurrency(concurrency),
			)
			if pCtx.Err() != nil {
				return nil
			}
			return err
		})
	}

	return lo.Map(active, func(c consumer, _ int) string { return c.name })
}
