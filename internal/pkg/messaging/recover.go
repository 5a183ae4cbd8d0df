package messaging

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shandysiswandi/bazaar/internal/pkg/stacktrace"
)

// dispatch runs h and converts a panic into an error. Failures are logged so
// drivers without redelivery still leave a trace.
func dispatch(ctx context.Context, driver string, h Handler, msg Message) (err error) {
	defer func() {
		if rvr := recover(); rvr != nil {
			slog.ErrorContext(ctx, "panic in messaging handler",
				"driver", driver, "topic", msg.Topic, "panic", rvr, "stack", stacktrace.Internal(3))
			err = fmt.Errorf("messaging: panic in %s handler: %v", driver, rvr)
		}
		if err != nil {
			slog.ErrorContext(ctx, "messaging handler failed",
				"driver", driver, "topic", msg.Topic, "message_id", msg.ID, "error", err)
		}
	}()

	return h(ctx, msg)
}
