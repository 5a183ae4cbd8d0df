package inbound

import (
	"context"

	"github.com/shandysiswandi/bazaar/internal/notification/usecase"
)

type uc interface {
	ConsumeUserRegistered(ctx context.Context, in usecase.ConsumeUserRegisteredInput) error
	ConsumeUserPasswordReset(ctx context.Context, in usecase.ConsumeUserPasswordResetInput) error
}
