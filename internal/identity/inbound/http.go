package inbound

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/bazaar/internal/identity/entity"
	"github.com/shandysiswandi/bazaar/internal/identity/usecase"
	"github.com/shandysiswandi/bazaar/internal/pkg/idempotency"
	"github.com/shandysiswandi/bazaar/internal/pkg/ratelimit"
	"github.com/shandysiswandi/bazaar/internal/pkg/router"
)

type uc interface {
	SendOTP(ctx context.Context, in usecase.SendOTPInput) error
	VerifyOTP(ctx context.Context, in usecase.VerifyOTPInput) (*usecase.VerifyOTPOutput, error)
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)

	ForgotPassword(ctx context.Context, in usecase.ForgotPasswordInput) error
	ResetPassword(ctx context.Context, in usecase.ResetPasswordInput) error
	ChangePassword(ctx context.Context, in usecase.ChangePasswordInput) error

	SendVerification(ctx context.Context) error
	ConfirmVerification(ctx context.Context, in usecase.ConfirmVerificationInput) (*usecase.ConfirmVerificationOutput, error)

	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	Logout(ctx context.Context, in usecase.LogoutInput) error
	RefreshToken(ctx context.Context, in usecase.RefreshTokenInput) (*entity.TokenPair, error)
}

// Guard holds the optional protections applied to abuse-prone routes. A nil
// field leaves the routes unprotected.
type Guard struct {
	Limiter     ratelimit.Limiter
	Idempotency idempotency.Idempotency
}

func (g Guard) throttled() []router.Middleware {
	if g.Limiter == nil {
		return nil
	}
	return []router.Middleware{router.RateLimit(g.Limiter)}
}

func (g Guard) idempotent() []router.Middleware {
	if g.Idempotency == nil {
		return nil
	}
	return []router.Middleware{router.Idempotent(g.Idempotency)}
}

func RegisterHTTPEndpoint(r *router.Router, uc uc, g Guard) {
	end := &HTTPEndpoint{uc: uc}

	r.Public(http.MethodPost,
		"/otp/send", "/otp/verify", "/register",
		"/forgot-password", "/reset-password",
		"/login", "/logout", "/token/refresh",
	)

	// Registration
	r.POST("/otp/send", end.SendOTP, g.throttled()...)
	r.POST("/otp/verify", end.VerifyOTP)
	r.POST("/register", end.Register, g.idempotent()...)

	// Password recovery
	r.POST("/forgot-password", end.ForgotPassword, g.throttled()...)
	r.POST("/reset-password", end.ResetPassword, g.idempotent()...)

	// Session
	r.POST("/login", end.Login, g.throttled()...)
	r.POST("/logout", end.Logout)
	r.POST("/token/refresh", end.RefreshToken)

	// Authenticated
	r.POST("/verification/send", end.SendVerification, g.throttled()...)
	r.POST("/verification/verify", end.ConfirmVerification)
	r.POST("/password/change", end.ChangePassword)
}
