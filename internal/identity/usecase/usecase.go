package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shandysiswandi/bazaar/internal/identity/entity"
	"github.com/shandysiswandi/bazaar/internal/identity/ledger"
	"github.com/shandysiswandi/bazaar/internal/pkg/clock"
	"github.com/shandysiswandi/bazaar/internal/pkg/config"
	"github.com/shandysiswandi/bazaar/internal/pkg/goerror"
	"github.com/shandysiswandi/bazaar/internal/pkg/hash"
	"github.com/shandysiswandi/bazaar/internal/pkg/instrument"
	"github.com/shandysiswandi/bazaar/internal/pkg/jwt"
	"github.com/shandysiswandi/bazaar/internal/pkg/phone"
	"github.com/shandysiswandi/bazaar/internal/pkg/uid"
	"github.com/shandysiswandi/bazaar/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

const defaultDeliveryTimeout = 10 * time.Second

type UserRegisteredEvent struct {
	UserID       int64
	Username     string
	Email        string
	RegisteredAt time.Time
}

type UserPasswordResetEvent struct {
	UserID  int64
	Email   string
	ResetAt time.Time
}

// OTPNotification is one code to deliver out of band.
type OTPNotification struct {
	To      string
	Purpose entity.Purpose
	Code    string
	TTL     time.Duration
}

type repoMessaging interface {
	PublishUserRegistered(ctx context.Context, msg UserRegisteredEvent) error
	PublishUserPasswordReset(ctx context.Context, msg UserPasswordResetEvent) error
}

type notifier interface {
	SendOTP(ctx context.Context, msg OTPNotification) error
}

type otpLedger interface {
	TTL() time.Duration
	Issue(ctx context.Context, in ledger.IssueInput) (*ledger.Issued, error)
	Verify(ctx context.Context, identifier string, purpose entity.Purpose, code string) (string, error)
	Redeem(ctx context.Context, identifier string, purpose entity.Purpose, shortToken string, then ledger.Consumer) error
	RedeemByCode(ctx context.Context, identifier string, purpose entity.Purpose, code string, then ledger.Consumer) error
	Discard(ctx context.Context, id int64) error
}

type repoDB interface {
	ExistsAccountByEmail(ctx context.Context, email string) (bool, error)
	ExistsAccountByUsername(ctx context.Context, username string) (bool, error)
	GetAccountByEmail(ctx context.Context, email string) (*entity.Account, error)
	GetAccountByID(ctx context.Context, id int64) (*entity.Account, error)
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (*entity.Session, error)

	CreateAccount(ctx context.Context, acc entity.Account) error
	CreateSession(ctx context.Context, sess entity.Session) error

	UpdateAccountPassword(ctx context.Context, id int64, passwordHash string) error
	MarkAccountEmailVerified(ctx context.Context, id int64, at time.Time) error
	RevokeSession(ctx context.Context, tokenHash string, at time.Time) error
	RevokeAccountSessions(ctx context.Context, accountID int64, at time.Time) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	ledger        otpLedger
	notifier      notifier
	validator     validator.Validator
	cfg           config.Config
	hmac          hash.Hash
	password      hash.Hash
	phone         phone.Normalizer
	uid           uid.NumberID
	token         uid.StringID
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Ledger        otpLedger
	Notifier      notifier
	Validator     validator.Validator
	Config        config.Config
	HMAC          hash.Hash
	Password      hash.Hash
	Phone         phone.Normalizer
	UID           uid.NumberID
	Token         uid.StringID
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		ledger:        dep.Ledger,
		notifier:      dep.Notifier,
		validator:     dep.Validator,
		cfg:           dep.Config,
		hmac:          dep.HMAC,
		password:      dep.Password,
		phone:         dep.Phone,
		uid:           dep.UID,
		token:         dep.Token,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Usecase) deliveryTimeout() time.Duration {
	if d := s.cfg.GetSecond("modules.identity.otp.delivery_timeout_seconds"); d > 0 {
		return d
	}
	return defaultDeliveryTimeout
}

// issueAndDeliver creates a ledger entry and mails its code. When delivery
// fails the entry is discarded so the caller can safely ask again.
func (s *Usecase) issueAndDeliver(ctx context.Context, email string, purpose entity.Purpose, accountID int64) error {
	issued, err := s.ledger.Issue(ctx, ledger.IssueInput{Identifier: email, Purpose: purpose, AccountID: accountID})
	if err != nil {
		slog.ErrorContext(ctx, "failed to issue otp", "email", email, "purpose", purpose, "error", err)
		return goerror.NewServer(err)
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.deliveryTimeout())
	defer cancel()

	err = s.notifier.SendOTP(sendCtx, OTPNotification{
		To:      email,
		Purpose: purpose,
		Code:    issued.Code,
		TTL:     s.ledger.TTL(),
	})
	if err == nil {
		return nil
	}

	slog.WarnContext(ctx, "failed to deliver otp", "email", email, "purpose", purpose, "error", err)
	if dErr := s.ledger.Discard(context.WithoutCancel(ctx), issued.ID); dErr != nil {
		slog.ErrorContext(ctx, "failed to discard undelivered otp", "otp_id", issued.ID, "error", dErr)
	}

	return goerror.NewDelivery(err)
}

// ledgerError maps ledger outcomes to client errors. Invalid and expired
// entries share the 400 class; the message tells them apart.
func ledgerError(ctx context.Context, err error, invalidMsg, expiredMsg string) error {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return goerror.NewBusiness(invalidMsg, goerror.CodeInvalidOTP)
	case errors.Is(err, ledger.ErrExpired):
		return goerror.NewBusiness(expiredMsg, goerror.CodeExpired)
	default:
		slog.ErrorContext(ctx, "failed to use otp ledger", "error", err)
		return goerror.NewServer(err)
	}
}

func (s *Usecase) authenticated(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}
	return clm, nil
}
