package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/bazaar/internal/identity/entity"
	"github.com/shandysiswandi/bazaar/internal/pkg/goerror"
)

type RegisterInput struct {
	Username        string `json:"username" validate:"required,username"`
	Email           string `json:"email" validate:"required,mailbox"`
	Password        string `json:"password" validate:"required,password"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	ShortToken      string `json:"short_token" validate:"required,shorttoken"`
	PhoneNumber     string `json:"phone_number" validate:"omitempty,max=32"`
	Country         string `json:"country" validate:"omitempty,max=100"`
	Province        string `json:"province" validate:"omitempty,max=100"`
	City            string `json:"city" validate:"omitempty,max=100"`
	PostalCode      string `json:"postal_code" validate:"omitempty,max=20"`
	FullAddress     string `json:"full_address" validate:"omitempty,max=500"`
}

type RegisterOutput struct {
	entity.TokenPair
	UserID int64
}

// Register completes registration. The short token is redeemed in the same
// transaction that creates the account, so either both happen or neither.
func (s *Usecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Email = normalizeEmail(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if in.PhoneNumber != "" {
		normalized, err := s.phone.Normalize(in.PhoneNumber)
		if err != nil {
			return nil, goerror.NewInvalidInput(nil, "phone_number", "Invalid phone number format")
		}
		in.PhoneNumber = normalized
	}

	if err := s.ensureAccountAvailable(ctx, in.Email, in.Username); err != nil {
		return nil, err
	}

	passHash, err := s.password.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	acc := entity.Account{
		ID:              s.uid.Generate(),
		Username:        in.Username,
		Email:           in.Email,
		PasswordHash:    string(passHash),
		PhoneNumber:     in.PhoneNumber,
		Country:         strings.TrimSpace(in.Country),
		Province:        strings.TrimSpace(in.Province),
		City:            strings.TrimSpace(in.City),
		PostalCode:      strings.TrimSpace(in.PostalCode),
		FullAddress:     strings.TrimSpace(in.FullAddress),
		EmailVerifiedAt: &now,
		IsSetupComplete: false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.ledger.Redeem(ctx, in.Email, entity.PurposeRegistration, in.ShortToken, func(ctx context.Context, _ entity.OTP) error {
		return s.repoDB.CreateAccount(ctx, acc)
	})
	if errors.Is(err, goerror.ErrConflict) {
		slog.WarnContext(ctx, "account created concurrently", "email", in.Email, "username", in.Username)
		return nil, goerror.NewBusiness("This email or username is already in use", goerror.CodeConflict)
	}
	if err != nil {
		return nil, ledgerError(ctx, err, "Invalid short token", "Short token has expired")
	}

	pair, err := s.issueTokens(ctx, acc)
	if err != nil {
		return nil, err
	}

	if err := s.repoMessaging.PublishUserRegistered(ctx, UserRegisteredEvent{
		UserID:       acc.ID,
		Username:     acc.Username,
		Email:        acc.Email,
		RegisteredAt: now,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish user registered", "user_id", acc.ID, "error", err)
	}

	return &RegisterOutput{TokenPair: *pair, UserID: acc.ID}, nil
}

func (s *Usecase) ensureAccountAvailable(ctx context.Context, email, username string) error {
	taken, err := s.repoDB.ExistsAccountByEmail(ctx, email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo check account email", "email", email, "error", err)
		return goerror.NewServer(err)
	}
	if taken {
		return goerror.NewBusiness("This email is already in use", goerror.CodeConflict)
	}

	taken, err = s.repoDB.ExistsAccountByUsername(ctx, username)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo check account username", "username", username, "error", err)
		return goerror.NewServer(err)
	}
	if taken {
		return goerror.NewBusiness("This username is already taken", goerror.CodeConflict)
	}

	return nil
}
