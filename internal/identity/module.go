package identity

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/bazaar/internal/identity/inbound"
	"github.com/shandysiswandi/bazaar/internal/identity/ledger"
	"github.com/shandysiswandi/bazaar/internal/identity/outbound/db"
	"github.com/shandysiswandi/bazaar/internal/identity/outbound/mq"
	"github.com/shandysiswandi/bazaar/internal/identity/outbound/notifier"
	"github.com/shandysiswandi/bazaar/internal/identity/usecase"
	"github.com/shandysiswandi/bazaar/internal/pkg/clock"
	"github.com/shandysiswandi/bazaar/internal/pkg/config"
	"github.com/shandysiswandi/bazaar/internal/pkg/hash"
	"github.com/shandysiswandi/bazaar/internal/pkg/idempotency"
	"github.com/shandysiswandi/bazaar/internal/pkg/instrument"
	"github.com/shandysiswandi/bazaar/internal/pkg/jwt"
	"github.com/shandysiswandi/bazaar/internal/pkg/mail"
	"github.com/shandysiswandi/bazaar/internal/pkg/messaging"
	"github.com/shandysiswandi/bazaar/internal/pkg/otp"
	"github.com/shandysiswandi/bazaar/internal/pkg/phone"
	"github.com/shandysiswandi/bazaar/internal/pkg/ratelimit"
	"github.com/shandysiswandi/bazaar/internal/pkg/router"
	"github.com/shandysiswandi/bazaar/internal/pkg/sealer"
	"github.com/shandysiswandi/bazaar/internal/pkg/uid"
	"github.com/shandysiswandi/bazaar/internal/pkg/validator"
	"go.uber.org/atomic"
)

const (
	codeDigits       = 6
	shortTokenLength = 32
	refreshLength    = 64
)

type Dependency struct {
	DBConn      *pgxpool.Pool              `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Messaging   messaging.Publisher        `validate:"required"`
	Mail        mail.Mail                  `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	HMAC        hash.Hash                  `validate:"required"`
	Password    hash.Hash                  `validate:"required"`
	Sealer      sealer.Sealer              `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
	JWT         jwt.JWT                    `validate:"required"`
	Limiter     ratelimit.Limiter
	Idempotency idempotency.Idempotency
}

// Module is the wired identity module. Sweep is exposed for the background
// cleanup job; everything else is reached over HTTP.
type Module struct {
	ledger *ledger.Ledger
	swept  atomic.Int64
}

func New(dep Dependency) (*Module, error) {
	if err := dep.Validator.Validate(dep); err != nil {
		return nil, err
	}

	store := db.NewDB(dep.DBConn, dep.Instrument)

	otpLedger := ledger.New(ledger.Dependency{
		Store:      store,
		Code:       otp.NewCode(codeDigits),
		Token:      uid.NewAlphanumeric(shortTokenLength),
		UID:        dep.UID,
		HMAC:       dep.HMAC,
		Sealer:     dep.Sealer,
		Clock:      dep.Clock,
		Instrument: dep.Instrument,
		TTL:        dep.Config.GetMinute("modules.identity.otp.ttl_minutes"),
	})

	uc := usecase.New(usecase.Dependency{
		RepoDB:        store,
		RepoMessaging: mq.NewMessaging(dep.Messaging, dep.Instrument),
		Ledger:        otpLedger,
		Notifier:      notifier.NewEmail(dep.Mail, dep.Config.GetString("app.name"), dep.Instrument),
		Validator:     dep.Validator,
		Config:        dep.Config,
		HMAC:          dep.HMAC,
		Password:      dep.Password,
		Phone:         phone.NewE164(dep.Config.GetString("modules.identity.phone_region")),
		UID:           dep.UID,
		Token:         uid.NewAlphanumeric(refreshLength),
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, inbound.Guard{
		Limiter:     dep.Limiter,
		Idempotency: dep.Idempotency,
	})

	return &Module{ledger: otpLedger}, nil
}

// Sweep removes expired ledger entries.
func (m *Module) Sweep(ctx context.Context) error {
	n, err := m.ledger.Sweep(ctx)
	if err != nil {
		return err
	}
	m.swept.Add(n)
	return nil
}

// Swept reports how many expired entries Sweep has removed since start.
func (m *Module) Swept() int64 {
	return m.swept.Load()
}
