package usecase

import (
	"context"
	"errors"
	"maps"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/bazaar/internal/identity/entity"
	"github.com/shandysiswandi/bazaar/internal/identity/ledger"
	"github.com/shandysiswandi/bazaar/internal/pkg/clock"
	"github.com/shandysiswandi/bazaar/internal/pkg/config"
	"github.com/shandysiswandi/bazaar/internal/pkg/goerror"
	"github.com/shandysiswandi/bazaar/internal/pkg/hash"
	"github.com/shandysiswandi/bazaar/internal/pkg/instrument"
	"github.com/shandysiswandi/bazaar/internal/pkg/jwt"
	"github.com/shandysiswandi/bazaar/internal/pkg/otp"
	"github.com/shandysiswandi/bazaar/internal/pkg/phone"
	"github.com/shandysiswandi/bazaar/internal/pkg/sealer"
	"github.com/shandysiswandi/bazaar/internal/pkg/uid"
	"github.com/shandysiswandi/bazaar/internal/pkg/validator"
	"github.com/stretchr/testify/require"
)

// fakeDB is both the credential store and the ledger store. Atomic snapshots
// every table and restores them when fn fails.
type fakeDB struct {
	tx sync.Mutex
	mu sync.Mutex

	accounts map[int64]entity.Account
	sessions map[string]entity.Session
	otps     map[int64]entity.OTP

	failWith  error
	createErr error
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		accounts: make(map[int64]entity.Account),
		sessions: make(map[string]entity.Session),
		otps:     make(map[int64]entity.OTP),
	}
}

func (f *fakeDB) Atomic(ctx context.Context, fn func(ctx context.Context) error) error {
	f.tx.Lock()
	defer f.tx.Unlock()

	f.mu.Lock()
	accounts, sessions, otps := maps.Clone(f.accounts), maps.Clone(f.sessions), maps.Clone(f.otps)
	f.mu.Unlock()

	if err := fn(ctx); err != nil {
		f.mu.Lock()
		f.accounts, f.sessions, f.otps = accounts, sessions, otps
		f.mu.Unlock()
		return err
	}
	return nil
}

func (f *fakeDB) InsertOTP(_ context.Context, e entity.OTP) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.otps[e.ID] = e
	return nil
}

func (f *fakeDB) FindOTP(_ context.Context, q ledger.Query) (*entity.OTP, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var found []entity.OTP
	for _, e := range f.otps {
		if e.Identifier != q.Identifier || e.Purpose != q.Purpose {
			continue
		}
		if (q.CodeHash != "" && e.CodeHash != q.CodeHash) || (q.TokenHash != "" && e.ShortTokenHash != q.TokenHash) {
			continue
		}
		found = append(found, e)
	}
	if len(found) == 0 {
		return nil, goerror.ErrNotFound
	}
	sort.Slice(found, func(i, j int) bool { return found[i].CreatedAt.After(found[j].CreatedAt) })
	return &found[0], nil
}

func (f *fakeDB) DeleteOTP(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.otps[id]; !ok {
		return goerror.ErrNotFound
	}
	delete(f.otps, id)
	return nil
}

func (f *fakeDB) DeleteExpiredOTPs(_ context.Context, before time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeDB) ExistsAccountByEmail(_ context.Context, email string) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	_, ok := f.accountBy(func(a entity.Account) bool { return a.Email == email })
	return ok, nil
}

func (f *fakeDB) ExistsAccountByUsername(_ context.Context, username string) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	_, ok := f.accountBy(func(a entity.Account) bool { return a.Username == username })
	return ok, nil
}

func (f *fakeDB) GetAccountByEmail(_ context.Context, email string) (*entity.Account, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	acc, ok := f.accountBy(func(a entity.Account) bool { return a.Email == email })
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &acc, nil
}

func (f *fakeDB) GetAccountByID(_ context.Context, id int64) (*entity.Account, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	acc, ok := f.accountBy(func(a entity.Account) bool { return a.ID == id })
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &acc, nil
}

func (f *fakeDB) accountBy(match func(entity.Account) bool) (entity.Account, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if match(a) {
			return a, true
		}
	}
	return entity.Account{}, false
}

func (f *fakeDB) GetSessionByTokenHash(_ context.Context, tokenHash string) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[tokenHash]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &s, nil
}

func (f *fakeDB) CreateAccount(_ context.Context, acc entity.Account) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Email == acc.Email || a.Username == acc.Username {
			return goerror.ErrConflict
		}
	}
	f.accounts[acc.ID] = acc
	return nil
}

func (f *fakeDB) CreateSession(_ context.Context, sess entity.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[sess.TokenHash] = sess
	return nil
}

func (f *fakeDB) UpdateAccountPassword(_ context.Context, id int64, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.accounts[id]
	if !ok {
		return goerror.ErrNotFound
	}
	acc.PasswordHash = passwordHash
	f.accounts[id] = acc
	return nil
}

func (f *fakeDB) MarkAccountEmailVerified(_ context.Context, id int64, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.accounts[id]
	if !ok {
		return goerror.ErrNotFound
	}
	acc.EmailVerifiedAt = &at
	f.accounts[id] = acc
	return nil
}

func (f *fakeDB) RevokeSession(_ context.Context, tokenHash string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[tokenHash]
	if !ok || s.RevokedAt != nil {
		return goerror.ErrNotFound
	}
	s.RevokedAt = &at
	f.sessions[tokenHash] = s
	return nil
}

func (f *fakeDB) RevokeAccountSessions(_ context.Context, accountID int64, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, s := range f.sessions {
		if s.AccountID == accountID && s.RevokedAt == nil {
			s.RevokedAt = &at
			f.sessions[k] = s
		}
	}
	return nil
}

func (f *fakeDB) otpCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.otps)
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []OTPNotification
	err  error
}

func (n *fakeNotifier) SendOTP(ctx context.Context, msg OTPNotification) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("delivery without deadline")
	}
	if n.err != nil {
		return n.err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return nil
}

func (n *fakeNotifier) last() OTPNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.sent[len(n.sent)-1]
}

type fakeMessaging struct {
	registered []UserRegisteredEvent
	reset      []UserPasswordResetEvent
	err        error
}

func (m *fakeMessaging) PublishUserRegistered(_ context.Context, msg UserRegisteredEvent) error {
	m.registered = append(m.registered, msg)
	return m.err
}

func (m *fakeMessaging) PublishUserPasswordReset(_ context.Context, msg UserPasswordResetEvent) error {
	m.reset = append(m.reset, msg)
	return m.err
}

type sequence struct {
	mu sync.Mutex
	n  int64
}

func (s *sequence) Generate() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return s.n
}

type harness struct {
	uc       *Usecase
	db       *fakeDB
	notifier *fakeNotifier
	mq       *fakeMessaging
	clock    *clock.Manual
	password hash.Hash
	jwt      jwt.JWT
}

const testConfig = `
modules:
  identity:
    otp:
      delivery_timeout_seconds: 2
    refresh_token_ttl_days: 7
`

func newHarness(t *testing.T) *harness {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfig))
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	sl, err := sealer.NewAESGCM([]byte("fedcba9876543210fedcba9876543210"))
	require.NoError(t, err)

	clk := clock.NewManual(time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC))

	tokens, err := jwt.NewHS512(jwt.Config{
		Secret: []byte("0123456789012345678901234567890123456789012345678901234567890123"),
		Issuer: "bazaar-test",
		TTL:    15 * time.Minute,
		Clock:  clk,
		UUID:   uid.NewUUID(),
	})
	require.NoError(t, err)

	h := &harness{
		db:       newFakeDB(),
		notifier: &fakeNotifier{},
		mq:       &fakeMessaging{},
		clock:    clk,
		password: hash.NewBcrypt(4, "pepper"),
		jwt:      tokens,
	}

	ids := &sequence{}
	hmac := hash.NewHMACSHA256("usecase-test")
	ins := instrument.NewNoop()

	h.uc = New(Dependency{
		RepoDB:        h.db,
		RepoMessaging: h.mq,
		Ledger: ledger.New(ledger.Dependency{
			Store:      h.db,
			Code:       otp.NewCode(6),
			Token:      uid.NewAlphanumeric(32),
			UID:        ids,
			HMAC:       hmac,
			Sealer:     sl,
			Clock:      clk,
			Instrument: ins,
		}),
		Notifier:   h.notifier,
		Validator:  v,
		Config:     cfg,
		HMAC:       hmac,
		Password:   h.password,
		Phone:      phone.NewE164("US"),
		UID:        ids,
		Token:      uid.NewAlphanumeric(64),
		Clock:      clk,
		JWT:        tokens,
		Instrument: ins,
	})

	return h
}

// seedAccount stores a ready-made account with the given password.
func (h *harness) seedAccount(t *testing.T, id int64, username, email, password string) entity.Account {
	t.Helper()

	pw, err := h.password.Hash(password)
	require.NoError(t, err)

	acc := entity.Account{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: string(pw),
		CreatedAt:    h.clock.Now(),
		UpdatedAt:    h.clock.Now(),
	}
	require.NoError(t, h.db.CreateAccount(context.Background(), acc))
	return acc
}

func (h *harness) authed(acc entity.Account) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: acc.ID, Username: acc.Username, Email: acc.Email})
}
