package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/bazaar/internal/pkg/clock"
	"github.com/shandysiswandi/bazaar/internal/pkg/config"
	"github.com/shandysiswandi/bazaar/internal/pkg/hash"
	"github.com/shandysiswandi/bazaar/internal/pkg/instrument"
	"github.com/shandysiswandi/bazaar/internal/pkg/jwt"
	"github.com/shandysiswandi/bazaar/internal/pkg/mail"
	"github.com/shandysiswandi/bazaar/internal/pkg/messaging"
	"github.com/shandysiswandi/bazaar/internal/pkg/router"
	"github.com/shandysiswandi/bazaar/internal/pkg/sealer"
	"github.com/shandysiswandi/bazaar/internal/pkg/testkit"
	"github.com/shandysiswandi/bazaar/internal/pkg/uid"
	"github.com/shandysiswandi/bazaar/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inbox struct {
	mu  sync.Mutex
	got []mail.Message
}

func (i *inbox) Send(_ context.Context, msg mail.Message) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.got = append(i.got, msg)
	return nil
}

func (i *inbox) Close() error { return nil }

var sixDigits = regexp.MustCompile(`\b\d{6}\b`)

func (i *inbox) lastCode(t *testing.T) string {
	t.Helper()
	i.mu.Lock()
	defer i.mu.Unlock()

	require.NotEmpty(t, i.got)
	code := sixDigits.FindString(i.got[len(i.got)-1].TextBody)
	require.NotEmpty(t, code)
	return code
}

type envelope struct {
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Error   map[string]string `json:"error"`
}

type client struct {
	t *testing.T
	h http.Handler
}

func (c client) post(path, body, token string) (int, envelope) {
	c.t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func setup(t *testing.T, clk *clock.Manual) (client, *inbox, *Module) {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(`
app:
  name: Bazaar
modules:
  identity:
    phone_region: ID
    otp:
      ttl_minutes: 10
`))
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	sl, err := sealer.NewAESGCM([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	snow, err := uid.NewSnowflake(1)
	require.NoError(t, err)

	tokens, err := jwt.NewHS512(jwt.Config{
		Secret: []byte("0123456789012345678901234567890123456789012345678901234567890123"),
		Issuer: "bazaar-test",
		TTL:    15 * time.Minute,
		Clock:  clk,
		UUID:   uid.NewUUID(),
	})
	require.NoError(t, err)

	ro := router.NewRouter(router.Config{UUID: uid.NewUUID(), JWT: tokens, Instrument: instrument.NewNoop()})
	box := &inbox{}
	broker := messaging.NewMemory()
	t.Cleanup(func() { _ = broker.Close() })

	m, err := New(Dependency{
		DBConn:     testkit.Postgres(t),
		Router:     ro,
		Messaging:  broker,
		Mail:       box,
		Config:     cfg,
		Instrument: instrument.NewNoop(),
		UID:        snow,
		HMAC:       hash.NewHMACSHA256("module-test"),
		Password:   hash.NewBcrypt(4, "pepper"),
		Sealer:     sl,
		Clock:      clk,
		Validator:  v,
		JWT:        tokens,
	})
	require.NoError(t, err)

	return client{t: t, h: ro}, box, m
}

func TestModule_RegistrationAndRecovery(t *testing.T) {
	// Arrange
	clk := clock.NewManual(time.Now().UTC())
	c, box, _ := setup(t, clk)

	// Act + Assert: registration
	status, env := c.post("/otp/send", `{"email":"Jane@Example.com"}`, "")
	require.Equal(t, http.StatusOK, status, env.Message)
	assert.Equal(t, "OTP sent successfully", env.Message)

	status, env = c.post("/otp/verify", `{"email":"jane@example.com","code":"`+box.lastCode(t)+`"}`, "")
	require.Equal(t, http.StatusOK, status, env.Message)
	var verified struct {
		ShortToken string `json:"short_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &verified))
	require.Len(t, verified.ShortToken, 32)

	register := `{"username":"jane","email":"jane@example.com","password":"Str0ng!pass","confirm_password":"Str0ng!pass","short_token":"` + verified.ShortToken + `","phone_number":"0812-345-678"}`
	status, env = c.post("/register", register, "")
	require.Equal(t, http.StatusCreated, status, env.Message)
	assert.Equal(t, "User created successfully", env.Message)

	status, env = c.post("/register", register, "")
	assert.Equal(t, http.StatusBadRequest, status, "the short token is single use")

	status, _ = c.post("/otp/send", `{"email":"jane@example.com"}`, "")
	assert.Equal(t, http.StatusBadRequest, status, "registered emails cannot request a registration code")

	// Act + Assert: login
	status, env = c.post("/login", `{"email":"jane@example.com","password":"Str0ng!pass"}`, "")
	require.Equal(t, http.StatusOK, status, env.Message)
	var session struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
		User    struct {
			PhoneNumber string `json:"phone_number"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.Equal(t, "+62812345678", session.User.PhoneNumber)

	// Act + Assert: password recovery
	status, _ = c.post("/forgot-password", `{"email":"nobody@example.com"}`, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, env = c.post("/forgot-password", `{"email":"jane@example.com"}`, "")
	require.Equal(t, http.StatusOK, status, env.Message)
	resetCode := box.lastCode(t)

	status, env = c.post("/reset-password", `{"email":"jane@example.com","code":"000000","new_password":"N3w!secret","confirm_password":"N3w!secret"}`, "")
	if resetCode != "000000" {
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Invalid OTP code", env.Message)
	}

	status, env = c.post("/reset-password", `{"email":"jane@example.com","code":"`+resetCode+`","new_password":"N3w!secret","confirm_password":"N3w!secret"}`, "")
	require.Equal(t, http.StatusOK, status, env.Message)
	assert.Equal(t, "Password reset successfully", env.Message)

	status, _ = c.post("/token/refresh", `{"refresh":"`+session.Refresh+`"}`, "")
	assert.Equal(t, http.StatusUnauthorized, status, "a reset revokes every session")

	status, _ = c.post("/login", `{"email":"jane@example.com","password":"N3w!secret"}`, "")
	assert.Equal(t, http.StatusOK, status)
}

func TestModule_ExpiredCodeAndSweep(t *testing.T) {
	clk := clock.NewManual(time.Now().UTC())
	c, box, m := setup(t, clk)

	status, _ := c.post("/otp/send", `{"email":"late@example.com"}`, "")
	require.Equal(t, http.StatusOK, status)
	code := box.lastCode(t)

	status, _ = c.post("/otp/send", `{"email":"other@example.com"}`, "")
	require.Equal(t, http.StatusOK, status)

	clk.Advance(10 * time.Minute)

	status, env := c.post("/otp/verify", `{"email":"late@example.com","code":"`+code+`"}`, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "OTP has expired", env.Message)

	status, env = c.post("/otp/verify", `{"email":"late@example.com","code":"`+code+`"}`, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid OTP code", env.Message, "an expired entry is deleted on first sight")

	require.NoError(t, m.Sweep(context.Background()))
	assert.Equal(t, int64(1), m.Swept(), "only the unread expired entry is left to sweep")
}
