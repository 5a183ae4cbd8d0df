package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/bazaar/internal/pkg/clock"
	"github.com/shandysiswandi/bazaar/internal/pkg/config"
	"github.com/shandysiswandi/bazaar/internal/pkg/instrument"
	"github.com/shandysiswandi/bazaar/internal/pkg/mail"
	"github.com/shandysiswandi/bazaar/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMail struct {
	sent []mail.Message
	err  error
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func newUsecase(t *testing.T, m *fakeMail) *Usecase {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(`
app:
  name: Bazaar
modules:
  notification:
    support_email: help@bazaar.test
`))
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	return NewNotification(Dependency{
		Config:     cfg,
		Clock:      clock.NewManual(time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)),
		Validator:  v,
		RepoMail:   m,
		Instrument: instrument.NewNoop(),
	})
}

func TestUsecase_ConsumeUserRegistered(t *testing.T) {
	// Arrange
	m := &fakeMail{}
	uc := newUsecase(t, m)

	// Act
	err := uc.ConsumeUserRegistered(context.Background(), ConsumeUserRegisteredInput{
		UserID: 1, Username: "neo", Email: "neo@b.com",
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, m.sent, 1)
	assert.Equal(t, []string{"neo@b.com"}, m.sent[0].To)
	assert.Equal(t, "Welcome to Bazaar", m.sent[0].Subject)
	assert.Contains(t, m.sent[0].HTMLBody, "Hi neo,")
	assert.Contains(t, m.sent[0].HTMLBody, "help@bazaar.test")
	assert.Contains(t, m.sent[0].HTMLBody, "2026 Bazaar")
}

func TestUsecase_ConsumeUserRegistered_EscapesUsername(t *testing.T) {
	m := &fakeMail{}
	uc := newUsecase(t, m)

	err := uc.ConsumeUserRegistered(context.Background(), ConsumeUserRegisteredInput{
		UserID: 1, Username: "<b>x</b>", Email: "x@b.com",
	})

	require.NoError(t, err)
	require.Len(t, m.sent, 1)
	assert.NotContains(t, m.sent[0].HTMLBody, "<b>x</b>")
	assert.Contains(t, m.sent[0].HTMLBody, "&lt;b&gt;x&lt;/b&gt;")
}

func TestUsecase_ConsumeUserPasswordReset(t *testing.T) {
	tests := []struct {
		name    string
		resetAt time.Time
		want    string
	}{
		{"event time", time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC), "01 May 2026 08:00 UTC"},
		{"falls back to now", time.Time{}, "04 May 2026 09:30 UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &fakeMail{}
			uc := newUsecase(t, m)

			err := uc.ConsumeUserPasswordReset(context.Background(), ConsumeUserPasswordResetInput{
				UserID: 2, Email: "a@b.com", ResetAt: tt.resetAt,
			})

			require.NoError(t, err)
			require.Len(t, m.sent, 1)
			assert.Equal(t, "Your password was reset", m.sent[0].Subject)
			assert.Contains(t, m.sent[0].HTMLBody, tt.want)
			assert.Contains(t, m.sent[0].HTMLBody, "a@b.com")
		})
	}
}

func TestUsecase_InvalidPayloadIsDropped(t *testing.T) {
	m := &fakeMail{}
	uc := newUsecase(t, m)

	err := uc.ConsumeUserRegistered(context.Background(), ConsumeUserRegisteredInput{UserID: 0, Email: "nope"})
	assert.NoError(t, err)

	err = uc.ConsumeUserPasswordReset(context.Background(), ConsumeUserPasswordResetInput{UserID: 1})
	assert.NoError(t, err)

	assert.Empty(t, m.sent)
}

func TestUsecase_MailFailureIsReturned(t *testing.T) {
	m := &fakeMail{err: errors.New("smtp down")}
	uc := newUsecase(t, m)

	err := uc.ConsumeUserRegistered(context.Background(), ConsumeUserRegisteredInput{UserID: 1, Username: "neo", Email: "neo@b.com"})

	assert.EqualError(t, err, "smtp down")
}
