package mail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMTP(t *testing.T) {
	t.Parallel()

	_, err := NewSMTP(SMTPConfig{Host: "localhost"})
	assert.ErrorIs(t, err, ErrSMTPHostPortRequired)

	s, err := NewSMTP(SMTPConfig{Host: "localhost", Port: 1025})
	require.NoError(t, err)
	assert.Equal(t, "localhost:1025", s.addr)
	assert.Nil(t, s.auth)
	assert.NoError(t, s.Close())
}

func TestSMTP_SendRejectsBadMessages(t *testing.T) {
	t.Parallel()

	s, err := NewSMTP(SMTPConfig{Host: "localhost", Port: 1025})
	require.NoError(t, err)

	err = s.Send(context.Background(), Message{Subject: "hi"})
	assert.ErrorIs(t, err, ErrSMTPNoRecipients)

	err = s.Send(context.Background(), Message{To: []string{"a@example.com"}})
	assert.ErrorIs(t, err, ErrSMTPNoSender)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = s.Send(ctx, Message{To: []string{"a@example.com"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		msg      Message
		contains []string
	}{
		{
			name: "plain",
			msg:  Message{From: "no-reply@example.com", To: []string{"a@example.com"}, Subject: "Code", TextBody: "123456"},
			contains: []string{
				"From: no-reply@example.com\r\n",
				"To: a@example.com\r\n",
				"Content-Type: text/plain; charset=UTF-8\r\n\r\n123456",
			},
		},
		{
			name: "html only",
			msg:  Message{From: "f@example.com", To: []string{"a@example.com"}, Cc: []string{"c@example.com"}, HTMLBody: "<b>x</b>"},
			contains: []string{"Cc: c@example.com\r\n", "text/html; charset=UTF-8\r\n\r\n<b>x</b>"},
		},
		{
			name: "alternative",
			msg:  Message{From: "f@example.com", To: []string{"a@example.com"}, TextBody: "t", HTMLBody: "h"},
			contains: []string{
				"multipart/alternative; boundary=B\r\n",
				"--B\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\nt\r\n",
				"--B\r\nContent-Type: text/html; charset=UTF-8\r\n\r\nh\r\n",
				"--B--",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			raw := string(compose(tt.msg, "B"))
			for _, want := range tt.contains {
				assert.Contains(t, raw, want)
			}
		})
	}
}

func TestMessage_Recipients(t *testing.T) {
	t.Parallel()

	m := Message{To: []string{"a"}, Cc: []string{"b"}, Bcc: []string{"c"}}
	assert.Equal(t, []string{"a", "b", "c"}, m.recipients())
}
