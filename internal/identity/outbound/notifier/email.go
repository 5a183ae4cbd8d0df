package notifier

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/shandysiswandi/bazaar/internal/identity/entity"
	"github.com/shandysiswandi/bazaar/internal/identity/usecase"
	"github.com/shandysiswandi/bazaar/internal/pkg/instrument"
	"github.com/shandysiswandi/bazaar/internal/pkg/mail"
	"go.opentelemetry.io/otel/codes"
)

var htmlBody = template.Must(template.New("otp").Parse(`<!doctype html>
<html>
<body style="font-family:sans-serif">
<p>{{.Intro}}</p>
<p style="font-size:28px;letter-spacing:6px"><strong>{{.Code}}</strong></p>
<p>It is valid for {{.Minutes}} minutes. If you did not ask for it, ignore this email.</p>
<p>{{.AppName}}</p>
</body>
</html>`))

type copyText struct {
	subject string
	intro   string
}

var copies = map[entity.Purpose]copyText{
	entity.PurposeRegistration:  {subject: "Your OTP Code for Registration", intro: "Your OTP code is"},
	entity.PurposePasswordReset: {subject: "Your Password Reset OTP", intro: "Your OTP code for password reset is"},
	entity.PurposeVerification:  {subject: "Verify Your Email", intro: "Your verification code is"},
}

// Email delivers one-time codes as a single synchronous SMTP send.
type Email struct {
	client  mail.Mail
	appName string
	ins     instrument.Instrumentation
}

func NewEmail(client mail.Mail, appName string, ins instrument.Instrumentation) *Email {
	return &Email{client: client, appName: appName, ins: ins}
}

func (e *Email) SendOTP(ctx context.Context, msg usecase.OTPNotification) error {
	ctx, span := e.ins.Tracer("identity.outbound.notifier").Start(ctx, "SendOTP")
	defer span.End()

	out, err := e.compose(msg)
	if err == nil {
		err = e.client.Send(ctx, out)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (e *Email) compose(msg usecase.OTPNotification) (mail.Message, error) {
	c, ok := copies[msg.Purpose]
	if !ok {
		return mail.Message{}, fmt.Errorf("notifier: no email copy for purpose %q", msg.Purpose)
	}

	minutes := int(msg.TTL / time.Minute)

	var html bytes.Buffer
	if err := htmlBody.Execute(&html, map[string]any{
		"Intro":   c.intro,
		"Code":    msg.Code,
		"Minutes": minutes,
		"AppName": e.appName,
	}); err != nil {
		return mail.Message{}, fmt.Errorf("notifier: render: %w", err)
	}

	return mail.Message{
		To:       []string{msg.To},
		Subject:  c.subject,
		TextBody: fmt.Sprintf("%s %s. It is valid for %d minutes.", c.intro, msg.Code, minutes),
		HTMLBody: html.String(),
	}, nil
}
