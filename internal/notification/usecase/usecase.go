package usecase

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/shandysiswandi/bazaar/internal/notification/entity"
	"github.com/shandysiswandi/bazaar/internal/pkg/clock"
	"github.com/shandysiswandi/bazaar/internal/pkg/config"
	"github.com/shandysiswandi/bazaar/internal/pkg/instrument"
	"github.com/shandysiswandi/bazaar/internal/pkg/mail"
	"github.com/shandysiswandi/bazaar/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoMail interface {
	Send(ctx context.Context, msg mail.Message) error
}

type Usecase struct {
	cfg       config.Config
	clock     clock.Clocker
	validator validator.Validator
	repoMail  repoMail
	ins       instrument.Instrumentation
}

type Dependency struct {
	Config     config.Config
	Clock      clock.Clocker
	Validator  validator.Validator
	RepoMail   repoMail
	Instrument instrument.Instrumentation
}

func NewNotification(dep Dependency) *Usecase {
	return &Usecase{
		cfg:       dep.Config,
		clock:     dep.Clock,
		validator: dep.Validator,
		repoMail:  dep.RepoMail,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.usecase").Start(ctx, name)
}

func (s *Usecase) renderTemplate(name, tpl string, data map[string]any) (string, error) {
	t, err := template.New(name).Option("missingkey=zero").Parse(tpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *Usecase) baseEmailTemplateData() map[string]any {
	company := s.cfg.GetString("app.name")
	if company == "" {
		company = "Bazaar"
	}

	support := s.cfg.GetString("modules.notification.support_email")
	if support == "" {
		support = "support@bazaar.local"
	}

	return map[string]any{
		"support_email": support,
		"company_name":  company,
		"year":          s.clock.Now().Format("2006"),
	}
}

// sendEmail renders the built-in template for tk and sends it to one
// recipient. A render or send failure is returned so the broker may redeliver.
func (s *Usecase) sendEmail(ctx context.Context, to string, tk entity.TriggerKey, data map[string]any) error {
	tpl, ok := entity.LookupTemplate(tk)
	if !ok {
		return fmt.Errorf("notification: no template for %s", tk)
	}

	subject, err := s.renderTemplate("subject", tpl.Subject, data)
	if err != nil {
		return fmt.Errorf("notification: render subject: %w", err)
	}

	body, err := s.renderTemplate("body", tpl.Body, data)
	if err != nil {
		return fmt.Errorf("notification: render body: %w", err)
	}

	return s.repoMail.Send(ctx, mail.Message{
		To:       []string{to},
		Subject:  subject,
		HTMLBody: body,
	})
}
