package email

import (
	"context"
	"fmt"
	"time"
)

// Mailer собирает письма приложения из шаблонов и отдает провайдеру
type Mailer struct {
	provider  Provider
	templates *TemplateManager
}

func NewMailer(provider Provider, templates *TemplateManager) *Mailer {
	return &Mailer{provider: provider, templates: templates}
}

func (m *Mailer) SendVerificationCode(ctx context.Context, to, name, code string, ttl time.Duration) error {
	html, err := m.templates.Render(TemplateVerification, TemplateData{
		"Name":      name,
		"Code":      code,
		"ExpiresIn": humanize(ttl),
	})
	if err != nil {
		return err
	}

	return m.provider.Send(ctx, &Message{
		To:       []string{to},
		Subject:  "Verify your email",
		Body:     fmt.Sprintf("Your verification code is %s. It expires in %s.", code, humanize(ttl)),
		HTMLBody: html,
	})
}

func (m *Mailer) SendPasswordReset(ctx context.Context, to, name, link string, ttl time.Duration) error {
	html, err := m.templates.Render(TemplatePasswordReset, TemplateData{
		"Name":      name,
		"Link":      link,
		"ExpiresIn": humanize(ttl),
	})
	if err != nil {
		return err
	}

	return m.provider.Send(ctx, &Message{
		To:       []string{to},
		Subject:  "Password reset",
		Body:     fmt.Sprintf("Reset your password: %s (expires in %s)", link, humanize(ttl)),
		HTMLBody: html,
	})
}

func (m *Mailer) Close() error {
	return m.provider.Close()
}

func humanize(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		h := int(d / time.Hour)
		if h == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", h)
	}
	return fmt.Sprintf("%d minutes", int(d/time.Minute))
}
