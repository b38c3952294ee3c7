package email

import (
	"context"
	"log/slog"
)

// Provider - транспорт отправки писем (SMTP, SendGrid, лог)
type Provider interface {
	Send(ctx context.Context, msg *Message) error
	Close() error
}

// Sender - адрес отправителя, общий для всех провайдеров
type Sender struct {
	Email string
	Name  string
}

// LogProvider ничего не отправляет, только пишет письмо в лог.
// Для локальной разработки без SMTP.
type LogProvider struct {
	log *slog.Logger
}

func NewLogProvider(log *slog.Logger) *LogProvider {
	return &LogProvider{log: log}
}

func (p *LogProvider) Send(ctx context.Context, msg *Message) error {
	p.log.InfoContext(ctx, "email (log provider)",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}

func (p *LogProvider) Close() error { return nil }
