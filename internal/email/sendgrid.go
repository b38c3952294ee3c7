package email

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridProvider отправляет через SendGrid v3 API
type SendGridProvider struct {
	client *sendgrid.Client
	from   Sender
}

func NewSendGridProvider(apiKey string, from Sender) (*SendGridProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("sendgrid api key is required")
	}
	return &SendGridProvider{
		client: sendgrid.NewSendClient(apiKey),
		from:   from,
	}, nil
}

func (p *SendGridProvider) Send(ctx context.Context, msg *Message) error {
	from := mail.NewEmail(p.from.Name, p.from.Email)

	for _, to := range msg.To {
		m := mail.NewSingleEmail(from, msg.Subject, mail.NewEmail("", to), msg.Body, msg.HTMLBody)
		resp, err := p.client.SendWithContext(ctx, m)
		if err != nil {
			return fmt.Errorf("sendgrid send failed: %w", err)
		}
		if resp.StatusCode >= 300 {
			return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
		}
	}
	return nil
}

func (p *SendGridProvider) Close() error { return nil }
