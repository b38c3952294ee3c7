package email

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureProvider struct {
	sent []*Message
}

func (p *captureProvider) Send(_ context.Context, msg *Message) error {
	p.sent = append(p.sent, msg)
	return nil
}

func (p *captureProvider) Close() error { return nil }

func TestMailer_SendVerificationCode(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)
	p := &captureProvider{}

	err = NewMailer(p, tm).SendVerificationCode(context.Background(), "a@x.com", "Ada", "042137", 10*time.Minute)
	require.NoError(t, err)

	require.Len(t, p.sent, 1)
	msg := p.sent[0]
	assert.Equal(t, []string{"a@x.com"}, msg.To)
	assert.Contains(t, msg.Body, "042137")
	assert.Contains(t, msg.HTMLBody, "<strong>042137</strong>")
	assert.Contains(t, msg.HTMLBody, "10 minutes")
}

func TestMailer_SendPasswordResetEscapesLink(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)
	p := &captureProvider{}

	link := "http://client/reset-password/abc?x=<b>"
	require.NoError(t, NewMailer(p, tm).SendPasswordReset(context.Background(), "a@x.com", "Ada", link, time.Hour))

	assert.Contains(t, p.sent[0].HTMLBody, "1 hour")
	assert.NotContains(t, p.sent[0].HTMLBody, "<b>")
}

func TestTemplateManager_UnknownTemplate(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	_, err = tm.Render("missing", nil)
	assert.Error(t, err)
}

func TestNewSMTPProvider_ValidatesConfig(t *testing.T) {
	_, err := NewSMTPProvider(SMTPConfig{Port: 587})
	assert.Error(t, err)

	_, err = NewSMTPProvider(SMTPConfig{Host: "smtp.example.com", Port: 0})
	assert.Error(t, err)

	p, err := NewSMTPProvider(SMTPConfig{Host: "smtp.example.com", Port: 587})
	require.NoError(t, err)
	assert.NoError(t, p.Close())
}

func TestNewSendGridProvider_RequiresKey(t *testing.T) {
	_, err := NewSendGridProvider("", Sender{Email: "no-reply@x.com"})
	assert.Error(t, err)
}
