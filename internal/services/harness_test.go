package services_test

import (
	"testing"
	"time"

	"vacancy_backend/internal/auth"
	"vacancy_backend/internal/email"
	"vacancy_backend/internal/imageprocessor"
	"vacancy_backend/internal/models"
	"vacancy_backend/internal/services"
	"vacancy_backend/internal/storage"
	"vacancy_backend/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testClientURL = "http://client.test"

type harness struct {
	db       *gorm.DB
	svc      *services.ServiceContainer
	tokens   *auth.TokenManager
	mail     *testutil.MailRecorder
	gateway  *testutil.GatewayStub
	store    *storage.LocalStorage
	applied  int
	verified []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	store, err := storage.NewLocalStorage(storage.Config{BasePath: t.TempDir(), BaseURL: "/uploads"})
	require.NoError(t, err)
	templates, err := email.NewTemplateManager()
	require.NoError(t, err)

	h := &harness{
		db:      testutil.NewDB(t),
		tokens:  auth.NewTokenManager("test-secret", time.Hour, 7*24*time.Hour),
		mail:    &testutil.MailRecorder{},
		gateway: testutil.NewGatewayStub(),
		store:   store,
	}
	h.svc = services.NewServiceContainer(services.Dependencies{
		Tokens: h.tokens,
		Mailer: email.NewMailer(h.mail, templates),
		Google: &testutil.GoogleStub{Identity: auth.GoogleIdentity{
			Subject: "google-1", Email: "g.user@example.com", FirstName: "G", LastName: "User",
		}},
		Storage:        store,
		Images:         imageprocessor.NewProcessor(80),
		Gateway:        h.gateway,
		ClientURL:      testClientURL,
		RequirePayment: true,
		Limits:         services.UploadLimits{MaxResumeSize: 1 << 20, MaxImageSize: 1 << 20},
		OnApplied:      func() { h.applied++ },
		OnPaymentVerified: func(flow, result string) {
			h.verified = append(h.verified, flow+":"+result)
		},
	})
	return h
}

func actorOf(a *models.Account) services.Actor {
	return services.Actor{ID: a.ID, Role: a.Role}
}

func ptr[T any](v T) *T { return &v }
