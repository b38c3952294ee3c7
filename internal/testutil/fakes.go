package testutil

import (
	"context"
	"errors"
	"regexp"
	"sync"

	"vacancy_backend/internal/auth"
	"vacancy_backend/internal/email"
	"vacancy_backend/internal/payment"
)

// MailRecorder - email.Provider, который запоминает письма вместо отправки
type MailRecorder struct {
	mu   sync.Mutex
	sent []*email.Message
	Err  error
}

func (r *MailRecorder) Send(ctx context.Context, msg *email.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func (r *MailRecorder) Close() error { return nil }

func (r *MailRecorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func (r *MailRecorder) Last() *email.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sent) == 0 {
		return nil
	}
	return r.sent[len(r.sent)-1]
}

var codePattern = regexp.MustCompile(`\b\d{6}\b`)

// LastCode достает 6-значный код из последнего письма
func (r *MailRecorder) LastCode() string {
	msg := r.Last()
	if msg == nil {
		return ""
	}
	return codePattern.FindString(msg.Body)
}

// GoogleStub возвращает заранее заданную личность для любого токена, кроме "bad"
type GoogleStub struct {
	Identity auth.GoogleIdentity
}

func (g *GoogleStub) Verify(ctx context.Context, token string) (*auth.GoogleIdentity, error) {
	if token == "bad" {
		return nil, errors.New("token rejected")
	}
	identity := g.Identity
	return &identity, nil
}

// GatewayStub - payment.Gateway в памяти. Статусы транзакций задаются по reference.
type GatewayStub struct {
	mu           sync.Mutex
	Transactions map[string]*payment.Transaction
	Initialized  []payment.InitializeRequest
	Err          error
}

func NewGatewayStub() *GatewayStub {
	return &GatewayStub{Transactions: map[string]*payment.Transaction{}}
}

// Succeed регистрирует успешную оплату на amount naira
func (g *GatewayStub) Succeed(reference string, amount float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Transactions[reference] = &payment.Transaction{Reference: reference, Status: "success", Amount: amount}
}

func (g *GatewayStub) Fail(reference string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Transactions[reference] = &payment.Transaction{Reference: reference, Status: "failed"}
}

func (g *GatewayStub) Initialize(ctx context.Context, req payment.InitializeRequest) (*payment.Authorization, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}
	g.Initialized = append(g.Initialized, req)
	return &payment.Authorization{
		AuthorizationURL: "https://checkout.example/" + req.Reference,
		AccessCode:       "access_" + req.Reference,
		Reference:        req.Reference,
	}, nil
}

func (g *GatewayStub) Verify(ctx context.Context, reference string) (*payment.Transaction, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}
	txn, ok := g.Transactions[reference]
	if !ok {
		return nil, payment.ErrGatewayRejected
	}
	cp := *txn
	return &cp, nil
}

// LastInitialized - последний запрос Initialize
func (g *GatewayStub) LastInitialized() payment.InitializeRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.Initialized) == 0 {
		return payment.InitializeRequest{}
	}
	return g.Initialized[len(g.Initialized)-1]
}
