package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const referenceAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

var (
	ErrGatewayRejected  = errors.New("payment gateway rejected the request")
	ErrNotSuccessful    = errors.New("transaction was not successful")
	ErrInvalidReference = errors.New("invalid payment reference")
)

// Reference попадает в путь запроса к шлюзу, поэтому разрешен только узкий алфавит
var referencePattern = regexp.MustCompile(`^[A-Za-z0-9_=-]{1,100}$`)

func ValidReference(reference string) bool {
	return referencePattern.MatchString(reference)
}

// Gateway - внешний платежный шлюз
type Gateway interface {
	Initialize(ctx context.Context, req InitializeRequest) (*Authorization, error)
	Verify(ctx context.Context, reference string) (*Transaction, error)
}

type InitializeRequest struct {
	Email       string
	Amount      float64 // в naira
	CallbackURL string
	Reference   string
}

type Authorization struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// Transaction - результат verify. Amount уже переведен из kobo в naira.
type Transaction struct {
	Reference string
	Status    string
	Amount    float64
	Email     string
	PaidAt    *time.Time
}

func (t *Transaction) Successful() bool {
	return t.Status == "success"
}

// NewReference генерирует локальный reference транзакции
func NewReference() (string, error) {
	id, err := gonanoid.Generate(referenceAlphabet, 16)
	if err != nil {
		return "", fmt.Errorf("failed to generate payment reference: %w", err)
	}
	return "vac_" + id, nil
}

// PaystackClient - REST клиент Paystack (initialize / verify)
type PaystackClient struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewPaystackClient(baseURL, secretKey string, timeout time.Duration) *PaystackClient {
	return &PaystackClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *PaystackClient) Initialize(ctx context.Context, req InitializeRequest) (*Authorization, error) {
	body := map[string]interface{}{
		"email":        req.Email,
		"amount":       toKobo(req.Amount),
		"callback_url": req.CallbackURL,
	}
	if req.Reference != "" {
		body["reference"] = req.Reference
	}

	var auth Authorization
	if err := c.do(ctx, http.MethodPost, "/transaction/initialize", body, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

func (c *PaystackClient) Verify(ctx context.Context, reference string) (*Transaction, error) {
	var data struct {
		Reference string     `json:"reference"`
		Status    string     `json:"status"`
		Amount    int64      `json:"amount"`
		PaidAt    *time.Time `json:"paid_at"`
		Customer  struct {
			Email string `json:"email"`
		} `json:"customer"`
	}
	if !ValidReference(reference) {
		return nil, ErrInvalidReference
	}
	if err := c.do(ctx, http.MethodGet, "/transaction/verify/"+url.PathEscape(reference), nil, &data); err != nil {
		return nil, err
	}

	return &Transaction{
		Reference: data.Reference,
		Status:    data.Status,
		Amount:    float64(data.Amount) / 100,
		Email:     data.Customer.Email,
		PaidAt:    data.PaidAt,
	}, nil
}

func (c *PaystackClient) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode paystack request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build paystack request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("paystack request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode paystack response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode >= 400 || !env.Status {
		return fmt.Errorf("%w: %s (status %d)", ErrGatewayRejected, env.Message, resp.StatusCode)
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode paystack data: %w", err)
	}
	return nil
}

func toKobo(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
