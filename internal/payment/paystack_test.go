package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaystackClient_Initialize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "rec@x.com", body["email"])
		assert.EqualValues(t, 500050, body["amount"])
		assert.Equal(t, "http://client/payment/verify?recruiterId=r1", body["callback_url"])
		assert.Equal(t, "vac_ref", body["reference"])

		_, _ = w.Write([]byte(`{"status":true,"message":"ok","data":{"authorization_url":"https://checkout/abc","access_code":"abc","reference":"vac_ref"}}`))
	}))
	defer srv.Close()

	c := NewPaystackClient(srv.URL+"/", "sk_test", time.Second)
	auth, err := c.Initialize(context.Background(), InitializeRequest{
		Email:       "rec@x.com",
		Amount:      5000.5,
		CallbackURL: "http://client/payment/verify?recruiterId=r1",
		Reference:   "vac_ref",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout/abc", auth.AuthorizationURL)
	assert.Equal(t, "abc", auth.AccessCode)
	assert.Equal(t, "vac_ref", auth.Reference)
}

func TestPaystackClient_VerifyConvertsKobo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/verify/ref-1", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":true,"message":"Verification successful","data":{"reference":"ref-1","status":"success","amount":1500000,"customer":{"email":"u@x.com"}}}`))
	}))
	defer srv.Close()

	tx, err := NewPaystackClient(srv.URL, "sk", time.Second).Verify(context.Background(), "ref-1")
	require.NoError(t, err)
	assert.True(t, tx.Successful())
	assert.Equal(t, 15000.0, tx.Amount)
	assert.Equal(t, "u@x.com", tx.Email)
}

func TestPaystackClient_GatewayErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":false,"message":"Transaction reference not found"}`))
	}))
	defer srv.Close()

	_, err := NewPaystackClient(srv.URL, "sk", time.Second).Verify(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrGatewayRejected)

	srv.Close()
	_, err = NewPaystackClient(srv.URL, "sk", time.Second).Verify(context.Background(), "missing")
	assert.Error(t, err)
}

func TestPaystackClient_VerifyRejectsUnsafeReference(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, "/transaction/verify/vac_Ok-1=", r.URL.EscapedPath())
		assert.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"status":true,"data":{"reference":"vac_Ok-1=","status":"success","amount":100}}`))
	}))
	defer srv.Close()

	c := NewPaystackClient(srv.URL, "sk", time.Second)

	for _, ref := range []string{
		"../../customer/abc?perPage=1",
		"ref/with/slash",
		"ref?x=1",
		"ref#frag",
		"..",
		"",
	} {
		_, err := c.Verify(context.Background(), ref)
		assert.ErrorIs(t, err, ErrInvalidReference, "reference %q", ref)
	}
	assert.Zero(t, hits, "Шлюз не должен получать запросы с небезопасным reference")

	tx, err := c.Verify(context.Background(), "vac_Ok-1=")
	require.NoError(t, err)
	assert.True(t, tx.Successful())
	assert.Equal(t, 1, hits)
}

func TestNewReference(t *testing.T) {
	a, err := NewReference()
	require.NoError(t, err)
	b, err := NewReference()
	require.NoError(t, err)

	assert.Regexp(t, `^vac_[0-9a-z]{16}$`, a)
	assert.True(t, ValidReference(a))
	assert.NotEqual(t, a, b)
}
