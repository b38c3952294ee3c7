package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vacancy_backend/internal/auth"
	"vacancy_backend/internal/cache"
	"vacancy_backend/internal/metrics"
	"vacancy_backend/internal/middleware"
	"vacancy_backend/internal/models"
	"vacancy_backend/internal/repositories"
	"vacancy_backend/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type authFixture struct {
	router    *gin.Engine
	tokens    *auth.TokenManager
	blacklist *cache.RedisBlacklist
	user      *models.Account
	recruiter *models.Account
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	db := testutil.NewDB(t)
	mr := miniredis.RunT(t)
	f := &authFixture{
		tokens:    auth.NewTokenManager("secret", time.Hour, 24*time.Hour),
		blacklist: cache.NewRedisBlacklist(redis.NewClient(&redis.Options{Addr: mr.Addr()})),
		user:      testutil.CreateAccount(t, db, models.RoleUser, "user@example.com", ""),
		recruiter: testutil.CreateAccount(t, db, models.RoleRecruiter, "hr@example.com", ""),
	}

	authn := middleware.NewAuthenticator(f.tokens, repositories.NewAccountRepository(), f.blacklist)
	f.router = gin.New()
	f.router.Use(middleware.DBMiddleware(db))
	protected := f.router.Group("/", authn.Authenticate())
	protected.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.GetUserID(c))
	})
	protected.GET("/recruiter", middleware.RequireRoles(models.RoleRecruiter, models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return f
}

func (f *authFixture) do(t *testing.T, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *authFixture) token(t *testing.T, a *models.Account) string {
	t.Helper()
	token, err := f.tokens.Issue(a.ID, a.Role, false)
	require.NoError(t, err)
	return token
}

func TestAuthenticate(t *testing.T) {
	f := newAuthFixture(t)

	rec := f.do(t, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "No token provided")

	rec = f.do(t, "/me", "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid or expired token")

	rec = f.do(t, "/me", f.token(t, f.user))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, f.user.ID, rec.Body.String())

	ghost, err := f.tokens.Issue("ghost", models.RoleUser, false)
	require.NoError(t, err)
	rec = f.do(t, "/me", ghost)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found")
}

func TestAuthenticate_RevokedToken(t *testing.T) {
	f := newAuthFixture(t)
	token := f.token(t, f.user)

	claims, err := f.tokens.Parse(token)
	require.NoError(t, err)
	require.NoError(t, f.blacklist.Revoke(context.Background(), claims.RegisteredClaims.ID, time.Hour))

	rec := f.do(t, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token has been revoked")
}

func TestRequireRoles(t *testing.T) {
	f := newAuthFixture(t)

	rec := f.do(t, "/recruiter", f.token(t, f.user))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, "/recruiter", f.token(t, f.recruiter))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRateLimiter(t *testing.T) {
	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{RequestsPerSecond: 0.001, Burst: 2})
	router := gin.New()
	router.Use(limiter.Middleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, "У другого IP своя корзина")
}

func TestRequestIDAndMetrics(t *testing.T) {
	m := metrics.New()
	router := gin.New()
	router.Use(middleware.RequestIDMiddleware(), middleware.MetricsMiddleware(m), middleware.Recovery())
	router.GET("/jobs/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/jobs/42", nil)
	req.Header.Set("X-Request-ID", "req-1")
	router.ServeHTTP(rec, req)
	assert.Equal(t, "req-1", rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	metricsRec := httptest.NewRecorder()
	m.Handler().ServeHTTP(metricsRec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, metricsRec.Body.String(), `route="/jobs/:id"`)
}
