package middleware

import (
	"errors"
	"strings"

	"vacancy_backend/internal/auth"
	"vacancy_backend/internal/cache"
	"vacancy_backend/internal/logger"
	"vacancy_backend/internal/models"
	"vacancy_backend/internal/repositories"
	"vacancy_backend/pkg/apperrors"
	"vacancy_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Authenticator проверяет Bearer токен и загружает аккаунт
type Authenticator struct {
	tokens    *auth.TokenManager
	accounts  repositories.AccountRepository
	blacklist cache.TokenBlacklist // nil - отзыв токенов отключен
}

func NewAuthenticator(tokens *auth.TokenManager, accounts repositories.AccountRepository, blacklist cache.TokenBlacklist) *Authenticator {
	return &Authenticator{tokens: tokens, accounts: accounts, blacklist: blacklist}
}

// Authenticate - после него в контексте лежат account, userID, role и claims токена.
// Должен стоять после DBMiddleware.
func (a *Authenticator) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			apperrors.HandleError(c, apperrors.ErrNoToken)
			return
		}

		claims, err := a.tokens.Parse(strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidToken.WithError(err))
			return
		}

		if a.blacklist != nil && claims.RegisteredClaims.ID != "" {
			revoked, err := a.blacklist.IsRevoked(c.Request.Context(), claims.RegisteredClaims.ID)
			if err != nil {
				// Redis недоступен: пропускаем, токен все равно ограничен сроком жизни
				logger.CtxWithError(c.Request.Context(), "Token blacklist lookup failed", err)
			} else if revoked {
				apperrors.HandleError(c, apperrors.ErrTokenRevoked)
				return
			}
		}

		db, ok := c.MustGet(string(contextkeys.DBContextKey)).(*gorm.DB)
		if !ok {
			apperrors.HandleError(c, apperrors.InternalError(errors.New("database is not in context")))
			return
		}
		account, err := a.accounts.FindByID(db, claims.ID)
		if err != nil {
			if errors.Is(err, repositories.ErrAccountNotFound) {
				apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not found"))
				return
			}
			apperrors.HandleError(c, apperrors.InternalError(err))
			return
		}

		c.Set(contextkeys.AccountKey, account)
		c.Set(contextkeys.UserIDKey, account.ID)
		c.Set(contextkeys.RoleKey, account.Role)
		c.Set(contextkeys.TokenKey, claims)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), account.ID))
		c.Next()
	}
}

// RequireRoles пропускает только перечисленные роли. Роль берется из аккаунта, а не из токена.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	allowed := auth.NewRoleSet(roles...)

	return func(c *gin.Context) {
		role, ok := c.Get(contextkeys.RoleKey)
		if !ok {
			apperrors.HandleError(c, apperrors.ErrNoToken)
			return
		}
		r, _ := role.(models.Role)
		if !allowed.Allows(r) {
			apperrors.HandleError(c, apperrors.ErrAccessDenied)
			return
		}
		c.Next()
	}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	id, _ := c.Get(contextkeys.UserIDKey)
	s, _ := id.(string)
	return s
}

// GetClaims - claims текущего токена, нужны для logout
func GetClaims(c *gin.Context) *auth.Claims {
	v, _ := c.Get(contextkeys.TokenKey)
	claims, _ := v.(*auth.Claims)
	return claims
}
