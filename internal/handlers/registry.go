package handlers

import (
	"vacancy_backend/internal/middleware"
	"vacancy_backend/internal/models"
	"vacancy_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler      *AuthHandler
	RecruiterHandler *RecruiterHandler
	JobHandler       *JobHandler
	UserJobHandler   *UserJobHandler
	AlertHandler     *AlertHandler
	PaymentHandler   *PaymentHandler
	CandidateHandler *CandidateHandler
}

// RouteGuards - middleware, которые хэндлеры навешивают на свои группы
type RouteGuards struct {
	// Auth проверяет bearer токен и кладет аккаунт в контекст
	Auth gin.HandlerFunc
	// Limit ограничивает частоту запросов к auth маршрутам; nil - без ограничения
	Limit gin.HandlerFunc
	// Cache кэширует ответы публичных GET; nil - без кэша
	Cache gin.HandlerFunc
}

func (g *RouteGuards) authed(roles ...models.Role) []gin.HandlerFunc {
	chain := []gin.HandlerFunc{g.Auth}
	if len(roles) > 0 {
		chain = append(chain, middleware.RequireRoles(roles...))
	}
	return chain
}

func (g *RouteGuards) limited(h gin.HandlerFunc) []gin.HandlerFunc {
	if g.Limit == nil {
		return []gin.HandlerFunc{h}
	}
	return []gin.HandlerFunc{g.Limit, h}
}

func (g *RouteGuards) cached(h gin.HandlerFunc) []gin.HandlerFunc {
	if g.Cache == nil {
		return []gin.HandlerFunc{h}
	}
	return []gin.HandlerFunc{g.Cache, h}
}

// RegisterRoutes регистрирует маршруты всех хэндлеров на группе /api
func (a *AppHandlers) RegisterRoutes(api *gin.RouterGroup, guards *RouteGuards) {
	a.AuthHandler.RegisterRoutes(api, guards)
	a.RecruiterHandler.RegisterRoutes(api, guards)
	a.JobHandler.RegisterRoutes(api, guards)
	a.UserJobHandler.RegisterRoutes(api, guards)
	a.AlertHandler.RegisterRoutes(api, guards)
	a.PaymentHandler.RegisterRoutes(api, guards)
	a.CandidateHandler.RegisterRoutes(api, guards)
}

func NewAppHandlers(base *BaseHandler, s *services.ServiceContainer) *AppHandlers {
	return &AppHandlers{
		AuthHandler:      NewAuthHandler(base, s.AuthService, s.ProfileService),
		RecruiterHandler: NewRecruiterHandler(base, s.AuthService, s.ProfileService),
		JobHandler:       NewJobHandler(base, s.JobService, s.ApplicationService),
		UserJobHandler:   NewUserJobHandler(base, s.JobService, s.ApplicationService, s.FavoriteService),
		AlertHandler:     NewAlertHandler(base, s.AlertService),
		PaymentHandler:   NewPaymentHandler(base, s.PaymentService),
		CandidateHandler: NewCandidateHandler(base, s.ProfileService),
	}
}
