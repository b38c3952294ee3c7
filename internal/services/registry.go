package services

import (
	"vacancy_backend/internal/auth"
	"vacancy_backend/internal/cache"
	"vacancy_backend/internal/email"
	"vacancy_backend/internal/imageprocessor"
	"vacancy_backend/internal/payment"
	"vacancy_backend/internal/repositories"
	"vacancy_backend/internal/storage"
)

// Dependencies - внешние зависимости, из которых собираются сервисы
type Dependencies struct {
	Tokens    *auth.TokenManager
	Mailer    *email.Mailer
	Google    auth.GoogleVerifier
	Blacklist cache.TokenBlacklist
	Storage   storage.Storage
	Images    *imageprocessor.Processor
	Gateway   payment.Gateway

	ClientURL      string
	RequirePayment bool
	Limits         UploadLimits

	// Хуки метрик, могут быть nil
	OnApplied         func()
	OnPaymentVerified func(flow, result string)
}

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	Accounts repositories.AccountRepository

	AuthService        AuthService
	ProfileService     ProfileService
	JobService         JobService
	ApplicationService ApplicationService
	FavoriteService    FavoriteService
	AlertService       AlertService
	PaymentService     PaymentService
}

func NewServiceContainer(deps Dependencies) *ServiceContainer {
	accountRepo := repositories.NewAccountRepository()
	jobRepo := repositories.NewJobRepository()
	applicationRepo := repositories.NewApplicationRepository()
	favoriteRepo := repositories.NewFavoriteRepository()
	alertRepo := repositories.NewAlertRepository()

	uploader := NewFileUploader(deps.Storage, deps.Images, deps.Limits)

	return &ServiceContainer{
		Accounts: accountRepo,

		AuthService:        NewAuthService(accountRepo, deps.Tokens, deps.Mailer, deps.Google, deps.Blacklist, deps.ClientURL),
		ProfileService:     NewProfileService(accountRepo, uploader),
		JobService:         NewJobService(jobRepo, accountRepo, applicationRepo, deps.RequirePayment),
		ApplicationService: NewApplicationService(applicationRepo, jobRepo, uploader, deps.OnApplied),
		FavoriteService:    NewFavoriteService(favoriteRepo, jobRepo),
		AlertService:       NewAlertService(alertRepo, jobRepo),
		PaymentService:     NewPaymentService(accountRepo, deps.Gateway, deps.ClientURL, deps.OnPaymentVerified),
	}
}
