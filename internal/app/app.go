package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"vacancy_backend/database"
	"vacancy_backend/internal/auth"
	"vacancy_backend/internal/cache"
	"vacancy_backend/internal/config"
	"vacancy_backend/internal/email"
	"vacancy_backend/internal/handlers"
	"vacancy_backend/internal/imageprocessor"
	"vacancy_backend/internal/logger"
	"vacancy_backend/internal/metrics"
	"vacancy_backend/internal/middleware"
	"vacancy_backend/internal/payment"
	"vacancy_backend/internal/repositories"
	"vacancy_backend/internal/routes"
	"vacancy_backend/internal/services"
	"vacancy_backend/internal/storage"
	"vacancy_backend/internal/validator"
	"vacancy_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// App владеет всеми долгоживущими ресурсами процесса
type App struct {
	cfg *config.Config

	db        *gorm.DB
	redis     *redis.Client
	mailer    *email.Mailer
	metrics   *metrics.Metrics
	limiter   *middleware.RateLimiter
	scheduler *workers.Scheduler
	router    *gin.Engine

	Services *services.ServiceContainer
}

// Option подменяет внешние зависимости, в основном для тестов
type Option func(*overrides)

type overrides struct {
	emailProvider email.Provider
	google        auth.GoogleVerifier
	gateway       payment.Gateway
}

func WithEmailProvider(p email.Provider) Option {
	return func(o *overrides) { o.emailProvider = p }
}

func WithGoogleVerifier(v auth.GoogleVerifier) Option {
	return func(o *overrides) { o.google = v }
}

func WithPaymentGateway(g payment.Gateway) Option {
	return func(o *overrides) { o.gateway = g }
}

// New собирает приложение. При ошибке уже открытые ресурсы закрываются.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (_ *App, err error) {
	var o overrides
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{cfg: cfg}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	a.db, err = database.Open(database.Config{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		Debug:        cfg.IsDevelopment(),
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Database connected", "driver", cfg.Database.Driver)

	if cfg.Database.AutoMigrate {
		if err = database.AutoMigrate(a.db); err != nil {
			return nil, err
		}
	}

	// nil интерфейс, а не типизированный nil: сервисы проверяют blacklist == nil
	var blacklist cache.TokenBlacklist
	if cfg.Redis.URL != "" {
		a.redis, err = cache.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, err
		}
		blacklist = cache.NewRedisBlacklist(a.redis)
		logger.Info("Token blacklist enabled")
	} else {
		logger.Warn("REDIS_URL is not set, logout will not revoke tokens")
	}

	provider := o.emailProvider
	if provider == nil {
		if provider, err = newEmailProvider(cfg); err != nil {
			return nil, err
		}
	}
	templates, err := email.NewTemplateManager()
	if err != nil {
		return nil, fmt.Errorf("email templates: %w", err)
	}
	a.mailer = email.NewMailer(provider, templates)

	store, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	google := o.google
	if google == nil {
		google = auth.NewIDTokenVerifier(cfg.Google.ClientID)
	}
	gateway := o.gateway
	if gateway == nil {
		gateway = payment.NewPaystackClient(cfg.Paystack.BaseURL, cfg.Paystack.SecretKey, cfg.Paystack.Timeout)
	}

	a.metrics = metrics.New()
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL, cfg.JWT.RememberMeTTL)

	a.Services = services.NewServiceContainer(services.Dependencies{
		Tokens:         tokens,
		Mailer:         a.mailer,
		Google:         google,
		Blacklist:      blacklist,
		Storage:        store,
		Images:         imageprocessor.NewProcessor(cfg.Upload.ImageQuality),
		Gateway:        gateway,
		ClientURL:      cfg.App.ClientURL,
		RequirePayment: cfg.Jobs.RequirePayment,
		Limits: services.UploadLimits{
			MaxResumeSize: cfg.Upload.MaxResumeSize,
			MaxImageSize:  cfg.Upload.MaxImageSize,
		},
		OnApplied:         a.metrics.ApplicationSubmitted,
		OnPaymentVerified: a.metrics.PaymentVerified,
	})

	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		created, seedErr := a.Services.AuthService.SeedAdmin(a.db, cfg.Admin.Email, cfg.Admin.Password)
		if seedErr != nil {
			return nil, fmt.Errorf("seed first admin: %w", seedErr)
		}
		if created {
			logger.Warn("First admin created", "email", cfg.Admin.Email)
		}
	} else {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
	}

	if cfg.RateLimit.RequestsPerSecond > 0 {
		a.limiter = middleware.NewRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		})
	}

	a.scheduler = workers.NewScheduler()
	expiry := workers.NewJobExpiryWorker(a.db, repositories.NewJobRepository(), a.metrics.JobsExpired)
	if err = a.scheduler.Add(ctx, cfg.Workers.JobExpirySchedule, expiry); err != nil {
		return nil, err
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	baseHandler := handlers.NewBaseHandler(validator.New())
	staticDir := ""
	if cfg.Storage.Type == "local" {
		staticDir = cfg.Storage.BasePath
	}

	a.router = routes.NewRouter(routes.Dependencies{
		DB:            a.db,
		Handlers:      handlers.NewAppHandlers(baseHandler, a.Services),
		Authenticator: middleware.NewAuthenticator(tokens, a.Services.Accounts, blacklist),
		Limiter:       a.limiter,
		Metrics:       a.metrics,
	}, routes.Options{
		AllowedOrigins: cfg.App.AllowedOrigins,
		ListingTTL:     cfg.Cache.ListingTTL,
		StaticDir:      staticDir,
		StaticURL:      cfg.Storage.BaseURL,
		Swagger:        true,
	})

	return a, nil
}

func newEmailProvider(cfg *config.Config) (email.Provider, error) {
	from := email.Sender{Email: cfg.Email.FromEmail, Name: cfg.Email.FromName}

	switch cfg.Email.Provider {
	case "smtp":
		return email.NewSMTPProvider(email.SMTPConfig{
			Host:     cfg.Email.SMTPHost,
			Port:     cfg.Email.SMTPPort,
			Username: cfg.Email.SMTPUsername,
			Password: cfg.Email.SMTPPassword,
			From:     from,
		})
	case "sendgrid":
		return email.NewSendGridProvider(cfg.Email.SendGridAPIKey, from)
	case "log":
		return email.NewLogProvider(logger.GetLogger()), nil
	default:
		return nil, fmt.Errorf("unsupported email provider: %s", cfg.Email.Provider)
	}
}

// Handler - корневой http.Handler, удобен для httptest
func (a *App) Handler() http.Handler {
	return a.router
}

// DB нужен тестам для подготовки данных
func (a *App) DB() *gorm.DB {
	return a.db
}

// Run обслуживает HTTP и фоновые задачи до отмены ctx, затем останавливает сервер
func (a *App) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port),
		Handler: a.router,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		logger.Info("Shutting down server", "timeout", a.cfg.Server.ShutdownTimeout)
		return server.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return a.scheduler.Run(gctx)
	})

	if a.limiter != nil {
		g.Go(func() error {
			a.limiter.Run(gctx)
			return nil
		})
	}

	return g.Wait()
}

// Close освобождает ресурсы в обратном порядке создания
func (a *App) Close() error {
	var errs []error
	if a.mailer != nil {
		errs = append(errs, a.mailer.Close())
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		errs = append(errs, database.Close(a.db))
	}
	return errors.Join(errs...)
}
