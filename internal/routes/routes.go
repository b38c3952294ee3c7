package routes

import (
	"net/http"
	"strings"
	"time"

	"vacancy_backend/internal/handlers"
	"vacancy_backend/internal/logger"
	"vacancy_backend/internal/metrics"
	"vacancy_backend/internal/middleware"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Options - параметры роутера, не относящиеся к хэндлерам
type Options struct {
	AllowedOrigins []string
	// ListingTTL - время жизни кэша публичных списков; 0 - без кэша
	ListingTTL time.Duration
	// Статика для local storage; пустой StaticDir - не раздавать
	StaticDir string
	StaticURL string
	Swagger   bool
}

// Dependencies - собранные в app компоненты, нужные роутеру
type Dependencies struct {
	DB            *gorm.DB
	Handlers      *handlers.AppHandlers
	Authenticator *middleware.Authenticator
	Limiter       *middleware.RateLimiter
	Metrics       *metrics.Metrics
}

// NewRouter собирает gin.Engine со всеми middleware и маршрутами
func NewRouter(deps Dependencies, opts Options) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = 8 << 20

	router.Use(
		middleware.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(),
		cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)
	if deps.Metrics != nil {
		router.Use(middleware.MetricsMiddleware(deps.Metrics))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}
	if opts.Swagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	if opts.StaticDir != "" && strings.HasPrefix(opts.StaticURL, "/") {
		router.Static(opts.StaticURL, opts.StaticDir)
		logger.Info("Serving local uploads", "url", opts.StaticURL, "dir", opts.StaticDir)
	}

	guards := &handlers.RouteGuards{
		Auth: deps.Authenticator.Authenticate(),
	}
	if deps.Limiter != nil {
		guards.Limit = deps.Limiter.Middleware()
	}
	if opts.ListingTTL > 0 {
		store := persist.NewMemoryStore(time.Minute)
		guards.Cache = cache.CacheByRequestURI(store, opts.ListingTTL)
	}

	api := router.Group("/api", middleware.DBMiddleware(deps.DB))
	deps.Handlers.RegisterRoutes(api, guards)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})

	return router
}
