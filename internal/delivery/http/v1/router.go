package v1

import (
	"time"

	"internport-backend/config"
	"internport-backend/internal/delivery/http/middleware"
	"internport-backend/internal/domain"
	"internport-backend/internal/usecase"
	"internport-backend/pkg/auth"
	"internport-backend/pkg/metrics"
	"internport-backend/pkg/security"
	"internport-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	ProfileUC     domain.ProfileUsecase
	InternshipUC  domain.InternshipUsecase
	ApplicationUC domain.ApplicationUsecase
	UploadUC      domain.UploadUsecase
	AdminUC       domain.AdminUsecase
	HealthUC      usecase.HealthUsecase
	Tokens        *auth.TokenManager
	LoginGuard    LoginGuard
	Audit         *security.SecurityLogger
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	cfg := deps.Config
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())
	r.Use(gin.Logger())
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL, cfg.AllowedOrigins, cfg.IsProduction()))
	r.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))
	r.Use(middleware.RateLimitMiddleware(middleware.DefaultRateLimitConfig(cfg.RateLimitGlobalThreshold, window)))
	r.Use(middleware.ErrorHandler())

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if deps.HealthUC != nil {
		NewHealthHandler(r, deps.HealthUC)
	}

	// Public routes
	public := r.Group("")
	public.Use(middleware.RateLimitMiddleware(middleware.LoginRateLimitConfig(cfg.RateLimitLoginThreshold, window)))
	NewAuthHandler(public, deps.AuthUC, deps.LoginGuard, deps.Audit)

	// Protected routes; roles are checked per route
	api := r.Group("/api")
	api.Use(middleware.RequireToken(deps.Tokens))
	{
		NewProfileHandler(api, deps.ProfileUC)
		NewInternshipHandler(api, deps.InternshipUC)
		NewApplicationHandler(api, deps.ApplicationUC)
		NewUploadHandler(r, api, deps.UploadUC, cfg.MaxUploadSize)
		NewAdminHandler(api, deps.AdminUC)
	}

	return r
}
