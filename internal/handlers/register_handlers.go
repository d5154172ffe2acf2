package handlers

import (
	"net/http"

	"github.com/SscSPs/expense_tracker_app/cmd/docs"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/middleware"
	"github.com/SscSPs/expense_tracker_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	registerValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	loginLimiter, err := middleware.NewIPRateLimiter(cfg.LoginRateLimit)
	if err != nil {
		return err
	}

	api := r.Group("/api/v1")
	registerAuthRoutes(api, services.Auth, middleware.RateLimit(loginLimiter))

	setupAPIV1Routes(api, cfg, services)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the authenticated part of /api/v1
func setupAPIV1Routes(
	api *gin.RouterGroup,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := api.Group("", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.User)
	registerAccountRoutes(v1, services.Account)
	registerCreditRoutes(v1, services.Credit)
	registerExpenseRoutes(v1, services.Expense, expenseHandlerConfig{
		UploadDir:      cfg.UploadDir,
		MaxUploadBytes: cfg.MaxUploadBytes(),
		CurrencyLabel:  cfg.CurrencyLabel,
	})
	registerReconciliationRoutes(v1, services.Reconciliation)
	registerDashboardRoutes(v1, services.Dashboard)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
