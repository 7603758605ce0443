package handlers

import (
	"github.com/SscSPs/cash_ledger/cmd/docs"
	"github.com/SscSPs/cash_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/cash_ledger/internal/core/ports/services"
	"github.com/SscSPs/cash_ledger/internal/middleware"
	"github.com/SscSPs/cash_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	withdrawLimiter *limiter.Limiter,
) {
	r.GET("/", getHome)
	r.GET("/health", getHealth)

	setupAPIV1Routes(r, cfg, services, withdrawLimiter)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group. Every route requires a token;
// admin and system routes additionally require a staff or system role.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	withdrawLimiter *limiter.Limiter,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	registerAssetRoutes(v1, services.CashInOut, services.CashBalance, middleware.RateLimit(withdrawLimiter))

	staff := v1.Group("", middleware.RequireRole(domain.RoleAdministrator, domain.RoleInternal))
	registerAdminRoutes(staff, services.CashInOut)

	system := v1.Group("", middleware.RequireRole(domain.RoleSystem, domain.RoleAdministrator))
	registerSystemJobRoutes(system, services.Batch, services.Calendar)
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
