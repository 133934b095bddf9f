package handlers

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/kewat_ledger/cmd/docs"
	portssvc "github.com/SscSPs/kewat_ledger/internal/core/ports/services"
	"github.com/SscSPs/kewat_ledger/internal/middleware"
	"github.com/SscSPs/kewat_ledger/internal/platform/config"
	"github.com/SscSPs/kewat_ledger/internal/platform/metrics"
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

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if err := setupPublicRoutes(r, cfg, services); err != nil {
		return err
	}

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupPublicRoutes configures the unauthenticated, IP rate-limited routes.
func setupPublicRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) error {
	limiter, err := middleware.NewMemoryLimiter(cfg.PublicRateLimit)
	if err != nil {
		return fmt.Errorf("public rate limit: %w", err)
	}
	public := r.Group("/api/v1/public", middleware.RateLimit(limiter))
	registerPublicInviteRoutes(public, services.Invite)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	registerPushTokenRoutes(v1, services.Notification)

	// Routes specific to a single group (identified by group_id)
	group := v1.Group("/groups/:group_id")
	{
		registerGroupRoutes(group, services.Group)
		registerLedgerRoutes(group, services.Ledger)
		registerInterestRoutes(group, services.Interest, cfg.DefaultReminderRateBps)
		registerNotificationRoutes(group, services.Notification)
		registerAnnouncementRoutes(group, services.Announcement)
		registerInviteRoutes(group, services.Invite)
	}
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
