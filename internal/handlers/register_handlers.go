package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/altruvo/fundledger/cmd/docs"
	portssvc "github.com/altruvo/fundledger/internal/core/ports/services"
	"github.com/altruvo/fundledger/internal/middleware"
	"github.com/altruvo/fundledger/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerHomeRoutes(r)

	setupAPIV1Routes(r, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	// Every write carries an actor for the audit columns.
	v1 := r.Group("/api/v1", middleware.ActorMiddleware())

	orgs := v1.Group("/organizations/:organization_id")
	RegisterAccountRoutes(orgs, services.Account)
	RegisterPeriodRoutes(orgs, services.Period)
	RegisterJournalRoutes(orgs, services.Journal)
	RegisterDonationRoutes(orgs, services.Donation)
	RegisterStatementRoutes(orgs, services.Statement)
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
