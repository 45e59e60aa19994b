package router

import (
	"net/http"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/identity"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/infrastructure/auth"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/infrastructure/config"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/infrastructure/logger"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/interfaces/http/handler"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Branch   *handler.BranchHandler
	Customer *handler.CustomerHandler
	Vehicle  *handler.VehicleHandler
	Catalog  *handler.CatalogHandler
	JobOrder *handler.JobOrderHandler
	Audit    *handler.AuditHandler
}

// HealthChecker reports backend liveness, typically the database
type HealthChecker interface {
	Ping() error
}

// New builds the gin engine with middleware and all routes mounted
func New(cfg *config.Config, log *zap.Logger, jwtService *auth.JWTService, handlers Handlers, health HealthChecker) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS(cfg.HTTP.CORSAllowOrigins))
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.GET("/health", func(c *gin.Context) {
		if health != nil {
			if err := health.Ping(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")
	api.POST("/auth/login", handlers.Auth.Login)

	authed := api.Group("")
	authed.Use(middleware.Authenticate(jwtService))

	authed.GET("/auth/me", handlers.Auth.Me)

	users := authed.Group("/users")
	{
		users.POST("", handlers.User.Create)
		users.GET("", handlers.User.List)
		users.GET("/:id", handlers.User.Get)
		users.PATCH("/:id", handlers.User.Update)
		users.DELETE("/:id", handlers.User.Delete)
		users.POST("/:id/roles", handlers.User.GrantRole)
		users.DELETE("/:id/roles", handlers.User.RevokeRole)
		users.POST("/:id/branches/:branchId", handlers.User.AssignBranch)
		users.DELETE("/:id/branches/:branchId", handlers.User.RevokeBranch)
	}

	branches := authed.Group("/branches")
	{
		branches.POST("", handlers.Branch.Create)
		branches.GET("", handlers.Branch.List)
		branches.GET("/:id", handlers.Branch.Get)
		branches.PATCH("/:id", handlers.Branch.Update)
		branches.DELETE("/:id", handlers.Branch.Delete)
	}

	customers := authed.Group("/customers")
	{
		customers.POST("", handlers.Customer.Create)
		customers.GET("", handlers.Customer.List)
		customers.GET("/:id", handlers.Customer.Get)
		customers.PATCH("/:id", handlers.Customer.Update)
		customers.DELETE("/:id", handlers.Customer.Delete)
		customers.GET("/:id/vehicles", handlers.Vehicle.ListByCustomer)
	}

	vehicles := authed.Group("/vehicles")
	{
		vehicles.POST("", handlers.Vehicle.Create)
		vehicles.GET("/:id", handlers.Vehicle.Get)
		vehicles.PATCH("/:id", handlers.Vehicle.Update)
		vehicles.DELETE("/:id", handlers.Vehicle.Delete)
	}

	catalog := authed.Group("/catalog")
	{
		catalog.POST("/items", handlers.Catalog.CreateItem)
		catalog.GET("/items", handlers.Catalog.ListItems)
		catalog.GET("/items/:id", handlers.Catalog.GetItem)
		catalog.PATCH("/items/:id", handlers.Catalog.UpdateItem)
		catalog.DELETE("/items/:id", handlers.Catalog.DeleteItem)
		catalog.POST("/rules", handlers.Catalog.CreateRule)
		catalog.GET("/rules", handlers.Catalog.ListRules)
		catalog.PATCH("/rules/:id", handlers.Catalog.UpdateRule)
		catalog.DELETE("/rules/:id", handlers.Catalog.DeleteRule)
		catalog.POST("/resolve-price", handlers.Catalog.ResolvePrice)
	}

	orders := authed.Group("/job-orders")
	{
		orders.POST("", handlers.JobOrder.Create)
		orders.GET("", handlers.JobOrder.List)
		orders.GET("/:id", handlers.JobOrder.Get)
		orders.PATCH("/:id", handlers.JobOrder.Update)
		orders.DELETE("/:id", handlers.JobOrder.Delete)
		orders.POST("/:id/items", handlers.JobOrder.AddItem)
		orders.DELETE("/:id/items/:itemId", handlers.JobOrder.RemoveItem)
		orders.POST("/:id/request-approval", handlers.JobOrder.RequestApproval)
		orders.POST("/:id/approval", handlers.JobOrder.RecordApproval)
		orders.POST("/:id/cancel", handlers.JobOrder.Cancel)
		orders.POST("/:id/repairs", handlers.JobOrder.AddRepair)
		orders.GET("/:id/repairs", handlers.JobOrder.ListRepairs)
		orders.PATCH("/:id/repairs/:repairId", handlers.JobOrder.UpdateRepair)
		orders.DELETE("/:id/repairs/:repairId", handlers.JobOrder.RemoveRepair)
		orders.GET("/:id/history", handlers.JobOrder.History)
	}

	auditGroup := authed.Group("/audit")
	auditGroup.Use(middleware.RequireRole(identity.AdministrativeRoles...))
	{
		auditGroup.GET("", handlers.Audit.Trail)
		auditGroup.GET("/:entityType/:id", handlers.Audit.Entity)
	}

	return engine
}
