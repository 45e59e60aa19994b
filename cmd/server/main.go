package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appaudit "github.com/POGsss/Petrozone-Pulse-System-sub000/internal/application/audit"
	appcatalog "github.com/POGsss/Petrozone-Pulse-System-sub000/internal/application/catalog"
	appidentity "github.com/POGsss/Petrozone-Pulse-System-sub000/internal/application/identity"
	apppartner "github.com/POGsss/Petrozone-Pulse-System-sub000/internal/application/partner"
	appworkorder "github.com/POGsss/Petrozone-Pulse-System-sub000/internal/application/workorder"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/infrastructure/auth"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/infrastructure/config"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/infrastructure/event"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/infrastructure/logger"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/infrastructure/persistence"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/interfaces/http/handler"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Petrozone Pulse backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.NewGormLogger(log))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	if err := persistence.Migrate(db.DB); err != nil {
		log.Fatal("Failed to run schema migration", zap.Error(err))
	}

	// Repositories
	branchRepo := persistence.NewGormBranchRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	vehicleRepo := persistence.NewGormVehicleRepository(db.DB)
	itemRepo := persistence.NewGormCatalogItemRepository(db.DB)
	ruleRepo := persistence.NewGormPricingRuleRepository(db.DB)
	orderRepo := persistence.NewGormJobOrderRepository(db.DB)
	historyRepo := persistence.NewGormJobOrderHistoryRepository(db.DB)
	auditRepo := persistence.NewGormAuditLogRepository(db.DB)

	// Event bus with history and audit trail recorders. Recording runs on
	// event handlers so a write to the trail never blocks the mutation.
	eventBus := event.NewInMemoryEventBus(log)
	historyRecorder := appaudit.NewHistoryRecorder(historyRepo, log)
	eventBus.Subscribe(historyRecorder, historyRecorder.EventTypes()...)
	auditRecorder := appaudit.NewAuditRecorder(auditRepo, log)
	eventBus.Subscribe(auditRecorder, auditRecorder.EventTypes()...)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := appidentity.NewAuthService(userRepo, jwtService, log)
	userService := appidentity.NewUserService(userRepo, branchRepo, eventBus)
	branchService := appidentity.NewBranchService(branchRepo, eventBus)
	customerService := apppartner.NewCustomerService(customerRepo, eventBus)
	vehicleService := apppartner.NewVehicleService(vehicleRepo, customerRepo, eventBus)
	catalogService := appcatalog.NewCatalogService(itemRepo, ruleRepo, eventBus)
	pricingService := appcatalog.NewPricingService(itemRepo, ruleRepo)
	orderService := appworkorder.NewJobOrderService(orderRepo, customerRepo, vehicleRepo, pricingService, eventBus, log)
	auditQueries := appaudit.NewQueryService(historyRepo, auditRepo, orderRepo)

	handlers := router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		User:     handler.NewUserHandler(userService),
		Branch:   handler.NewBranchHandler(branchService),
		Customer: handler.NewCustomerHandler(customerService),
		Vehicle:  handler.NewVehicleHandler(vehicleService),
		Catalog:  handler.NewCatalogHandler(catalogService, pricingService),
		JobOrder: handler.NewJobOrderHandler(orderService, auditQueries),
		Audit:    handler.NewAuditHandler(auditQueries),
	}

	engine := router.New(cfg, log, jwtService, handlers, db)

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}
