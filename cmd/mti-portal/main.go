package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rickd091/mti-portal/internal/api"
	"github.com/rickd091/mti-portal/internal/api/handlers"
	"github.com/rickd091/mti-portal/internal/mailer"
	"github.com/rickd091/mti-portal/internal/repository"
	"github.com/rickd091/mti-portal/internal/service"
	"github.com/rickd091/mti-portal/internal/storage"
	"github.com/rickd091/mti-portal/pkg/auth"
	"github.com/rickd091/mti-portal/pkg/config"
	"github.com/rickd091/mti-portal/pkg/logger"
	"github.com/rickd091/mti-portal/pkg/postgres"

	"go.uber.org/zap"
)

// @title MTI Portal API
// @version 1.0
// @description Accreditation portal for maritime training institutions: document lifecycle, inspections, certificates and payments
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@mti-portal.example

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting MTI Portal service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	instRepo := repository.NewInstitutionRepository(db, appLogger)
	docRepo := repository.NewDocumentRepository(db, appLogger)
	inspRepo := repository.NewInspectionRepository(db, appLogger)
	certRepo := repository.NewCertificateRepository(db, appLogger)
	paymentRepo := repository.NewPaymentRepository(db, appLogger)
	typeRepo := repository.NewDocumentTypeRepository(db, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize file storage
	var files storage.Store
	switch cfg.Storage.Driver {
	case "s3":
		files, err = storage.NewS3Store(ctx, cfg.Storage.Bucket, cfg.Storage.Region, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize S3 storage", zap.Error(err))
		}
	default:
		files, err = storage.NewLocalStore(cfg.Storage.UploadDir, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize local storage", zap.Error(err))
		}
	}

	// Initialize mailer
	var mail mailer.Mailer
	if cfg.Mail.ResendAPIKey != "" {
		mail = mailer.NewResendMailer(cfg.Mail.ResendAPIKey, cfg.Mail.From, appLogger)
	} else {
		mail = mailer.NewNoopMailer(appLogger)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	instService := service.NewInstitutionService(instRepo, appLogger)
	docService := service.NewDocumentService(docRepo, files, cfg.Lifecycle, nil, appLogger)
	defer docService.CloseAll()
	inspService := service.NewInspectionService(inspRepo, instRepo, appLogger)
	certService := service.NewCertificateService(certRepo, instRepo, docRepo, typeRepo,
		cfg.Lifecycle.WarningThresholdDays, nil, appLogger)
	gateway := service.NewHTTPGateway(cfg.Payment)
	paymentService := service.NewPaymentService(paymentRepo, instRepo, gateway, cfg.Payment, appLogger)

	reminderService := service.NewReminderService(instRepo, docRepo, mail, nil,
		cfg.Lifecycle.WarningThresholdDays, cfg.Mail.ReminderInterval, appLogger)
	reminderService.Start()
	defer reminderService.Stop()

	// Initialize handlers
	h := api.Handlers{
		Auth:         handlers.NewAuthHandler(authService, appLogger),
		Institution:  handlers.NewInstitutionHandler(instService, appLogger),
		Document:     handlers.NewDocumentHandler(docService, appLogger),
		Notification: handlers.NewNotificationHandler(docService, appLogger),
		Inspection:   handlers.NewInspectionHandler(inspService, appLogger),
		Certificate:  handlers.NewCertificateHandler(certService, appLogger),
		Payment:      handlers.NewPaymentHandler(paymentService, appLogger),
	}

	// Setup router
	app := api.SetupRouter(h, jwtManager, cfg.Storage, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
