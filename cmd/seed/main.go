package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/rickd091/mti-portal/internal/models"
	"github.com/rickd091/mti-portal/internal/repository"
	"github.com/rickd091/mti-portal/pkg/auth"
	"github.com/rickd091/mti-portal/pkg/config"
	"github.com/rickd091/mti-portal/pkg/logger"
	"github.com/rickd091/mti-portal/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db, appLogger)
	typeRepo := repository.NewDocumentTypeRepository(db, appLogger)

	appLogger.Info("Starting database seeding...")

	if err := seedAdminUser(ctx, userRepo, appLogger); err != nil {
		appLogger.Fatal("Failed to seed admin user", zap.Error(err))
	}

	if err := seedDocumentTypes(ctx, typeRepo, appLogger); err != nil {
		appLogger.Fatal("Failed to seed document type catalog", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!")
}

// documentTypeCatalog is the fixed catalog of document kinds an institution
// submits with an accreditation application. Required entries gate
// certificate issuance.
var documentTypeCatalog = []models.DocumentType{
	{Key: "registration_certificate", Label: "Certificate of Registration", Category: models.CategoryInstitutional, Required: true},
	{Key: "training_license", Label: "Training License", Category: models.CategoryInstitutional, Required: true},
	{Key: "safety_management_certificate", Label: "Safety Management Certificate", Category: models.CategoryCompliance, Required: true},
	{Key: "course_curriculum", Label: "Approved Course Curriculum", Category: models.CategoryAcademic, Required: true},
	{Key: "instructor_credentials", Label: "Instructor Credentials", Category: models.CategoryAcademic, Required: true},
	{Key: "audited_accounts", Label: "Audited Financial Accounts", Category: models.CategoryFinancial, Required: false},
	{Key: "facility_inspection_report", Label: "Facility Inspection Report", Category: models.CategoryFacility, Required: false},
}

func seedDocumentTypes(ctx context.Context, typeRepo *repository.DocumentTypeRepository, appLogger *zap.Logger) error {
	now := time.Now()
	for _, dt := range documentTypeCatalog {
		dt.ID = uuid.New()
		dt.CreatedAt = now
		if err := typeRepo.Upsert(ctx, &dt); err != nil {
			return err
		}
	}

	appLogger.Info("Document type catalog seeded", zap.Int("types", len(documentTypeCatalog)))
	return nil
}

// seedAdminUser creates the bootstrap admin account if it does not exist.
// Credentials come from SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD.
func seedAdminUser(ctx context.Context, userRepo *repository.UserRepository, appLogger *zap.Logger) error {
	email := getEnvDefault("SEED_ADMIN_EMAIL", "admin@mti-portal.example")
	password := getEnvDefault("SEED_ADMIN_PASSWORD", "admin-change-me")

	if _, err := userRepo.GetByEmail(ctx, email); err == nil {
		appLogger.Info("Admin user already exists", zap.String("email", email))
		return nil
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now()
	admin := &models.User{
		ID:        uuid.New(),
		Username:  "admin",
		Email:     email,
		Password:  hashed,
		Role:      models.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return err
	}

	appLogger.Info("Admin user created", zap.String("email", email))
	return nil
}

func getEnvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
