package api

import (
	"github.com/rickd091/mti-portal/docs"
	"github.com/rickd091/mti-portal/internal/api/handlers"
	"github.com/rickd091/mti-portal/pkg/auth"
	"github.com/rickd091/mti-portal/pkg/config"
	"github.com/rickd091/mti-portal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Institution  *handlers.InstitutionHandler
	Document     *handlers.DocumentHandler
	Notification *handlers.NotificationHandler
	Inspection   *handlers.InspectionHandler
	Certificate  *handlers.CertificateHandler
	Payment      *handlers.PaymentHandler
}

func SetupRouter(
	h Handlers,
	jwtManager *auth.JWTManager,
	storageCfg config.StorageConfig,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Importing the docs package registers the swagger spec via init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Uploaded files are served directly when the local storage driver is used
	if storageCfg.Driver == "local" {
		app.Static("/uploads", storageCfg.UploadDir)
	}

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	// Auth routes (public)
	authGroup := v1.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)

	// Gateway callback (public, the gateway carries no portal token)
	v1.Post("/payments/callback", h.Payment.Callback)

	// Protected routes
	protected := v1.Group("", middleware.AuthMiddleware(jwtManager, appLogger))
	admin := middleware.RequireRole("admin", appLogger)

	institutions := protected.Group("/institutions")
	institutions.Post("", h.Institution.Register)
	institutions.Get("", admin, h.Institution.List)
	institutions.Get("/:id", h.Institution.Get)
	institutions.Patch("/:id/status", admin, h.Institution.UpdateStatus)

	institutions.Post("/:id/documents", h.Document.Upload)
	institutions.Get("/:id/documents", h.Document.List)
	institutions.Get("/:id/documents/:key", h.Document.Get)
	institutions.Post("/:id/documents/:key/transition", admin, h.Document.Transition)
	institutions.Post("/:id/documents/:key/renewal", h.Document.RequestRenewal)

	institutions.Get("/:id/notifications", h.Notification.List)
	institutions.Get("/:id/summary", h.Notification.Summary)
	institutions.Get("/:id/events", h.Notification.Events)

	institutions.Get("/:id/inspections", h.Inspection.ListByInstitution)
	institutions.Get("/:id/certificates", h.Certificate.ListByInstitution)
	institutions.Post("/:id/certificates", admin, h.Certificate.Issue)
	institutions.Get("/:id/payments", h.Payment.ListByInstitution)
	institutions.Post("/:id/payments", h.Payment.Initiate)

	protected.Get("/uploads/:progressID", h.Document.Progress)

	inspections := protected.Group("/inspections", admin)
	inspections.Post("", h.Inspection.Schedule)
	inspections.Post("/:id/record", h.Inspection.Record)

	protected.Post("/certificates/:id/revoke", admin, h.Certificate.Revoke)
	protected.Post("/payments/:reference/reconcile", h.Payment.Reconcile)

	return app
}
