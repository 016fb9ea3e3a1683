package api

import (
	"carelens/internal/api/handlers"
	"carelens/pkg/auth"
	"carelens/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	stHandler *handlers.StatementHandler,
	txHandler *handlers.TransactionHandler,
	decisionHandler *handlers.DecisionHandler,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 32 * 1024 * 1024,
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

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes (public)
	authGroup := app.Group("/user/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Anonymous-friendly routes: a bearer token is honored when present
	// but never required. Session IDs are unguessable and act as the
	// capability for anonymous access.
	open := app.Group("/api/v1", middleware.OptionalAuthMiddleware(jwtManager, appLogger))
	open.Post("/sessions/upload", stHandler.Upload)
	open.Get("/sessions/:id", stHandler.GetReport)
	open.Get("/sessions/:id/transactions", stHandler.GetTransactions)
	open.Get("/sessions/:id/alerts", stHandler.GetAlerts)
	open.Get("/sessions/:id/summary", stHandler.GetSummary)
	open.Get("/sessions/:id/export/:format", stHandler.Export)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))
	protected.Delete("/sessions/:id", stHandler.DeleteSession)
	protected.Get("/transactions", txHandler.List)
	protected.Patch("/transactions/:id/status", txHandler.UpdateStatus)
	protected.Post("/transactions/:id/decision", decisionHandler.Decide)
	protected.Get("/transactions/:id/suggestion", decisionHandler.GetSuggestion)
	protected.Get("/users/me/memory", decisionHandler.GetMemory)
	protected.Delete("/users/me/memory", decisionHandler.ClearMemory)
	protected.Delete("/users/me/data", decisionHandler.DeleteUserData)

	return app
}
