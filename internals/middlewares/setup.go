package middlewares

import (
	"github.com/gofiber/fiber/v2"

	loggermw "smartvisit_backend/internals/middlewares/logger"
)

// SetupMiddlewares wires the app-wide middleware stack in order:
// recovery first, then CORS, request logging, and the global limiter.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(loggermw.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
