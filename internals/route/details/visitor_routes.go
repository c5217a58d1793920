package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"smartvisit_backend/internals/constants"
	logController "smartvisit_backend/internals/features/visitors/logs/controller"
	visitorController "smartvisit_backend/internals/features/visitors/visitor/controller"
	visitorService "smartvisit_backend/internals/features/visitors/visitor/service"
	"smartvisit_backend/internals/middlewares"
	authMiddleware "smartvisit_backend/internals/middlewares/auth"
)

// VisitorRoutes mounts the visit lifecycle. The kiosk, QR and offline
// flows are public (rate-limited) and must be registered before the
// authenticated group so they are matched first; staff operations sit
// behind auth with role gates on the mutating desk endpoints.
func VisitorRoutes(app *fiber.App, db *gorm.DB, lifecycle *visitorService.LifecycleService) {
	checkin := visitorController.NewCheckinController(lifecycle)
	visitors := visitorController.NewVisitorController(db, lifecycle)
	logs := logController.NewVisitorLogController(db)

	// kiosk and self-service flows
	app.Post("/api/visitors/kiosk-checkin", middlewares.KioskRateLimiter(), checkin.KioskCheckIn)
	app.Post("/api/visitors/qr-checkin", middlewares.KioskRateLimiter(), checkin.QRCheckIn)
	app.Post("/api/visitors/offline-checkin", middlewares.KioskRateLimiter(), checkin.OfflineCheckIn)

	deskOnly := authMiddleware.OnlyRoles(
		"Only admins and receptionists can perform this action",
		constants.RoleAdmin, constants.RoleReceptionist,
	)

	protected := app.Group("/api/visitors", authMiddleware.AuthMiddleware(db))
	protected.Get("/", visitors.GetVisitors)
	protected.Post("/", deskOnly, checkin.CheckIn)
	protected.Post("/pre-register", checkin.PreRegister)
	protected.Get("/:id", visitors.GetVisitor)
	protected.Patch("/:id", visitors.UpdateVisitor)
	protected.Delete("/:id",
		authMiddleware.OnlyRoles("Only admins can delete visitors", constants.RoleAdmin),
		visitors.DeleteVisitor)
	protected.Post("/:id/check_out", deskOnly, checkin.CheckOut)
	protected.Get("/:id/badge", visitors.GetBadge)
	protected.Get("/:id/badge/pdf", visitors.GetBadgePDF)
	protected.Get("/:id/logs", logs.GetVisitorLogs)

	app.Get("/api/logs", authMiddleware.AuthMiddleware(db), logs.GetLogs)
}
