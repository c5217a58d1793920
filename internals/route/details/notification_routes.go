package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"smartvisit_backend/internals/constants"
	notifController "smartvisit_backend/internals/features/notifications/controller"
	notifService "smartvisit_backend/internals/features/notifications/service"
	authMiddleware "smartvisit_backend/internals/middlewares/auth"
)

// NotificationRoutes mounts the notification endpoints. All require
// auth; dispatch endpoints are role-gated.
func NotificationRoutes(app *fiber.App, db *gorm.DB, notifier *notifService.Notifier) {
	ctrl := notifController.NewNotificationController(db, notifier)

	deskOnly := authMiddleware.OnlyRoles(
		"Only admins and receptionists can send notifications",
		constants.RoleAdmin, constants.RoleReceptionist,
	)

	group := app.Group("/api/notifications", authMiddleware.AuthMiddleware(db))
	group.Get("/", ctrl.ListMine)
	group.Post("/notify-visitor", deskOnly, ctrl.NotifyVisitor)
	group.Post("/manual", deskOnly, ctrl.ManualNotification)
	group.Post("/bulk",
		authMiddleware.OnlyRoles("Only admins can send bulk notifications", constants.RoleAdmin),
		ctrl.BulkNotification)
	group.Get("/preferences/:visitor_id", ctrl.GetPreferences)
	group.Patch("/preferences/:visitor_id", ctrl.UpdatePreferences)
	group.Post("/subscribe", ctrl.Subscribe)
	group.Post("/:id/read", ctrl.MarkRead)
}
