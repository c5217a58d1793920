package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"smartvisit_backend/internals/constants"
	userController "smartvisit_backend/internals/features/users/user/controller"
	authMiddleware "smartvisit_backend/internals/middlewares/auth"
)

// UserRoutes mounts staff management. The host picker is public so
// the kiosk can populate its dropdown; reads need a staff account and
// mutations are admin-only.
func UserRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	app.Get("/api/hosts", ctrl.GetHosts)

	adminOnly := authMiddleware.OnlyRoles("Only admins can manage staff accounts", constants.RoleAdmin)

	users := app.Group("/api/users", authMiddleware.AuthMiddleware(db))
	users.Get("/", ctrl.GetUsers)
	users.Post("/", adminOnly, ctrl.CreateUser)
	users.Get("/:id", ctrl.GetUser)
	users.Patch("/:id", adminOnly, ctrl.UpdateUser)
	users.Delete("/:id", adminOnly, ctrl.DeactivateUser)
}
