package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"smartvisit_backend/internals/constants"
	formController "smartvisit_backend/internals/features/visitors/forms/controller"
	settingController "smartvisit_backend/internals/features/visitors/settings/controller"
	authMiddleware "smartvisit_backend/internals/middlewares/auth"
)

// SettingsRoutes mounts form builder, branches, blacklist and the
// visitor settings singleton. Reads are open to any staff account;
// writes are admin-only. The active form list is public for the kiosk.
func SettingsRoutes(app *fiber.App, db *gorm.DB) {
	forms := formController.NewFormFieldController(db)
	branches := settingController.NewBranchController(db)
	blacklist := settingController.NewBlacklistController(db)
	settings := settingController.NewVisitorSettingController(db)

	adminOnly := authMiddleware.OnlyRoles("Only admins can change this", constants.RoleAdmin)

	app.Get("/api/form-fields/active", forms.GetActiveFields)

	formGroup := app.Group("/api/form-fields", authMiddleware.AuthMiddleware(db))
	formGroup.Get("/", forms.GetFields)
	formGroup.Post("/", adminOnly, forms.CreateField)
	formGroup.Post("/update-order", adminOnly, forms.UpdateOrder)
	formGroup.Patch("/:id", adminOnly, forms.UpdateField)
	formGroup.Delete("/:id", adminOnly, forms.DeleteField)

	branchGroup := app.Group("/api/branches", authMiddleware.AuthMiddleware(db))
	branchGroup.Get("/", branches.GetBranches)
	branchGroup.Get("/:id", branches.GetBranch)
	branchGroup.Post("/", adminOnly, branches.CreateBranch)
	branchGroup.Patch("/:id", adminOnly, branches.UpdateBranch)
	branchGroup.Delete("/:id", adminOnly, branches.DeleteBranch)

	blGroup := app.Group("/api/blacklist",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles("Only admins can manage the blacklist", constants.RoleAdmin),
	)
	blGroup.Get("/", blacklist.GetBlacklist)
	blGroup.Post("/", blacklist.AddToBlacklist)
	blGroup.Delete("/:id", blacklist.RemoveFromBlacklist)

	settingGroup := app.Group("/api/settings/visitor", authMiddleware.AuthMiddleware(db))
	settingGroup.Get("/", settings.GetSettings)
	settingGroup.Patch("/", adminOnly, settings.UpdateSettings)
}
