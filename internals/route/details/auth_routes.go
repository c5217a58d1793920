package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "smartvisit_backend/internals/features/users/auth/controller"
	"smartvisit_backend/internals/middlewares"
	authMiddleware "smartvisit_backend/internals/middlewares/auth"
)

// AuthRoutes mounts the authentication endpoints. Login, register and
// password reset are public and rate-limited; the rest require a
// valid token.
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	public := app.Group("/api/auth")
	public.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	public.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	public.Post("/refresh-token", ctrl.RefreshToken)
	public.Post("/password/reset", middlewares.ForgotPasswordRateLimiter(), ctrl.RequestPasswordReset)
	public.Post("/password/reset/confirm", ctrl.ConfirmPasswordReset)

	protected := app.Group("/api/auth", authMiddleware.AuthMiddleware(db))
	protected.Post("/logout", ctrl.Logout)
	protected.Get("/verify", ctrl.Verify)
	protected.Post("/password/change", ctrl.ChangePassword)
	protected.Get("/profile", ctrl.GetProfile)
	protected.Patch("/profile", ctrl.UpdateProfile)
}
