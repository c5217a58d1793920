package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	authRepo "smartvisit_backend/internals/features/users/auth/repository"
	"smartvisit_backend/internals/features/users/auth/service"
	userDTO "smartvisit_backend/internals/features/users/user/dto"
	helper "smartvisit_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	return service.Register(ac.DB, c)
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	return service.Login(ac.DB, c)
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	return service.Logout(ac.DB, c)
}

func (ac *AuthController) RefreshToken(c *fiber.Ctx) error {
	return service.RefreshToken(ac.DB, c)
}

func (ac *AuthController) Verify(c *fiber.Ctx) error {
	return service.Verify(ac.DB, c)
}

func (ac *AuthController) RequestPasswordReset(c *fiber.Ctx) error {
	return service.RequestPasswordReset(ac.DB, c)
}

func (ac *AuthController) ConfirmPasswordReset(c *fiber.Ctx) error {
	return service.ConfirmPasswordReset(ac.DB, c)
}

func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	return service.ChangePassword(ac.DB, c)
}

// GetProfile returns the caller's own account.
func (ac *AuthController) GetProfile(c *fiber.Ctx) error {
	uid := helper.GetUserUUID(c)
	if uid == uuid.Nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	user, err := authRepo.FindUserByID(ac.DB, uid)
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	return helper.JsonOK(c, "OK", userDTO.ToUserResponse(user))
}

// UpdateProfile applies a partial self-update. Email is immutable.
func (ac *AuthController) UpdateProfile(c *fiber.Ctx) error {
	uid := helper.GetUserUUID(c)
	if uid == uuid.Nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req userDTO.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	// role and activation are admin-only knobs, not self-service
	req.Role = nil
	req.IsActive = nil
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	user, err := authRepo.FindUserByID(ac.DB, uid)
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}

	req.ApplyToModel(user)
	if err := ac.DB.Save(user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update profile")
	}
	return helper.JsonUpdated(c, "Profile updated", userDTO.ToUserResponse(user))
}
