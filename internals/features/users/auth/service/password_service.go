// internals/features/users/auth/service/password_service.go
package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gomail "gopkg.in/gomail.v2"

	"smartvisit_backend/internals/configs"
	authHelper "smartvisit_backend/internals/features/users/auth/helper"
	authRepo "smartvisit_backend/internals/features/users/auth/repository"
	helper "smartvisit_backend/internals/helpers"
)

// ========================== REQUEST PASSWORD RESET ==========================
// Always answers success whether or not the email exists, so the
// endpoint cannot be used to enumerate accounts.
func RequestPasswordReset(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if !authHelper.IsValidEmail(input.Email) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid email format")
	}

	if user, err := authRepo.FindUserByEmail(db, input.Email); err == nil && user.IsActive {
		if err := sendPasswordResetEmail(user.Email, user.ID); err != nil {
			log.Printf("[WARN] password reset email to %s failed: %v", user.Email, err)
		}
	}

	return helper.JsonOK(c, "If an account with that email exists, a password reset link has been sent.", nil)
}

func sendPasswordResetEmail(email string, userID uuid.UUID) error {
	secret, err := getJWTSecret()
	if err != nil {
		return err
	}
	now := nowUTC()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"typ": "password_reset",
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(1 * time.Hour).Unix(),
	}).SignedString([]byte(secret))
	if err != nil {
		return err
	}

	smtp := configs.LoadSMTPConfig()
	link := fmt.Sprintf("%s/reset-password?token=%s", configs.GetEnv("FRONTEND_URL", "http://localhost:5173"), token)

	m := gomail.NewMessage()
	m.SetHeader("From", smtp.From)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "SmartVisit password reset")
	m.SetBody("text/plain", fmt.Sprintf(
		"A password reset was requested for your SmartVisit account.\n\n"+
			"Open the link below within one hour to choose a new password:\n%s\n\n"+
			"If you did not request this, you can ignore this email.", link))

	d := gomail.NewDialer(smtp.Host, smtp.Port, smtp.Username, smtp.Password)
	return d.DialAndSend(m)
}

// ========================== CONFIRM PASSWORD RESET ==========================
func ConfirmPasswordReset(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := authHelper.ValidatePasswordStrength(input.NewPassword); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	secret, err := getJWTSecret()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	tok, err := jwt.Parse(strings.TrimSpace(input.Token), func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid or expired reset token")
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	if typ, _ := claims["typ"].(string); typ != "password_reset" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid or expired reset token")
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid or expired reset token")
	}

	newHash, err := authHelper.HashPassword(input.NewPassword)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}
	if err := authRepo.UpdateUserPassword(db, userID, newHash); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}

	// Invalidate every session the old password may still hold
	if err := authRepo.DeleteRefreshTokensForUser(db, userID); err != nil {
		log.Printf("[WARN] revoke sessions after reset: %v", err)
	}

	return helper.JsonUpdated(c, "Password reset successfully", nil)
}

// ========================== CHANGE PASSWORD ==========================
func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}

	userID := helper.GetUserUUID(c)
	if userID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	user, err := authRepo.FindUserByID(db, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}

	if err := authHelper.CheckPasswordHash(user.Password, input.CurrentPassword); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Current password incorrect")
	}
	if err := authHelper.ValidatePasswordStrength(input.NewPassword); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	newHash, err := authHelper.HashPassword(input.NewPassword)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash new password")
	}
	if err := authRepo.UpdateUserPassword(db, userID, newHash); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}

	return helper.JsonUpdated(c, "Password changed successfully", nil)
}
