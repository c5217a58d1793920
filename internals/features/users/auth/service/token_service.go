// internals/features/users/auth/service/token_service.go
package service

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	authModel "smartvisit_backend/internals/features/users/auth/model"
	authRepo "smartvisit_backend/internals/features/users/auth/repository"
	helper "smartvisit_backend/internals/helpers"
)

// RefreshToken rotates the refresh token: the presented token must
// verify, its hash must exist unrevoked in the DB, the old hash is
// deleted and a fresh access+refresh pair is issued.
// POST /api/auth/refresh-token
func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	refreshRaw := strings.TrimSpace(c.Cookies("refresh_token"))
	if refreshRaw == "" {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := c.BodyParser(&body); err == nil {
			refreshRaw = strings.TrimSpace(body.RefreshToken)
		}
	}
	if refreshRaw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token missing")
	}

	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	tok, err := jwt.Parse(refreshRaw, func(t *jwt.Token) (any, error) {
		return []byte(refreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}

	// Hash must exist, unrevoked and unexpired
	hash := computeRefreshHash(refreshRaw, refreshSecret)
	if _, err := authRepo.FindRefreshTokenByHash(db, hash); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token not recognized")
	}

	userFull, err := authRepo.FindUserByID(db, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "User not found")
	}
	if !userFull.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Account deactivated")
	}

	// ROTATE: drop the old hash before issuing the new pair
	if err := authRepo.DeleteRefreshTokenByHash(db, hash); err != nil {
		log.Printf("[WARN] refresh rotation delete failed: %v", err)
	}

	jwtSecret, err := getJWTSecret()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	now := nowUTC()

	newAccess, err := jwt.NewWithClaims(jwt.SigningMethodHS256, buildAccessClaims(*userFull, now)).SignedString([]byte(jwtSecret))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create access token")
	}
	newRefresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, buildRefreshClaims(userFull.ID, now)).SignedString([]byte(refreshSecret))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create refresh token")
	}

	if err := createRefreshTokenFast(db, &authModel.RefreshTokenModel{
		UserID:    userFull.ID,
		Token:     computeRefreshHash(newRefresh, refreshSecret),
		ExpiresAt: now.Add(refreshTTLDefault),
		UserAgent: strptr(c.Get("User-Agent")),
		IP:        strptr(c.IP()),
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store refresh token")
	}

	setAuthCookies(c, newAccess, newRefresh, now)

	return helper.JsonOK(c, "Token refreshed", fiber.Map{
		"access_token":  newAccess,
		"refresh_token": newRefresh,
	})
}
