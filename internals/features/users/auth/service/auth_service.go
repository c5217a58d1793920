// internals/features/users/auth/service/auth_service.go
package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartvisit_backend/internals/configs"
	authHelper "smartvisit_backend/internals/features/users/auth/helper"
	authModel "smartvisit_backend/internals/features/users/auth/model"
	authRepo "smartvisit_backend/internals/features/users/auth/repository"
	userDTO "smartvisit_backend/internals/features/users/user/dto"
	userModel "smartvisit_backend/internals/features/users/user/model"
	logModel "smartvisit_backend/internals/features/visitors/logs/model"
	helper "smartvisit_backend/internals/helpers"
)

/* ==========================
   Const & Helpers
========================== */

const (
	accessTTLDefault  = 24 * time.Hour
	refreshTTLDefault = 7 * 24 * time.Hour
)

func nowUTC() time.Time { return time.Now().UTC() }

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		secret = strings.TrimSpace(os.Getenv("JWT_SECRET"))
	}
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET is not set")
	}
	return secret, nil
}

func getRefreshSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTRefreshSecret)
	if secret == "" {
		secret = strings.TrimSpace(os.Getenv("JWT_REFRESH_SECRET"))
	}
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_REFRESH_SECRET is not set")
	}
	return secret, nil
}

func strptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func computeRefreshHash(token, secret string) []byte {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(token))
	return m.Sum(nil)
}

// writeAuthLog records login/logout/register events in the audit trail
// with a nil visitor FK. Best-effort: an audit failure never blocks auth.
func writeAuthLog(db *gorm.DB, action string, userID *uuid.UUID, details string) {
	entry := logModel.VisitorLogModel{
		Action:  action,
		Details: details,
		UserID:  userID,
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Printf("[WARN] auth audit log (%s) failed: %v", action, err)
	}
}

/* ==========================
   REGISTER
========================== */

func Register(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		Password2 string `json:"password2"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Role      string `json:"role"`
		Phone     string `json:"phone"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Role = strings.ToLower(strings.TrimSpace(input.Role))

	if input.Email == "" || input.Password == "" || input.FirstName == "" || input.Role == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing required fields")
	}
	if !authHelper.IsValidEmail(input.Email) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid email format")
	}
	if input.Password != input.Password2 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Passwords do not match")
	}
	if err := authHelper.ValidatePasswordStrength(input.Password); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	passwordHash, err := authHelper.HashPassword(input.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}

	user := userModel.UserModel{
		Email:     input.Email,
		Password:  passwordHash,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      input.Role,
		Phone:     strings.TrimSpace(input.Phone),
		IsActive:  true,
	}
	user.SetDefaultValues()

	if err := authRepo.CreateUser(db, &user); err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return helper.JsonError(c, fiber.StatusBadRequest, "Email already exists")
		}
		log.Printf("[ERROR] register create user: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	writeAuthLog(db, logModel.ActionRegister, &user.ID, "Account registered: "+user.Email)

	return helper.JsonCreated(c, "Registration successful", userDTO.ToUserResponse(&user))
}

/* ==========================
   LOGIN
========================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := authHelper.ValidateLoginInput(input.Email, input.Password); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	userLight, err := authRepo.FindUserByEmailLight(db, input.Email)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if !userLight.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated. Contact an administrator.")
	}
	if err := authHelper.CheckPasswordHash(userLight.Password, input.Password); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	userFull, err := authRepo.FindUserByID(db, userLight.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load user")
	}

	if err := authRepo.TouchLastLogin(db, userFull.ID); err != nil {
		log.Printf("[WARN] touch last_login: %v", err)
	}
	writeAuthLog(db, logModel.ActionLogin, &userFull.ID, "Login: "+userFull.Email)

	return issueTokens(c, db, *userFull)
}

/* ==========================
   ISSUE TOKENS + Response
========================== */

func buildAccessClaims(user userModel.UserModel, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"typ":       "access",
		"sub":       user.ID.String(),
		"id":        user.ID.String(),
		"user_name": user.FullName(),
		"email":     user.Email,
		"role":      user.Role,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTLDefault).Unix(),
	}
}

func buildRefreshClaims(userID uuid.UUID, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"typ": "refresh",
		"sub": userID.String(),
		"id":  userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(refreshTTLDefault).Unix(),
	}
}

func issueTokens(c *fiber.Ctx, db *gorm.DB, user userModel.UserModel) error {
	jwtSecret, err := getJWTSecret()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	now := nowUTC()

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, buildAccessClaims(user, now)).SignedString([]byte(jwtSecret))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create access token")
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, buildRefreshClaims(user.ID, now)).SignedString([]byte(refreshSecret))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create refresh token")
	}

	// Persist the refresh token hash, never the plaintext
	ua, ip := c.Get("User-Agent"), c.IP()
	if err := createRefreshTokenFast(db, &authModel.RefreshTokenModel{
		UserID:    user.ID,
		Token:     computeRefreshHash(refreshToken, refreshSecret),
		ExpiresAt: now.Add(refreshTTLDefault),
		UserAgent: strptr(ua),
		IP:        strptr(ip),
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store refresh token")
	}

	setAuthCookies(c, accessToken, refreshToken, now)

	return helper.JsonOK(c, "Login successful", fiber.Map{
		"user":          userDTO.ToUserResponse(&user),
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// Insert refresh_token with lower latency. Safe for tokens (worst case a
// just-issued token is lost if the server crashes right after commit).
func createRefreshTokenFast(db *gorm.DB, rt *authModel.RefreshTokenModel) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`SET LOCAL synchronous_commit = OFF`).Error; err != nil {
			log.Printf("[WARN] set synchronous_commit=OFF failed: %v", err)
		}
		return authRepo.CreateRefreshToken(tx, rt)
	})
}

func setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string, now time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  now.Add(accessTTLDefault),
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  now.Add(refreshTTLDefault),
	})
}

/* ==========================
   LOGOUT
========================== */

func Logout(db *gorm.DB, c *fiber.Ctx) error {
	accessToken := rawAccessToken(c)
	ttl := resolveBlacklistTTL(accessToken)

	if accessToken != "" {
		if err := authRepo.BlacklistToken(db, accessToken, ttl); err != nil {
			log.Printf("[WARN] Failed to blacklist token: %v", err)
		}
	} else {
		log.Println("[INFO] Logout without access token; clearing cookies anyway")
	}

	// Drop the refresh hash if the cookie is present
	if rt := strings.TrimSpace(c.Cookies("refresh_token")); rt != "" {
		if secret, err := getRefreshSecret(); err == nil {
			_ = authRepo.DeleteRefreshTokenByHash(db, computeRefreshHash(rt, secret))
		}
	}

	if uid := helper.GetUserUUID(c); uid != uuid.Nil {
		writeAuthLog(db, logModel.ActionLogout, &uid, "Logout")
	}

	expired := nowUTC().Add(-time.Hour)
	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			HTTPOnly: true,
			Secure:   true,
			SameSite: "None",
			Path:     "/",
			Expires:  expired,
			MaxAge:   -1,
		})
	}

	return helper.JsonOK(c, "Logout successful", nil)
}

func rawAccessToken(c *fiber.Ctx) string {
	auth := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return strings.TrimSpace(c.Cookies("access_token"))
}

func resolveBlacklistTTL(accessToken string) time.Duration {
	ttl := 2 * time.Minute
	if v := os.Getenv("BLACKLIST_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" || accessToken == "" {
		return ttl
	}
	if tok, err := jwt.Parse(accessToken, func(t *jwt.Token) (any, error) {
		return []byte(jwtSecret), nil
	}); err == nil {
		if claims, ok := tok.Claims.(jwt.MapClaims); ok && tok.Valid {
			if exp, ok := claims["exp"].(float64); ok {
				until := time.Until(time.Unix(int64(exp), 0))
				if until > 0 {
					return until + 60*time.Second
				}
				return time.Minute
			}
		}
	}
	return ttl
}

/* ==========================
   VERIFY
========================== */

// Verify echoes the authenticated caller's identity from Locals.
func Verify(db *gorm.DB, c *fiber.Ctx) error {
	uid := helper.GetUserUUID(c)
	if uid == uuid.Nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	user, err := authRepo.FindUserByID(db, uid)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}
	return helper.JsonOK(c, "Token valid", fiber.Map{
		"user": userDTO.ToUserResponse(user),
	})
}
