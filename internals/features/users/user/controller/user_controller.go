package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authHelper "smartvisit_backend/internals/features/users/auth/helper"
	userDTO "smartvisit_backend/internals/features/users/user/dto"
	userModel "smartvisit_backend/internals/features/users/user/model"
	helper "smartvisit_backend/internals/helpers"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GetUsers lists staff accounts with optional search and role filter.
// GET /api/auth/users
func (uc *UserController) GetUsers(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 100)

	q := uc.DB.Model(&userModel.UserModel{})
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR department ILIKE ?",
			like, like, like, like)
	}
	if role := strings.ToLower(strings.TrimSpace(c.Query("role"))); role != "" {
		q = q.Where("role = ?", role)
	}
	if active := c.Query("is_active"); active != "" {
		q = q.Where("is_active = ?", active == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count users")
	}

	var users []userModel.UserModel
	if err := q.Order("first_name ASC, last_name ASC").
		Offset(paging.Offset).Limit(paging.PerPage).
		Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list users")
	}

	out := make([]userDTO.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, userDTO.ToUserResponse(&users[i]))
	}
	return helper.JsonList(c, "OK", out, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GetHosts returns active hosts for the kiosk and pre-registration
// pickers. Public endpoint, so the payload stays minimal.
// GET /api/visitors/hosts
func (uc *UserController) GetHosts(c *fiber.Ctx) error {
	var hosts []userModel.UserModel
	if err := uc.DB.
		Select("id", "first_name", "last_name", "email", "department").
		Where("role = ? AND is_active = true", "host").
		Order("first_name ASC").
		Find(&hosts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list hosts")
	}

	out := make([]userDTO.HostOption, 0, len(hosts))
	for i := range hosts {
		out = append(out, userDTO.ToHostOption(&hosts[i]))
	}
	return helper.JsonOK(c, "OK", out)
}

// GetUser returns one account by id.
func (uc *UserController) GetUser(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}
	var user userModel.UserModel
	if err := uc.DB.First(&user, "id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	return helper.JsonOK(c, "OK", userDTO.ToUserResponse(&user))
}

// CreateUser provisions a staff account (admin only).
func (uc *UserController) CreateUser(c *fiber.Ctx) error {
	var req userDTO.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	hash, err := authHelper.HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}

	user := req.ToModel()
	user.Password = hash
	if err := uc.DB.Create(user).Error; err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return helper.JsonError(c, fiber.StatusBadRequest, "Email already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}
	return helper.JsonCreated(c, "User created", userDTO.ToUserResponse(user))
}

// UpdateUser applies a partial update (admin only).
func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var req userDTO.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var user userModel.UserModel
	if err := uc.DB.First(&user, "id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}

	req.ApplyToModel(&user)
	if err := uc.DB.Save(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update user")
	}
	return helper.JsonUpdated(c, "User updated", userDTO.ToUserResponse(&user))
}

// DeactivateUser flips is_active off. Accounts are never hard-deleted.
func (uc *UserController) DeactivateUser(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}
	res := uc.DB.Model(&userModel.UserModel{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to deactivate user")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	return helper.JsonDeleted(c, "User deactivated", nil)
}
