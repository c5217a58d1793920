package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	settingModel "smartvisit_backend/internals/features/visitors/settings/model"
	helper "smartvisit_backend/internals/helpers"
)

type BranchController struct {
	DB *gorm.DB
}

func NewBranchController(db *gorm.DB) *BranchController {
	return &BranchController{DB: db}
}

// GET /api/branches
func (bc *BranchController) GetBranches(c *fiber.Ctx) error {
	q := bc.DB.Model(&settingModel.BranchModel{})
	if active := c.Query("is_active"); active != "" {
		q = q.Where("is_active = ?", active == "true")
	}
	var branches []settingModel.BranchModel
	if err := q.Order("name ASC").Find(&branches).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list branches")
	}
	return helper.JsonOK(c, "OK", branches)
}

// GET /api/branches/:id
func (bc *BranchController) GetBranch(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid branch id")
	}
	var branch settingModel.BranchModel
	if err := bc.DB.First(&branch, "id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Branch not found")
	}
	return helper.JsonOK(c, "OK", branch)
}

// POST /api/branches
func (bc *BranchController) CreateBranch(c *fiber.Ctx) error {
	var branch settingModel.BranchModel
	if err := c.BodyParser(&branch); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	branch.Name = strings.TrimSpace(branch.Name)
	if err := helper.Validate.Struct(&branch); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}
	branch.IsActive = true
	if err := bc.DB.Create(&branch).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create branch")
	}
	return helper.JsonCreated(c, "Branch created", branch)
}

// PATCH /api/branches/:id
func (bc *BranchController) UpdateBranch(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid branch id")
	}

	var req struct {
		Name      *string  `json:"name"`
		Address   *string  `json:"address"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		IsActive  *bool    `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	updates := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return helper.JsonError(c, fiber.StatusBadRequest, "Branch name cannot be empty")
		}
		updates["name"] = name
	}
	if req.Address != nil {
		updates["address"] = strings.TrimSpace(*req.Address)
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	res := bc.DB.Model(&settingModel.BranchModel{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update branch")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Branch not found")
	}
	return helper.JsonUpdated(c, "Branch updated", nil)
}

// DELETE /api/branches/:id
func (bc *BranchController) DeleteBranch(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid branch id")
	}
	res := bc.DB.Delete(&settingModel.BranchModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete branch")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Branch not found")
	}
	return helper.JsonDeleted(c, "Branch deleted", nil)
}
