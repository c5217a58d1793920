package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	logModel "smartvisit_backend/internals/features/visitors/logs/model"
	settingModel "smartvisit_backend/internals/features/visitors/settings/model"
	visitorModel "smartvisit_backend/internals/features/visitors/visitor/model"
	helper "smartvisit_backend/internals/helpers"
)

type BlacklistController struct {
	DB *gorm.DB
}

func NewBlacklistController(db *gorm.DB) *BlacklistController {
	return &BlacklistController{DB: db}
}

// GET /api/blacklist
func (bc *BlacklistController) GetBlacklist(c *fiber.Ctx) error {
	var entries []settingModel.BlacklistModel
	if err := bc.DB.Order("created_at DESC").Find(&entries).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list blacklist")
	}
	return helper.JsonOK(c, "OK", entries)
}

// AddToBlacklist flags a visitor. The flag does not change the
// visitor's status and does not gate future check-ins.
// POST /api/blacklist
func (bc *BlacklistController) AddToBlacklist(c *fiber.Ctx) error {
	var req struct {
		VisitorID uuid.UUID `json:"visitor_id"`
		Reason    string    `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Reason = strings.TrimSpace(req.Reason)
	if req.VisitorID == uuid.Nil || req.Reason == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "visitor_id and reason are required")
	}

	var visitor visitorModel.VisitorModel
	if err := bc.DB.First(&visitor, "id = ?", req.VisitorID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Visitor not found")
	}

	entry := settingModel.BlacklistModel{
		VisitorID: req.VisitorID,
		Reason:    req.Reason,
	}
	if uid := helper.GetUserUUID(c); uid != uuid.Nil {
		entry.AddedBy = &uid
	}
	if err := bc.DB.Create(&entry).Error; err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return helper.JsonError(c, fiber.StatusBadRequest, "Visitor is already blacklisted")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to blacklist visitor")
	}

	_ = bc.DB.Create(&logModel.VisitorLogModel{
		VisitorID: &visitor.ID,
		Action:    logModel.ActionBlacklisted,
		Details:   "Blacklisted: " + req.Reason,
		UserID:    entry.AddedBy,
	}).Error

	return helper.JsonCreated(c, "Visitor blacklisted", entry)
}

// DELETE /api/blacklist/:id
func (bc *BlacklistController) RemoveFromBlacklist(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid blacklist id")
	}
	res := bc.DB.Delete(&settingModel.BlacklistModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to remove blacklist entry")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Blacklist entry not found")
	}
	return helper.JsonDeleted(c, "Blacklist entry removed", nil)
}
