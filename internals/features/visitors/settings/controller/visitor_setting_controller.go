package controller

import (
	"errors"
	"regexp"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	settingModel "smartvisit_backend/internals/features/visitors/settings/model"
	helper "smartvisit_backend/internals/helpers"
)

var autoCheckoutTimeRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type VisitorSettingController struct {
	DB *gorm.DB
}

func NewVisitorSettingController(db *gorm.DB) *VisitorSettingController {
	return &VisitorSettingController{DB: db}
}

// loadOrSeed returns the singleton row, creating the default on first
// access.
func (sc *VisitorSettingController) loadOrSeed() (*settingModel.VisitorSettingModel, error) {
	var s settingModel.VisitorSettingModel
	err := sc.DB.First(&s, "id = 1").Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s = settingModel.VisitorSettingModel{
			ID:                     1,
			RequirePhoto:           true,
			EnablePreRegistration:  true,
			DefaultCheckinDuration: 60,
			AutoCheckoutTime:       "18:00",
		}
		if cerr := sc.DB.Create(&s).Error; cerr != nil {
			return nil, cerr
		}
		return &s, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GET /api/settings/visitor
func (sc *VisitorSettingController) GetSettings(c *fiber.Ctx) error {
	s, err := sc.loadOrSeed()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load settings")
	}
	return helper.JsonOK(c, "OK", s)
}

// PATCH /api/settings/visitor
func (sc *VisitorSettingController) UpdateSettings(c *fiber.Ctx) error {
	s, err := sc.loadOrSeed()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load settings")
	}

	var req struct {
		RequirePhoto           *bool   `json:"require_photo"`
		RequireID              *bool   `json:"require_id"`
		DefaultCheckinDuration *int    `json:"default_checkin_duration"`
		EnablePreRegistration  *bool   `json:"enable_pre_registration"`
		EnableHealthCheck      *bool   `json:"enable_health_check"`
		EnableAutoCheckout     *bool   `json:"enable_auto_checkout"`
		AutoCheckoutTime       *string `json:"auto_checkout_time"`
		BadgeTemplateURL       *string `json:"badge_template_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if req.RequirePhoto != nil {
		s.RequirePhoto = *req.RequirePhoto
	}
	if req.RequireID != nil {
		s.RequireID = *req.RequireID
	}
	if req.DefaultCheckinDuration != nil {
		if *req.DefaultCheckinDuration <= 0 {
			return helper.JsonError(c, fiber.StatusBadRequest, "default_checkin_duration must be positive")
		}
		s.DefaultCheckinDuration = *req.DefaultCheckinDuration
	}
	if req.EnablePreRegistration != nil {
		s.EnablePreRegistration = *req.EnablePreRegistration
	}
	if req.EnableHealthCheck != nil {
		s.EnableHealthCheck = *req.EnableHealthCheck
	}
	if req.EnableAutoCheckout != nil {
		s.EnableAutoCheckout = *req.EnableAutoCheckout
	}
	if req.AutoCheckoutTime != nil {
		if !autoCheckoutTimeRe.MatchString(*req.AutoCheckoutTime) {
			return helper.JsonError(c, fiber.StatusBadRequest, "auto_checkout_time must be HH:MM")
		}
		s.AutoCheckoutTime = *req.AutoCheckoutTime
	}
	if req.BadgeTemplateURL != nil {
		s.BadgeTemplateURL = *req.BadgeTemplateURL
	}

	if err := sc.DB.Save(s).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save settings")
	}
	return helper.JsonUpdated(c, "Settings updated", s)
}
