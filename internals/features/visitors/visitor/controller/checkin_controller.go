package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	visitorDTO "smartvisit_backend/internals/features/visitors/visitor/dto"
	"smartvisit_backend/internals/features/visitors/visitor/service"
	helper "smartvisit_backend/internals/helpers"
)

// CheckinController exposes the lifecycle transitions over HTTP.
type CheckinController struct {
	Lifecycle *service.LifecycleService
}

func NewCheckinController(lc *service.LifecycleService) *CheckinController {
	return &CheckinController{Lifecycle: lc}
}

func actorPtr(c *fiber.Ctx) *uuid.UUID {
	if uid := helper.GetUserUUID(c); uid != uuid.Nil {
		return &uid
	}
	return nil
}

// CheckIn is the reception-desk flow.
// POST /api/visitors
func (cc *CheckinController) CheckIn(c *fiber.Ctx) error {
	var req visitorDTO.CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	v, err := cc.Lifecycle.CheckIn(&req, actorPtr(c))
	if err != nil {
		if errors.Is(err, service.ErrHostNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, service.ErrHostNotFound.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check in visitor")
	}

	return helper.JsonCreated(c, "Visitor checked in", fiber.Map{
		"visitor":     v,
		"qr_code_url": v.QRImageURL,
	})
}

// KioskCheckIn is the unauthenticated self-service flow.
// POST /api/visitors/kiosk-checkin
func (cc *CheckinController) KioskCheckIn(c *fiber.Ctx) error {
	var req visitorDTO.KioskCheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if missing := req.MissingFields(); len(missing) > 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
	}

	v, err := cc.Lifecycle.KioskCheckIn(&req)
	if err != nil {
		if errors.Is(err, service.ErrHostNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, service.ErrHostNotFound.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check in visitor")
	}

	return helper.JsonCreated(c, "Checked in successfully", fiber.Map{
		"visitor_id":  v.ID,
		"badge_url":   "/api/visitors/" + v.ID.String() + "/badge/pdf",
		"qr_code_url": v.QRImageURL,
	})
}

// QRCheckIn transitions a pre-registered visit at the door scanner.
// POST /api/visitors/qr-checkin
func (cc *CheckinController) QRCheckIn(c *fiber.Ctx) error {
	var req struct {
		VisitorID uuid.UUID `json:"visitor_id"`
		DeviceID  string    `json:"device_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.DeviceID = strings.TrimSpace(req.DeviceID)
	if req.VisitorID == uuid.Nil || req.DeviceID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "visitor_id and device_id are required")
	}

	v, err := cc.Lifecycle.QRCheckIn(req.VisitorID, req.DeviceID)
	if err != nil {
		if errors.Is(err, service.ErrNotPreRegistered) {
			return helper.JsonError(c, fiber.StatusNotFound, service.ErrNotPreRegistered.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to process QR check-in")
	}

	return helper.JsonOK(c, "Checked in successfully", fiber.Map{
		"visitor_id":    v.ID,
		"status":        v.Status,
		"check_in_time": v.CheckInTime,
	})
}

// OfflineCheckIn reconciles a queued kiosk check-in by QR token.
// POST /api/visitors/offline-checkin
func (cc *CheckinController) OfflineCheckIn(c *fiber.Ctx) error {
	var req struct {
		QRCode string `json:"qr_code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.QRCode = strings.TrimSpace(req.QRCode)
	if req.QRCode == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "qr_code is required")
	}

	v, err := cc.Lifecycle.OfflineCheckIn(req.QRCode)
	if err != nil {
		if errors.Is(err, service.ErrInvalidQRCode) {
			return helper.JsonError(c, fiber.StatusBadRequest, service.ErrInvalidQRCode.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to reconcile offline check-in")
	}

	return helper.JsonOK(c, "Offline check-in reconciled", fiber.Map{
		"visitor_id": v.ID,
		"status":     v.Status,
	})
}

// PreRegister schedules a future visit.
// POST /api/visitors/pre-register
func (cc *CheckinController) PreRegister(c *fiber.Ctx) error {
	var req visitorDTO.PreRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	v, err := cc.Lifecycle.PreRegister(&req, actorPtr(c))
	if err != nil {
		if errors.Is(err, service.ErrHostNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, service.ErrHostNotFound.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to pre-register visitor")
	}

	return helper.JsonCreated(c, "Visitor pre-registered", fiber.Map{
		"visitor":     v,
		"qr_code":     v.QRCode,
		"qr_code_url": v.QRImageURL,
	})
}

// CheckOut ends a visit.
// POST /api/visitors/:id/check_out
func (cc *CheckinController) CheckOut(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid visitor id")
	}

	v, err := cc.Lifecycle.CheckOut(id, actorPtr(c))
	if err != nil {
		if errors.Is(err, service.ErrAlreadyCheckedOut) {
			return helper.JsonError(c, fiber.StatusBadRequest, service.ErrAlreadyCheckedOut.Error())
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Visitor not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check out visitor")
	}

	return helper.JsonOK(c, "Visitor checked out", fiber.Map{
		"visitor_id":     v.ID,
		"check_out_time": v.CheckOutTime,
		"duration":       helper.FormatDurationHM(v.VisitDuration()),
	})
}
