package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	notifModel "smartvisit_backend/internals/features/notifications/model"
	notifService "smartvisit_backend/internals/features/notifications/service"
	logModel "smartvisit_backend/internals/features/visitors/logs/model"
	visitorModel "smartvisit_backend/internals/features/visitors/visitor/model"
	helper "smartvisit_backend/internals/helpers"
)

type NotificationController struct {
	DB       *gorm.DB
	Notifier *notifService.Notifier
}

func NewNotificationController(db *gorm.DB, notifier *notifService.Notifier) *NotificationController {
	return &NotificationController{DB: db, Notifier: notifier}
}

func (nc *NotificationController) writeLog(action string, visitorID *uuid.UUID, userID *uuid.UUID, details string) {
	entry := logModel.VisitorLogModel{
		VisitorID: visitorID,
		Action:    action,
		Details:   details,
		UserID:    userID,
	}
	_ = nc.DB.Create(&entry).Error
}

// NotifyVisitor sends a message to a visitor over the requested
// channels and returns the per-channel result map.
// POST /api/notifications/notify-visitor
func (nc *NotificationController) NotifyVisitor(c *fiber.Ctx) error {
	var req struct {
		VisitorID uuid.UUID `json:"visitor_id"`
		Message   string    `json:"message"`
		Channels  []string  `json:"channels"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.VisitorID == uuid.Nil || req.Message == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "visitor_id and message are required")
	}
	if len(req.Channels) == 0 {
		req.Channels = []string{notifModel.ChannelAll}
	}
	for _, ch := range req.Channels {
		if !notifModel.IsValidChannel(ch) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid channel: "+ch)
		}
	}

	var visitor visitorModel.VisitorModel
	if err := nc.DB.First(&visitor, "id = ?", req.VisitorID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Visitor not found")
	}

	results := nc.Notifier.Send(notifService.ContactFromVisitor(&visitor), "SmartVisit notification", req.Message, req.Channels)

	uid := helper.GetUserUUID(c)
	var uidPtr *uuid.UUID
	if uid != uuid.Nil {
		uidPtr = &uid
	}
	nc.writeLog(logModel.ActionNotificationSent, &visitor.ID, uidPtr, "Notification sent to "+visitor.FullName())

	return helper.JsonOK(c, "Notification dispatched", fiber.Map{
		"results": results,
	})
}

// ManualNotification fires a raw realtime event on an arbitrary
// channel (reception desk use).
// POST /api/notifications/manual
func (nc *NotificationController) ManualNotification(c *fiber.Ctx) error {
	var req struct {
		Channel string         `json:"channel"`
		Event   string         `json:"event"`
		Payload map[string]any `json:"payload"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Channel = strings.TrimSpace(req.Channel)
	req.Event = strings.TrimSpace(req.Event)
	if req.Channel == "" || req.Event == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "channel and event are required")
	}

	if err := nc.Notifier.TriggerRealtime(req.Channel, req.Event, req.Payload); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to trigger event")
	}

	uid := helper.GetUserUUID(c)
	var uidPtr *uuid.UUID
	if uid != uuid.Nil {
		uidPtr = &uid
	}
	nc.writeLog(logModel.ActionManualNotification, nil, uidPtr, "Manual event "+req.Event+" on "+req.Channel)

	return helper.JsonOK(c, "Event triggered", nil)
}

// BulkNotification sends a message to a set of staff accounts,
// continuing past per-user failures.
// POST /api/notifications/bulk
func (nc *NotificationController) BulkNotification(c *fiber.Ctx) error {
	var req struct {
		UserIDs  []uuid.UUID `json:"user_ids"`
		Message  string      `json:"message"`
		Channels []string    `json:"channels"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Message = strings.TrimSpace(req.Message)
	if len(req.UserIDs) == 0 || req.Message == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "user_ids and message are required")
	}
	if len(req.Channels) == 0 {
		req.Channels = []string{notifModel.ChannelApp}
	}

	sent, failed := nc.Notifier.NotifyBulk(req.UserIDs, "SmartVisit announcement", req.Message, req.Channels)

	uid := helper.GetUserUUID(c)
	var uidPtr *uuid.UUID
	if uid != uuid.Nil {
		uidPtr = &uid
	}
	nc.writeLog(logModel.ActionBulkNotification, nil, uidPtr, "Bulk notification to staff")

	return helper.JsonOK(c, "Bulk notification processed", fiber.Map{
		"sent_count": sent,
		"failed_ids": failed,
	})
}

// GetPreferences returns a visitor's notification method and
// subscription flag.
// GET /api/notifications/preferences/:visitor_id
func (nc *NotificationController) GetPreferences(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "visitor_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid visitor id")
	}
	var visitor visitorModel.VisitorModel
	if err := nc.DB.Select("id", "notification_method", "notification_subscribed").
		First(&visitor, "id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Visitor not found")
	}
	return helper.JsonOK(c, "OK", fiber.Map{
		"visitor_id":              visitor.ID,
		"notification_method":     visitor.NotificationMethod,
		"notification_subscribed": visitor.NotificationSubscribed,
	})
}

// UpdatePreferences sets a visitor's notification method and/or
// subscription flag.
// PATCH /api/notifications/preferences/:visitor_id
func (nc *NotificationController) UpdatePreferences(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "visitor_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid visitor id")
	}

	var req struct {
		NotificationMethod     *string `json:"notification_method"`
		NotificationSubscribed *bool   `json:"notification_subscribed"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	updates := map[string]any{}
	if req.NotificationMethod != nil {
		m := strings.ToLower(strings.TrimSpace(*req.NotificationMethod))
		if !notifModel.IsValidChannel(m) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid notification method")
		}
		updates["notification_method"] = m
	}
	if req.NotificationSubscribed != nil {
		updates["notification_subscribed"] = *req.NotificationSubscribed
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	res := nc.DB.Model(&visitorModel.VisitorModel{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update preferences")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Visitor not found")
	}
	return helper.JsonUpdated(c, "Preferences updated", nil)
}

// Subscribe re-enables notifications for a visitor.
// POST /api/notifications/subscribe
func (nc *NotificationController) Subscribe(c *fiber.Ctx) error {
	var req struct {
		VisitorID uuid.UUID `json:"visitor_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.VisitorID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "visitor_id is required")
	}
	res := nc.DB.Model(&visitorModel.VisitorModel{}).
		Where("id = ?", req.VisitorID).
		Update("notification_subscribed", true)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to subscribe")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Visitor not found")
	}
	return helper.JsonOK(c, "Subscribed", nil)
}

// ListMine returns the caller's notifications, newest first.
// GET /api/notifications
func (nc *NotificationController) ListMine(c *fiber.Ctx) error {
	uid := helper.GetUserUUID(c)
	if uid == uuid.Nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	paging := helper.ResolvePaging(c, 25, 100)

	q := nc.DB.Model(&notifModel.NotificationModel{}).Where("user_id = ?", uid)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count notifications")
	}

	var rows []notifModel.NotificationModel
	if err := q.Order("created_at DESC").
		Offset(paging.Offset).Limit(paging.PerPage).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list notifications")
	}
	return helper.JsonList(c, "OK", rows, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// MarkRead flips a notification to read and stamps read_at.
// POST /api/notifications/:id/read
func (nc *NotificationController) MarkRead(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid notification id")
	}
	uid := helper.GetUserUUID(c)
	if uid == uuid.Nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	now := time.Now().UTC()
	res := nc.DB.Model(&notifModel.NotificationModel{}).
		Where("id = ? AND user_id = ?", id, uid).
		Updates(map[string]any{
			"status":  notifModel.StatusRead,
			"read_at": now,
		})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to mark notification read")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Notification not found")
	}
	return helper.JsonUpdated(c, "Notification marked read", nil)
}
