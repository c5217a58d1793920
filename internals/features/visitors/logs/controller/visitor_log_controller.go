package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	logModel "smartvisit_backend/internals/features/visitors/logs/model"
	helper "smartvisit_backend/internals/helpers"
)

type VisitorLogController struct {
	DB *gorm.DB
}

func NewVisitorLogController(db *gorm.DB) *VisitorLogController {
	return &VisitorLogController{DB: db}
}

type logSummary struct {
	Total      int64      `json:"total"`
	CheckIns   int64      `json:"check_ins"`
	CheckOuts  int64      `json:"check_outs"`
	FirstEntry *time.Time `json:"first_entry,omitempty"`
	LastEntry  *time.Time `json:"last_entry,omitempty"`
}

// GetLogs lists audit entries newest first, with filters and a
// summary block computed over the filtered set.
// GET /api/logs
func (lc *VisitorLogController) GetLogs(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 50, 200)

	// fresh builder per use; GORM chains mutate their receiver
	filtered := func() *gorm.DB {
		q := lc.DB.Model(&logModel.VisitorLogModel{})
		if action := strings.TrimSpace(c.Query("action")); action != "" {
			q = q.Where("action = ?", action)
		}
		if from := strings.TrimSpace(c.Query("date_from")); from != "" {
			if t, err := time.Parse("2006-01-02", from); err == nil {
				q = q.Where("timestamp >= ?", t)
			}
		}
		if to := strings.TrimSpace(c.Query("date_to")); to != "" {
			if t, err := time.Parse("2006-01-02", to); err == nil {
				q = q.Where("timestamp < ?", t.Add(24*time.Hour))
			}
		}
		if email := strings.TrimSpace(c.Query("user_email")); email != "" {
			q = q.Where("user_id IN (SELECT id FROM users WHERE email ILIKE ?)", "%"+email+"%")
		}
		if name := strings.TrimSpace(c.Query("visitor_name")); name != "" {
			like := "%" + name + "%"
			q = q.Where("visitor_id IN (SELECT id FROM visitors WHERE first_name ILIKE ? OR last_name ILIKE ?)", like, like)
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count logs")
	}

	var logs []logModel.VisitorLogModel
	if err := filtered().Order("timestamp DESC").
		Offset(paging.Offset).Limit(paging.PerPage).
		Find(&logs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list logs")
	}

	summary := logSummary{Total: total}
	_ = filtered().Where("action IN ?", []string{
		logModel.ActionCheckIn, logModel.ActionKioskCheckIn, logModel.ActionQRCheckIn, logModel.ActionOfflineCheckIn,
	}).Count(&summary.CheckIns).Error
	_ = filtered().Where("action = ?", logModel.ActionCheckOut).Count(&summary.CheckOuts).Error

	var bounds struct {
		First *time.Time
		Last  *time.Time
	}
	_ = filtered().Select("MIN(timestamp) AS first, MAX(timestamp) AS last").Scan(&bounds).Error
	summary.FirstEntry = bounds.First
	summary.LastEntry = bounds.Last

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"message":    "OK",
		"data":       logs,
		"summary":    summary,
		"pagination": helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage),
	})
}

// GetVisitorLogs lists the trail for one visitor.
// GET /api/visitors/:id/logs
func (lc *VisitorLogController) GetVisitorLogs(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid visitor id")
	}
	var logs []logModel.VisitorLogModel
	if err := lc.DB.Where("visitor_id = ?", id).Order("timestamp DESC").Find(&logs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list logs")
	}
	return helper.JsonOK(c, "OK", logs)
}
