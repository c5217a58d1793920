package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	statsService "smartvisit_backend/internals/features/analytics/service"
	visitorModel "smartvisit_backend/internals/features/visitors/visitor/model"
	helper "smartvisit_backend/internals/helpers"
)

type DashboardController struct {
	DB    *gorm.DB
	Stats *statsService.StatsService
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db, Stats: statsService.NewStatsService(db)}
}

// GET /api/dashboard/stats
func (dc *DashboardController) GetStats(c *fiber.Ctx) error {
	var hostID *uuid.UUID
	if helper.GetUserRole(c) == "host" {
		if uid := helper.GetUserUUID(c); uid != uuid.Nil {
			hostID = &uid
		}
	}

	stats, err := dc.Stats.GetDashboardStats(hostID)
	if err != nil {
		log.Printf("[ERROR] dashboard stats: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load dashboard stats")
	}
	return helper.JsonOK(c, "OK", stats)
}

// GET /api/dashboard/current-visitors
func (dc *DashboardController) GetCurrentVisitors(c *fiber.Ctx) error {
	roster, err := dc.Stats.GetOnPremisesRoster()
	if err != nil {
		log.Printf("[ERROR] current visitors: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load current visitors")
	}
	return helper.JsonOK(c, "OK", roster)
}

// GetPendingApprovals lists pre-registered visitors who have not
// arrived yet, newest expected arrival first. Host callers see only
// their own.
// GET /api/dashboard/pending-approvals
func (dc *DashboardController) GetPendingApprovals(c *fiber.Ctx) error {
	q := dc.DB.Model(&visitorModel.VisitorModel{}).
		Where("status = ?", visitorModel.StatusPreRegistered)
	if helper.GetUserRole(c) == "host" {
		if uid := helper.GetUserUUID(c); uid != uuid.Nil {
			q = q.Where("host_id = ?", uid)
		}
	}

	var pending []visitorModel.VisitorModel
	if err := q.Order("expected_arrival ASC NULLS LAST, created_at DESC").
		Find(&pending).Error; err != nil {
		log.Printf("[ERROR] pending approvals: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load pending approvals")
	}
	return helper.JsonOK(c, "OK", pending)
}

// GET /api/dashboard/peak-hours
func (dc *DashboardController) GetPeakHours(c *fiber.Ctx) error {
	buckets, err := dc.Stats.GetPeakHours()
	if err != nil {
		log.Printf("[ERROR] peak hours: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load peak hours")
	}
	return helper.JsonOK(c, "OK", buckets)
}

// GET /api/dashboard/monthly-trends
func (dc *DashboardController) GetMonthlyTrends(c *fiber.Ctx) error {
	year := c.QueryInt("year", time.Now().UTC().Year())
	buckets, err := dc.Stats.GetMonthlyTrends(year)
	if err != nil {
		log.Printf("[ERROR] monthly trends: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load monthly trends")
	}
	return helper.JsonOK(c, "OK", buckets)
}
