package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	statsService "smartvisit_backend/internals/features/analytics/service"
	helper "smartvisit_backend/internals/helpers"
)

type AnalyticsController struct {
	DB    *gorm.DB
	Stats *statsService.StatsService
}

func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{DB: db, Stats: statsService.NewStatsService(db)}
}

// GetAnalytics returns the summary counters plus this year's
// visitor-type distribution.
// GET /api/analytics
func (ac *AnalyticsController) GetAnalytics(c *fiber.Ctx) error {
	summary, err := ac.Stats.GetSummary()
	if err != nil {
		log.Printf("[ERROR] analytics summary: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load analytics")
	}
	distribution, err := ac.Stats.GetTypeDistribution(time.Now().UTC().Year())
	if err != nil {
		log.Printf("[ERROR] analytics distribution: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load analytics")
	}
	return helper.JsonOK(c, "OK", fiber.Map{
		"summary":                summary,
		"visitor_type_breakdown": distribution,
	})
}

// GET /api/analytics/trends
func (ac *AnalyticsController) GetTrends(c *fiber.Ctx) error {
	peakHours, err := ac.Stats.GetPeakHours()
	if err != nil {
		log.Printf("[ERROR] analytics trends: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load trends")
	}
	monthly, err := ac.Stats.GetMonthlyTrends(time.Now().UTC().Year())
	if err != nil {
		log.Printf("[ERROR] analytics trends: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load trends")
	}
	yearly, err := ac.Stats.GetYearlyComparison()
	if err != nil {
		log.Printf("[ERROR] analytics trends: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load trends")
	}
	return helper.JsonOK(c, "OK", fiber.Map{
		"peak_hours":        peakHours,
		"monthly_trends":    monthly,
		"yearly_comparison": yearly,
	})
}

// GetReports bundles the operational report blocks: last seven days,
// today's business hours, monthly year to date, host performance and
// company frequency.
// GET /api/analytics/reports
func (ac *AnalyticsController) GetReports(c *fiber.Ctx) error {
	daily, err := ac.Stats.GetDailyCounts(7)
	if err != nil {
		log.Printf("[ERROR] analytics reports: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load reports")
	}
	hourly, err := ac.Stats.GetBusinessHourCounts()
	if err != nil {
		log.Printf("[ERROR] analytics reports: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load reports")
	}
	monthly, err := ac.Stats.GetMonthlyTrends(time.Now().UTC().Year())
	if err != nil {
		log.Printf("[ERROR] analytics reports: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load reports")
	}
	hosts, err := ac.Stats.GetHostPerformance()
	if err != nil {
		log.Printf("[ERROR] analytics reports: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load reports")
	}
	companies, err := ac.Stats.GetCompanyFrequency()
	if err != nil {
		log.Printf("[ERROR] analytics reports: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load reports")
	}
	return helper.JsonOK(c, "OK", fiber.Map{
		"daily":             daily,
		"hourly":            hourly,
		"monthly":           monthly,
		"host_performance":  hosts,
		"company_frequency": companies,
	})
}

// GetLanding serves the public landing page counters. No auth.
// GET /api/analytics/landing
func (ac *AnalyticsController) GetLanding(c *fiber.Ctx) error {
	stats, err := ac.Stats.GetLandingStats()
	if err != nil {
		log.Printf("[ERROR] landing stats: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load stats")
	}
	return helper.JsonOK(c, "OK", stats)
}
