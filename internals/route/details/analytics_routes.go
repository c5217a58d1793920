package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"smartvisit_backend/internals/constants"
	analyticsController "smartvisit_backend/internals/features/analytics/controller"
	authMiddleware "smartvisit_backend/internals/middlewares/auth"
)

// AnalyticsRoutes mounts dashboards, analytics, exports and the
// emergency roster. The landing counters are the only public piece.
func AnalyticsRoutes(app *fiber.App, db *gorm.DB) {
	dashboard := analyticsController.NewDashboardController(db)
	analytics := analyticsController.NewAnalyticsController(db)
	exports := analyticsController.NewExportController(db)
	emergency := analyticsController.NewEmergencyController(db)

	app.Get("/api/analytics/landing", analytics.GetLanding)

	dashGroup := app.Group("/api/dashboard", authMiddleware.AuthMiddleware(db))
	dashGroup.Get("/stats", dashboard.GetStats)
	dashGroup.Get("/current-visitors", dashboard.GetCurrentVisitors)
	dashGroup.Get("/pending-approvals", dashboard.GetPendingApprovals)
	dashGroup.Get("/peak-hours", dashboard.GetPeakHours)
	dashGroup.Get("/monthly-trends", dashboard.GetMonthlyTrends)

	staffOnly := authMiddleware.OnlyRoles(
		"Analytics are restricted to staff accounts",
		constants.RoleAdmin, constants.RoleReceptionist, constants.RoleSecurity,
	)

	anGroup := app.Group("/api/analytics", authMiddleware.AuthMiddleware(db), staffOnly)
	anGroup.Get("/", analytics.GetAnalytics)
	anGroup.Get("/trends", analytics.GetTrends)
	anGroup.Get("/reports", analytics.GetReports)
	anGroup.Get("/export/csv", exports.ExportCSV)
	anGroup.Get("/export/xlsx", exports.ExportXLSX)
	anGroup.Get("/export/pdf", exports.ExportPDF)

	emGroup := app.Group("/api/emergency", authMiddleware.AuthMiddleware(db))
	emGroup.Get("/report", emergency.GetReport)
	emGroup.Get("/report/pdf", emergency.GetReportPDF)
}
