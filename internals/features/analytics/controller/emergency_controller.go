package controller

import (
	"bytes"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"gorm.io/gorm"

	statsService "smartvisit_backend/internals/features/analytics/service"
	logModel "smartvisit_backend/internals/features/visitors/logs/model"
	helper "smartvisit_backend/internals/helpers"
)

// EmergencyController serves the evacuation roster: everyone who is
// on the premises right now with host contact details.
type EmergencyController struct {
	DB    *gorm.DB
	Stats *statsService.StatsService
}

func NewEmergencyController(db *gorm.DB) *EmergencyController {
	return &EmergencyController{DB: db, Stats: statsService.NewStatsService(db)}
}

func (ec *EmergencyController) writeReportLog(c *fiber.Ctx, details string) {
	entry := logModel.VisitorLogModel{
		Action:  logModel.ActionReportGenerated,
		Details: details,
	}
	if uid := helper.GetUserUUID(c); uid != uuid.Nil {
		entry.UserID = &uid
	}
	if err := ec.DB.Create(&entry).Error; err != nil {
		log.Printf("[WARN] emergency report log: %v", err)
	}
}

// GET /api/emergency/report
func (ec *EmergencyController) GetReport(c *fiber.Ctx) error {
	roster, err := ec.Stats.GetOnPremisesRoster()
	if err != nil {
		log.Printf("[ERROR] emergency report: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build emergency report")
	}

	ec.writeReportLog(c, "emergency report generated")
	return helper.JsonOK(c, "OK", fiber.Map{
		"generated_at":  time.Now().UTC(),
		"total_on_site": len(roster),
		"visitors":      roster,
	})
}

// GetReportPDF renders the evacuation roster as a fixed-layout table
// with a page header and footer for the muster point.
// GET /api/emergency/report/pdf
func (ec *EmergencyController) GetReportPDF(c *fiber.Ctx) error {
	roster, err := ec.Stats.GetOnPremisesRoster()
	if err != nil {
		log.Printf("[ERROR] emergency report pdf: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build emergency report")
	}

	now := time.Now().UTC()
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Emergency Evacuation Report", false)

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 15)
		pdf.SetTextColor(180, 0, 0)
		pdf.CellFormat(0, 9, "EMERGENCY EVACUATION REPORT", "", 1, "C", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 5, "Generated "+now.Format("2006-01-02 15:04 MST"), "", 1, "C", false, 0, "")
		pdf.Ln(3)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Page %d - account for every person listed above at the muster point", pdf.PageNo()),
			"", 0, "C", false, 0, "")
	})
	pdf.AliasNbPages("")
	pdf.AddPage()

	widths := []float64{42, 32, 16, 26, 38, 36}
	headers := []string{"Visitor", "Company", "Badge", "Check In", "Host", "Host Phone"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(180, 0, 0)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for _, entry := range roster {
		badge := ""
		if entry.BadgeNumber != nil {
			badge = strconv.Itoa(*entry.BadgeNumber)
		}
		checkIn := ""
		if entry.CheckInTime != nil {
			checkIn = entry.CheckInTime.Format("15:04")
		}
		cells := []string{entry.Name, entry.Company, badge, checkIn, entry.HostName, entry.HostPhone}
		for i, val := range cells {
			pdf.CellFormat(widths[i], 7, val, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 7, fmt.Sprintf("Total persons on site: %d", len(roster)), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Printf("[ERROR] emergency report pdf render: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build emergency report")
	}

	ec.writeReportLog(c, "emergency report PDF generated")

	filename := fmt.Sprintf("emergency_report_%s.pdf", now.Format("20060102_1504"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
