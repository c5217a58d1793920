package controller

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	statsService "smartvisit_backend/internals/features/analytics/service"
	visitorModel "smartvisit_backend/internals/features/visitors/visitor/model"
	helper "smartvisit_backend/internals/helpers"
)

var exportHeader = []string{
	"First Name", "Last Name", "Email", "Phone", "Company",
	"Visitor Type", "Status", "Badge Number", "Purpose",
	"Check In", "Check Out", "Duration", "Created At",
}

type ExportController struct {
	DB    *gorm.DB
	Stats *statsService.StatsService
}

func NewExportController(db *gorm.DB) *ExportController {
	return &ExportController{DB: db, Stats: statsService.NewStatsService(db)}
}

// loadExportRows reads every visitor ordered by creation, optionally
// limited to a date range from query params.
func (ec *ExportController) loadExportRows(c *fiber.Ctx) ([]visitorModel.VisitorModel, error) {
	q := ec.DB.Model(&visitorModel.VisitorModel{})
	if from := c.Query("date_from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			q = q.Where("created_at >= ?", t)
		}
	}
	if to := c.Query("date_to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			q = q.Where("created_at < ?", t.AddDate(0, 0, 1))
		}
	}
	var visitors []visitorModel.VisitorModel
	err := q.Order("created_at DESC").Find(&visitors).Error
	return visitors, err
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

func exportRecord(v *visitorModel.VisitorModel) []string {
	badge := ""
	if v.BadgeNumber != nil {
		badge = strconv.Itoa(*v.BadgeNumber)
	}
	duration := ""
	if v.CheckInTime != nil && v.CheckOutTime != nil {
		duration = helper.FormatDurationHM(v.VisitDuration())
	}
	return []string{
		v.FirstName, v.LastName, v.Email, v.Phone, v.Company,
		v.VisitorType, v.Status, badge, v.Purpose,
		formatTimePtr(v.CheckInTime), formatTimePtr(v.CheckOutTime),
		duration, v.CreatedAt.Format("2006-01-02 15:04"),
	}
}

// GET /api/analytics/export/csv
func (ec *ExportController) ExportCSV(c *fiber.Ctx) error {
	visitors, err := ec.loadExportRows(c)
	if err != nil {
		log.Printf("[ERROR] csv export: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to export visitors")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to export visitors")
	}
	for i := range visitors {
		if err := w.Write(exportRecord(&visitors[i])); err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to export visitors")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to export visitors")
	}

	filename := fmt.Sprintf("visitors_%s.csv", time.Now().UTC().Format("20060102"))
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

// GET /api/analytics/export/xlsx
func (ec *ExportController) ExportXLSX(c *fiber.Ctx) error {
	visitors, err := ec.loadExportRows(c)
	if err != nil {
		log.Printf("[ERROR] xlsx export: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to export visitors")
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Visitors"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1F4E79"}},
	})
	for i, h := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	for row := range visitors {
		for col, val := range exportRecord(&visitors[row]) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, val)
		}
	}
	f.SetColWidth(sheet, "A", "M", 18)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		log.Printf("[ERROR] xlsx export write: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to export visitors")
	}

	filename := fmt.Sprintf("visitors_%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

// ExportPDF renders the on-premises visitors report: everyone
// currently checked in or in a meeting, one row each.
// GET /api/analytics/export/pdf
func (ec *ExportController) ExportPDF(c *fiber.Ctx) error {
	roster, err := ec.Stats.GetOnPremisesRoster()
	if err != nil {
		log.Printf("[ERROR] pdf export: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to export report")
	}

	now := time.Now().UTC()
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("On-Premises Visitors Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "On-Premises Visitors Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Generated "+now.Format("2006-01-02 15:04 MST"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	widths := []float64{55, 50, 30, 22, 35, 55, 30}
	headers := []string{"Visitor", "Company", "Type", "Badge", "Check In", "Host", "Host Phone"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(31, 78, 121)
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
		cells := []string{
			entry.Name, entry.Company, entry.VisitorType, badge,
			formatTimePtr(entry.CheckInTime), entry.HostName, entry.HostPhone,
		}
		for i, val := range cells {
			pdf.CellFormat(widths[i], 7, val, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total on premises: %d", len(roster)), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Printf("[ERROR] pdf export render: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to export report")
	}

	filename := fmt.Sprintf("on_premises_%s.pdf", now.Format("20060102_1504"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
