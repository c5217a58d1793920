// internals/features/visitors/visitor/service/badge_service.go
package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	visitorModel "smartvisit_backend/internals/features/visitors/visitor/model"
	helper "smartvisit_backend/internals/helpers"
)

// BadgeData is the printable payload behind GET /visitors/{id}/badge.
type BadgeData struct {
	VisitorID   string `json:"visitor_id"`
	FullName    string `json:"full_name"`
	Company     string `json:"company,omitempty"`
	HostName    string `json:"host_name,omitempty"`
	VisitorType string `json:"visitor_type"`
	BadgeNumber *int   `json:"badge_number,omitempty"`
	QRCode      string `json:"qr_code"`
	QRImageURL  string `json:"qr_image_url,omitempty"`
	CheckInTime string `json:"check_in_time,omitempty"`
}

func BuildBadgeData(v *visitorModel.VisitorModel, hostName string) BadgeData {
	data := BadgeData{
		VisitorID:   v.ID.String(),
		FullName:    v.FullName(),
		Company:     v.Company,
		HostName:    hostName,
		VisitorType: v.VisitorType,
		BadgeNumber: v.BadgeNumber,
		QRCode:      v.QRCode,
		QRImageURL:  v.QRImageURL,
	}
	if v.CheckInTime != nil {
		data.CheckInTime = v.CheckInTime.Format("2006-01-02 15:04")
	}
	return data
}

// RenderBadgePDF produces the A6 badge card: header band, visitor
// identity block, badge number, QR code at the bottom.
func RenderBadgePDF(v *visitorModel.VisitorModel, hostName string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A6", "")
	pdf.SetMargins(8, 8, 8)
	pdf.AddPage()

	// header band
	pdf.SetFillColor(33, 64, 127)
	pdf.Rect(0, 0, 105, 18, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(8, 5)
	pdf.CellFormat(89, 8, "VISITOR", "", 0, "C", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(8, 24)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(89, 9, v.FullName(), "", 2, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	if v.Company != "" {
		pdf.CellFormat(89, 6, v.Company, "", 2, "C", false, 0, "")
	}
	if hostName != "" {
		pdf.CellFormat(89, 6, "Visiting: "+hostName, "", 2, "C", false, 0, "")
	}
	pdf.CellFormat(89, 6, "Type: "+v.VisitorType, "", 2, "C", false, 0, "")

	if v.BadgeNumber != nil {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(89, 7, fmt.Sprintf("Badge #%d", *v.BadgeNumber), "", 2, "C", false, 0, "")
	}

	// QR block
	if png, err := helper.RenderQRPNG(v.QRCode); err == nil {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("badge-qr", opts, bytes.NewReader(png))
		pdf.ImageOptions("badge-qr", 35.5, 82, 34, 34, false, opts, 0, "")
	}
	pdf.SetXY(8, 118)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(89, 5, v.QRCode, "", 2, "C", false, 0, "")

	pdf.SetXY(8, 134)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(89, 4, "Issued "+time.Now().Format("2006-01-02 15:04"), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("badge pdf render failed: %w", err)
	}
	return buf.Bytes(), nil
}
