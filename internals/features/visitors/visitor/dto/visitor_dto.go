package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	visitorModel "smartvisit_backend/internals/features/visitors/visitor/model"
)

/* =========================
   Requests
========================= */

// CheckInRequest is the reception-desk check-in payload.
type CheckInRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"max=30"`
	Company   string `json:"company" validate:"max=200"`

	IDNumber string `json:"id_number" validate:"max=100"`
	IDType   string `json:"id_type" validate:"omitempty,oneof=national_id passport driver_license other"`

	VisitorType string    `json:"visitor_type" validate:"omitempty,oneof=guest contractor vendor interview delivery walk_in pre_registered"`
	HostID      uuid.UUID `json:"host_id" validate:"required"`
	BranchID    *uuid.UUID `json:"branch_id"`

	Purpose string `json:"purpose" validate:"max=2000"`
	Notes   string `json:"notes" validate:"max=2000"`
	Plate   string `json:"plate" validate:"max=20"`

	HealthDeclaration bool     `json:"health_declaration"`
	Temperature       *float64 `json:"temperature"`

	PhotoData     string `json:"photo_data"`
	SignatureData string `json:"signature_data"`
}

func (r *CheckInRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.Company = strings.TrimSpace(r.Company)
	r.IDNumber = strings.TrimSpace(r.IDNumber)
	r.IDType = strings.ToLower(strings.TrimSpace(r.IDType))
	r.VisitorType = strings.ToLower(strings.TrimSpace(r.VisitorType))
	r.Purpose = strings.TrimSpace(r.Purpose)
	r.Notes = strings.TrimSpace(r.Notes)
	r.Plate = strings.ToUpper(strings.TrimSpace(r.Plate))
}

func (r *CheckInRequest) ToModel() *visitorModel.VisitorModel {
	vt := r.VisitorType
	if vt == "" {
		vt = visitorModel.TypeGuest
	}
	hostID := r.HostID
	return &visitorModel.VisitorModel{
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		Email:             r.Email,
		Phone:             r.Phone,
		Company:           r.Company,
		IDNumber:          r.IDNumber,
		IDType:            r.IDType,
		VisitorType:       vt,
		HostID:            &hostID,
		BranchID:          r.BranchID,
		Purpose:           r.Purpose,
		Notes:             r.Notes,
		Plate:             r.Plate,
		HealthDeclaration: r.HealthDeclaration,
		Temperature:       r.Temperature,
	}
}

// KioskCheckInRequest is the self-service kiosk payload. Validation is
// by explicit missing-field listing, matching the kiosk UI contract.
type KioskCheckInRequest struct {
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Company       string    `json:"company"`
	Purpose       string    `json:"purpose"`
	HostID        uuid.UUID `json:"host_id"`
	VisitorType   string    `json:"visitor_type"`
	PhotoData     string    `json:"photo_data"`
	SignatureData string    `json:"signature_data"`
	Plate         string    `json:"plate"`
}

func (r *KioskCheckInRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.Company = strings.TrimSpace(r.Company)
	r.Purpose = strings.TrimSpace(r.Purpose)
	r.VisitorType = strings.ToLower(strings.TrimSpace(r.VisitorType))
	r.Plate = strings.ToUpper(strings.TrimSpace(r.Plate))
}

// MissingFields returns the kiosk-required fields absent from the
// payload, in a stable order.
func (r *KioskCheckInRequest) MissingFields() []string {
	var missing []string
	if r.FirstName == "" {
		missing = append(missing, "first_name")
	}
	if r.Phone == "" {
		missing = append(missing, "phone")
	}
	if r.Purpose == "" {
		missing = append(missing, "purpose")
	}
	if r.HostID == uuid.Nil {
		missing = append(missing, "host_id")
	}
	if r.VisitorType == "" {
		missing = append(missing, "visitor_type")
	}
	if r.PhotoData == "" {
		missing = append(missing, "photo_data")
	}
	if r.SignatureData == "" {
		missing = append(missing, "signature_data")
	}
	if r.Plate == "" {
		missing = append(missing, "plate")
	}
	return missing
}

// PreRegisterRequest creates a pre_registered visit ahead of arrival.
type PreRegisterRequest struct {
	FirstName       string     `json:"first_name" validate:"required,max=100"`
	LastName        string     `json:"last_name" validate:"max=100"`
	Email           string     `json:"email" validate:"omitempty,email"`
	Phone           string     `json:"phone" validate:"max=30"`
	Company         string     `json:"company" validate:"max=200"`
	VisitorType     string     `json:"visitor_type" validate:"omitempty,oneof=guest contractor vendor interview delivery walk_in pre_registered"`
	HostID          uuid.UUID  `json:"host_id" validate:"required"`
	BranchID        *uuid.UUID `json:"branch_id"`
	Purpose         string     `json:"purpose" validate:"max=2000"`
	ExpectedArrival *time.Time `json:"expected_arrival"`
}

func (r *PreRegisterRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.Company = strings.TrimSpace(r.Company)
	r.VisitorType = strings.ToLower(strings.TrimSpace(r.VisitorType))
	r.Purpose = strings.TrimSpace(r.Purpose)
}

func (r *PreRegisterRequest) ToModel() *visitorModel.VisitorModel {
	vt := r.VisitorType
	if vt == "" {
		vt = visitorModel.TypePreRegistered
	}
	hostID := r.HostID
	return &visitorModel.VisitorModel{
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Email:           r.Email,
		Phone:           r.Phone,
		Company:         r.Company,
		VisitorType:     vt,
		HostID:          &hostID,
		BranchID:        r.BranchID,
		Purpose:         r.Purpose,
		ExpectedArrival: r.ExpectedArrival,
		Status:          visitorModel.StatusPreRegistered,
	}
}

// UpdateVisitorRequest carries partial updates; nil means untouched.
type UpdateVisitorRequest struct {
	FirstName         *string    `json:"first_name" validate:"omitempty,max=100"`
	LastName          *string    `json:"last_name" validate:"omitempty,max=100"`
	Email             *string    `json:"email" validate:"omitempty,email"`
	Phone             *string    `json:"phone" validate:"omitempty,max=30"`
	Company           *string    `json:"company" validate:"omitempty,max=200"`
	IDNumber          *string    `json:"id_number" validate:"omitempty,max=100"`
	IDType            *string    `json:"id_type" validate:"omitempty,oneof=national_id passport driver_license other"`
	VisitorType       *string    `json:"visitor_type" validate:"omitempty,oneof=guest contractor vendor interview delivery walk_in pre_registered"`
	HostID            *uuid.UUID `json:"host_id"`
	BranchID          *uuid.UUID `json:"branch_id"`
	Purpose           *string    `json:"purpose" validate:"omitempty,max=2000"`
	Notes             *string    `json:"notes" validate:"omitempty,max=2000"`
	Plate             *string    `json:"plate" validate:"omitempty,max=20"`
	Status            *string    `json:"status" validate:"omitempty,oneof=pre_registered checked_in in_meeting checked_out blacklisted"`
	HealthDeclaration *bool      `json:"health_declaration"`
	Temperature       *float64   `json:"temperature"`
	BadgePrinted      *bool      `json:"badge_printed"`
}

func (r *UpdateVisitorRequest) Normalize() {
	trim := func(p *string) {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
	trim(r.FirstName)
	trim(r.LastName)
	trim(r.Phone)
	trim(r.Company)
	trim(r.IDNumber)
	trim(r.Purpose)
	trim(r.Notes)
	if r.Email != nil {
		*r.Email = strings.ToLower(strings.TrimSpace(*r.Email))
	}
	if r.IDType != nil {
		*r.IDType = strings.ToLower(strings.TrimSpace(*r.IDType))
	}
	if r.VisitorType != nil {
		*r.VisitorType = strings.ToLower(strings.TrimSpace(*r.VisitorType))
	}
	if r.Status != nil {
		*r.Status = strings.ToLower(strings.TrimSpace(*r.Status))
	}
	if r.Plate != nil {
		*r.Plate = strings.ToUpper(strings.TrimSpace(*r.Plate))
	}
}

// ApplyToModel applies the partial update. Status is handled by the
// controller because transitions write audit rows.
func (r *UpdateVisitorRequest) ApplyToModel(m *visitorModel.VisitorModel) {
	if r.FirstName != nil {
		m.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		m.LastName = *r.LastName
	}
	if r.Email != nil {
		m.Email = *r.Email
	}
	if r.Phone != nil {
		m.Phone = *r.Phone
	}
	if r.Company != nil {
		m.Company = *r.Company
	}
	if r.IDNumber != nil {
		m.IDNumber = *r.IDNumber
	}
	if r.IDType != nil {
		m.IDType = *r.IDType
	}
	if r.VisitorType != nil {
		m.VisitorType = *r.VisitorType
	}
	if r.HostID != nil {
		m.HostID = r.HostID
	}
	if r.BranchID != nil {
		m.BranchID = r.BranchID
	}
	if r.Purpose != nil {
		m.Purpose = *r.Purpose
	}
	if r.Notes != nil {
		m.Notes = *r.Notes
	}
	if r.Plate != nil {
		m.Plate = *r.Plate
	}
	if r.HealthDeclaration != nil {
		m.HealthDeclaration = *r.HealthDeclaration
	}
	if r.Temperature != nil {
		m.Temperature = r.Temperature
	}
	if r.BadgePrinted != nil {
		m.BadgePrinted = *r.BadgePrinted
	}
}

/* =========================
   Responses
========================= */

type VisitorResponse struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Company     string    `json:"company,omitempty"`
	IDNumber    string    `json:"id_number,omitempty"`
	IDType      string    `json:"id_type,omitempty"`
	VisitorType string    `json:"visitor_type"`

	HostID   *uuid.UUID `json:"host_id,omitempty"`
	HostName string     `json:"host_name,omitempty"`
	BranchID *uuid.UUID `json:"branch_id,omitempty"`

	Purpose string `json:"purpose,omitempty"`
	Notes   string `json:"notes,omitempty"`
	Plate   string `json:"plate,omitempty"`

	ExpectedArrival *time.Time `json:"expected_arrival,omitempty"`
	CheckInTime     *time.Time `json:"check_in_time,omitempty"`
	CheckOutTime    *time.Time `json:"check_out_time,omitempty"`
	Duration        string     `json:"duration,omitempty"`

	Status string `json:"status"`

	PhotoURL     string `json:"photo_url,omitempty"`
	SignatureURL string `json:"signature_url,omitempty"`

	HealthDeclaration bool     `json:"health_declaration"`
	Temperature       *float64 `json:"temperature,omitempty"`

	QRCode     string `json:"qr_code"`
	QRImageURL string `json:"qr_image_url,omitempty"`

	BadgePrinted bool `json:"badge_printed"`
	BadgeNumber  *int `json:"badge_number,omitempty"`

	OfflineCheckin bool `json:"offline_checkin"`

	CreatedAt time.Time `json:"created_at"`
}

func ToVisitorResponse(m *visitorModel.VisitorModel, hostName string, duration string) VisitorResponse {
	return VisitorResponse{
		ID:                m.ID,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		FullName:          m.FullName(),
		Email:             m.Email,
		Phone:             m.Phone,
		Company:           m.Company,
		IDNumber:          m.IDNumber,
		IDType:            m.IDType,
		VisitorType:       m.VisitorType,
		HostID:            m.HostID,
		HostName:          hostName,
		BranchID:          m.BranchID,
		Purpose:           m.Purpose,
		Notes:             m.Notes,
		Plate:             m.Plate,
		ExpectedArrival:   m.ExpectedArrival,
		CheckInTime:       m.CheckInTime,
		CheckOutTime:      m.CheckOutTime,
		Duration:          duration,
		Status:            m.Status,
		PhotoURL:          m.PhotoURL,
		SignatureURL:      m.SignatureURL,
		HealthDeclaration: m.HealthDeclaration,
		Temperature:       m.Temperature,
		QRCode:            m.QRCode,
		QRImageURL:        m.QRImageURL,
		BadgePrinted:      m.BadgePrinted,
		BadgeNumber:       m.BadgeNumber,
		OfflineCheckin:    m.OfflineCheckin,
		CreatedAt:         m.CreatedAt,
	}
}
