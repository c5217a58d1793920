package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "smartvisit_backend/internals/helpers"
)

// Status values. checked_out is terminal for a row; blacklisted is an
// administrative override.
const (
	StatusPreRegistered = "pre_registered"
	StatusCheckedIn     = "checked_in"
	StatusInMeeting     = "in_meeting"
	StatusCheckedOut    = "checked_out"
	StatusBlacklisted   = "blacklisted"
)

// Visitor types
const (
	TypeGuest         = "guest"
	TypeContractor    = "contractor"
	TypeVendor        = "vendor"
	TypeInterview     = "interview"
	TypeDelivery      = "delivery"
	TypeWalkIn        = "walk_in"
	TypePreRegistered = "pre_registered"
)

// ID document types
const (
	IDTypeNationalID    = "national_id"
	IDTypePassport      = "passport"
	IDTypeDriverLicense = "driver_license"
	IDTypeOther         = "other"
)

func IsValidStatus(s string) bool {
	switch s {
	case StatusPreRegistered, StatusCheckedIn, StatusInMeeting, StatusCheckedOut, StatusBlacklisted:
		return true
	}
	return false
}

func IsValidVisitorType(t string) bool {
	switch t {
	case TypeGuest, TypeContractor, TypeVendor, TypeInterview, TypeDelivery, TypeWalkIn, TypePreRegistered:
		return true
	}
	return false
}

// VisitorModel represents the visitors table. Rows are retained
// indefinitely; one row per visit.
type VisitorModel struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100" json:"last_name"`
	Email     string `gorm:"size:255" json:"email,omitempty"`
	Phone     string `gorm:"size:30" json:"phone,omitempty"`
	Company   string `gorm:"size:200" json:"company,omitempty"`

	IDNumber string `gorm:"size:100" json:"id_number,omitempty"`
	IDType   string `gorm:"type:varchar(20);default:'national_id'" json:"id_type,omitempty"`

	VisitorType string `gorm:"type:varchar(20);not null;default:'guest'" json:"visitor_type"`

	HostID   *uuid.UUID `gorm:"type:uuid;index" json:"host_id,omitempty"`
	BranchID *uuid.UUID `gorm:"type:uuid" json:"branch_id,omitempty"`

	Purpose string `gorm:"type:text" json:"purpose,omitempty"`
	Notes   string `gorm:"type:text" json:"notes,omitempty"`
	Plate   string `gorm:"size:20" json:"plate,omitempty"`

	ExpectedArrival *time.Time `gorm:"type:timestamptz" json:"expected_arrival,omitempty"`
	CheckInTime     *time.Time `gorm:"type:timestamptz" json:"check_in_time,omitempty"`
	CheckOutTime    *time.Time `gorm:"type:timestamptz" json:"check_out_time,omitempty"`

	Status string `gorm:"type:varchar(20);not null;default:'pre_registered';index" json:"status"`

	PhotoURL     string `gorm:"size:500" json:"photo_url,omitempty"`
	SignatureURL string `gorm:"size:500" json:"signature_url,omitempty"`
	NDAURL       string `gorm:"size:500" json:"nda_url,omitempty"`

	HealthDeclaration bool     `gorm:"not null;default:false" json:"health_declaration"`
	Temperature       *float64 `json:"temperature,omitempty"`

	// assigned exactly once in BeforeCreate, immutable thereafter
	QRCode     string `gorm:"size:20;unique" json:"qr_code"`
	QRImageURL string `gorm:"size:500" json:"qr_image_url,omitempty"`

	BadgePrinted bool `gorm:"not null;default:false" json:"badge_printed"`
	BadgeNumber  *int `gorm:"uniqueIndex" json:"badge_number,omitempty"`

	OfflineCheckin bool   `gorm:"not null;default:false" json:"offline_checkin"`
	CheckInDevice  string `gorm:"size:100" json:"check_in_device,omitempty"`

	NotificationMethod     string `gorm:"type:varchar(10);default:'email'" json:"notification_method,omitempty"`
	NotificationSubscribed bool   `gorm:"not null;default:true" json:"notification_subscribed"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (VisitorModel) TableName() string {
	return "visitors"
}

// BeforeCreate assigns the QR token on first save only. Updates never
// touch it.
func (v *VisitorModel) BeforeCreate(tx *gorm.DB) error {
	if v.QRCode == "" {
		v.QRCode = helper.GenerateQRToken()
	}
	if v.VisitorType == "" {
		v.VisitorType = TypeGuest
	}
	if v.Status == "" {
		v.Status = StatusPreRegistered
	}
	return nil
}

// FullName joins first + last, trimming the gap when last is empty.
func (v *VisitorModel) FullName() string {
	return strings.TrimSpace(v.FirstName + " " + v.LastName)
}

// VisitDuration returns the elapsed visit time, zero when the visit
// has no check-in or no check-out yet.
func (v *VisitorModel) VisitDuration() time.Duration {
	if v.CheckInTime == nil || v.CheckOutTime == nil {
		return 0
	}
	return v.CheckOutTime.Sub(*v.CheckInTime)
}
