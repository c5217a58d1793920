package model

import (
	"time"

	"github.com/google/uuid"
)

// Action values for the append-only audit trail.
const (
	ActionPreRegister        = "pre_register"
	ActionCheckIn            = "check_in"
	ActionKioskCheckIn       = "kiosk_check_in"
	ActionQRCheckIn          = "qr_check_in"
	ActionOfflineCheckIn     = "offline_checkin"
	ActionCheckOut           = "check_out"
	ActionStatusChange       = "status_change"
	ActionDocumentUpload     = "document_upload"
	ActionBlacklisted        = "blacklisted"
	ActionNotificationSent   = "notification_sent"
	ActionManualNotification = "manual_notification"
	ActionBulkNotification   = "bulk_notification"
	ActionLogin              = "login"
	ActionLogout             = "logout"
	ActionRegister           = "register"
	ActionReportGenerated    = "report_generated"
)

// VisitorLogModel is append-only. Rows are never updated or deleted;
// auth events carry a nil visitor FK.
type VisitorLogModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VisitorID *uuid.UUID `gorm:"type:uuid;index" json:"visitor_id,omitempty"`
	Action    string     `gorm:"type:varchar(30);not null;index" json:"action"`
	Details   string     `gorm:"type:text" json:"details,omitempty"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Timestamp time.Time  `gorm:"type:timestamptz;autoCreateTime;index" json:"timestamp"`
}

func (VisitorLogModel) TableName() string {
	return "visitor_logs"
}
