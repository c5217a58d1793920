package model

import (
	"time"
)

// VisitorSettingModel is a singleton row with fixed PK 1.
type VisitorSettingModel struct {
	ID int `gorm:"primaryKey" json:"id"`

	RequirePhoto           bool `gorm:"not null;default:true" json:"require_photo"`
	RequireID              bool `gorm:"not null;default:false" json:"require_id"`
	DefaultCheckinDuration int  `gorm:"not null;default:60" json:"default_checkin_duration"`
	EnablePreRegistration  bool `gorm:"not null;default:true" json:"enable_pre_registration"`
	EnableHealthCheck      bool `gorm:"not null;default:false" json:"enable_health_check"`

	EnableAutoCheckout bool   `gorm:"not null;default:false" json:"enable_auto_checkout"`
	AutoCheckoutTime   string `gorm:"size:5;default:'18:00'" json:"auto_checkout_time"`

	BadgeTemplateURL string `gorm:"size:500" json:"badge_template_url,omitempty"`

	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (VisitorSettingModel) TableName() string {
	return "visitor_settings"
}
