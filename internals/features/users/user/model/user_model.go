package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserModel represents the users table. Staff accounts only; visitors
// live in their own table. Accounts are never hard-deleted, they get
// deactivated via is_active.
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email     string    `gorm:"size:255;unique;not null" json:"email" validate:"required,email"`
	Password  string    `gorm:"not null" json:"-" validate:"required,min=8"`
	FirstName string    `gorm:"size:100;not null" json:"first_name" validate:"required,max=100"`
	LastName  string    `gorm:"size:100" json:"last_name" validate:"max=100"`

	Phone          string `gorm:"size:30" json:"phone,omitempty"`
	WhatsappNumber string `gorm:"size:30" json:"whatsapp_number,omitempty"`
	Department     string `gorm:"size:100" json:"department,omitempty"`
	JobTitle       string `gorm:"size:100" json:"job_title,omitempty"`

	Role string `gorm:"type:varchar(20);not null;default:'user'" json:"role"`

	ProfilePictureURL string     `gorm:"size:500" json:"profile_picture_url,omitempty"`
	BranchID          *uuid.UUID `gorm:"type:uuid" json:"branch_id,omitempty"`

	// per-user channel toggles, e.g. {"email":true,"sms":false,"app":true}
	NotificationPreferences datatypes.JSON `gorm:"type:jsonb" json:"notification_preferences,omitempty"`

	IsVerified bool `gorm:"not null;default:false" json:"is_verified"`
	IsActive   bool `gorm:"not null;default:true" json:"is_active"`

	LastLogin *time.Time `gorm:"type:timestamptz" json:"last_login,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

// SetDefaultValues fills defaults before validation
func (u *UserModel) SetDefaultValues() {
	if u.Role == "" {
		u.Role = "user"
	}
}

// FullName joins first + last, trimming the gap when last is empty.
func (u *UserModel) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
