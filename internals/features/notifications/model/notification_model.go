package model

import (
	"time"

	"github.com/google/uuid"
)

// Channel values. whatsapp only appears on audit rows written by the
// dedicated WhatsApp path; it is not a requestable send channel.
const (
	ChannelEmail    = "email"
	ChannelSMS      = "sms"
	ChannelApp      = "app"
	ChannelWhatsApp = "whatsapp"
	ChannelAll      = "all"
)

// Status values
const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusRead    = "read"
	StatusFailed  = "failed"
)

// NotificationModel records one delivery attempt to one recipient.
// Exactly one of UserID / VisitorID is set. status=read implies
// read_at is set.
type NotificationModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	VisitorID *uuid.UUID `gorm:"type:uuid;index" json:"visitor_id,omitempty"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	Channel   string     `gorm:"type:varchar(10);not null" json:"channel"`
	Status    string     `gorm:"type:varchar(10);not null;default:'pending'" json:"status"`
	SentAt    *time.Time `gorm:"type:timestamptz" json:"sent_at,omitempty"`
	ReadAt    *time.Time `gorm:"type:timestamptz" json:"read_at,omitempty"`
	CreatedAt time.Time  `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

func IsValidChannel(ch string) bool {
	switch ch {
	case ChannelEmail, ChannelSMS, ChannelApp, ChannelAll:
		return true
	}
	return false
}
