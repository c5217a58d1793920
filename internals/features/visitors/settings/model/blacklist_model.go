package model

import (
	"time"

	"github.com/google/uuid"
)

// BlacklistModel is a one-to-one administrative flag on a visitor.
// It does not force a status change and it does not gate check-ins:
// a match at check-in is logged as a warning only.
type BlacklistModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VisitorID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"visitor_id"`
	Reason    string     `gorm:"type:text;not null" json:"reason"`
	AddedBy   *uuid.UUID `gorm:"type:uuid" json:"added_by,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (BlacklistModel) TableName() string {
	return "blacklists"
}
