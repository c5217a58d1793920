package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Field types the kiosk form renderer understands.
const (
	FieldText     = "text"
	FieldNumber   = "number"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldDate     = "date"
	FieldSelect   = "select"
	FieldCheckbox = "checkbox"
	FieldTextarea = "textarea"
)

func IsValidFieldType(t string) bool {
	switch t {
	case FieldText, FieldNumber, FieldEmail, FieldPhone, FieldDate, FieldSelect, FieldCheckbox, FieldTextarea:
		return true
	}
	return false
}

// FormFieldModel is one dynamic field on the check-in form. Order is
// kept dense: deletion renumbers trailing rows.
type FormFieldModel struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name  string    `gorm:"size:100;not null;unique" json:"name"`
	Label string    `gorm:"size:200;not null" json:"label"`
	Type  string    `gorm:"type:varchar(20);not null;default:'text'" json:"type"`

	Required bool `gorm:"not null;default:false" json:"required"`
	Order    int  `gorm:"column:field_order;not null;default:0" json:"order"`
	IsActive bool `gorm:"not null;default:true" json:"is_active"`

	// select/checkbox choices, stored as a JSON array of strings
	Options datatypes.JSON `gorm:"type:jsonb" json:"options,omitempty"`

	Placeholder string `gorm:"size:200" json:"placeholder,omitempty"`
	HelpText    string `gorm:"size:500" json:"help_text,omitempty"`

	// restrict the field to one visitor type; empty means all
	VisitorType string `gorm:"type:varchar(20)" json:"visitor_type,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (FormFieldModel) TableName() string {
	return "form_fields"
}
