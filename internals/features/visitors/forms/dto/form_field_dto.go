package dto

import (
	"regexp"
	"strings"

	"gorm.io/datatypes"

	formModel "smartvisit_backend/internals/features/visitors/forms/model"
)

var slugRe = regexp.MustCompile(`[^a-z0-9_]+`)

// Slugify turns a label into the stable field name used as the form
// payload key.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = slugRe.ReplaceAllString(s, "")
	return strings.Trim(s, "_")
}

type CreateFormFieldRequest struct {
	Name        string          `json:"name" validate:"omitempty,max=100"`
	Label       string          `json:"label" validate:"required,max=200"`
	Type        string          `json:"type" validate:"required,oneof=text number email phone date select checkbox textarea"`
	Required    bool            `json:"required"`
	Options     *datatypes.JSON `json:"options"`
	Placeholder string          `json:"placeholder" validate:"max=200"`
	HelpText    string          `json:"help_text" validate:"max=500"`
	VisitorType string          `json:"visitor_type" validate:"omitempty,oneof=guest contractor vendor interview delivery walk_in pre_registered"`
}

func (r *CreateFormFieldRequest) Normalize() {
	r.Label = strings.TrimSpace(r.Label)
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	r.Placeholder = strings.TrimSpace(r.Placeholder)
	r.HelpText = strings.TrimSpace(r.HelpText)
	r.VisitorType = strings.ToLower(strings.TrimSpace(r.VisitorType))
	if r.Name == "" {
		r.Name = Slugify(r.Label)
	} else {
		r.Name = Slugify(r.Name)
	}
}

func (r *CreateFormFieldRequest) ToModel() *formModel.FormFieldModel {
	m := &formModel.FormFieldModel{
		Name:        r.Name,
		Label:       r.Label,
		Type:        r.Type,
		Required:    r.Required,
		IsActive:    true,
		Placeholder: r.Placeholder,
		HelpText:    r.HelpText,
		VisitorType: r.VisitorType,
	}
	if r.Options != nil {
		m.Options = *r.Options
	}
	return m
}

type UpdateFormFieldRequest struct {
	Label       *string         `json:"label" validate:"omitempty,max=200"`
	Type        *string         `json:"type" validate:"omitempty,oneof=text number email phone date select checkbox textarea"`
	Required    *bool           `json:"required"`
	IsActive    *bool           `json:"is_active"`
	Options     *datatypes.JSON `json:"options"`
	Placeholder *string         `json:"placeholder" validate:"omitempty,max=200"`
	HelpText    *string         `json:"help_text" validate:"omitempty,max=500"`
	VisitorType *string         `json:"visitor_type" validate:"omitempty,oneof=guest contractor vendor interview delivery walk_in pre_registered"`
}

func (r *UpdateFormFieldRequest) Normalize() {
	if r.Label != nil {
		*r.Label = strings.TrimSpace(*r.Label)
	}
	if r.Type != nil {
		*r.Type = strings.ToLower(strings.TrimSpace(*r.Type))
	}
	if r.Placeholder != nil {
		*r.Placeholder = strings.TrimSpace(*r.Placeholder)
	}
	if r.HelpText != nil {
		*r.HelpText = strings.TrimSpace(*r.HelpText)
	}
	if r.VisitorType != nil {
		*r.VisitorType = strings.ToLower(strings.TrimSpace(*r.VisitorType))
	}
}

func (r *UpdateFormFieldRequest) ApplyToModel(m *formModel.FormFieldModel) {
	if r.Label != nil {
		m.Label = *r.Label
	}
	if r.Type != nil {
		m.Type = *r.Type
	}
	if r.Required != nil {
		m.Required = *r.Required
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
	if r.Options != nil {
		m.Options = *r.Options
	}
	if r.Placeholder != nil {
		m.Placeholder = *r.Placeholder
	}
	if r.HelpText != nil {
		m.HelpText = *r.HelpText
	}
	if r.VisitorType != nil {
		m.VisitorType = *r.VisitorType
	}
}
