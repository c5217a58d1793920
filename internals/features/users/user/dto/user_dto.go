package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	userModel "smartvisit_backend/internals/features/users/user/model"
)

/* =========================
   Requests
========================= */

type CreateUserRequest struct {
	Email          string     `json:"email" validate:"required,email"`
	Password       string     `json:"password" validate:"required,min=8"`
	FirstName      string     `json:"first_name" validate:"required,max=100"`
	LastName       string     `json:"last_name" validate:"max=100"`
	Phone          string     `json:"phone" validate:"max=30"`
	WhatsappNumber string     `json:"whatsapp_number" validate:"max=30"`
	Department     string     `json:"department" validate:"max=100"`
	JobTitle       string     `json:"job_title" validate:"max=100"`
	Role           string     `json:"role" validate:"required,oneof=admin receptionist host security user"`
	BranchID       *uuid.UUID `json:"branch_id"`
}

func (r *CreateUserRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Phone = strings.TrimSpace(r.Phone)
	r.WhatsappNumber = strings.TrimSpace(r.WhatsappNumber)
	r.Department = strings.TrimSpace(r.Department)
	r.JobTitle = strings.TrimSpace(r.JobTitle)
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
}

func (r *CreateUserRequest) ToModel() *userModel.UserModel {
	return &userModel.UserModel{
		Email:          r.Email,
		Password:       r.Password,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Phone:          r.Phone,
		WhatsappNumber: r.WhatsappNumber,
		Department:     r.Department,
		JobTitle:       r.JobTitle,
		Role:           r.Role,
		BranchID:       r.BranchID,
		IsActive:       true,
	}
}

// UpdateUserRequest carries partial updates; nil means untouched.
// Email is immutable and deliberately absent.
type UpdateUserRequest struct {
	FirstName               *string         `json:"first_name" validate:"omitempty,max=100"`
	LastName                *string         `json:"last_name" validate:"omitempty,max=100"`
	Phone                   *string         `json:"phone" validate:"omitempty,max=30"`
	WhatsappNumber          *string         `json:"whatsapp_number" validate:"omitempty,max=30"`
	Department              *string         `json:"department" validate:"omitempty,max=100"`
	JobTitle                *string         `json:"job_title" validate:"omitempty,max=100"`
	Role                    *string         `json:"role" validate:"omitempty,oneof=admin receptionist host security user"`
	ProfilePictureURL       *string         `json:"profile_picture_url" validate:"omitempty,max=500"`
	BranchID                *uuid.UUID      `json:"branch_id"`
	NotificationPreferences *datatypes.JSON `json:"notification_preferences"`
	IsActive                *bool           `json:"is_active"`
}

func (r *UpdateUserRequest) Normalize() {
	trim := func(p *string) {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
	trim(r.FirstName)
	trim(r.LastName)
	trim(r.Phone)
	trim(r.WhatsappNumber)
	trim(r.Department)
	trim(r.JobTitle)
	if r.Role != nil {
		*r.Role = strings.ToLower(strings.TrimSpace(*r.Role))
	}
}

func (r *UpdateUserRequest) ApplyToModel(m *userModel.UserModel) {
	if r.FirstName != nil {
		m.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		m.LastName = *r.LastName
	}
	if r.Phone != nil {
		m.Phone = *r.Phone
	}
	if r.WhatsappNumber != nil {
		m.WhatsappNumber = *r.WhatsappNumber
	}
	if r.Department != nil {
		m.Department = *r.Department
	}
	if r.JobTitle != nil {
		m.JobTitle = *r.JobTitle
	}
	if r.Role != nil {
		m.Role = *r.Role
	}
	if r.ProfilePictureURL != nil {
		m.ProfilePictureURL = *r.ProfilePictureURL
	}
	if r.BranchID != nil {
		m.BranchID = r.BranchID
	}
	if r.NotificationPreferences != nil {
		m.NotificationPreferences = *r.NotificationPreferences
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
}

/* =========================
   Responses
========================= */

type UserResponse struct {
	ID                uuid.UUID  `json:"id"`
	Email             string     `json:"email"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	FullName          string     `json:"full_name"`
	Phone             string     `json:"phone,omitempty"`
	WhatsappNumber    string     `json:"whatsapp_number,omitempty"`
	Department        string     `json:"department,omitempty"`
	JobTitle          string     `json:"job_title,omitempty"`
	Role              string     `json:"role"`
	ProfilePictureURL string     `json:"profile_picture_url,omitempty"`
	BranchID          *uuid.UUID `json:"branch_id,omitempty"`
	IsVerified        bool       `json:"is_verified"`
	IsActive          bool       `json:"is_active"`
	LastLogin         *time.Time `json:"last_login,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

func ToUserResponse(m *userModel.UserModel) UserResponse {
	return UserResponse{
		ID:                m.ID,
		Email:             m.Email,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		FullName:          m.FullName(),
		Phone:             m.Phone,
		WhatsappNumber:    m.WhatsappNumber,
		Department:        m.Department,
		JobTitle:          m.JobTitle,
		Role:              m.Role,
		ProfilePictureURL: m.ProfilePictureURL,
		BranchID:          m.BranchID,
		IsVerified:        m.IsVerified,
		IsActive:          m.IsActive,
		LastLogin:         m.LastLogin,
		CreatedAt:         m.CreatedAt,
	}
}

// HostOption is the compact shape the kiosk host picker consumes.
type HostOption struct {
	ID         uuid.UUID `json:"id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Department string    `json:"department,omitempty"`
}

func ToHostOption(m *userModel.UserModel) HostOption {
	return HostOption{
		ID:         m.ID,
		FullName:   m.FullName(),
		Email:      m.Email,
		Department: m.Department,
	}
}
