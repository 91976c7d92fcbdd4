package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateProfileRequest struct {
	Name             string `json:"name" validate:"required,min=2,max=255"`
	Username         string `json:"username" validate:"required,min=3,max=20"`
	AccountType      string `json:"account_type" validate:"required,oneof=normal doctor chemist"`
	PhoneNumber      string `json:"phone_number,omitempty" validate:"omitempty,max=32"`
	Allergies        string `json:"allergies,omitempty"`
	EmergencyContact string `json:"emergency_contact,omitempty" validate:"omitempty,max=255"`
	PictureURL       string `json:"picture_url,omitempty"`
}

type UpdateProfileRequest struct {
	Name             string `json:"name" validate:"required,min=2,max=255"`
	PhoneNumber      string `json:"phone_number,omitempty" validate:"omitempty,max=32"`
	Allergies        string `json:"allergies,omitempty"`
	EmergencyContact string `json:"emergency_contact,omitempty" validate:"omitempty,max=255"`
	PictureURL       string `json:"picture_url,omitempty"`
}

type ProfileResponse struct {
	UserID           uuid.UUID   `json:"user_id"`
	Name             string      `json:"name"`
	Username         string      `json:"username"`
	AccountType      string      `json:"account_type"`
	Email            string      `json:"email,omitempty"`
	PhoneNumber      string      `json:"phone_number,omitempty"`
	Allergies        string      `json:"allergies,omitempty"`
	EmergencyContact string      `json:"emergency_contact,omitempty"`
	PictureURL       string      `json:"picture_url,omitempty"`
	Family           []uuid.UUID `json:"family,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

type ProfileSummaryResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Username    string    `json:"username"`
	AccountType string    `json:"account_type"`
	PictureURL  string    `json:"picture_url,omitempty"`
}

type ProfileListResponse struct {
	Profiles []ProfileSummaryResponse `json:"profiles"`
	Total    int                      `json:"total"`
}
