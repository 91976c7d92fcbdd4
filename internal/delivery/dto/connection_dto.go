package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendFriendRequestBody struct {
	ToID uuid.UUID `json:"to_id" validate:"required"`
}

type RespondFriendRequestBody struct {
	Response string `json:"response" validate:"required,oneof=accepted declined"`
}

type FriendRequestResponse struct {
	ID             uuid.UUID `json:"id"`
	FromID         uuid.UUID `json:"from_id"`
	FromName       string    `json:"from_name"`
	FromPictureURL string    `json:"from_picture_url,omitempty"`
	ToID           uuid.UUID `json:"to_id"`
	Status         string    `json:"status"`
	Type           string    `json:"type"`
	CreatedAt      time.Time `json:"created_at"`
}

type FriendRequestListResponse struct {
	Requests []FriendRequestResponse `json:"requests"`
	Total    int                     `json:"total"`
}

type FamilyListResponse struct {
	Members []ProfileSummaryResponse `json:"members"`
	Total   int                      `json:"total"`
}
