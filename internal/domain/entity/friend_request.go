package entity

import (
	"time"

	"github.com/google/uuid"
)

// FriendRequestStatus represents the lifecycle of a friend request.
type FriendRequestStatus string

const (
	FriendRequestStatusPending  FriendRequestStatus = "pending"
	FriendRequestStatusAccepted FriendRequestStatus = "accepted"
	FriendRequestStatusDeclined FriendRequestStatus = "declined"
)

// FriendRequestTypeFamily is the only connection type currently supported.
const FriendRequestTypeFamily = "family"

// FriendRequest is a directed connection request between two profiles. Sender
// display data is denormalized so request lists render without profile joins.
type FriendRequest struct {
	ID             uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FromID         uuid.UUID           `gorm:"type:uuid;not null;index" json:"from_id"`
	FromName       string              `gorm:"type:varchar(255);not null" json:"from_name"`
	FromPictureURL string              `gorm:"type:text" json:"from_picture_url,omitempty"`
	ToID           uuid.UUID           `gorm:"type:uuid;not null;index" json:"to_id"`
	Status         FriendRequestStatus `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	Type           string              `gorm:"type:varchar(16);not null;default:'family'" json:"type"`
	CreatedAt      time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

func (FriendRequest) TableName() string {
	return "friend_requests"
}

// IsPending checks if the request still awaits a response.
func (r *FriendRequest) IsPending() bool {
	return r.Status == FriendRequestStatusPending
}
