package entity

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus represents the status of a medication request.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusCompleted RequestStatus = "completed"
	RequestStatusDeclined  RequestStatus = "declined"
)

// MedicationRequest is a customer's ask for stock from a chemist or doctor.
// Completed and declined are terminal.
type MedicationRequest struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	OwnerID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"owner_id"`
	CustomerID   uuid.UUID     `gorm:"type:uuid;not null;index" json:"customer_id"`
	CustomerName string        `gorm:"type:varchar(255);not null" json:"customer_name"`
	Status       RequestStatus `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	RequestedAt  time.Time     `gorm:"not null" json:"requested_at"`
	CreatedAt    time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MedicationRequest) TableName() string {
	return "medication_requests"
}

// IsPending checks if the request can still be fulfilled or declined.
func (r *MedicationRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}
