package entity

import (
	"time"

	"github.com/google/uuid"
)

// StoredMedicine is physical stock a person holds, as opposed to a dosing
// schedule. Fulfilled medication requests and document scans both create
// these.
type StoredMedicine struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	ExpiryDate string    `gorm:"type:varchar(10)" json:"expiry_date"`
	Quantity   int       `gorm:"not null;default:1" json:"quantity"`
	PhotoURL   string    `gorm:"type:text" json:"photo_url,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (StoredMedicine) TableName() string {
	return "stored_medicines"
}
