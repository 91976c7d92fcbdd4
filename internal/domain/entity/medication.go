package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Medication is one entry in a user's dosing schedule. Grouped entries keep
// their names comma-joined in a single record, mirroring how the mobile form
// submits them.
type Medication struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Dosage       string         `gorm:"type:varchar(255)" json:"dosage"`
	Times        pq.StringArray `gorm:"type:text[];not null" json:"times"`
	Quantity     *int           `json:"quantity,omitempty"`
	QuantityUnit string         `gorm:"type:varchar(32)" json:"quantity_unit,omitempty"`
	ExpiryDate   string         `gorm:"type:varchar(10)" json:"expiry_date,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Medication) TableName() string {
	return "medications"
}
