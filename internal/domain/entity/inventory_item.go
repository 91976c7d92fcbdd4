package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItem is sellable stock owned by a chemist or doctor profile.
//
// Boxes is a decimal, not an integer: fulfilment denormalizes the remaining
// total back into the boxes field while holding UnitsPerBox/MedicinesPerUnit
// fixed, which can leave a fractional box count (e.g. 1.5 boxes). That
// arithmetic is intentional product behavior and must not be truncated.
type InventoryItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name             string          `gorm:"type:varchar(255);not null" json:"name"`
	Boxes            decimal.Decimal `gorm:"type:decimal(14,4);not null" json:"boxes"`
	UnitsPerBox      int             `gorm:"not null;default:1" json:"units_per_box"`
	MedicinesPerUnit int             `gorm:"not null;default:1" json:"medicines_per_unit"`
	ExpiryDate       string          `gorm:"type:varchar(10)" json:"expiry_date"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}

// TotalUnits is boxes * unitsPerBox * medicinesPerUnit.
func (i *InventoryItem) TotalUnits() decimal.Decimal {
	return i.Boxes.Mul(decimal.NewFromInt(int64(i.UnitsPerBox))).Mul(decimal.NewFromInt(int64(i.MedicinesPerUnit)))
}

// UnitsPerWholeBox is unitsPerBox * medicinesPerUnit.
func (i *InventoryItem) UnitsPerWholeBox() decimal.Decimal {
	return decimal.NewFromInt(int64(i.UnitsPerBox)).Mul(decimal.NewFromInt(int64(i.MedicinesPerUnit)))
}
