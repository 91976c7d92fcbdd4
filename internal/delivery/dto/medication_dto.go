package dto

import (
	"time"

	"github.com/google/uuid"
)

type MedicationRequestBody struct {
	// Grouped entries submit their names comma-joined in a single string.
	Name         string   `json:"name" validate:"required,max=255"`
	Dosage       string   `json:"dosage,omitempty" validate:"omitempty,max=255"`
	Times        []string `json:"times" validate:"required,min=1,dive,required"`
	Quantity     *int     `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	QuantityUnit string   `json:"quantity_unit,omitempty" validate:"omitempty,max=32"`
	ExpiryDate   string   `json:"expiry_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type MedicationResponse struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	Dosage       string    `json:"dosage,omitempty"`
	Times        []string  `json:"times"`
	Quantity     *int      `json:"quantity,omitempty"`
	QuantityUnit string    `json:"quantity_unit,omitempty"`
	ExpiryDate   string    `json:"expiry_date,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type MedicationListResponse struct {
	Medications []MedicationResponse `json:"medications"`
	Total       int                  `json:"total"`
}

type StoredMedicineRequestBody struct {
	Name       string `json:"name" validate:"required,max=255"`
	ExpiryDate string `json:"expiry_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Quantity   int    `json:"quantity" validate:"gte=1"`
	PhotoURL   string `json:"photo_url,omitempty"`
}

type StoredMedicineResponse struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Name       string    `json:"name"`
	ExpiryDate string    `json:"expiry_date,omitempty"`
	Quantity   int       `json:"quantity"`
	PhotoURL   string    `json:"photo_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type StoredMedicineListResponse struct {
	Medicines []StoredMedicineResponse `json:"medicines"`
	Total     int                      `json:"total"`
}
