package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InventoryItemRequestBody struct {
	Name             string `json:"name" validate:"required,max=255"`
	Boxes            int    `json:"boxes" validate:"gte=0"`
	UnitsPerBox      int    `json:"units_per_box" validate:"gte=1"`
	MedicinesPerUnit int    `json:"medicines_per_unit" validate:"gte=1"`
	ExpiryDate       string `json:"expiry_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type InventoryItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	UserID           uuid.UUID       `json:"user_id"`
	Name             string          `json:"name"`
	Boxes            decimal.Decimal `json:"boxes"`
	UnitsPerBox      int             `json:"units_per_box"`
	MedicinesPerUnit int             `json:"medicines_per_unit"`
	TotalUnits       decimal.Decimal `json:"total_units"`
	ExpiryDate       string          `json:"expiry_date,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type InventoryListResponse struct {
	Items []InventoryItemResponse `json:"items"`
	Total int                     `json:"total"`
}

type SendMedicationRequestBody struct {
	OwnerID uuid.UUID `json:"owner_id" validate:"required"`
}

type FulfilRequestBody struct {
	InventoryItemID uuid.UUID `json:"inventory_item_id" validate:"required"`
	CustomerID      uuid.UUID `json:"customer_id" validate:"required"`
	Quantity        int       `json:"quantity" validate:"required,gt=0"`
}

type MedicationRequestResponse struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	CustomerID   uuid.UUID `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	Status       string    `json:"status"`
	RequestedAt  time.Time `json:"requested_at"`
}

type MedicationRequestListResponse struct {
	Requests []MedicationRequestResponse `json:"requests"`
	Total    int                         `json:"total"`
}
