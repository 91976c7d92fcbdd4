package repository

import (
	"medikeep/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InventoryRepository interface {
	Create(db *gorm.DB, item *entity.InventoryItem) error
	CreateBatch(db *gorm.DB, items []entity.InventoryItem) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.InventoryItem, error)
	// FindByIDForUpdate locks the row for the duration of the surrounding
	// transaction.
	FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.InventoryItem, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.InventoryItem, error)
	Update(db *gorm.DB, item *entity.InventoryItem) error
	UpdateBoxes(db *gorm.DB, id uuid.UUID, boxes decimal.Decimal) error
	Delete(db *gorm.DB, id uuid.UUID) error
}

type MedicationRequestRepository interface {
	Create(db *gorm.DB, request *entity.MedicationRequest) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.MedicationRequest, error)
	FindByOwnerID(db *gorm.DB, ownerID uuid.UUID) ([]entity.MedicationRequest, error)
	UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.RequestStatus) error
}
