package repository

import (
	"errors"

	"medikeep/internal/domain/entity"
	domainRepo "medikeep/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type inventoryRepository struct{}

func NewInventoryRepository() domainRepo.InventoryRepository {
	return &inventoryRepository{}
}

func (r *inventoryRepository) Create(db *gorm.DB, item *entity.InventoryItem) error {
	return db.Create(item).Error
}

func (r *inventoryRepository) CreateBatch(db *gorm.DB, items []entity.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}
	return db.Create(&items).Error
}

func (r *inventoryRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := db.Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.InventoryItem, error) {
	var items []entity.InventoryItem
	err := db.Where("user_id = ?", userID).Order("name").Find(&items).Error
	return items, err
}

func (r *inventoryRepository) Update(db *gorm.DB, item *entity.InventoryItem) error {
	return db.Save(item).Error
}

func (r *inventoryRepository) UpdateBoxes(db *gorm.DB, id uuid.UUID, boxes decimal.Decimal) error {
	return db.Model(&entity.InventoryItem{}).
		Where("id = ?", id).
		Update("boxes", boxes).Error
}

func (r *inventoryRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&entity.InventoryItem{}).Error
}

type medicationRequestRepository struct{}

func NewMedicationRequestRepository() domainRepo.MedicationRequestRepository {
	return &medicationRequestRepository{}
}

func (r *medicationRequestRepository) Create(db *gorm.DB, request *entity.MedicationRequest) error {
	return db.Create(request).Error
}

func (r *medicationRequestRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.MedicationRequest, error) {
	var request entity.MedicationRequest
	err := db.Where("id = ?", id).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *medicationRequestRepository) FindByOwnerID(db *gorm.DB, ownerID uuid.UUID) ([]entity.MedicationRequest, error) {
	var requests []entity.MedicationRequest
	err := db.Where("owner_id = ?", ownerID).
		Order("requested_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *medicationRequestRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.RequestStatus) error {
	return db.Model(&entity.MedicationRequest{}).
		Where("id = ?", id).
		Update("status", status).Error
}
