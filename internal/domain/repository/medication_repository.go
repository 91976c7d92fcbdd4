package repository

import (
	"medikeep/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicationRepository interface {
	Create(db *gorm.DB, medication *entity.Medication) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Medication, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Medication, error)
	Update(db *gorm.DB, medication *entity.Medication) error
	Delete(db *gorm.DB, id uuid.UUID) error
}

type StoredMedicineRepository interface {
	Create(db *gorm.DB, medicine *entity.StoredMedicine) error
	CreateBatch(db *gorm.DB, medicines []entity.StoredMedicine) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.StoredMedicine, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.StoredMedicine, error)
	Update(db *gorm.DB, medicine *entity.StoredMedicine) error
	Delete(db *gorm.DB, id uuid.UUID) error
}

type AdherenceLogRepository interface {
	Create(db *gorm.DB, log *entity.AdherenceLog) error
	FindByUserID(db *gorm.DB, userID uuid.UUID, limit int) ([]entity.AdherenceLog, error)
}
