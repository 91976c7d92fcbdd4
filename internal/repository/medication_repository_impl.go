package repository

import (
	"errors"

	"medikeep/internal/domain/entity"
	domainRepo "medikeep/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type medicationRepository struct{}

func NewMedicationRepository() domainRepo.MedicationRepository {
	return &medicationRepository{}
}

func (r *medicationRepository) Create(db *gorm.DB, medication *entity.Medication) error {
	return db.Create(medication).Error
}

func (r *medicationRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Medication, error) {
	var medication entity.Medication
	err := db.Where("id = ?", id).First(&medication).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &medication, nil
}

func (r *medicationRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Medication, error) {
	var medications []entity.Medication
	err := db.Where("user_id = ?", userID).Order("created_at").Find(&medications).Error
	return medications, err
}

func (r *medicationRepository) Update(db *gorm.DB, medication *entity.Medication) error {
	return db.Save(medication).Error
}

func (r *medicationRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&entity.Medication{}).Error
}

type storedMedicineRepository struct{}

func NewStoredMedicineRepository() domainRepo.StoredMedicineRepository {
	return &storedMedicineRepository{}
}

func (r *storedMedicineRepository) Create(db *gorm.DB, medicine *entity.StoredMedicine) error {
	return db.Create(medicine).Error
}

func (r *storedMedicineRepository) CreateBatch(db *gorm.DB, medicines []entity.StoredMedicine) error {
	if len(medicines) == 0 {
		return nil
	}
	return db.Create(&medicines).Error
}

func (r *storedMedicineRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.StoredMedicine, error) {
	var medicine entity.StoredMedicine
	err := db.Where("id = ?", id).First(&medicine).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &medicine, nil
}

func (r *storedMedicineRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.StoredMedicine, error) {
	var medicines []entity.StoredMedicine
	err := db.Where("user_id = ?", userID).Order("created_at").Find(&medicines).Error
	return medicines, err
}

func (r *storedMedicineRepository) Update(db *gorm.DB, medicine *entity.StoredMedicine) error {
	return db.Save(medicine).Error
}

func (r *storedMedicineRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&entity.StoredMedicine{}).Error
}

type adherenceLogRepository struct{}

func NewAdherenceLogRepository() domainRepo.AdherenceLogRepository {
	return &adherenceLogRepository{}
}

func (r *adherenceLogRepository) Create(db *gorm.DB, log *entity.AdherenceLog) error {
	return db.Create(log).Error
}

func (r *adherenceLogRepository) FindByUserID(db *gorm.DB, userID uuid.UUID, limit int) ([]entity.AdherenceLog, error) {
	var logs []entity.AdherenceLog
	err := db.Where("user_id = ?", userID).
		Order("logged_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
