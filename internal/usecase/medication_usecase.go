package usecase

import (
	"context"
	"errors"

	"medikeep/internal/converter"
	"medikeep/internal/delivery/dto"
	"medikeep/internal/domain/entity"
	"medikeep/internal/domain/repository"
	"medikeep/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrMedicationNotFound     = errors.New("medication not found")
	ErrStoredMedicineNotFound = errors.New("stored medicine not found")
	ErrNotCaregiver           = errors.New("user is not linked to this family member")
	ErrInvalidDoseTime        = errors.New("dose time must be HH:MM or h:MM AM/PM")
)

type MedicationUsecase interface {
	CreateMedication(ctx context.Context, actorID, targetID uuid.UUID, body *dto.MedicationRequestBody) (*dto.MedicationResponse, error)
	ListMedications(ctx context.Context, actorID, targetID uuid.UUID) (*dto.MedicationListResponse, error)
	UpdateMedication(ctx context.Context, actorID uuid.UUID, medicationID uuid.UUID, body *dto.MedicationRequestBody) (*dto.MedicationResponse, error)
	DeleteMedication(ctx context.Context, actorID uuid.UUID, medicationID uuid.UUID) error

	CreateStoredMedicine(ctx context.Context, userID uuid.UUID, body *dto.StoredMedicineRequestBody) (*dto.StoredMedicineResponse, error)
	ListStoredMedicines(ctx context.Context, actorID, targetID uuid.UUID) (*dto.StoredMedicineListResponse, error)
	UpdateStoredMedicine(ctx context.Context, userID uuid.UUID, medicineID uuid.UUID, body *dto.StoredMedicineRequestBody) (*dto.StoredMedicineResponse, error)
	DeleteStoredMedicine(ctx context.Context, userID uuid.UUID, medicineID uuid.UUID) error
}

type medicationUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	medicationRepo repository.MedicationRepository
	storedRepo     repository.StoredMedicineRepository
	familyRepo     repository.FamilyRepository
	scheduler      *service.ReminderScheduler
}

func NewMedicationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	medicationRepo repository.MedicationRepository,
	storedRepo repository.StoredMedicineRepository,
	familyRepo repository.FamilyRepository,
	scheduler *service.ReminderScheduler,
) MedicationUsecase {
	return &medicationUsecase{
		db:             db,
		log:            log,
		medicationRepo: medicationRepo,
		storedRepo:     storedRepo,
		familyRepo:     familyRepo,
		scheduler:      scheduler,
	}
}

// authorize allows actors to manage their own records, and records of family
// members they are linked to.
func (u *medicationUsecase) authorize(db *gorm.DB, actorID, targetID uuid.UUID) error {
	if actorID == targetID {
		return nil
	}
	linked, err := u.familyRepo.AreLinked(db, actorID, targetID)
	if err != nil {
		u.log.Warnf("Failed to check family link: %+v", err)
		return err
	}
	if !linked {
		return ErrNotCaregiver
	}
	return nil
}

func (u *medicationUsecase) CreateMedication(ctx context.Context, actorID, targetID uuid.UUID, body *dto.MedicationRequestBody) (*dto.MedicationResponse, error) {
	db := u.db.WithContext(ctx)

	if err := u.authorize(db, actorID, targetID); err != nil {
		return nil, err
	}
	for _, t := range body.Times {
		if _, _, err := service.ParseTimeOfDay(t); err != nil {
			return nil, ErrInvalidDoseTime
		}
	}

	medication := &entity.Medication{
		UserID:       targetID,
		Name:         body.Name,
		Dosage:       body.Dosage,
		Times:        body.Times,
		Quantity:     body.Quantity,
		QuantityUnit: body.QuantityUnit,
		ExpiryDate:   body.ExpiryDate,
	}

	if err := u.medicationRepo.Create(db, medication); err != nil {
		u.log.Warnf("Failed to create medication: %+v", err)
		return nil, err
	}

	u.resyncReminders(db, targetID)

	return converter.MedicationToResponse(medication), nil
}

func (u *medicationUsecase) ListMedications(ctx context.Context, actorID, targetID uuid.UUID) (*dto.MedicationListResponse, error) {
	db := u.db.WithContext(ctx)

	if err := u.authorize(db, actorID, targetID); err != nil {
		return nil, err
	}

	medications, err := u.medicationRepo.FindByUserID(db, targetID)
	if err != nil {
		u.log.Warnf("Failed to list medications for %s: %+v", targetID, err)
		return nil, err
	}

	return &dto.MedicationListResponse{
		Medications: converter.MedicationsToResponses(medications),
		Total:       len(medications),
	}, nil
}

func (u *medicationUsecase) UpdateMedication(ctx context.Context, actorID uuid.UUID, medicationID uuid.UUID, body *dto.MedicationRequestBody) (*dto.MedicationResponse, error) {
	db := u.db.WithContext(ctx)

	medication, err := u.medicationRepo.FindByID(db, medicationID)
	if err != nil {
		u.log.Warnf("Failed to find medication %s: %+v", medicationID, err)
		return nil, err
	}
	if medication == nil {
		return nil, ErrMedicationNotFound
	}
	if err := u.authorize(db, actorID, medication.UserID); err != nil {
		return nil, err
	}
	for _, t := range body.Times {
		if _, _, err := service.ParseTimeOfDay(t); err != nil {
			return nil, ErrInvalidDoseTime
		}
	}

	medication.Name = body.Name
	medication.Dosage = body.Dosage
	medication.Times = body.Times
	medication.Quantity = body.Quantity
	medication.QuantityUnit = body.QuantityUnit
	medication.ExpiryDate = body.ExpiryDate

	if err := u.medicationRepo.Update(db, medication); err != nil {
		u.log.Warnf("Failed to update medication %s: %+v", medicationID, err)
		return nil, err
	}

	u.resyncReminders(db, medication.UserID)

	return converter.MedicationToResponse(medication), nil
}

func (u *medicationUsecase) DeleteMedication(ctx context.Context, actorID uuid.UUID, medicationID uuid.UUID) error {
	db := u.db.WithContext(ctx)

	medication, err := u.medicationRepo.FindByID(db, medicationID)
	if err != nil {
		u.log.Warnf("Failed to find medication %s: %+v", medicationID, err)
		return err
	}
	if medication == nil {
		return ErrMedicationNotFound
	}
	if err := u.authorize(db, actorID, medication.UserID); err != nil {
		return err
	}

	if err := u.medicationRepo.Delete(db, medicationID); err != nil {
		u.log.Warnf("Failed to delete medication %s: %+v", medicationID, err)
		return err
	}

	u.resyncReminders(db, medication.UserID)

	return nil
}

// resyncReminders rebuilds the owner's reminder set from the current
// schedule. Reminder drift is tolerable, a failed write is not, so a reload
// failure is logged and swallowed.
func (u *medicationUsecase) resyncReminders(db *gorm.DB, userID uuid.UUID) {
	medications, err := u.medicationRepo.FindByUserID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to reload medications for reminder sync: %+v", err)
		return
	}
	armed := u.scheduler.Sync(userID, medications)
	u.log.Debugf("Synced %d reminders for %s", armed, userID)
}

func (u *medicationUsecase) CreateStoredMedicine(ctx context.Context, userID uuid.UUID, body *dto.StoredMedicineRequestBody) (*dto.StoredMedicineResponse, error) {
	medicine := &entity.StoredMedicine{
		UserID:     userID,
		Name:       body.Name,
		ExpiryDate: body.ExpiryDate,
		Quantity:   body.Quantity,
		PhotoURL:   body.PhotoURL,
	}

	if err := u.storedRepo.Create(u.db.WithContext(ctx), medicine); err != nil {
		u.log.Warnf("Failed to create stored medicine: %+v", err)
		return nil, err
	}

	return converter.StoredMedicineToResponse(medicine), nil
}

func (u *medicationUsecase) ListStoredMedicines(ctx context.Context, actorID, targetID uuid.UUID) (*dto.StoredMedicineListResponse, error) {
	db := u.db.WithContext(ctx)

	if err := u.authorize(db, actorID, targetID); err != nil {
		return nil, err
	}

	medicines, err := u.storedRepo.FindByUserID(db, targetID)
	if err != nil {
		u.log.Warnf("Failed to list stored medicines for %s: %+v", targetID, err)
		return nil, err
	}

	return &dto.StoredMedicineListResponse{
		Medicines: converter.StoredMedicinesToResponses(medicines),
		Total:     len(medicines),
	}, nil
}

func (u *medicationUsecase) UpdateStoredMedicine(ctx context.Context, userID uuid.UUID, medicineID uuid.UUID, body *dto.StoredMedicineRequestBody) (*dto.StoredMedicineResponse, error) {
	db := u.db.WithContext(ctx)

	medicine, err := u.storedRepo.FindByID(db, medicineID)
	if err != nil {
		u.log.Warnf("Failed to find stored medicine %s: %+v", medicineID, err)
		return nil, err
	}
	if medicine == nil || medicine.UserID != userID {
		return nil, ErrStoredMedicineNotFound
	}

	medicine.Name = body.Name
	medicine.ExpiryDate = body.ExpiryDate
	medicine.Quantity = body.Quantity
	medicine.PhotoURL = body.PhotoURL

	if err := u.storedRepo.Update(db, medicine); err != nil {
		u.log.Warnf("Failed to update stored medicine %s: %+v", medicineID, err)
		return nil, err
	}

	return converter.StoredMedicineToResponse(medicine), nil
}

func (u *medicationUsecase) DeleteStoredMedicine(ctx context.Context, userID uuid.UUID, medicineID uuid.UUID) error {
	db := u.db.WithContext(ctx)

	medicine, err := u.storedRepo.FindByID(db, medicineID)
	if err != nil {
		u.log.Warnf("Failed to find stored medicine %s: %+v", medicineID, err)
		return err
	}
	if medicine == nil || medicine.UserID != userID {
		return ErrStoredMedicineNotFound
	}

	if err := u.storedRepo.Delete(db, medicineID); err != nil {
		u.log.Warnf("Failed to delete stored medicine %s: %+v", medicineID, err)
		return err
	}

	return nil
}
