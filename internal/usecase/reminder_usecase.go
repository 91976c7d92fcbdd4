package usecase

import (
	"context"

	"medikeep/internal/domain/repository"
	"medikeep/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ReminderUsecase is the delivery-facing surface of the reminder scheduler.
// Sync is also called implicitly on every medication mutation; the explicit
// operation exists so a client can re-arm reminders on login.
type ReminderUsecase interface {
	Sync(ctx context.Context, userID uuid.UUID) (int, error)
	Ack(ctx context.Context, userID uuid.UUID, key string, action service.ReminderAction) error
	Pending(ctx context.Context, userID uuid.UUID) []service.PendingView
	Cancel(ctx context.Context, userID uuid.UUID)
}

type reminderUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	medicationRepo repository.MedicationRepository
	scheduler      *service.ReminderScheduler
}

func NewReminderUsecase(db *gorm.DB, log *logrus.Logger, medicationRepo repository.MedicationRepository, scheduler *service.ReminderScheduler) ReminderUsecase {
	return &reminderUsecase{
		db:             db,
		log:            log,
		medicationRepo: medicationRepo,
		scheduler:      scheduler,
	}
}

func (u *reminderUsecase) Sync(ctx context.Context, userID uuid.UUID) (int, error) {
	medications, err := u.medicationRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to load medications for reminder sync: %+v", err)
		return 0, err
	}

	return u.scheduler.Sync(userID, medications), nil
}

func (u *reminderUsecase) Ack(ctx context.Context, userID uuid.UUID, key string, action service.ReminderAction) error {
	return u.scheduler.Ack(ctx, userID, key, action)
}

func (u *reminderUsecase) Pending(_ context.Context, userID uuid.UUID) []service.PendingView {
	return u.scheduler.Pending(userID)
}

func (u *reminderUsecase) Cancel(_ context.Context, userID uuid.UUID) {
	u.scheduler.Cancel(userID)
}
