package usecase

import (
	"context"

	"medikeep/internal/converter"
	"medikeep/internal/delivery/dto"
	"medikeep/internal/domain/entity"
	"medikeep/internal/domain/repository"
	"medikeep/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const adherenceHistoryLimit = 200

type AdherenceUsecase interface {
	service.AdherenceSink
	Log(ctx context.Context, userID uuid.UUID, body *dto.LogAdherenceRequestBody) (*dto.AdherenceLogResponse, error)
	History(ctx context.Context, actorID, targetID uuid.UUID) (*dto.AdherenceListResponse, error)
}

type adherenceUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	logRepo    repository.AdherenceLogRepository
	familyRepo repository.FamilyRepository
}

func NewAdherenceUsecase(db *gorm.DB, log *logrus.Logger, logRepo repository.AdherenceLogRepository, familyRepo repository.FamilyRepository) AdherenceUsecase {
	return &adherenceUsecase{
		db:         db,
		log:        log,
		logRepo:    logRepo,
		familyRepo: familyRepo,
	}
}

// LogDose records a reminder outcome. Called by the reminder scheduler when
// a user acknowledges a firing.
func (u *adherenceUsecase) LogDose(ctx context.Context, userID, medicationID uuid.UUID, medicationName, scheduledTime string, action entity.AdherenceAction) error {
	record := &entity.AdherenceLog{
		UserID:         userID,
		MedicationID:   medicationID,
		MedicationName: medicationName,
		ScheduledTime:  scheduledTime,
		Action:         action,
	}

	if err := u.logRepo.Create(u.db.WithContext(ctx), record); err != nil {
		u.log.Warnf("Failed to create adherence log: %+v", err)
		return err
	}

	return nil
}

// Log records a dose outcome reported directly by the client, outside the
// reminder cycle.
func (u *adherenceUsecase) Log(ctx context.Context, userID uuid.UUID, body *dto.LogAdherenceRequestBody) (*dto.AdherenceLogResponse, error) {
	record := &entity.AdherenceLog{
		UserID:         userID,
		MedicationID:   body.MedicationID,
		MedicationName: body.MedicationName,
		ScheduledTime:  body.ScheduledTime,
		Action:         entity.AdherenceAction(body.Action),
	}

	if err := u.logRepo.Create(u.db.WithContext(ctx), record); err != nil {
		u.log.Warnf("Failed to create adherence log: %+v", err)
		return nil, err
	}

	return converter.AdherenceLogToResponse(record), nil
}

func (u *adherenceUsecase) History(ctx context.Context, actorID, targetID uuid.UUID) (*dto.AdherenceListResponse, error) {
	db := u.db.WithContext(ctx)

	if actorID != targetID {
		linked, err := u.familyRepo.AreLinked(db, actorID, targetID)
		if err != nil {
			u.log.Warnf("Failed to check family link: %+v", err)
			return nil, err
		}
		if !linked {
			return nil, ErrNotCaregiver
		}
	}

	logs, err := u.logRepo.FindByUserID(db, targetID, adherenceHistoryLimit)
	if err != nil {
		u.log.Warnf("Failed to list adherence logs for %s: %+v", targetID, err)
		return nil, err
	}

	return &dto.AdherenceListResponse{
		Logs:  converter.AdherenceLogsToResponses(logs),
		Total: len(logs),
	}, nil
}
