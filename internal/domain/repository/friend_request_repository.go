package repository

import (
	"medikeep/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FriendRequestRepository interface {
	Create(db *gorm.DB, request *entity.FriendRequest) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.FriendRequest, error)
	// FindPendingBetween checks one direction only; callers query both
	// directions.
	FindPendingBetween(db *gorm.DB, fromID, toID uuid.UUID) (*entity.FriendRequest, error)
	FindPendingByToID(db *gorm.DB, toID uuid.UUID) ([]entity.FriendRequest, error)
	UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.FriendRequestStatus) error
}
