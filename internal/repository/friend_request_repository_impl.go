package repository

import (
	"errors"

	"medikeep/internal/domain/entity"
	domainRepo "medikeep/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type friendRequestRepository struct{}

func NewFriendRequestRepository() domainRepo.FriendRequestRepository {
	return &friendRequestRepository{}
}

func (r *friendRequestRepository) Create(db *gorm.DB, request *entity.FriendRequest) error {
	return db.Create(request).Error
}

func (r *friendRequestRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.FriendRequest, error) {
	var request entity.FriendRequest
	err := db.Where("id = ?", id).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *friendRequestRepository) FindPendingBetween(db *gorm.DB, fromID, toID uuid.UUID) (*entity.FriendRequest, error) {
	var request entity.FriendRequest
	err := db.Where("from_id = ? AND to_id = ? AND status = ?", fromID, toID, entity.FriendRequestStatusPending).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *friendRequestRepository) FindPendingByToID(db *gorm.DB, toID uuid.UUID) ([]entity.FriendRequest, error) {
	var requests []entity.FriendRequest
	err := db.Where("to_id = ? AND status = ?", toID, entity.FriendRequestStatusPending).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *friendRequestRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.FriendRequestStatus) error {
	return db.Model(&entity.FriendRequest{}).
		Where("id = ?", id).
		Update("status", status).Error
}
