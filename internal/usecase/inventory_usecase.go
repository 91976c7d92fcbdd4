package usecase

import (
	"context"
	"errors"

	"medikeep/internal/converter"
	"medikeep/internal/delivery/dto"
	"medikeep/internal/domain/entity"
	"medikeep/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrInventoryItemNotFound = errors.New("inventory item not found")

type InventoryUsecase interface {
	CreateItem(ctx context.Context, userID uuid.UUID, body *dto.InventoryItemRequestBody) (*dto.InventoryItemResponse, error)
	ListItems(ctx context.Context, userID uuid.UUID) (*dto.InventoryListResponse, error)
	UpdateItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, body *dto.InventoryItemRequestBody) (*dto.InventoryItemResponse, error)
	DeleteItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) error
}

type inventoryUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	inventoryRepo repository.InventoryRepository
}

func NewInventoryUsecase(db *gorm.DB, log *logrus.Logger, inventoryRepo repository.InventoryRepository) InventoryUsecase {
	return &inventoryUsecase{
		db:            db,
		log:           log,
		inventoryRepo: inventoryRepo,
	}
}

func (u *inventoryUsecase) CreateItem(ctx context.Context, userID uuid.UUID, body *dto.InventoryItemRequestBody) (*dto.InventoryItemResponse, error) {
	item := &entity.InventoryItem{
		UserID:           userID,
		Name:             body.Name,
		Boxes:            decimal.NewFromInt(int64(body.Boxes)),
		UnitsPerBox:      body.UnitsPerBox,
		MedicinesPerUnit: body.MedicinesPerUnit,
		ExpiryDate:       body.ExpiryDate,
	}

	if err := u.inventoryRepo.Create(u.db.WithContext(ctx), item); err != nil {
		u.log.Warnf("Failed to create inventory item: %+v", err)
		return nil, err
	}

	return converter.InventoryItemToResponse(item), nil
}

func (u *inventoryUsecase) ListItems(ctx context.Context, userID uuid.UUID) (*dto.InventoryListResponse, error) {
	items, err := u.inventoryRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to list inventory for %s: %+v", userID, err)
		return nil, err
	}

	return &dto.InventoryListResponse{
		Items: converter.InventoryItemsToResponses(items),
		Total: len(items),
	}, nil
}

func (u *inventoryUsecase) UpdateItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, body *dto.InventoryItemRequestBody) (*dto.InventoryItemResponse, error) {
	db := u.db.WithContext(ctx)

	item, err := u.inventoryRepo.FindByID(db, itemID)
	if err != nil {
		u.log.Warnf("Failed to find inventory item %s: %+v", itemID, err)
		return nil, err
	}
	if item == nil || item.UserID != userID {
		return nil, ErrInventoryItemNotFound
	}

	item.Name = body.Name
	item.Boxes = decimal.NewFromInt(int64(body.Boxes))
	item.UnitsPerBox = body.UnitsPerBox
	item.MedicinesPerUnit = body.MedicinesPerUnit
	item.ExpiryDate = body.ExpiryDate

	if err := u.inventoryRepo.Update(db, item); err != nil {
		u.log.Warnf("Failed to update inventory item %s: %+v", itemID, err)
		return nil, err
	}

	return converter.InventoryItemToResponse(item), nil
}

func (u *inventoryUsecase) DeleteItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) error {
	db := u.db.WithContext(ctx)

	item, err := u.inventoryRepo.FindByID(db, itemID)
	if err != nil {
		u.log.Warnf("Failed to find inventory item %s: %+v", itemID, err)
		return err
	}
	if item == nil || item.UserID != userID {
		return ErrInventoryItemNotFound
	}

	if err := u.inventoryRepo.Delete(db, itemID); err != nil {
		u.log.Warnf("Failed to delete inventory item %s: %+v", itemID, err)
		return err
	}

	return nil
}
