package usecase

import (
	"context"
	"errors"
	"time"

	"medikeep/internal/converter"
	"medikeep/internal/delivery/dto"
	"medikeep/internal/domain/entity"
	"medikeep/internal/domain/repository"
	"medikeep/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrNotProfessional   = errors.New("recipient is not a chemist or doctor")
	ErrNotRequestOwner   = errors.New("only the stock owner may act on this request")
	ErrCustomerMismatch  = errors.New("customer does not match the request")
	ErrInsufficientStock = errors.New("not enough stock to fulfil the request")
)

type RequestUsecase interface {
	SendRequest(ctx context.Context, customerID uuid.UUID, ownerID uuid.UUID) (*dto.MedicationRequestResponse, error)
	ListRequests(ctx context.Context, ownerID uuid.UUID) (*dto.MedicationRequestListResponse, error)
	DeclineRequest(ctx context.Context, ownerID, requestID uuid.UUID) error
	FulfilRequest(ctx context.Context, ownerID, requestID uuid.UUID, body *dto.FulfilRequestBody) (*dto.MedicationRequestResponse, error)
}

type requestUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	profileRepo   repository.ProfileRepository
	requestRepo   repository.MedicationRequestRepository
	inventoryRepo repository.InventoryRepository
	storedRepo    repository.StoredMedicineRepository
	hub           *service.Hub
}

func NewRequestUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	profileRepo repository.ProfileRepository,
	requestRepo repository.MedicationRequestRepository,
	inventoryRepo repository.InventoryRepository,
	storedRepo repository.StoredMedicineRepository,
	hub *service.Hub,
) RequestUsecase {
	return &requestUsecase{
		db:            db,
		log:           log,
		profileRepo:   profileRepo,
		requestRepo:   requestRepo,
		inventoryRepo: inventoryRepo,
		storedRepo:    storedRepo,
		hub:           hub,
	}
}

func (u *requestUsecase) SendRequest(ctx context.Context, customerID uuid.UUID, ownerID uuid.UUID) (*dto.MedicationRequestResponse, error) {
	if customerID == ownerID {
		return nil, ErrSelfRequest
	}

	db := u.db.WithContext(ctx)

	owner, err := u.profileRepo.FindByUserID(db, ownerID)
	if err != nil {
		u.log.Warnf("Failed to load owner profile %s: %+v", ownerID, err)
		return nil, err
	}
	if owner == nil {
		return nil, ErrProfileNotFound
	}
	if !owner.IsProfessional() {
		return nil, ErrNotProfessional
	}

	customer, err := u.profileRepo.FindByUserID(db, customerID)
	if err != nil {
		u.log.Warnf("Failed to load customer profile %s: %+v", customerID, err)
		return nil, err
	}
	if customer == nil {
		return nil, ErrProfileNotFound
	}

	request := &entity.MedicationRequest{
		OwnerID:      ownerID,
		CustomerID:   customerID,
		CustomerName: customer.Name,
		Status:       entity.RequestStatusPending,
		RequestedAt:  time.Now(),
	}

	if err := u.requestRepo.Create(db, request); err != nil {
		u.log.Warnf("Failed to create medication request: %+v", err)
		return nil, err
	}

	resp := converter.MedicationRequestToResponse(request)
	u.hub.Publish(ctx, service.UserTopic(ownerID), service.Event{Type: service.EventMedicationRequest, Payload: resp})

	return resp, nil
}

func (u *requestUsecase) ListRequests(ctx context.Context, ownerID uuid.UUID) (*dto.MedicationRequestListResponse, error) {
	requests, err := u.requestRepo.FindByOwnerID(u.db.WithContext(ctx), ownerID)
	if err != nil {
		u.log.Warnf("Failed to list medication requests for %s: %+v", ownerID, err)
		return nil, err
	}

	return &dto.MedicationRequestListResponse{
		Requests: converter.MedicationRequestsToResponses(requests),
		Total:    len(requests),
	}, nil
}

func (u *requestUsecase) DeclineRequest(ctx context.Context, ownerID, requestID uuid.UUID) error {
	db := u.db.WithContext(ctx)

	request, err := u.requestRepo.FindByID(db, requestID)
	if err != nil {
		u.log.Warnf("Failed to find medication request %s: %+v", requestID, err)
		return err
	}
	if request == nil {
		return ErrRequestNotFound
	}
	if request.OwnerID != ownerID {
		return ErrNotRequestOwner
	}
	if !request.IsPending() {
		return ErrRequestAlreadyResolved
	}

	if err := u.requestRepo.UpdateStatus(db, requestID, entity.RequestStatusDeclined); err != nil {
		u.log.Warnf("Failed to decline medication request %s: %+v", requestID, err)
		return err
	}

	return nil
}

// FulfilRequest decrements stock and completes the request atomically. The
// inventory row is locked for the transaction, so concurrent fulfilments
// against the same item serialize and each sees the stock the previous one
// left behind.
//
// The remaining stock is written back in box units:
//
//	newBoxes = (totalUnits - quantity) / (unitsPerBox * medicinesPerUnit)
//
// which may be fractional. Selling 50 units out of 2 boxes of 10x10 leaves
// 1.5 boxes.
//
// The customer's stored-medicine record is created after the commit. If that
// write fails the sale still stands; the record is the customer's
// convenience copy, not the ledger.
func (u *requestUsecase) FulfilRequest(ctx context.Context, ownerID, requestID uuid.UUID, body *dto.FulfilRequestBody) (*dto.MedicationRequestResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	request, err := u.requestRepo.FindByID(tx, requestID)
	if err != nil {
		u.log.Warnf("Failed to find medication request %s: %+v", requestID, err)
		return nil, err
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}
	if request.OwnerID != ownerID {
		return nil, ErrNotRequestOwner
	}
	if request.CustomerID != body.CustomerID {
		return nil, ErrCustomerMismatch
	}
	if !request.IsPending() {
		return nil, ErrRequestAlreadyResolved
	}

	item, err := u.inventoryRepo.FindByIDForUpdate(tx, body.InventoryItemID)
	if err != nil {
		u.log.Warnf("Failed to lock inventory item %s: %+v", body.InventoryItemID, err)
		return nil, err
	}
	if item == nil || item.UserID != ownerID {
		return nil, ErrInventoryItemNotFound
	}

	quantity := decimal.NewFromInt(int64(body.Quantity))
	total := item.TotalUnits()
	if quantity.GreaterThan(total) {
		return nil, ErrInsufficientStock
	}

	newBoxes := total.Sub(quantity).Div(item.UnitsPerWholeBox())

	if err := u.inventoryRepo.UpdateBoxes(tx, item.ID, newBoxes); err != nil {
		u.log.Warnf("Failed to update inventory item %s: %+v", item.ID, err)
		return nil, err
	}

	if err := u.requestRepo.UpdateStatus(tx, requestID, entity.RequestStatusCompleted); err != nil {
		u.log.Warnf("Failed to complete medication request %s: %+v", requestID, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	medicine := &entity.StoredMedicine{
		UserID:     request.CustomerID,
		Name:       item.Name,
		ExpiryDate: item.ExpiryDate,
		Quantity:   body.Quantity,
	}
	if err := u.storedRepo.Create(u.db.WithContext(ctx), medicine); err != nil {
		u.log.Warnf("Failed to record fulfilled medicine for %s: %+v", request.CustomerID, err)
	}

	request.Status = entity.RequestStatusCompleted
	resp := converter.MedicationRequestToResponse(request)
	u.hub.Publish(ctx, service.UserTopic(request.CustomerID), service.Event{Type: service.EventRequestFulfilled, Payload: resp})

	return resp, nil
}
