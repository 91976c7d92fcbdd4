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
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrNothingExtracted = errors.New("no items could be extracted from the document")

type ExtractionUsecase interface {
	ExtractDocument(ctx context.Context, userID uuid.UUID, body *dto.ExtractDocumentRequestBody) (*dto.ExtractDocumentResponse, error)
}

type extractionUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	extractor     *service.ExtractorClient
	inventoryRepo repository.InventoryRepository
	storedRepo    repository.StoredMedicineRepository
}

func NewExtractionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	extractor *service.ExtractorClient,
	inventoryRepo repository.InventoryRepository,
	storedRepo repository.StoredMedicineRepository,
) ExtractionUsecase {
	return &extractionUsecase{
		db:            db,
		log:           log,
		extractor:     extractor,
		inventoryRepo: inventoryRepo,
		storedRepo:    storedRepo,
	}
}

// ExtractDocument sends the document to the analysis gateway and writes the
// extracted line items into the caller's inventory or stored-medicine
// collection, depending on the target schema. Items are inserted in one
// batch; a document that yields nothing is an error, not an empty success,
// so the client can tell the user to retake the photo.
func (u *extractionUsecase) ExtractDocument(ctx context.Context, userID uuid.UUID, body *dto.ExtractDocumentRequestBody) (*dto.ExtractDocumentResponse, error) {
	switch body.Target {
	case "inventory":
		return u.extractInventory(ctx, userID, body)
	default:
		return u.extractMedicines(ctx, userID, body)
	}
}

func (u *extractionUsecase) extractInventory(ctx context.Context, userID uuid.UUID, body *dto.ExtractDocumentRequestBody) (*dto.ExtractDocumentResponse, error) {
	extracted, err := u.extractor.AnalyzeInventoryDocument(ctx, body.Document, body.MimeType)
	if err != nil {
		u.log.Warnf("Failed to analyze inventory document: %+v", err)
		return nil, err
	}
	if len(extracted) == 0 {
		return nil, ErrNothingExtracted
	}

	items := make([]entity.InventoryItem, 0, len(extracted))
	for _, e := range extracted {
		items = append(items, entity.InventoryItem{
			UserID:           userID,
			Name:             e.Name,
			Boxes:            decimal.NewFromInt(int64(e.Boxes)),
			UnitsPerBox:      e.UnitsPerBox,
			MedicinesPerUnit: e.MedicinesPerUnit,
			ExpiryDate:       e.ExpiryDate,
		})
	}

	if err := u.inventoryRepo.CreateBatch(u.db.WithContext(ctx), items); err != nil {
		u.log.Warnf("Failed to store extracted inventory: %+v", err)
		return nil, err
	}

	return &dto.ExtractDocumentResponse{
		Target:    body.Target,
		Inventory: converter.InventoryItemsToResponses(items),
		Total:     len(items),
	}, nil
}

func (u *extractionUsecase) extractMedicines(ctx context.Context, userID uuid.UUID, body *dto.ExtractDocumentRequestBody) (*dto.ExtractDocumentResponse, error) {
	extracted, err := u.extractor.AnalyzeMedicineDocument(ctx, body.Document, body.MimeType)
	if err != nil {
		u.log.Warnf("Failed to analyze medicine document: %+v", err)
		return nil, err
	}
	if len(extracted) == 0 {
		return nil, ErrNothingExtracted
	}

	medicines := make([]entity.StoredMedicine, 0, len(extracted))
	for _, e := range extracted {
		medicines = append(medicines, entity.StoredMedicine{
			UserID:     userID,
			Name:       e.Name,
			Quantity:   e.Quantity,
			ExpiryDate: e.ExpiryDate,
		})
	}

	if err := u.storedRepo.CreateBatch(u.db.WithContext(ctx), medicines); err != nil {
		u.log.Warnf("Failed to store extracted medicines: %+v", err)
		return nil, err
	}

	return &dto.ExtractDocumentResponse{
		Target:    body.Target,
		Medicines: converter.StoredMedicinesToResponses(medicines),
		Total:     len(medicines),
	}, nil
}
