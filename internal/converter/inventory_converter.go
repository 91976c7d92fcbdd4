package converter

import (
	"medikeep/internal/delivery/dto"
	"medikeep/internal/domain/entity"
)

func InventoryItemToResponse(item *entity.InventoryItem) *dto.InventoryItemResponse {
	if item == nil {
		return nil
	}

	return &dto.InventoryItemResponse{
		ID:               item.ID,
		UserID:           item.UserID,
		Name:             item.Name,
		Boxes:            item.Boxes,
		UnitsPerBox:      item.UnitsPerBox,
		MedicinesPerUnit: item.MedicinesPerUnit,
		TotalUnits:       item.TotalUnits(),
		ExpiryDate:       item.ExpiryDate,
		CreatedAt:        item.CreatedAt,
		UpdatedAt:        item.UpdatedAt,
	}
}

func InventoryItemsToResponses(items []entity.InventoryItem) []dto.InventoryItemResponse {
	responses := make([]dto.InventoryItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, *InventoryItemToResponse(&items[i]))
	}
	return responses
}

func MedicationRequestToResponse(request *entity.MedicationRequest) *dto.MedicationRequestResponse {
	if request == nil {
		return nil
	}

	return &dto.MedicationRequestResponse{
		ID:           request.ID,
		OwnerID:      request.OwnerID,
		CustomerID:   request.CustomerID,
		CustomerName: request.CustomerName,
		Status:       string(request.Status),
		RequestedAt:  request.RequestedAt,
	}
}

func MedicationRequestsToResponses(requests []entity.MedicationRequest) []dto.MedicationRequestResponse {
	responses := make([]dto.MedicationRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, *MedicationRequestToResponse(&requests[i]))
	}
	return responses
}
