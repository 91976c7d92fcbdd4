package handler

import (
	"encoding/json"
	"net/http"

	"medikeep/internal/delivery/dto"
	"medikeep/internal/delivery/http/middleware"
	"medikeep/internal/usecase"
	"medikeep/pkg/response"
	"medikeep/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type InventoryHandler struct {
	inventoryUsecase usecase.InventoryUsecase
	validator        *validator.CustomValidator
}

func NewInventoryHandler(inventoryUsecase usecase.InventoryUsecase, validator *validator.CustomValidator) *InventoryHandler {
	return &InventoryHandler{
		inventoryUsecase: inventoryUsecase,
		validator:        validator,
	}
}

func (h *InventoryHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.InventoryItemRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	item, err := h.inventoryUsecase.CreateItem(r.Context(), userID, &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create inventory item")
		return
	}

	response.Success(w, http.StatusCreated, "Inventory item created successfully", item)
}

func (h *InventoryHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	items, err := h.inventoryUsecase.ListItems(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to list inventory")
		return
	}

	response.Success(w, http.StatusOK, "Inventory retrieved successfully", items)
}

func (h *InventoryHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	vars := mux.Vars(r)
	itemID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid item ID", nil)
		return
	}

	var req dto.InventoryItemRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	item, err := h.inventoryUsecase.UpdateItem(r.Context(), userID, itemID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInventoryItemNotFound:
			response.NotFound(w, "Inventory item not found")
		default:
			response.InternalServerError(w, "Failed to update inventory item")
		}
		return
	}

	response.Success(w, http.StatusOK, "Inventory item updated successfully", item)
}

func (h *InventoryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	vars := mux.Vars(r)
	itemID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid item ID", nil)
		return
	}

	if err := h.inventoryUsecase.DeleteItem(r.Context(), userID, itemID); err != nil {
		switch err {
		case usecase.ErrInventoryItemNotFound:
			response.NotFound(w, "Inventory item not found")
		default:
			response.InternalServerError(w, "Failed to delete inventory item")
		}
		return
	}

	response.Success(w, http.StatusOK, "Inventory item deleted successfully", nil)
}
