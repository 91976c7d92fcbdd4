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

// StorageHandler manages the user's cabinet of physical medicines, as
// opposed to their dosing schedule.
type StorageHandler struct {
	medicationUsecase usecase.MedicationUsecase
	validator         *validator.CustomValidator
}

func NewStorageHandler(medicationUsecase usecase.MedicationUsecase, validator *validator.CustomValidator) *StorageHandler {
	return &StorageHandler{
		medicationUsecase: medicationUsecase,
		validator:         validator,
	}
}

func (h *StorageHandler) CreateStoredMedicine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.StoredMedicineRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	medicine, err := h.medicationUsecase.CreateStoredMedicine(r.Context(), userID, &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create stored medicine")
		return
	}

	response.Success(w, http.StatusCreated, "Stored medicine created successfully", medicine)
}

func (h *StorageHandler) ListStoredMedicines(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	targetID, err := targetUser(r, actorID)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	medicines, err := h.medicationUsecase.ListStoredMedicines(r.Context(), actorID, targetID)
	if err != nil {
		switch err {
		case usecase.ErrNotCaregiver:
			response.Forbidden(w, "User is not in your family circle")
		default:
			response.InternalServerError(w, "Failed to list stored medicines")
		}
		return
	}

	response.Success(w, http.StatusOK, "Stored medicines retrieved successfully", medicines)
}

func (h *StorageHandler) UpdateStoredMedicine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	vars := mux.Vars(r)
	medicineID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid medicine ID", nil)
		return
	}

	var req dto.StoredMedicineRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	medicine, err := h.medicationUsecase.UpdateStoredMedicine(r.Context(), userID, medicineID, &req)
	if err != nil {
		switch err {
		case usecase.ErrStoredMedicineNotFound:
			response.NotFound(w, "Stored medicine not found")
		default:
			response.InternalServerError(w, "Failed to update stored medicine")
		}
		return
	}

	response.Success(w, http.StatusOK, "Stored medicine updated successfully", medicine)
}

func (h *StorageHandler) DeleteStoredMedicine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	vars := mux.Vars(r)
	medicineID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid medicine ID", nil)
		return
	}

	if err := h.medicationUsecase.DeleteStoredMedicine(r.Context(), userID, medicineID); err != nil {
		switch err {
		case usecase.ErrStoredMedicineNotFound:
			response.NotFound(w, "Stored medicine not found")
		default:
			response.InternalServerError(w, "Failed to delete stored medicine")
		}
		return
	}

	response.Success(w, http.StatusOK, "Stored medicine deleted successfully", nil)
}
