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

type MedicationHandler struct {
	medicationUsecase usecase.MedicationUsecase
	validator         *validator.CustomValidator
}

func NewMedicationHandler(medicationUsecase usecase.MedicationUsecase, validator *validator.CustomValidator) *MedicationHandler {
	return &MedicationHandler{
		medicationUsecase: medicationUsecase,
		validator:         validator,
	}
}

// targetUser resolves the optional user_id query parameter. Caregivers pass
// a family member's ID to act on their schedule; absent, the actor acts on
// their own.
func targetUser(r *http.Request, actorID uuid.UUID) (uuid.UUID, error) {
	raw := r.URL.Query().Get("user_id")
	if raw == "" {
		return actorID, nil
	}
	return uuid.Parse(raw)
}

func (h *MedicationHandler) CreateMedication(w http.ResponseWriter, r *http.Request) {
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

	var req dto.MedicationRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	medication, err := h.medicationUsecase.CreateMedication(r.Context(), actorID, targetID, &req)
	if err != nil {
		switch err {
		case usecase.ErrNotCaregiver:
			response.Forbidden(w, "User is not in your family circle")
		case usecase.ErrInvalidDoseTime:
			response.Error(w, http.StatusBadRequest, "Dose times must be HH:MM or h:MM AM/PM", nil)
		default:
			response.InternalServerError(w, "Failed to create medication")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Medication created successfully", medication)
}

func (h *MedicationHandler) ListMedications(w http.ResponseWriter, r *http.Request) {
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

	medications, err := h.medicationUsecase.ListMedications(r.Context(), actorID, targetID)
	if err != nil {
		switch err {
		case usecase.ErrNotCaregiver:
			response.Forbidden(w, "User is not in your family circle")
		default:
			response.InternalServerError(w, "Failed to list medications")
		}
		return
	}

	response.Success(w, http.StatusOK, "Medications retrieved successfully", medications)
}

func (h *MedicationHandler) UpdateMedication(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	vars := mux.Vars(r)
	medicationID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid medication ID", nil)
		return
	}

	var req dto.MedicationRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	medication, err := h.medicationUsecase.UpdateMedication(r.Context(), actorID, medicationID, &req)
	if err != nil {
		switch err {
		case usecase.ErrMedicationNotFound:
			response.NotFound(w, "Medication not found")
		case usecase.ErrNotCaregiver:
			response.Forbidden(w, "Medication does not belong to you or your family circle")
		case usecase.ErrInvalidDoseTime:
			response.Error(w, http.StatusBadRequest, "Dose times must be HH:MM or h:MM AM/PM", nil)
		default:
			response.InternalServerError(w, "Failed to update medication")
		}
		return
	}

	response.Success(w, http.StatusOK, "Medication updated successfully", medication)
}

func (h *MedicationHandler) DeleteMedication(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	vars := mux.Vars(r)
	medicationID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid medication ID", nil)
		return
	}

	if err := h.medicationUsecase.DeleteMedication(r.Context(), actorID, medicationID); err != nil {
		switch err {
		case usecase.ErrMedicationNotFound:
			response.NotFound(w, "Medication not found")
		case usecase.ErrNotCaregiver:
			response.Forbidden(w, "Medication does not belong to you or your family circle")
		default:
			response.InternalServerError(w, "Failed to delete medication")
		}
		return
	}

	response.Success(w, http.StatusOK, "Medication deleted successfully", nil)
}
