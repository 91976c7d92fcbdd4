package handler

import (
	"encoding/json"
	"net/http"

	"medikeep/internal/delivery/dto"
	"medikeep/internal/delivery/http/middleware"
	"medikeep/internal/service"
	"medikeep/internal/usecase"
	"medikeep/pkg/response"
	"medikeep/pkg/validator"
)

type ReminderHandler struct {
	reminderUsecase  usecase.ReminderUsecase
	adherenceUsecase usecase.AdherenceUsecase
	validator        *validator.CustomValidator
}

func NewReminderHandler(reminderUsecase usecase.ReminderUsecase, adherenceUsecase usecase.AdherenceUsecase, validator *validator.CustomValidator) *ReminderHandler {
	return &ReminderHandler{
		reminderUsecase:  reminderUsecase,
		adherenceUsecase: adherenceUsecase,
		validator:        validator,
	}
}

func (h *ReminderHandler) Sync(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	armed, err := h.reminderUsecase.Sync(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to sync reminders")
		return
	}

	response.Success(w, http.StatusOK, "Reminders synced successfully", map[string]int{"armed": armed})
}

func (h *ReminderHandler) Pending(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	pending := h.reminderUsecase.Pending(r.Context(), userID)
	response.Success(w, http.StatusOK, "Pending reminders retrieved successfully", pending)
}

func (h *ReminderHandler) Ack(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.AckReminderRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.reminderUsecase.Ack(r.Context(), userID, req.Key, service.ReminderAction(req.Action)); err != nil {
		switch err {
		case service.ErrReminderNotFound:
			response.NotFound(w, "Reminder not found or not fired yet")
		default:
			response.InternalServerError(w, "Failed to acknowledge reminder")
		}
		return
	}

	response.Success(w, http.StatusOK, "Reminder acknowledged successfully", nil)
}

func (h *ReminderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	h.reminderUsecase.Cancel(r.Context(), userID)
	response.Success(w, http.StatusOK, "Reminders cancelled successfully", nil)
}

func (h *ReminderHandler) LogAdherence(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.LogAdherenceRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.adherenceUsecase.Log(r.Context(), userID, &req)
	if err != nil {
		response.InternalServerError(w, "Failed to log adherence")
		return
	}

	response.Success(w, http.StatusCreated, "Adherence logged successfully", record)
}

func (h *ReminderHandler) AdherenceHistory(w http.ResponseWriter, r *http.Request) {
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

	history, err := h.adherenceUsecase.History(r.Context(), actorID, targetID)
	if err != nil {
		switch err {
		case usecase.ErrNotCaregiver:
			response.Forbidden(w, "User is not in your family circle")
		default:
			response.InternalServerError(w, "Failed to list adherence history")
		}
		return
	}

	response.Success(w, http.StatusOK, "Adherence history retrieved successfully", history)
}
