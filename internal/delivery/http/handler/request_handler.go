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

type RequestHandler struct {
	requestUsecase usecase.RequestUsecase
	validator      *validator.CustomValidator
}

func NewRequestHandler(requestUsecase usecase.RequestUsecase, validator *validator.CustomValidator) *RequestHandler {
	return &RequestHandler{
		requestUsecase: requestUsecase,
		validator:      validator,
	}
}

func (h *RequestHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.SendMedicationRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	request, err := h.requestUsecase.SendRequest(r.Context(), userID, req.OwnerID)
	if err != nil {
		switch err {
		case usecase.ErrSelfRequest:
			response.Error(w, http.StatusBadRequest, "Cannot send a request to yourself", nil)
		case usecase.ErrProfileNotFound:
			response.NotFound(w, "Profile not found")
		case usecase.ErrNotProfessional:
			response.Error(w, http.StatusBadRequest, "Recipient is not a chemist or doctor", nil)
		default:
			response.InternalServerError(w, "Failed to send medication request")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Medication request sent successfully", request)
}

func (h *RequestHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	requests, err := h.requestUsecase.ListRequests(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to list medication requests")
		return
	}

	response.Success(w, http.StatusOK, "Medication requests retrieved successfully", requests)
}

func (h *RequestHandler) DeclineRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	vars := mux.Vars(r)
	requestID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request ID", nil)
		return
	}

	if err := h.requestUsecase.DeclineRequest(r.Context(), userID, requestID); err != nil {
		switch err {
		case usecase.ErrRequestNotFound:
			response.NotFound(w, "Request not found")
		case usecase.ErrNotRequestOwner:
			response.Forbidden(w, "Request does not belong to your inventory")
		case usecase.ErrRequestAlreadyResolved:
			response.Error(w, http.StatusConflict, "Request has already been resolved", nil)
		default:
			response.InternalServerError(w, "Failed to decline medication request")
		}
		return
	}

	response.Success(w, http.StatusOK, "Medication request declined successfully", nil)
}

func (h *RequestHandler) FulfilRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	vars := mux.Vars(r)
	requestID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request ID", nil)
		return
	}

	var req dto.FulfilRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	request, err := h.requestUsecase.FulfilRequest(r.Context(), userID, requestID, &req)
	if err != nil {
		switch err {
		case usecase.ErrRequestNotFound:
			response.NotFound(w, "Request not found")
		case usecase.ErrNotRequestOwner:
			response.Forbidden(w, "Request does not belong to your inventory")
		case usecase.ErrCustomerMismatch:
			response.Error(w, http.StatusBadRequest, "Customer does not match the request", nil)
		case usecase.ErrRequestAlreadyResolved:
			response.Error(w, http.StatusConflict, "Request has already been resolved", nil)
		case usecase.ErrInventoryItemNotFound:
			response.NotFound(w, "Inventory item not found")
		case usecase.ErrInsufficientStock:
			response.Error(w, http.StatusConflict, "Not enough stock to fulfil the request", nil)
		default:
			response.InternalServerError(w, "Failed to fulfil medication request")
		}
		return
	}

	response.Success(w, http.StatusOK, "Medication request fulfilled successfully", request)
}
