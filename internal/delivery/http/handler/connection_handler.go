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

type ConnectionHandler struct {
	connectionUsecase usecase.ConnectionUsecase
	validator         *validator.CustomValidator
}

func NewConnectionHandler(connectionUsecase usecase.ConnectionUsecase, validator *validator.CustomValidator) *ConnectionHandler {
	return &ConnectionHandler{
		connectionUsecase: connectionUsecase,
		validator:         validator,
	}
}

func (h *ConnectionHandler) SendFriendRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.SendFriendRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	request, err := h.connectionUsecase.SendFriendRequest(r.Context(), userID, req.ToID)
	if err != nil {
		switch err {
		case usecase.ErrSelfRequest:
			response.Error(w, http.StatusBadRequest, "Cannot send a request to yourself", nil)
		case usecase.ErrProfileNotFound:
			response.NotFound(w, "Profile not found")
		case usecase.ErrProfessionalNotFamily:
			response.Error(w, http.StatusBadRequest, "Chemist and doctor accounts cannot be added as family", nil)
		case usecase.ErrDuplicatePendingExists:
			response.Error(w, http.StatusConflict, "A pending request already exists between these users", nil)
		default:
			response.InternalServerError(w, "Failed to send friend request")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Friend request sent successfully", request)
}

func (h *ConnectionHandler) RespondToFriendRequest(w http.ResponseWriter, r *http.Request) {
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

	var req dto.RespondFriendRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	request, err := h.connectionUsecase.RespondToFriendRequest(r.Context(), userID, requestID, req.Response)
	if err != nil {
		switch err {
		case usecase.ErrRequestNotFound:
			response.NotFound(w, "Request not found")
		case usecase.ErrNotRequestRecipient:
			response.Forbidden(w, "Request is not addressed to you")
		case usecase.ErrRequestAlreadyResolved:
			response.Error(w, http.StatusConflict, "Request has already been resolved", nil)
		default:
			response.InternalServerError(w, "Failed to respond to friend request")
		}
		return
	}

	response.Success(w, http.StatusOK, "Friend request updated successfully", request)
}

func (h *ConnectionHandler) ListIncomingRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	requests, err := h.connectionUsecase.ListIncomingRequests(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to list friend requests")
		return
	}

	response.Success(w, http.StatusOK, "Friend requests retrieved successfully", requests)
}

func (h *ConnectionHandler) ListFamily(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	family, err := h.connectionUsecase.ListFamily(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to list family members")
		return
	}

	response.Success(w, http.StatusOK, "Family members retrieved successfully", family)
}

func (h *ConnectionHandler) RemoveFamilyMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	vars := mux.Vars(r)
	memberID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid member ID", nil)
		return
	}

	if err := h.connectionUsecase.RemoveFamilyMember(r.Context(), userID, memberID); err != nil {
		switch err {
		case usecase.ErrNotFamilyMember:
			response.NotFound(w, "User is not a family member")
		default:
			response.InternalServerError(w, "Failed to remove family member")
		}
		return
	}

	response.Success(w, http.StatusOK, "Family member removed successfully", nil)
}
