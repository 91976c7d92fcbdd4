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

type ProfileHandler struct {
	profileUsecase usecase.ProfileUsecase
	validator      *validator.CustomValidator
}

func NewProfileHandler(profileUsecase usecase.ProfileUsecase, validator *validator.CustomValidator) *ProfileHandler {
	return &ProfileHandler{
		profileUsecase: profileUsecase,
		validator:      validator,
	}
}

func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	profile, err := h.profileUsecase.CreateProfile(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrProfileAlreadyExists:
			response.Error(w, http.StatusConflict, "Profile already exists", nil)
		case usecase.ErrUsernameTaken:
			response.Error(w, http.StatusConflict, "Username is already taken", nil)
		case usecase.ErrInvalidUsername:
			response.Error(w, http.StatusBadRequest, "Username may only contain lowercase letters, digits and underscores", nil)
		default:
			response.InternalServerError(w, "Failed to create profile")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Profile created successfully", profile)
}

func (h *ProfileHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	profile, err := h.profileUsecase.GetProfile(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrProfileNotFound:
			response.NotFound(w, "Profile not found")
		default:
			response.InternalServerError(w, "Failed to get profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile retrieved successfully", profile)
}

func (h *ProfileHandler) GetProfileSummary(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	summary, err := h.profileUsecase.GetProfileSummary(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrProfileNotFound:
			response.NotFound(w, "Profile not found")
		default:
			response.InternalServerError(w, "Failed to get profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile retrieved successfully", summary)
}

func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	profile, err := h.profileUsecase.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrProfileNotFound:
			response.NotFound(w, "Profile not found")
		default:
			response.InternalServerError(w, "Failed to update profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", profile)
}

func (h *ProfileHandler) SearchProfiles(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("username")
	if prefix == "" {
		response.Error(w, http.StatusBadRequest, "Query parameter 'username' is required", nil)
		return
	}

	profiles, err := h.profileUsecase.SearchProfiles(r.Context(), prefix)
	if err != nil {
		response.InternalServerError(w, "Failed to search profiles")
		return
	}

	response.Success(w, http.StatusOK, "Profiles retrieved successfully", profiles)
}
