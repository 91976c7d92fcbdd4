package handler

import (
	"encoding/json"
	"net/http"

	"medikeep/internal/delivery/dto"
	"medikeep/internal/delivery/http/middleware"
	"medikeep/internal/domain/entity"
	"medikeep/internal/usecase"
	"medikeep/pkg/qrcode"
	"medikeep/pkg/response"
	"medikeep/pkg/validator"

	"github.com/google/uuid"
)

// QRHandler issues the user's own QR payload and dispatches scanned ones.
// A scanned normal profile becomes a family connection; a scanned chemist or
// doctor becomes a medication request.
type QRHandler struct {
	profileUsecase    usecase.ProfileUsecase
	connectionUsecase usecase.ConnectionUsecase
	requestUsecase    usecase.RequestUsecase
	validator         *validator.CustomValidator
}

func NewQRHandler(
	profileUsecase usecase.ProfileUsecase,
	connectionUsecase usecase.ConnectionUsecase,
	requestUsecase usecase.RequestUsecase,
	validator *validator.CustomValidator,
) *QRHandler {
	return &QRHandler{
		profileUsecase:    profileUsecase,
		connectionUsecase: connectionUsecase,
		requestUsecase:    requestUsecase,
		validator:         validator,
	}
}

func (h *QRHandler) GetMyQRCode(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	profile, err := h.profileUsecase.GetProfileSummary(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrProfileNotFound:
			response.NotFound(w, "Profile not found")
		default:
			response.InternalServerError(w, "Failed to load profile")
		}
		return
	}

	payload, err := qrcode.EncodeProfile(qrcode.ProfilePayload{
		UserID:      userID.String(),
		AccountType: profile.AccountType,
	})
	if err != nil {
		response.InternalServerError(w, "Failed to encode QR payload")
		return
	}

	response.Success(w, http.StatusOK, "QR payload generated successfully", dto.QRCodeResponse{Payload: payload})
}

func (h *QRHandler) Scan(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.ScanQRRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	payload, err := qrcode.Decode(req.Text)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Unrecognized QR payload", nil)
		return
	}

	switch {
	case payload.Chemist != nil:
		h.scanRequest(w, r, userID, payload.Chemist.ChemistID)
	case payload.Profile != nil && entity.AccountType(payload.Profile.AccountType) != entity.AccountTypeNormal:
		h.scanRequest(w, r, userID, payload.Profile.UserID)
	default:
		h.scanFamily(w, r, userID, payload.Profile.UserID)
	}
}

func (h *QRHandler) scanFamily(w http.ResponseWriter, r *http.Request, userID uuid.UUID, rawOtherID string) {
	otherID, err := uuid.Parse(rawOtherID)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "QR payload contains an invalid user ID", nil)
		return
	}

	if err := h.connectionUsecase.AddFamilyMember(r.Context(), userID, otherID); err != nil {
		switch err {
		case usecase.ErrSelfRequest:
			response.Error(w, http.StatusBadRequest, "Cannot add yourself as a family member", nil)
		case usecase.ErrProfileNotFound:
			response.NotFound(w, "Profile not found")
		case usecase.ErrProfessionalNotFamily:
			response.Error(w, http.StatusBadRequest, "Chemist and doctor accounts cannot be added as family", nil)
		default:
			response.InternalServerError(w, "Failed to add family member")
		}
		return
	}

	family, err := h.connectionUsecase.ListFamily(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to list family members")
		return
	}

	response.Success(w, http.StatusOK, "Family member added successfully", dto.ScanQRResponse{
		Flow:   "family",
		Family: family,
	})
}

func (h *QRHandler) scanRequest(w http.ResponseWriter, r *http.Request, userID uuid.UUID, rawOwnerID string) {
	ownerID, err := uuid.Parse(rawOwnerID)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "QR payload contains an invalid user ID", nil)
		return
	}

	request, err := h.requestUsecase.SendRequest(r.Context(), userID, ownerID)
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

	response.Success(w, http.StatusCreated, "Medication request sent successfully", dto.ScanQRResponse{
		Flow:    "request",
		Request: request,
	})
}
