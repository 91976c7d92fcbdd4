package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"medikeep/internal/delivery/dto"
	"medikeep/internal/delivery/http/middleware"
	"medikeep/internal/service"
	"medikeep/internal/usecase"
	"medikeep/pkg/response"
	"medikeep/pkg/validator"
)

type ExtractionHandler struct {
	extractionUsecase usecase.ExtractionUsecase
	validator         *validator.CustomValidator
}

func NewExtractionHandler(extractionUsecase usecase.ExtractionUsecase, validator *validator.CustomValidator) *ExtractionHandler {
	return &ExtractionHandler{
		extractionUsecase: extractionUsecase,
		validator:         validator,
	}
}

func (h *ExtractionHandler) ExtractDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.ExtractDocumentRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.extractionUsecase.ExtractDocument(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNothingExtracted):
			response.Error(w, http.StatusUnprocessableEntity, "No items could be extracted from the document", nil)
		case errors.Is(err, service.ErrExtractionFailed):
			response.Error(w, http.StatusBadGateway, "Document analysis service is unavailable", nil)
		default:
			response.InternalServerError(w, "Failed to extract document")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Document extracted successfully", result)
}
