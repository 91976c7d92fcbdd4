package handler

import (
	"encoding/json"
	"net/http"

	"medikeep/internal/delivery/dto"
	"medikeep/internal/delivery/http/middleware"
	"medikeep/internal/usecase"
	"medikeep/pkg/response"
	"medikeep/pkg/validator"

	"github.com/gorilla/mux"
)

type ChatHandler struct {
	chatUsecase usecase.ChatUsecase
	validator   *validator.CustomValidator
}

func NewChatHandler(chatUsecase usecase.ChatUsecase, validator *validator.CustomValidator) *ChatHandler {
	return &ChatHandler{
		chatUsecase: chatUsecase,
		validator:   validator,
	}
}

func (h *ChatHandler) CreateOrGetChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateChatRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	chat, err := h.chatUsecase.CreateOrGetChat(r.Context(), userID, req.OtherUserID)
	if err != nil {
		switch err {
		case usecase.ErrSelfChat:
			response.Error(w, http.StatusBadRequest, "Cannot open a chat with yourself", nil)
		case usecase.ErrNotFamilyMember:
			response.Forbidden(w, "Chats are limited to family members")
		case usecase.ErrProfileNotFound:
			response.NotFound(w, "Profile not found")
		default:
			response.InternalServerError(w, "Failed to open chat")
		}
		return
	}

	response.Success(w, http.StatusOK, "Chat retrieved successfully", chat)
}

func (h *ChatHandler) ListChats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	chats, err := h.chatUsecase.ListChats(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to list chats")
		return
	}

	response.Success(w, http.StatusOK, "Chats retrieved successfully", chats)
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	chatID := mux.Vars(r)["id"]

	var req dto.SendMessageRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	message, err := h.chatUsecase.SendMessage(r.Context(), userID, chatID, req.Text)
	if err != nil {
		switch err {
		case usecase.ErrNotChatMember:
			response.Forbidden(w, "You are not a member of this chat")
		default:
			response.InternalServerError(w, "Failed to send message")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Message sent successfully", message)
}

func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	chatID := mux.Vars(r)["id"]

	messages, err := h.chatUsecase.ListMessages(r.Context(), userID, chatID)
	if err != nil {
		switch err {
		case usecase.ErrNotChatMember:
			response.Forbidden(w, "You are not a member of this chat")
		default:
			response.InternalServerError(w, "Failed to list messages")
		}
		return
	}

	response.Success(w, http.StatusOK, "Messages retrieved successfully", messages)
}

func (h *ChatHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	chatID := mux.Vars(r)["id"]

	if err := h.chatUsecase.MarkRead(r.Context(), userID, chatID); err != nil {
		switch err {
		case usecase.ErrNotChatMember:
			response.Forbidden(w, "You are not a member of this chat")
		default:
			response.InternalServerError(w, "Failed to mark messages read")
		}
		return
	}

	response.Success(w, http.StatusOK, "Messages marked read successfully", nil)
}
