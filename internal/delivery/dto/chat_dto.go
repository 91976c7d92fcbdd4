package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateChatRequestBody struct {
	OtherUserID uuid.UUID `json:"other_user_id" validate:"required"`
}

type SendMessageRequestBody struct {
	Text string `json:"text" validate:"required,max=4000"`
}

type ChatMemberResponse struct {
	ProfileID  uuid.UUID `json:"profile_id"`
	Name       string    `json:"name"`
	PictureURL string    `json:"picture_url,omitempty"`
}

type ChatResponse struct {
	ID                  string               `json:"id"`
	Members             []ChatMemberResponse `json:"members"`
	LastMessageText     string               `json:"last_message_text,omitempty"`
	LastMessageSenderID *uuid.UUID           `json:"last_message_sender_id,omitempty"`
	LastMessageAt       *time.Time           `json:"last_message_at,omitempty"`
	LastUpdatedAt       time.Time            `json:"last_updated_at"`
}

type ChatListResponse struct {
	Chats []ChatResponse `json:"chats"`
	Total int            `json:"total"`
}

type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	ChatID    string    `json:"chat_id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Text      string    `json:"text"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
	Total    int               `json:"total"`
}
