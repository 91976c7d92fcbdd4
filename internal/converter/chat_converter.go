package converter

import (
	"medikeep/internal/delivery/dto"
	"medikeep/internal/domain/entity"
)

func ChatToResponse(chat *entity.Chat) *dto.ChatResponse {
	if chat == nil {
		return nil
	}

	members := make([]dto.ChatMemberResponse, 0, len(chat.Members))
	for _, m := range chat.Members {
		members = append(members, dto.ChatMemberResponse{
			ProfileID:  m.ProfileID,
			Name:       m.Name,
			PictureURL: m.PictureURL,
		})
	}

	return &dto.ChatResponse{
		ID:                  chat.ID,
		Members:             members,
		LastMessageText:     chat.LastMessageText,
		LastMessageSenderID: chat.LastMessageSenderID,
		LastMessageAt:       chat.LastMessageAt,
		LastUpdatedAt:       chat.LastUpdatedAt,
	}
}

func ChatsToResponses(chats []entity.Chat) []dto.ChatResponse {
	responses := make([]dto.ChatResponse, 0, len(chats))
	for i := range chats {
		responses = append(responses, *ChatToResponse(&chats[i]))
	}
	return responses
}

func MessageToResponse(message *entity.Message) *dto.MessageResponse {
	if message == nil {
		return nil
	}

	return &dto.MessageResponse{
		ID:        message.ID,
		ChatID:    message.ChatID,
		SenderID:  message.SenderID,
		Text:      message.Text,
		IsRead:    message.IsRead,
		CreatedAt: message.CreatedAt,
	}
}

func MessagesToResponses(messages []entity.Message) []dto.MessageResponse {
	responses := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, *MessageToResponse(&messages[i]))
	}
	return responses
}

func FriendRequestToResponse(request *entity.FriendRequest) *dto.FriendRequestResponse {
	if request == nil {
		return nil
	}

	return &dto.FriendRequestResponse{
		ID:             request.ID,
		FromID:         request.FromID,
		FromName:       request.FromName,
		FromPictureURL: request.FromPictureURL,
		ToID:           request.ToID,
		Status:         string(request.Status),
		Type:           request.Type,
		CreatedAt:      request.CreatedAt,
	}
}

func FriendRequestsToResponses(requests []entity.FriendRequest) []dto.FriendRequestResponse {
	responses := make([]dto.FriendRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, *FriendRequestToResponse(&requests[i]))
	}
	return responses
}
