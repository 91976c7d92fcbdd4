package usecase

import (
	"context"
	"errors"
	"time"

	"medikeep/internal/converter"
	"medikeep/internal/delivery/dto"
	"medikeep/internal/domain/entity"
	"medikeep/internal/domain/repository"
	"medikeep/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrChatNotFound  = errors.New("chat not found")
	ErrNotChatMember = errors.New("user is not a member of this chat")
	ErrSelfChat      = errors.New("cannot open a chat with yourself")
)

const messagePageSize = 100

type ChatUsecase interface {
	CreateOrGetChat(ctx context.Context, userID, otherID uuid.UUID) (*dto.ChatResponse, error)
	ListChats(ctx context.Context, userID uuid.UUID) (*dto.ChatListResponse, error)
	SendMessage(ctx context.Context, userID uuid.UUID, chatID string, text string) (*dto.MessageResponse, error)
	ListMessages(ctx context.Context, userID uuid.UUID, chatID string) (*dto.MessageListResponse, error)
	MarkRead(ctx context.Context, userID uuid.UUID, chatID string) error
}

type chatUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	chatRepo    repository.ChatRepository
	messageRepo repository.MessageRepository
	profileRepo repository.ProfileRepository
	familyRepo  repository.FamilyRepository
	hub         *service.Hub
}

func NewChatUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	chatRepo repository.ChatRepository,
	messageRepo repository.MessageRepository,
	profileRepo repository.ProfileRepository,
	familyRepo repository.FamilyRepository,
	hub *service.Hub,
) ChatUsecase {
	return &chatUsecase{
		db:          db,
		log:         log,
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		profileRepo: profileRepo,
		familyRepo:  familyRepo,
		hub:         hub,
	}
}

// CreateOrGetChat returns the conversation between two family-connected
// profiles, creating it on first use. The chat ID is derived from the member
// pair, so retries and concurrent opens converge on the same row.
func (u *chatUsecase) CreateOrGetChat(ctx context.Context, userID, otherID uuid.UUID) (*dto.ChatResponse, error) {
	if userID == otherID {
		return nil, ErrSelfChat
	}

	db := u.db.WithContext(ctx)

	linked, err := u.familyRepo.AreLinked(db, userID, otherID)
	if err != nil {
		u.log.Warnf("Failed to check family link: %+v", err)
		return nil, err
	}
	if !linked {
		return nil, ErrNotFamilyMember
	}

	chatID := entity.ChatID(userID, otherID)

	chat, err := u.chatRepo.FindByID(db, chatID)
	if err != nil {
		u.log.Warnf("Failed to find chat %s: %+v", chatID, err)
		return nil, err
	}
	if chat != nil {
		return converter.ChatToResponse(chat), nil
	}

	self, err := u.profileRepo.FindByUserID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to load profile %s: %+v", userID, err)
		return nil, err
	}
	other, err := u.profileRepo.FindByUserID(db, otherID)
	if err != nil {
		u.log.Warnf("Failed to load profile %s: %+v", otherID, err)
		return nil, err
	}
	if self == nil || other == nil {
		return nil, ErrProfileNotFound
	}

	chat = &entity.Chat{
		ID:            chatID,
		LastUpdatedAt: time.Now(),
	}
	members := []entity.ChatMember{
		{ChatID: chatID, ProfileID: self.UserID, Name: self.Name, PictureURL: self.PictureURL},
		{ChatID: chatID, ProfileID: other.UserID, Name: other.Name, PictureURL: other.PictureURL},
	}

	if err := u.chatRepo.Create(db, chat, members); err != nil {
		if isDuplicateKeyError(err, "chats_pkey") {
			// Lost the race; the other side just created it.
			chat, err = u.chatRepo.FindByID(db, chatID)
			if err != nil || chat == nil {
				return nil, ErrChatNotFound
			}
			return converter.ChatToResponse(chat), nil
		}
		u.log.Warnf("Failed to create chat %s: %+v", chatID, err)
		return nil, err
	}

	chat.Members = members
	return converter.ChatToResponse(chat), nil
}

func (u *chatUsecase) ListChats(ctx context.Context, userID uuid.UUID) (*dto.ChatListResponse, error) {
	chats, err := u.chatRepo.FindByMemberID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to list chats for %s: %+v", userID, err)
		return nil, err
	}

	return &dto.ChatListResponse{
		Chats: converter.ChatsToResponses(chats),
		Total: len(chats),
	}, nil
}

// SendMessage appends to the chat and refreshes the denormalized preview
// fields. The preview update is best effort: a stale preview is self-healing,
// the next message overwrites it.
func (u *chatUsecase) SendMessage(ctx context.Context, userID uuid.UUID, chatID string, text string) (*dto.MessageResponse, error) {
	db := u.db.WithContext(ctx)

	member, err := u.chatRepo.IsMember(db, chatID, userID)
	if err != nil {
		u.log.Warnf("Failed to check chat membership: %+v", err)
		return nil, err
	}
	if !member {
		return nil, ErrNotChatMember
	}

	message := &entity.Message{
		ChatID:   chatID,
		SenderID: userID,
		Text:     text,
	}

	if err := u.messageRepo.Create(db, message); err != nil {
		u.log.Warnf("Failed to create message in %s: %+v", chatID, err)
		return nil, err
	}

	if err := u.chatRepo.UpdateLastMessage(db, chatID, userID, text, message.CreatedAt); err != nil {
		u.log.Warnf("Failed to update chat preview for %s: %+v", chatID, err)
	}

	resp := converter.MessageToResponse(message)
	u.hub.Publish(ctx, service.ChatTopic(chatID), service.Event{Type: service.EventChatMessage, Payload: resp})

	return resp, nil
}

func (u *chatUsecase) ListMessages(ctx context.Context, userID uuid.UUID, chatID string) (*dto.MessageListResponse, error) {
	db := u.db.WithContext(ctx)

	member, err := u.chatRepo.IsMember(db, chatID, userID)
	if err != nil {
		u.log.Warnf("Failed to check chat membership: %+v", err)
		return nil, err
	}
	if !member {
		return nil, ErrNotChatMember
	}

	messages, err := u.messageRepo.FindByChatID(db, chatID, messagePageSize)
	if err != nil {
		u.log.Warnf("Failed to list messages in %s: %+v", chatID, err)
		return nil, err
	}

	return &dto.MessageListResponse{
		Messages: converter.MessagesToResponses(messages),
		Total:    len(messages),
	}, nil
}

// MarkRead flags every message in the chat not sent by the reader as read.
func (u *chatUsecase) MarkRead(ctx context.Context, userID uuid.UUID, chatID string) error {
	db := u.db.WithContext(ctx)

	member, err := u.chatRepo.IsMember(db, chatID, userID)
	if err != nil {
		u.log.Warnf("Failed to check chat membership: %+v", err)
		return err
	}
	if !member {
		return ErrNotChatMember
	}

	if err := u.messageRepo.MarkRead(db, chatID, userID); err != nil {
		u.log.Warnf("Failed to mark messages read in %s: %+v", chatID, err)
		return err
	}

	return nil
}
