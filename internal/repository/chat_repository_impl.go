package repository

import (
	"errors"
	"time"

	"medikeep/internal/domain/entity"
	domainRepo "medikeep/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type chatRepository struct{}

func NewChatRepository() domainRepo.ChatRepository {
	return &chatRepository{}
}

func (r *chatRepository) Create(db *gorm.DB, chat *entity.Chat, members []entity.ChatMember) error {
	if err := db.Create(chat).Error; err != nil {
		return err
	}
	return db.Create(&members).Error
}

func (r *chatRepository) FindByID(db *gorm.DB, id string) (*entity.Chat, error) {
	var chat entity.Chat
	err := db.Preload("Members").Where("id = ?", id).First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &chat, nil
}

func (r *chatRepository) FindByMemberID(db *gorm.DB, profileID uuid.UUID) ([]entity.Chat, error) {
	var chats []entity.Chat
	err := db.Preload("Members").
		Joins("JOIN chat_members ON chat_members.chat_id = chats.id").
		Where("chat_members.profile_id = ?", profileID).
		Order("chats.last_updated_at DESC").
		Find(&chats).Error
	return chats, err
}

func (r *chatRepository) IsMember(db *gorm.DB, chatID string, profileID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&entity.ChatMember{}).
		Where("chat_id = ? AND profile_id = ?", chatID, profileID).
		Count(&count).Error
	return count > 0, err
}

func (r *chatRepository) UpdateLastMessage(db *gorm.DB, chatID string, senderID uuid.UUID, text string, at time.Time) error {
	return db.Model(&entity.Chat{}).
		Where("id = ?", chatID).
		Updates(map[string]interface{}{
			"last_message_text":      text,
			"last_message_sender_id": senderID,
			"last_message_at":        at,
			"last_updated_at":        at,
		}).Error
}

type messageRepository struct{}

func NewMessageRepository() domainRepo.MessageRepository {
	return &messageRepository{}
}

func (r *messageRepository) Create(db *gorm.DB, message *entity.Message) error {
	return db.Create(message).Error
}

func (r *messageRepository) FindByChatID(db *gorm.DB, chatID string, limit int) ([]entity.Message, error) {
	var messages []entity.Message
	err := db.Where("chat_id = ?", chatID).
		Order("created_at ASC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) MarkRead(db *gorm.DB, chatID string, readerID uuid.UUID) error {
	return db.Model(&entity.Message{}).
		Where("chat_id = ? AND sender_id <> ? AND is_read = false", chatID, readerID).
		Update("is_read", true).Error
}
