package repository

import (
	"time"

	"medikeep/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatRepository interface {
	Create(db *gorm.DB, chat *entity.Chat, members []entity.ChatMember) error
	FindByID(db *gorm.DB, id string) (*entity.Chat, error)
	FindByMemberID(db *gorm.DB, profileID uuid.UUID) ([]entity.Chat, error)
	IsMember(db *gorm.DB, chatID string, profileID uuid.UUID) (bool, error)
	UpdateLastMessage(db *gorm.DB, chatID string, senderID uuid.UUID, text string, at time.Time) error
}

type MessageRepository interface {
	Create(db *gorm.DB, message *entity.Message) error
	FindByChatID(db *gorm.DB, chatID string, limit int) ([]entity.Message, error)
	MarkRead(db *gorm.DB, chatID string, readerID uuid.UUID) error
}
