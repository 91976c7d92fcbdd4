package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is an append-only child of a Chat, ordered by server-assigned
// timestamp ascending.
type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ChatID    string    `gorm:"type:varchar(80);not null;index" json:"chat_id"`
	SenderID  uuid.UUID `gorm:"type:uuid;not null" json:"sender_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	IsRead    bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}
