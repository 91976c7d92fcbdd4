package entity

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Chat is a two-party conversation between family-connected profiles. Its ID
// is derived from the member IDs, so lookup never needs a query: sort the two
// IDs lexicographically and join with an underscore.
type Chat struct {
	ID                  string     `gorm:"type:varchar(80);primaryKey" json:"id"`
	LastMessageText     string     `gorm:"type:text" json:"last_message_text,omitempty"`
	LastMessageSenderID *uuid.UUID `gorm:"type:uuid" json:"last_message_sender_id,omitempty"`
	LastMessageAt       *time.Time `json:"last_message_at,omitempty"`
	LastUpdatedAt       time.Time  `gorm:"not null;index" json:"last_updated_at"`
	CreatedAt           time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Members []ChatMember `gorm:"foreignKey:ChatID" json:"members,omitempty"`
}

func (Chat) TableName() string {
	return "chats"
}

// ChatMember records membership plus denormalized display info for rendering
// chat lists without profile joins.
type ChatMember struct {
	ChatID     string    `gorm:"type:varchar(80);primaryKey" json:"chat_id"`
	ProfileID  uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"profile_id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	PictureURL string    `gorm:"type:text" json:"picture_url,omitempty"`
}

func (ChatMember) TableName() string {
	return "chat_members"
}

// ChatID derives the deterministic chat identifier for a pair of profiles.
// Symmetric: ChatID(a, b) == ChatID(b, a).
func ChatID(a, b uuid.UUID) string {
	members := []string{a.String(), b.String()}
	sort.Strings(members)
	return strings.Join(members, "_")
}
