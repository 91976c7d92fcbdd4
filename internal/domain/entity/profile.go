package entity

import (
	"time"

	"github.com/google/uuid"
)

// AccountType classifies a profile as a regular consumer or a professional.
type AccountType string

const (
	AccountTypeNormal  AccountType = "normal"
	AccountTypeDoctor  AccountType = "doctor"
	AccountTypeChemist AccountType = "chemist"
)

// Profile describes an authenticated principal. UserID is the primary key, so
// a user can have at most one profile.
type Profile struct {
	UserID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"user_id"`
	Name             string      `gorm:"type:varchar(255);not null" json:"name"`
	Username         string      `gorm:"type:varchar(20);uniqueIndex;not null" json:"username"`
	AccountType      AccountType `gorm:"type:varchar(16);not null;default:'normal';index" json:"account_type"`
	Email            string      `gorm:"type:varchar(255)" json:"email"`
	PhoneNumber      string      `gorm:"type:varchar(32)" json:"phone_number"`
	Allergies        string      `gorm:"type:text" json:"allergies"`
	EmergencyContact string      `gorm:"type:varchar(255)" json:"emergency_contact"`
	PictureURL       string      `gorm:"type:text" json:"picture_url"`
	CreatedAt        time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	FamilyLinks []FamilyLink `gorm:"foreignKey:ProfileID" json:"family_links,omitempty"`
}

func (Profile) TableName() string {
	return "profiles"
}

// IsProfessional reports whether the profile can own inventory and receive
// medication requests.
func (p *Profile) IsProfessional() bool {
	return p.AccountType == AccountTypeDoctor || p.AccountType == AccountTypeChemist
}

// FamilyLink is one direction of a mutual family connection. Accepting a
// friend request inserts both directions.
type FamilyLink struct {
	ProfileID uuid.UUID `gorm:"type:uuid;primaryKey" json:"profile_id"`
	MemberID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"member_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (FamilyLink) TableName() string {
	return "family_links"
}
