package repository

import (
	"medikeep/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	Create(db *gorm.DB, profile *entity.Profile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Profile, error)
	FindByUsername(db *gorm.DB, username string) (*entity.Profile, error)
	SearchByUsername(db *gorm.DB, prefix string, limit int) ([]entity.Profile, error)
	Update(db *gorm.DB, profile *entity.Profile) error
}

type FamilyRepository interface {
	// Link inserts one direction of a family connection. Inserting an
	// existing link is a no-op.
	Link(db *gorm.DB, profileID, memberID uuid.UUID) error
	Unlink(db *gorm.DB, profileID, memberID uuid.UUID) error
	AreLinked(db *gorm.DB, profileID, memberID uuid.UUID) (bool, error)
	ListMemberIDs(db *gorm.DB, profileID uuid.UUID) ([]uuid.UUID, error)
	ListMembers(db *gorm.DB, profileID uuid.UUID) ([]entity.Profile, error)
}
