package repository

import (
	"errors"
	"strings"

	"medikeep/internal/domain/entity"
	domainRepo "medikeep/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type profileRepository struct{}

func NewProfileRepository() domainRepo.ProfileRepository {
	return &profileRepository{}
}

func (r *profileRepository) Create(db *gorm.DB, profile *entity.Profile) error {
	return db.Create(profile).Error
}

func (r *profileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Profile, error) {
	var profile entity.Profile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindByUsername(db *gorm.DB, username string) (*entity.Profile, error) {
	var profile entity.Profile
	err := db.Where("LOWER(username) = ?", strings.ToLower(username)).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) SearchByUsername(db *gorm.DB, prefix string, limit int) ([]entity.Profile, error) {
	var profiles []entity.Profile
	err := db.Where("username LIKE ?", strings.ToLower(prefix)+"%").
		Order("username").
		Limit(limit).
		Find(&profiles).Error
	return profiles, err
}

func (r *profileRepository) Update(db *gorm.DB, profile *entity.Profile) error {
	return db.Save(profile).Error
}

type familyRepository struct{}

func NewFamilyRepository() domainRepo.FamilyRepository {
	return &familyRepository{}
}

func (r *familyRepository) Link(db *gorm.DB, profileID, memberID uuid.UUID) error {
	link := entity.FamilyLink{ProfileID: profileID, MemberID: memberID}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
}

func (r *familyRepository) Unlink(db *gorm.DB, profileID, memberID uuid.UUID) error {
	return db.Where("profile_id = ? AND member_id = ?", profileID, memberID).
		Delete(&entity.FamilyLink{}).Error
}

func (r *familyRepository) AreLinked(db *gorm.DB, profileID, memberID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&entity.FamilyLink{}).
		Where("profile_id = ? AND member_id = ?", profileID, memberID).
		Count(&count).Error
	return count > 0, err
}

func (r *familyRepository) ListMemberIDs(db *gorm.DB, profileID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := db.Model(&entity.FamilyLink{}).
		Where("profile_id = ?", profileID).
		Pluck("member_id", &ids).Error
	return ids, err
}

func (r *familyRepository) ListMembers(db *gorm.DB, profileID uuid.UUID) ([]entity.Profile, error) {
	var profiles []entity.Profile
	err := db.
		Joins("JOIN family_links ON family_links.member_id = profiles.user_id").
		Where("family_links.profile_id = ?", profileID).
		Order("profiles.name").
		Find(&profiles).Error
	return profiles, err
}
