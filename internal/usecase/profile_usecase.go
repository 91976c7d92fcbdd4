package usecase

import (
	"context"
	"errors"
	"strings"

	"medikeep/internal/converter"
	"medikeep/internal/delivery/dto"
	"medikeep/internal/domain/entity"
	"medikeep/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists for this account")
	ErrUsernameTaken        = errors.New("username is already taken")
	ErrInvalidUsername      = errors.New("username may only contain letters, numbers, and underscores")
)

type ProfileUsecase interface {
	CreateProfile(ctx context.Context, userID uuid.UUID, req *dto.CreateProfileRequest) (*dto.ProfileResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error)
	GetProfileSummary(ctx context.Context, userID uuid.UUID) (*dto.ProfileSummaryResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	SearchProfiles(ctx context.Context, usernamePrefix string) (*dto.ProfileListResponse, error)
}

type profileUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	familyRepo  repository.FamilyRepository
}

func NewProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	familyRepo repository.FamilyRepository,
) ProfileUsecase {
	return &profileUsecase{
		db:          db,
		log:         log,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		familyRepo:  familyRepo,
	}
}

// CreateProfile creates the single profile for an authenticated user. The
// username is stored lowercase and checked for uniqueness before the write;
// the unique index on LOWER(username) backs up the check under races.
func (u *profileUsecase) CreateProfile(ctx context.Context, userID uuid.UUID, req *dto.CreateProfileRequest) (*dto.ProfileResponse, error) {
	db := u.db.WithContext(ctx)

	existing, err := u.profileRepo.FindByUserID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to check existing profile for %s: %+v", userID, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrProfileAlreadyExists
	}

	username := strings.ToLower(req.Username)
	if !isValidUsername(username) {
		return nil, ErrInvalidUsername
	}

	taken, err := u.profileRepo.FindByUsername(db, username)
	if err != nil {
		u.log.Warnf("Failed to check username %q: %+v", username, err)
		return nil, err
	}
	if taken != nil {
		return nil, ErrUsernameTaken
	}

	user, err := u.userRepo.FindByID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", userID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	profile := &entity.Profile{
		UserID:           userID,
		Name:             req.Name,
		Username:         username,
		AccountType:      entity.AccountType(req.AccountType),
		Email:            user.Email,
		PhoneNumber:      req.PhoneNumber,
		Allergies:        req.Allergies,
		EmergencyContact: req.EmergencyContact,
		PictureURL:       req.PictureURL,
	}

	if err := u.profileRepo.Create(db, profile); err != nil {
		if isDuplicateKeyError(err, "username") {
			return nil, ErrUsernameTaken
		}
		u.log.Warnf("Failed to create profile for %s: %+v", userID, err)
		return nil, err
	}

	return converter.ProfileToResponse(profile, nil), nil
}

func (u *profileUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	db := u.db.WithContext(ctx)

	profile, err := u.profileRepo.FindByUserID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find profile %s: %+v", userID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	family, err := u.familyRepo.ListMemberIDs(db, userID)
	if err != nil {
		u.log.Warnf("Failed to list family for %s: %+v", userID, err)
		return nil, err
	}

	return converter.ProfileToResponse(profile, family), nil
}

func (u *profileUsecase) GetProfileSummary(ctx context.Context, userID uuid.UUID) (*dto.ProfileSummaryResponse, error) {
	profile, err := u.profileRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find profile %s: %+v", userID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	summary := converter.ProfileToSummary(profile)
	return &summary, nil
}

func (u *profileUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	db := u.db.WithContext(ctx)

	profile, err := u.profileRepo.FindByUserID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find profile %s: %+v", userID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	profile.Name = req.Name
	profile.PhoneNumber = req.PhoneNumber
	profile.Allergies = req.Allergies
	profile.EmergencyContact = req.EmergencyContact
	profile.PictureURL = req.PictureURL

	if err := u.profileRepo.Update(db, profile); err != nil {
		u.log.Warnf("Failed to update profile %s: %+v", userID, err)
		return nil, err
	}

	family, err := u.familyRepo.ListMemberIDs(db, userID)
	if err != nil {
		u.log.Warnf("Failed to list family for %s: %+v", userID, err)
		return nil, err
	}

	return converter.ProfileToResponse(profile, family), nil
}

func (u *profileUsecase) SearchProfiles(ctx context.Context, usernamePrefix string) (*dto.ProfileListResponse, error) {
	profiles, err := u.profileRepo.SearchByUsername(u.db.WithContext(ctx), usernamePrefix, 20)
	if err != nil {
		u.log.Warnf("Failed to search profiles by %q: %+v", usernamePrefix, err)
		return nil, err
	}

	return &dto.ProfileListResponse{
		Profiles: converter.ProfilesToSummaries(profiles),
		Total:    len(profiles),
	}, nil
}

func isValidUsername(username string) bool {
	if len(username) < 3 || len(username) > 20 {
		return false
	}
	for _, r := range username {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}
