package usecase_test

import (
	"context"
	"testing"

	"medikeep/internal/delivery/dto"
	"medikeep/internal/domain/entity"
	"medikeep/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProfileUsecase(t *testing.T, userRepo *mockUserRepository, profileRepo *mockProfileRepository, familyRepo *mockFamilyRepository) usecase.ProfileUsecase {
	t.Helper()
	db, _ := newTestDB(t)
	return usecase.NewProfileUsecase(db, newTestLogger(), userRepo, profileRepo, familyRepo)
}

func createProfileRequest(username string) *dto.CreateProfileRequest {
	return &dto.CreateProfileRequest{
		Name:        "Alice Smith",
		Username:    username,
		AccountType: "normal",
	}
}

func TestProfileUsecase_CreateProfile_RejectsSecondProfile(t *testing.T) {
	profileRepo := new(mockProfileRepository)
	uc := newProfileUsecase(t, new(mockUserRepository), profileRepo, new(mockFamilyRepository))

	userID := uuid.New()
	profileRepo.On("FindByUserID", mock.Anything, userID).Return(normalProfile(userID, "alice"), nil)

	_, err := uc.CreateProfile(context.Background(), userID, createProfileRequest("alice2"))
	require.ErrorIs(t, err, usecase.ErrProfileAlreadyExists)
	profileRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProfileUsecase_CreateProfile_RejectsInvalidUsername(t *testing.T) {
	profileRepo := new(mockProfileRepository)
	uc := newProfileUsecase(t, new(mockUserRepository), profileRepo, new(mockFamilyRepository))

	userID := uuid.New()
	profileRepo.On("FindByUserID", mock.Anything, userID).Return(nil, nil)

	for _, username := range []string{"ab", "has space", "semi;colon", "dot.dot"} {
		_, err := uc.CreateProfile(context.Background(), userID, createProfileRequest(username))
		require.ErrorIs(t, err, usecase.ErrInvalidUsername, "username %q", username)
	}
}

func TestProfileUsecase_CreateProfile_RejectsTakenUsername(t *testing.T) {
	profileRepo := new(mockProfileRepository)
	uc := newProfileUsecase(t, new(mockUserRepository), profileRepo, new(mockFamilyRepository))

	userID := uuid.New()
	profileRepo.On("FindByUserID", mock.Anything, userID).Return(nil, nil)
	profileRepo.On("FindByUsername", mock.Anything, "alice").Return(normalProfile(uuid.New(), "alice"), nil)

	// Case differs, but usernames compare lowercased.
	_, err := uc.CreateProfile(context.Background(), userID, createProfileRequest("Alice"))
	require.ErrorIs(t, err, usecase.ErrUsernameTaken)
}

func TestProfileUsecase_CreateProfile_StoresLowercaseUsernameAndEmail(t *testing.T) {
	userRepo := new(mockUserRepository)
	profileRepo := new(mockProfileRepository)
	uc := newProfileUsecase(t, userRepo, profileRepo, new(mockFamilyRepository))

	userID := uuid.New()
	profileRepo.On("FindByUserID", mock.Anything, userID).Return(nil, nil)
	profileRepo.On("FindByUsername", mock.Anything, "alice_s").Return(nil, nil)
	userRepo.On("FindByID", mock.Anything, userID).Return(&entity.User{
		ID:    userID,
		Email: "alice@example.com",
	}, nil)
	profileRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.Profile) bool {
		return p.UserID == userID && p.Username == "alice_s" &&
			p.Email == "alice@example.com" && p.AccountType == entity.AccountTypeNormal
	})).Return(nil)

	resp, err := uc.CreateProfile(context.Background(), userID, createProfileRequest("Alice_S"))
	require.NoError(t, err)
	require.Equal(t, "alice_s", resp.Username)
	profileRepo.AssertExpectations(t)
}

func TestProfileUsecase_GetProfile_NotFound(t *testing.T) {
	profileRepo := new(mockProfileRepository)
	uc := newProfileUsecase(t, new(mockUserRepository), profileRepo, new(mockFamilyRepository))

	userID := uuid.New()
	profileRepo.On("FindByUserID", mock.Anything, userID).Return(nil, nil)

	_, err := uc.GetProfile(context.Background(), userID)
	require.ErrorIs(t, err, usecase.ErrProfileNotFound)
}

func TestProfileUsecase_GetProfile_IncludesFamilyIDs(t *testing.T) {
	profileRepo := new(mockProfileRepository)
	familyRepo := new(mockFamilyRepository)
	uc := newProfileUsecase(t, new(mockUserRepository), profileRepo, familyRepo)

	userID, memberID := uuid.New(), uuid.New()
	profileRepo.On("FindByUserID", mock.Anything, userID).Return(normalProfile(userID, "alice"), nil)
	familyRepo.On("ListMemberIDs", mock.Anything, userID).Return([]uuid.UUID{memberID}, nil)

	resp, err := uc.GetProfile(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{memberID}, resp.Family)
}
