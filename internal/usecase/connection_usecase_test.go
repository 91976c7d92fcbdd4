package usecase_test

import (
	"context"
	"testing"

	"medikeep/internal/domain/entity"
	"medikeep/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func normalProfile(userID uuid.UUID, name string) *entity.Profile {
	return &entity.Profile{
		UserID:      userID,
		Name:        name,
		Username:    name,
		AccountType: entity.AccountTypeNormal,
	}
}

func TestConnectionUsecase_SendFriendRequest_RejectsSelf(t *testing.T) {
	db, _ := newTestDB(t)
	uc := usecase.NewConnectionUsecase(db, newTestLogger(), new(mockProfileRepository), new(mockFamilyRepository), new(mockFriendRequestRepository), newTestHub(t))

	self := uuid.New()
	_, err := uc.SendFriendRequest(context.Background(), self, self)
	require.ErrorIs(t, err, usecase.ErrSelfRequest)
}

func TestConnectionUsecase_SendFriendRequest_RejectsProfessionalTarget(t *testing.T) {
	db, _ := newTestDB(t)
	profileRepo := new(mockProfileRepository)
	uc := usecase.NewConnectionUsecase(db, newTestLogger(), profileRepo, new(mockFamilyRepository), new(mockFriendRequestRepository), newTestHub(t))

	fromID, toID := uuid.New(), uuid.New()
	profileRepo.On("FindByUserID", mock.Anything, fromID).Return(normalProfile(fromID, "alice"), nil)
	chemist := normalProfile(toID, "pharmacy")
	chemist.AccountType = entity.AccountTypeChemist
	profileRepo.On("FindByUserID", mock.Anything, toID).Return(chemist, nil)

	_, err := uc.SendFriendRequest(context.Background(), fromID, toID)
	require.ErrorIs(t, err, usecase.ErrProfessionalNotFamily)
}

func TestConnectionUsecase_SendFriendRequest_RejectsDuplicatePending(t *testing.T) {
	db, _ := newTestDB(t)
	profileRepo := new(mockProfileRepository)
	requestRepo := new(mockFriendRequestRepository)
	uc := usecase.NewConnectionUsecase(db, newTestLogger(), profileRepo, new(mockFamilyRepository), requestRepo, newTestHub(t))

	fromID, toID := uuid.New(), uuid.New()
	profileRepo.On("FindByUserID", mock.Anything, fromID).Return(normalProfile(fromID, "alice"), nil)
	profileRepo.On("FindByUserID", mock.Anything, toID).Return(normalProfile(toID, "bob"), nil)

	// The pending request runs in the reverse direction; sending again from
	// this side must still be rejected.
	requestRepo.On("FindPendingBetween", mock.Anything, fromID, toID).Return(nil, nil)
	requestRepo.On("FindPendingBetween", mock.Anything, toID, fromID).Return(&entity.FriendRequest{
		ID:     uuid.New(),
		FromID: toID,
		ToID:   fromID,
		Status: entity.FriendRequestStatusPending,
	}, nil)

	_, err := uc.SendFriendRequest(context.Background(), fromID, toID)
	require.ErrorIs(t, err, usecase.ErrDuplicatePendingExists)
	requestRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestConnectionUsecase_SendFriendRequest_CreatesPendingRequest(t *testing.T) {
	db, _ := newTestDB(t)
	profileRepo := new(mockProfileRepository)
	requestRepo := new(mockFriendRequestRepository)
	uc := usecase.NewConnectionUsecase(db, newTestLogger(), profileRepo, new(mockFamilyRepository), requestRepo, newTestHub(t))

	fromID, toID := uuid.New(), uuid.New()
	sender := normalProfile(fromID, "alice")
	sender.PictureURL = "https://cdn.example/alice.png"
	profileRepo.On("FindByUserID", mock.Anything, fromID).Return(sender, nil)
	profileRepo.On("FindByUserID", mock.Anything, toID).Return(normalProfile(toID, "bob"), nil)
	requestRepo.On("FindPendingBetween", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	requestRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *entity.FriendRequest) bool {
		return r.FromID == fromID && r.ToID == toID &&
			r.FromName == "alice" && r.FromPictureURL == sender.PictureURL &&
			r.Status == entity.FriendRequestStatusPending && r.Type == entity.FriendRequestTypeFamily
	})).Return(nil)

	resp, err := uc.SendFriendRequest(context.Background(), fromID, toID)
	require.NoError(t, err)
	require.Equal(t, fromID, resp.FromID)
	require.Equal(t, toID, resp.ToID)
	require.Equal(t, string(entity.FriendRequestStatusPending), resp.Status)
	requestRepo.AssertExpectations(t)
}

func TestConnectionUsecase_RespondToFriendRequest_AcceptLinksBothDirections(t *testing.T) {
	db, sqlMock := newTestDB(t)
	familyRepo := new(mockFamilyRepository)
	requestRepo := new(mockFriendRequestRepository)
	uc := usecase.NewConnectionUsecase(db, newTestLogger(), new(mockProfileRepository), familyRepo, requestRepo, newTestHub(t))

	fromID, toID, requestID := uuid.New(), uuid.New(), uuid.New()
	sqlMock.ExpectBegin()
	requestRepo.On("FindByID", mock.Anything, requestID).Return(&entity.FriendRequest{
		ID:     requestID,
		FromID: fromID,
		ToID:   toID,
		Status: entity.FriendRequestStatusPending,
	}, nil)
	familyRepo.On("Link", mock.Anything, toID, fromID).Return(nil)
	familyRepo.On("Link", mock.Anything, fromID, toID).Return(nil)
	requestRepo.On("UpdateStatus", mock.Anything, requestID, entity.FriendRequestStatusAccepted).Return(nil)
	sqlMock.ExpectCommit()

	resp, err := uc.RespondToFriendRequest(context.Background(), toID, requestID, "accepted")
	require.NoError(t, err)
	require.Equal(t, string(entity.FriendRequestStatusAccepted), resp.Status)
	familyRepo.AssertExpectations(t)
	require.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestConnectionUsecase_RespondToFriendRequest_DeclineLinksNothing(t *testing.T) {
	db, sqlMock := newTestDB(t)
	familyRepo := new(mockFamilyRepository)
	requestRepo := new(mockFriendRequestRepository)
	uc := usecase.NewConnectionUsecase(db, newTestLogger(), new(mockProfileRepository), familyRepo, requestRepo, newTestHub(t))

	fromID, toID, requestID := uuid.New(), uuid.New(), uuid.New()
	sqlMock.ExpectBegin()
	requestRepo.On("FindByID", mock.Anything, requestID).Return(&entity.FriendRequest{
		ID:     requestID,
		FromID: fromID,
		ToID:   toID,
		Status: entity.FriendRequestStatusPending,
	}, nil)
	requestRepo.On("UpdateStatus", mock.Anything, requestID, entity.FriendRequestStatusDeclined).Return(nil)
	sqlMock.ExpectCommit()

	resp, err := uc.RespondToFriendRequest(context.Background(), toID, requestID, "declined")
	require.NoError(t, err)
	require.Equal(t, string(entity.FriendRequestStatusDeclined), resp.Status)
	familyRepo.AssertNotCalled(t, "Link", mock.Anything, mock.Anything, mock.Anything)
}

func TestConnectionUsecase_RespondToFriendRequest_RejectsNonRecipient(t *testing.T) {
	db, sqlMock := newTestDB(t)
	requestRepo := new(mockFriendRequestRepository)
	uc := usecase.NewConnectionUsecase(db, newTestLogger(), new(mockProfileRepository), new(mockFamilyRepository), requestRepo, newTestHub(t))

	requestID := uuid.New()
	sqlMock.ExpectBegin()
	requestRepo.On("FindByID", mock.Anything, requestID).Return(&entity.FriendRequest{
		ID:     requestID,
		FromID: uuid.New(),
		ToID:   uuid.New(),
		Status: entity.FriendRequestStatusPending,
	}, nil)
	sqlMock.ExpectRollback()

	_, err := uc.RespondToFriendRequest(context.Background(), uuid.New(), requestID, "accepted")
	require.ErrorIs(t, err, usecase.ErrNotRequestRecipient)
	requestRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestConnectionUsecase_RespondToFriendRequest_RejectsResolvedRequest(t *testing.T) {
	db, sqlMock := newTestDB(t)
	requestRepo := new(mockFriendRequestRepository)
	uc := usecase.NewConnectionUsecase(db, newTestLogger(), new(mockProfileRepository), new(mockFamilyRepository), requestRepo, newTestHub(t))

	toID, requestID := uuid.New(), uuid.New()
	sqlMock.ExpectBegin()
	requestRepo.On("FindByID", mock.Anything, requestID).Return(&entity.FriendRequest{
		ID:     requestID,
		FromID: uuid.New(),
		ToID:   toID,
		Status: entity.FriendRequestStatusAccepted,
	}, nil)
	sqlMock.ExpectRollback()

	_, err := uc.RespondToFriendRequest(context.Background(), toID, requestID, "declined")
	require.ErrorIs(t, err, usecase.ErrRequestAlreadyResolved)
}

func TestConnectionUsecase_AddFamilyMember_LinksBothDirections(t *testing.T) {
	db, sqlMock := newTestDB(t)
	profileRepo := new(mockProfileRepository)
	familyRepo := new(mockFamilyRepository)
	uc := usecase.NewConnectionUsecase(db, newTestLogger(), profileRepo, familyRepo, new(mockFriendRequestRepository), newTestHub(t))

	userID, otherID := uuid.New(), uuid.New()
	sqlMock.ExpectBegin()
	profileRepo.On("FindByUserID", mock.Anything, otherID).Return(normalProfile(otherID, "bob"), nil)
	familyRepo.On("Link", mock.Anything, userID, otherID).Return(nil)
	familyRepo.On("Link", mock.Anything, otherID, userID).Return(nil)
	sqlMock.ExpectCommit()

	require.NoError(t, uc.AddFamilyMember(context.Background(), userID, otherID))
	familyRepo.AssertExpectations(t)
	require.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestConnectionUsecase_RemoveFamilyMember_RequiresExistingLink(t *testing.T) {
	db, sqlMock := newTestDB(t)
	familyRepo := new(mockFamilyRepository)
	uc := usecase.NewConnectionUsecase(db, newTestLogger(), new(mockProfileRepository), familyRepo, new(mockFriendRequestRepository), newTestHub(t))

	userID, otherID := uuid.New(), uuid.New()
	sqlMock.ExpectBegin()
	familyRepo.On("AreLinked", mock.Anything, userID, otherID).Return(false, nil)
	sqlMock.ExpectRollback()

	err := uc.RemoveFamilyMember(context.Background(), userID, otherID)
	require.ErrorIs(t, err, usecase.ErrNotFamilyMember)
	familyRepo.AssertNotCalled(t, "Unlink", mock.Anything, mock.Anything, mock.Anything)
}

func TestConnectionUsecase_RemoveFamilyMember_UnlinksBothDirections(t *testing.T) {
	db, sqlMock := newTestDB(t)
	familyRepo := new(mockFamilyRepository)
	uc := usecase.NewConnectionUsecase(db, newTestLogger(), new(mockProfileRepository), familyRepo, new(mockFriendRequestRepository), newTestHub(t))

	userID, otherID := uuid.New(), uuid.New()
	sqlMock.ExpectBegin()
	familyRepo.On("AreLinked", mock.Anything, userID, otherID).Return(true, nil)
	familyRepo.On("Unlink", mock.Anything, userID, otherID).Return(nil)
	familyRepo.On("Unlink", mock.Anything, otherID, userID).Return(nil)
	sqlMock.ExpectCommit()

	require.NoError(t, uc.RemoveFamilyMember(context.Background(), userID, otherID))
	familyRepo.AssertExpectations(t)
	require.NoError(t, sqlMock.ExpectationsWereMet())
}
