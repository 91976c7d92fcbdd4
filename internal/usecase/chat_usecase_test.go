package usecase_test

import (
	"context"
	"testing"
	"time"

	"medikeep/internal/domain/entity"
	"medikeep/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newChatUsecase(t *testing.T, chatRepo *mockChatRepository, messageRepo *mockMessageRepository, profileRepo *mockProfileRepository, familyRepo *mockFamilyRepository) usecase.ChatUsecase {
	t.Helper()
	db, _ := newTestDB(t)
	return usecase.NewChatUsecase(db, newTestLogger(), chatRepo, messageRepo, profileRepo, familyRepo, newTestHub(t))
}

func TestChatUsecase_CreateOrGetChat_RejectsSelfChat(t *testing.T) {
	uc := newChatUsecase(t, new(mockChatRepository), new(mockMessageRepository), new(mockProfileRepository), new(mockFamilyRepository))

	self := uuid.New()
	_, err := uc.CreateOrGetChat(context.Background(), self, self)
	require.ErrorIs(t, err, usecase.ErrSelfChat)
}

func TestChatUsecase_CreateOrGetChat_RequiresFamilyLink(t *testing.T) {
	chatRepo := new(mockChatRepository)
	familyRepo := new(mockFamilyRepository)
	uc := newChatUsecase(t, chatRepo, new(mockMessageRepository), new(mockProfileRepository), familyRepo)

	userID, otherID := uuid.New(), uuid.New()
	familyRepo.On("AreLinked", mock.Anything, userID, otherID).Return(false, nil)

	_, err := uc.CreateOrGetChat(context.Background(), userID, otherID)
	require.ErrorIs(t, err, usecase.ErrNotFamilyMember)
	chatRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestChatUsecase_CreateOrGetChat_ReturnsExistingChat(t *testing.T) {
	chatRepo := new(mockChatRepository)
	profileRepo := new(mockProfileRepository)
	familyRepo := new(mockFamilyRepository)
	uc := newChatUsecase(t, chatRepo, new(mockMessageRepository), profileRepo, familyRepo)

	userID, otherID := uuid.New(), uuid.New()
	chatID := entity.ChatID(userID, otherID)
	familyRepo.On("AreLinked", mock.Anything, userID, otherID).Return(true, nil)
	chatRepo.On("FindByID", mock.Anything, chatID).Return(&entity.Chat{
		ID:            chatID,
		LastUpdatedAt: time.Now(),
	}, nil)

	resp, err := uc.CreateOrGetChat(context.Background(), userID, otherID)
	require.NoError(t, err)
	require.Equal(t, chatID, resp.ID)
	chatRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	profileRepo.AssertNotCalled(t, "FindByUserID", mock.Anything, mock.Anything)
}

func TestChatUsecase_CreateOrGetChat_CreatesWithBothMembers(t *testing.T) {
	chatRepo := new(mockChatRepository)
	profileRepo := new(mockProfileRepository)
	familyRepo := new(mockFamilyRepository)
	uc := newChatUsecase(t, chatRepo, new(mockMessageRepository), profileRepo, familyRepo)

	userID, otherID := uuid.New(), uuid.New()
	chatID := entity.ChatID(userID, otherID)
	familyRepo.On("AreLinked", mock.Anything, userID, otherID).Return(true, nil)
	chatRepo.On("FindByID", mock.Anything, chatID).Return(nil, nil)
	profileRepo.On("FindByUserID", mock.Anything, userID).Return(normalProfile(userID, "alice"), nil)
	profileRepo.On("FindByUserID", mock.Anything, otherID).Return(normalProfile(otherID, "bob"), nil)
	chatRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *entity.Chat) bool {
		return c.ID == chatID
	}), mock.MatchedBy(func(members []entity.ChatMember) bool {
		if len(members) != 2 {
			return false
		}
		seen := map[uuid.UUID]string{members[0].ProfileID: members[0].Name, members[1].ProfileID: members[1].Name}
		return seen[userID] == "alice" && seen[otherID] == "bob"
	})).Return(nil)

	resp, err := uc.CreateOrGetChat(context.Background(), userID, otherID)
	require.NoError(t, err)
	require.Equal(t, chatID, resp.ID)
	chatRepo.AssertExpectations(t)
}

func TestChatUsecase_SendMessage_RejectsNonMember(t *testing.T) {
	chatRepo := new(mockChatRepository)
	messageRepo := new(mockMessageRepository)
	uc := newChatUsecase(t, chatRepo, messageRepo, new(mockProfileRepository), new(mockFamilyRepository))

	userID := uuid.New()
	chatID := entity.ChatID(uuid.New(), uuid.New())
	chatRepo.On("IsMember", mock.Anything, chatID, userID).Return(false, nil)

	_, err := uc.SendMessage(context.Background(), userID, chatID, "hello")
	require.ErrorIs(t, err, usecase.ErrNotChatMember)
	messageRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestChatUsecase_SendMessage_RefreshesChatPreview(t *testing.T) {
	chatRepo := new(mockChatRepository)
	messageRepo := new(mockMessageRepository)
	uc := newChatUsecase(t, chatRepo, messageRepo, new(mockProfileRepository), new(mockFamilyRepository))

	userID, otherID := uuid.New(), uuid.New()
	chatID := entity.ChatID(userID, otherID)
	chatRepo.On("IsMember", mock.Anything, chatID, userID).Return(true, nil)
	messageRepo.On("Create", mock.Anything, mock.MatchedBy(func(m *entity.Message) bool {
		return m.ChatID == chatID && m.SenderID == userID && m.Text == "take your 9am dose"
	})).Return(nil)
	chatRepo.On("UpdateLastMessage", mock.Anything, chatID, userID, "take your 9am dose", mock.Anything).Return(nil)

	resp, err := uc.SendMessage(context.Background(), userID, chatID, "take your 9am dose")
	require.NoError(t, err)
	require.Equal(t, "take your 9am dose", resp.Text)
	chatRepo.AssertExpectations(t)
	messageRepo.AssertExpectations(t)
}

func TestChatUsecase_SendMessage_SurvivesPreviewFailure(t *testing.T) {
	chatRepo := new(mockChatRepository)
	messageRepo := new(mockMessageRepository)
	uc := newChatUsecase(t, chatRepo, messageRepo, new(mockProfileRepository), new(mockFamilyRepository))

	userID := uuid.New()
	chatID := entity.ChatID(userID, uuid.New())
	chatRepo.On("IsMember", mock.Anything, chatID, userID).Return(true, nil)
	messageRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	chatRepo.On("UpdateLastMessage", mock.Anything, chatID, userID, "hi", mock.Anything).Return(errDBDown)

	resp, err := uc.SendMessage(context.Background(), userID, chatID, "hi")
	require.NoError(t, err)
	require.Equal(t, "hi", resp.Text)
}

func TestChatUsecase_ListMessages_RejectsNonMember(t *testing.T) {
	chatRepo := new(mockChatRepository)
	messageRepo := new(mockMessageRepository)
	uc := newChatUsecase(t, chatRepo, messageRepo, new(mockProfileRepository), new(mockFamilyRepository))

	userID := uuid.New()
	chatID := entity.ChatID(uuid.New(), uuid.New())
	chatRepo.On("IsMember", mock.Anything, chatID, userID).Return(false, nil)

	_, err := uc.ListMessages(context.Background(), userID, chatID)
	require.ErrorIs(t, err, usecase.ErrNotChatMember)
	messageRepo.AssertNotCalled(t, "FindByChatID", mock.Anything, mock.Anything, mock.Anything)
}
