package usecase_test

import (
	"time"

	"medikeep/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type mockUserRepository struct{ mock.Mock }

func (m *mockUserRepository) Create(db *gorm.DB, user *entity.User) error {
	return m.Called(db, user).Error(0)
}

func (m *mockUserRepository) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	args := m.Called(db, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	args := m.Called(db, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

type mockProfileRepository struct{ mock.Mock }

func (m *mockProfileRepository) Create(db *gorm.DB, profile *entity.Profile) error {
	return m.Called(db, profile).Error(0)
}

func (m *mockProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Profile, error) {
	args := m.Called(db, userID)
	profile, _ := args.Get(0).(*entity.Profile)
	return profile, args.Error(1)
}

func (m *mockProfileRepository) FindByUsername(db *gorm.DB, username string) (*entity.Profile, error) {
	args := m.Called(db, username)
	profile, _ := args.Get(0).(*entity.Profile)
	return profile, args.Error(1)
}

func (m *mockProfileRepository) SearchByUsername(db *gorm.DB, prefix string, limit int) ([]entity.Profile, error) {
	args := m.Called(db, prefix, limit)
	profiles, _ := args.Get(0).([]entity.Profile)
	return profiles, args.Error(1)
}

func (m *mockProfileRepository) Update(db *gorm.DB, profile *entity.Profile) error {
	return m.Called(db, profile).Error(0)
}

type mockFamilyRepository struct{ mock.Mock }

func (m *mockFamilyRepository) Link(db *gorm.DB, profileID, memberID uuid.UUID) error {
	return m.Called(db, profileID, memberID).Error(0)
}

func (m *mockFamilyRepository) Unlink(db *gorm.DB, profileID, memberID uuid.UUID) error {
	return m.Called(db, profileID, memberID).Error(0)
}

func (m *mockFamilyRepository) AreLinked(db *gorm.DB, profileID, memberID uuid.UUID) (bool, error) {
	args := m.Called(db, profileID, memberID)
	return args.Bool(0), args.Error(1)
}

func (m *mockFamilyRepository) ListMemberIDs(db *gorm.DB, profileID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(db, profileID)
	ids, _ := args.Get(0).([]uuid.UUID)
	return ids, args.Error(1)
}

func (m *mockFamilyRepository) ListMembers(db *gorm.DB, profileID uuid.UUID) ([]entity.Profile, error) {
	args := m.Called(db, profileID)
	members, _ := args.Get(0).([]entity.Profile)
	return members, args.Error(1)
}

type mockFriendRequestRepository struct{ mock.Mock }

func (m *mockFriendRequestRepository) Create(db *gorm.DB, request *entity.FriendRequest) error {
	return m.Called(db, request).Error(0)
}

func (m *mockFriendRequestRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.FriendRequest, error) {
	args := m.Called(db, id)
	request, _ := args.Get(0).(*entity.FriendRequest)
	return request, args.Error(1)
}

func (m *mockFriendRequestRepository) FindPendingBetween(db *gorm.DB, fromID, toID uuid.UUID) (*entity.FriendRequest, error) {
	args := m.Called(db, fromID, toID)
	request, _ := args.Get(0).(*entity.FriendRequest)
	return request, args.Error(1)
}

func (m *mockFriendRequestRepository) FindPendingByToID(db *gorm.DB, toID uuid.UUID) ([]entity.FriendRequest, error) {
	args := m.Called(db, toID)
	requests, _ := args.Get(0).([]entity.FriendRequest)
	return requests, args.Error(1)
}

func (m *mockFriendRequestRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.FriendRequestStatus) error {
	return m.Called(db, id, status).Error(0)
}

type mockMedicationRepository struct{ mock.Mock }

func (m *mockMedicationRepository) Create(db *gorm.DB, medication *entity.Medication) error {
	return m.Called(db, medication).Error(0)
}

func (m *mockMedicationRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Medication, error) {
	args := m.Called(db, id)
	medication, _ := args.Get(0).(*entity.Medication)
	return medication, args.Error(1)
}

func (m *mockMedicationRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Medication, error) {
	args := m.Called(db, userID)
	medications, _ := args.Get(0).([]entity.Medication)
	return medications, args.Error(1)
}

func (m *mockMedicationRepository) Update(db *gorm.DB, medication *entity.Medication) error {
	return m.Called(db, medication).Error(0)
}

func (m *mockMedicationRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return m.Called(db, id).Error(0)
}

type mockStoredMedicineRepository struct{ mock.Mock }

func (m *mockStoredMedicineRepository) Create(db *gorm.DB, medicine *entity.StoredMedicine) error {
	return m.Called(db, medicine).Error(0)
}

func (m *mockStoredMedicineRepository) CreateBatch(db *gorm.DB, medicines []entity.StoredMedicine) error {
	return m.Called(db, medicines).Error(0)
}

func (m *mockStoredMedicineRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.StoredMedicine, error) {
	args := m.Called(db, id)
	medicine, _ := args.Get(0).(*entity.StoredMedicine)
	return medicine, args.Error(1)
}

func (m *mockStoredMedicineRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.StoredMedicine, error) {
	args := m.Called(db, userID)
	medicines, _ := args.Get(0).([]entity.StoredMedicine)
	return medicines, args.Error(1)
}

func (m *mockStoredMedicineRepository) Update(db *gorm.DB, medicine *entity.StoredMedicine) error {
	return m.Called(db, medicine).Error(0)
}

func (m *mockStoredMedicineRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return m.Called(db, id).Error(0)
}

type mockAdherenceLogRepository struct{ mock.Mock }

func (m *mockAdherenceLogRepository) Create(db *gorm.DB, log *entity.AdherenceLog) error {
	return m.Called(db, log).Error(0)
}

func (m *mockAdherenceLogRepository) FindByUserID(db *gorm.DB, userID uuid.UUID, limit int) ([]entity.AdherenceLog, error) {
	args := m.Called(db, userID, limit)
	logs, _ := args.Get(0).([]entity.AdherenceLog)
	return logs, args.Error(1)
}

type mockInventoryRepository struct{ mock.Mock }

func (m *mockInventoryRepository) Create(db *gorm.DB, item *entity.InventoryItem) error {
	return m.Called(db, item).Error(0)
}

func (m *mockInventoryRepository) CreateBatch(db *gorm.DB, items []entity.InventoryItem) error {
	return m.Called(db, items).Error(0)
}

func (m *mockInventoryRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.InventoryItem, error) {
	args := m.Called(db, id)
	item, _ := args.Get(0).(*entity.InventoryItem)
	return item, args.Error(1)
}

func (m *mockInventoryRepository) FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.InventoryItem, error) {
	args := m.Called(db, id)
	item, _ := args.Get(0).(*entity.InventoryItem)
	return item, args.Error(1)
}

func (m *mockInventoryRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.InventoryItem, error) {
	args := m.Called(db, userID)
	items, _ := args.Get(0).([]entity.InventoryItem)
	return items, args.Error(1)
}

func (m *mockInventoryRepository) Update(db *gorm.DB, item *entity.InventoryItem) error {
	return m.Called(db, item).Error(0)
}

func (m *mockInventoryRepository) UpdateBoxes(db *gorm.DB, id uuid.UUID, boxes decimal.Decimal) error {
	return m.Called(db, id, boxes).Error(0)
}

func (m *mockInventoryRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return m.Called(db, id).Error(0)
}

type mockMedicationRequestRepository struct{ mock.Mock }

func (m *mockMedicationRequestRepository) Create(db *gorm.DB, request *entity.MedicationRequest) error {
	return m.Called(db, request).Error(0)
}

func (m *mockMedicationRequestRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.MedicationRequest, error) {
	args := m.Called(db, id)
	request, _ := args.Get(0).(*entity.MedicationRequest)
	return request, args.Error(1)
}

func (m *mockMedicationRequestRepository) FindByOwnerID(db *gorm.DB, ownerID uuid.UUID) ([]entity.MedicationRequest, error) {
	args := m.Called(db, ownerID)
	requests, _ := args.Get(0).([]entity.MedicationRequest)
	return requests, args.Error(1)
}

func (m *mockMedicationRequestRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.RequestStatus) error {
	return m.Called(db, id, status).Error(0)
}

type mockChatRepository struct{ mock.Mock }

func (m *mockChatRepository) Create(db *gorm.DB, chat *entity.Chat, members []entity.ChatMember) error {
	return m.Called(db, chat, members).Error(0)
}

func (m *mockChatRepository) FindByID(db *gorm.DB, id string) (*entity.Chat, error) {
	args := m.Called(db, id)
	chat, _ := args.Get(0).(*entity.Chat)
	return chat, args.Error(1)
}

func (m *mockChatRepository) FindByMemberID(db *gorm.DB, profileID uuid.UUID) ([]entity.Chat, error) {
	args := m.Called(db, profileID)
	chats, _ := args.Get(0).([]entity.Chat)
	return chats, args.Error(1)
}

func (m *mockChatRepository) IsMember(db *gorm.DB, chatID string, profileID uuid.UUID) (bool, error) {
	args := m.Called(db, chatID, profileID)
	return args.Bool(0), args.Error(1)
}

func (m *mockChatRepository) UpdateLastMessage(db *gorm.DB, chatID string, senderID uuid.UUID, text string, at time.Time) error {
	return m.Called(db, chatID, senderID, text, at).Error(0)
}

type mockMessageRepository struct{ mock.Mock }

func (m *mockMessageRepository) Create(db *gorm.DB, message *entity.Message) error {
	return m.Called(db, message).Error(0)
}

func (m *mockMessageRepository) FindByChatID(db *gorm.DB, chatID string, limit int) ([]entity.Message, error) {
	args := m.Called(db, chatID, limit)
	messages, _ := args.Get(0).([]entity.Message)
	return messages, args.Error(1)
}

func (m *mockMessageRepository) MarkRead(db *gorm.DB, chatID string, readerID uuid.UUID) error {
	return m.Called(db, chatID, readerID).Error(0)
}
