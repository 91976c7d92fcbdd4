package usecase

import (
	"context"
	"errors"

	"medikeep/internal/converter"
	"medikeep/internal/delivery/dto"
	"medikeep/internal/domain/entity"
	"medikeep/internal/domain/repository"
	"medikeep/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSelfRequest            = errors.New("cannot send a request to yourself")
	ErrProfessionalNotFamily  = errors.New("professional accounts cannot be added as family members")
	ErrDuplicatePendingExists = errors.New("a pending request between these users already exists")
	ErrRequestNotFound        = errors.New("request not found")
	ErrNotRequestRecipient    = errors.New("only the addressed user may respond to this request")
	ErrRequestAlreadyResolved = errors.New("request has already been resolved")
	ErrNotFamilyMember        = errors.New("users are not connected as family")
)

type ConnectionUsecase interface {
	SendFriendRequest(ctx context.Context, fromID uuid.UUID, toID uuid.UUID) (*dto.FriendRequestResponse, error)
	RespondToFriendRequest(ctx context.Context, responderID, requestID uuid.UUID, response string) (*dto.FriendRequestResponse, error)
	ListIncomingRequests(ctx context.Context, userID uuid.UUID) (*dto.FriendRequestListResponse, error)
	AddFamilyMember(ctx context.Context, userID, otherID uuid.UUID) error
	RemoveFamilyMember(ctx context.Context, userID, otherID uuid.UUID) error
	ListFamily(ctx context.Context, userID uuid.UUID) (*dto.FamilyListResponse, error)
}

type connectionUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	profileRepo repository.ProfileRepository
	familyRepo  repository.FamilyRepository
	requestRepo repository.FriendRequestRepository
	hub         *service.Hub
}

func NewConnectionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	profileRepo repository.ProfileRepository,
	familyRepo repository.FamilyRepository,
	requestRepo repository.FriendRequestRepository,
	hub *service.Hub,
) ConnectionUsecase {
	return &connectionUsecase{
		db:          db,
		log:         log,
		profileRepo: profileRepo,
		familyRepo:  familyRepo,
		requestRepo: requestRepo,
		hub:         hub,
	}
}

// SendFriendRequest starts the connection protocol: none -> pending.
//
// The duplicate-pending check queries both directions before the insert.
// That is check-then-act, not atomic: two concurrent sends can both pass. A
// partial unique index catches same-direction duplicates; the reverse
// direction remains a known, accepted race at this product's contention
// level.
func (u *connectionUsecase) SendFriendRequest(ctx context.Context, fromID uuid.UUID, toID uuid.UUID) (*dto.FriendRequestResponse, error) {
	if fromID == toID {
		return nil, ErrSelfRequest
	}

	db := u.db.WithContext(ctx)

	sender, err := u.profileRepo.FindByUserID(db, fromID)
	if err != nil {
		u.log.Warnf("Failed to load sender profile %s: %+v", fromID, err)
		return nil, err
	}
	if sender == nil {
		return nil, ErrProfileNotFound
	}

	target, err := u.profileRepo.FindByUserID(db, toID)
	if err != nil {
		u.log.Warnf("Failed to load target profile %s: %+v", toID, err)
		return nil, err
	}
	if target == nil {
		return nil, ErrProfileNotFound
	}
	if target.IsProfessional() {
		return nil, ErrProfessionalNotFamily
	}

	outgoing, err := u.requestRepo.FindPendingBetween(db, fromID, toID)
	if err != nil {
		u.log.Warnf("Failed to check outgoing pending request: %+v", err)
		return nil, err
	}
	incoming, err := u.requestRepo.FindPendingBetween(db, toID, fromID)
	if err != nil {
		u.log.Warnf("Failed to check incoming pending request: %+v", err)
		return nil, err
	}
	if outgoing != nil || incoming != nil {
		return nil, ErrDuplicatePendingExists
	}

	request := &entity.FriendRequest{
		FromID:         fromID,
		FromName:       sender.Name,
		FromPictureURL: sender.PictureURL,
		ToID:           toID,
		Status:         entity.FriendRequestStatusPending,
		Type:           entity.FriendRequestTypeFamily,
	}

	if err := u.requestRepo.Create(db, request); err != nil {
		if isDuplicateKeyError(err, "pending_pair") {
			return nil, ErrDuplicatePendingExists
		}
		u.log.Warnf("Failed to create friend request: %+v", err)
		return nil, err
	}

	resp := converter.FriendRequestToResponse(request)
	u.hub.Publish(ctx, service.UserTopic(toID), service.Event{Type: service.EventFriendRequest, Payload: resp})

	return resp, nil
}

// RespondToFriendRequest resolves a pending request: pending -> accepted or
// declined. Only the addressed party may respond. The status flip and, on
// accept, both family-link inserts happen in one database transaction, so
// the three changes apply atomically or not at all. Linking is idempotent: a
// second accept leaves exactly one link per direction.
func (u *connectionUsecase) RespondToFriendRequest(ctx context.Context, responderID, requestID uuid.UUID, response string) (*dto.FriendRequestResponse, error) {
	status := entity.FriendRequestStatus(response)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	request, err := u.requestRepo.FindByID(tx, requestID)
	if err != nil {
		u.log.Warnf("Failed to find friend request %s: %+v", requestID, err)
		return nil, err
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}
	if request.ToID != responderID {
		return nil, ErrNotRequestRecipient
	}
	if !request.IsPending() {
		return nil, ErrRequestAlreadyResolved
	}

	if status == entity.FriendRequestStatusAccepted {
		if err := u.familyRepo.Link(tx, request.ToID, request.FromID); err != nil {
			u.log.Warnf("Failed to link %s -> %s: %+v", request.ToID, request.FromID, err)
			return nil, err
		}
		if err := u.familyRepo.Link(tx, request.FromID, request.ToID); err != nil {
			u.log.Warnf("Failed to link %s -> %s: %+v", request.FromID, request.ToID, err)
			return nil, err
		}
	}

	if err := u.requestRepo.UpdateStatus(tx, requestID, status); err != nil {
		u.log.Warnf("Failed to update friend request %s: %+v", requestID, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	request.Status = status
	resp := converter.FriendRequestToResponse(request)
	u.hub.Publish(ctx, service.UserTopic(request.FromID), service.Event{Type: service.EventFriendResponse, Payload: resp})

	return resp, nil
}

func (u *connectionUsecase) ListIncomingRequests(ctx context.Context, userID uuid.UUID) (*dto.FriendRequestListResponse, error) {
	requests, err := u.requestRepo.FindPendingByToID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to list friend requests for %s: %+v", userID, err)
		return nil, err
	}

	return &dto.FriendRequestListResponse{
		Requests: converter.FriendRequestsToResponses(requests),
		Total:    len(requests),
	}, nil
}

// AddFamilyMember links two profiles directly, skipping the request cycle.
// Used by the QR flow, where physically scanning the other person's code
// stands in for consent.
func (u *connectionUsecase) AddFamilyMember(ctx context.Context, userID, otherID uuid.UUID) error {
	if userID == otherID {
		return ErrSelfRequest
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	other, err := u.profileRepo.FindByUserID(tx, otherID)
	if err != nil {
		u.log.Warnf("Failed to load profile %s: %+v", otherID, err)
		return err
	}
	if other == nil {
		return ErrProfileNotFound
	}
	if other.IsProfessional() {
		return ErrProfessionalNotFamily
	}

	if err := u.familyRepo.Link(tx, userID, otherID); err != nil {
		u.log.Warnf("Failed to link %s -> %s: %+v", userID, otherID, err)
		return err
	}
	if err := u.familyRepo.Link(tx, otherID, userID); err != nil {
		u.log.Warnf("Failed to link %s -> %s: %+v", otherID, userID, err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *connectionUsecase) RemoveFamilyMember(ctx context.Context, userID, otherID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	linked, err := u.familyRepo.AreLinked(tx, userID, otherID)
	if err != nil {
		u.log.Warnf("Failed to check family link: %+v", err)
		return err
	}
	if !linked {
		return ErrNotFamilyMember
	}

	if err := u.familyRepo.Unlink(tx, userID, otherID); err != nil {
		u.log.Warnf("Failed to unlink %s -> %s: %+v", userID, otherID, err)
		return err
	}
	if err := u.familyRepo.Unlink(tx, otherID, userID); err != nil {
		u.log.Warnf("Failed to unlink %s -> %s: %+v", otherID, userID, err)
		return err
	}

	return tx.Commit().Error
}

func (u *connectionUsecase) ListFamily(ctx context.Context, userID uuid.UUID) (*dto.FamilyListResponse, error) {
	members, err := u.familyRepo.ListMembers(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to list family members for %s: %+v", userID, err)
		return nil, err
	}

	return &dto.FamilyListResponse{
		Members: converter.ProfilesToSummaries(members),
		Total:   len(members),
	}, nil
}
