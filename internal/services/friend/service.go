package friend

import (
	"context"
	"errors"
	"strings"

	"github.com/gamenighthq/gamenight/internal/apperr"
	"github.com/gamenighthq/gamenight/internal/common/clock"
	"github.com/gamenighthq/gamenight/internal/common/uuid"
	"github.com/gamenighthq/gamenight/internal/models"
	friendRepo "github.com/gamenighthq/gamenight/internal/repositories/friend"
)

// service implements the Service interface
type service struct {
	friendRepo friendRepo.Repository
	clock      clock.Clock
	uuidGen    uuid.UUID
}

// New creates a new friend service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.FriendRepo == nil {
		return nil, ErrNilFriendRepo
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		friendRepo: cfg.FriendRepo,
		clock:      cfg.Clock,
		uuidGen:    cfg.UUIDGenerator,
	}, nil
}

// CreateFriend adds a friend to the roster
func (s *service) CreateFriend(ctx context.Context, input *CreateFriendInput) (*CreateFriendOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		return nil, errors.New("display name cannot be empty")
	}

	friend := &models.Friend{
		Entity:      models.NewEntity(s.uuidGen.NewUUID(), s.clock.Now()),
		DisplayName: displayName,
	}

	if err := s.friendRepo.SaveFriend(ctx, &friendRepo.SaveFriendInput{Friend: friend}); err != nil {
		return nil, err
	}

	return &CreateFriendOutput{Friend: friend}, nil
}

// GetFriend retrieves a friend by ID
func (s *service) GetFriend(ctx context.Context, input *GetFriendInput) (*GetFriendOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	friend, err := s.getFriend(ctx, input.FriendID)
	if err != nil {
		return nil, err
	}

	return &GetFriendOutput{Friend: friend}, nil
}

// ListFriends retrieves the roster, optionally including archived
// friends
func (s *service) ListFriends(ctx context.Context, input *ListFriendsInput) (*ListFriendsOutput, error) {
	if input == nil {
		input = &ListFriendsInput{}
	}

	listOutput, err := s.friendRepo.ListFriends(ctx, &friendRepo.ListFriendsInput{
		IncludeArchived: input.IncludeArchived,
	})
	if err != nil {
		return nil, err
	}

	return &ListFriendsOutput{Friends: listOutput.Friends}, nil
}

// ArchiveFriend removes a friend from the active roster
func (s *service) ArchiveFriend(ctx context.Context, input *ArchiveFriendInput) (*ArchiveFriendOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	friend, err := s.setArchived(ctx, input.FriendID, true)
	if err != nil {
		return nil, err
	}

	return &ArchiveFriendOutput{Friend: friend}, nil
}

// RestoreFriend returns an archived friend to the active roster
func (s *service) RestoreFriend(ctx context.Context, input *RestoreFriendInput) (*RestoreFriendOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	friend, err := s.setArchived(ctx, input.FriendID, false)
	if err != nil {
		return nil, err
	}

	return &RestoreFriendOutput{Friend: friend}, nil
}

func (s *service) setArchived(ctx context.Context, friendID string, archived bool) (*models.Friend, error) {
	friend, err := s.getFriend(ctx, friendID)
	if err != nil {
		return nil, err
	}

	if friend.Archived != archived {
		friend.Archived = archived
		friend.Touch(s.clock.Now())

		if err := s.friendRepo.SaveFriend(ctx, &friendRepo.SaveFriendInput{Friend: friend}); err != nil {
			return nil, err
		}
	}

	return friend, nil
}

func (s *service) getFriend(ctx context.Context, friendID string) (*models.Friend, error) {
	friend, err := s.friendRepo.GetFriend(ctx, &friendRepo.GetFriendInput{FriendID: friendID})
	if err != nil {
		if errors.Is(err, friendRepo.ErrFriendNotFound) {
			return nil, apperr.NotFound.WithMessagef("friend %s not found", friendID)
		}
		return nil, err
	}

	return friend, nil
}
