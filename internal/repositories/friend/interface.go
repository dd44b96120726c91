package friend

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/gamenighthq/gamenight/internal/repositories/friend Repository

import (
	"context"

	"github.com/gamenighthq/gamenight/internal/models"
)

// Repository defines the interface for the friend directory
type Repository interface {
	// SaveFriend persists a friend
	SaveFriend(ctx context.Context, input *SaveFriendInput) error

	// GetFriend retrieves a friend by ID
	GetFriend(ctx context.Context, input *GetFriendInput) (*models.Friend, error)

	// ListFriends retrieves active friends, plus archived ones when
	// requested, ordered by creation time
	ListFriends(ctx context.Context, input *ListFriendsInput) (*ListFriendsOutput, error)

	// GetActiveFriendIDs retrieves the ids of all non-archived friends
	GetActiveFriendIDs(ctx context.Context) ([]string, error)
}
