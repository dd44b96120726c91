package friend

import "context"

// Service defines the interface for the friend roster
type Service interface {
	// CreateFriend adds a friend to the roster
	CreateFriend(ctx context.Context, input *CreateFriendInput) (*CreateFriendOutput, error)

	// GetFriend retrieves a friend by ID
	GetFriend(ctx context.Context, input *GetFriendInput) (*GetFriendOutput, error)

	// ListFriends retrieves the roster, optionally including archived
	// friends
	ListFriends(ctx context.Context, input *ListFriendsInput) (*ListFriendsOutput, error)

	// ArchiveFriend removes a friend from the active roster without
	// losing their match history
	ArchiveFriend(ctx context.Context, input *ArchiveFriendInput) (*ArchiveFriendOutput, error)

	// RestoreFriend returns an archived friend to the active roster
	RestoreFriend(ctx context.Context, input *RestoreFriendInput) (*RestoreFriendOutput, error)
}
