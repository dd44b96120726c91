package friend

import (
	"github.com/gamenighthq/gamenight/internal/common/clock"
	"github.com/gamenighthq/gamenight/internal/common/uuid"
	"github.com/gamenighthq/gamenight/internal/models"
	friendRepo "github.com/gamenighthq/gamenight/internal/repositories/friend"
)

// Config holds configuration for the friend service
type Config struct {
	// Repository dependencies
	FriendRepo friendRepo.Repository

	// Service dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

type CreateFriendInput struct {
	DisplayName string
}

type CreateFriendOutput struct {
	Friend *models.Friend
}

type GetFriendInput struct {
	FriendID string
}

type GetFriendOutput struct {
	Friend *models.Friend
}

type ListFriendsInput struct {
	IncludeArchived bool
}

type ListFriendsOutput struct {
	Friends []*models.Friend
}

type ArchiveFriendInput struct {
	FriendID string
}

type ArchiveFriendOutput struct {
	Friend *models.Friend
}

type RestoreFriendInput struct {
	FriendID string
}

type RestoreFriendOutput struct {
	Friend *models.Friend
}
