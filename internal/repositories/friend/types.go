package friend

import "github.com/gamenighthq/gamenight/internal/models"

type SaveFriendInput struct {
	Friend *models.Friend
}

type GetFriendInput struct {
	FriendID string
}

type ListFriendsInput struct {
	IncludeArchived bool
}

type ListFriendsOutput struct {
	Friends []*models.Friend
}
