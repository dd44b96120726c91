package comment

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/gamenighthq/gamenight/internal/repositories/comment Repository

import (
	"context"

	"github.com/gamenighthq/gamenight/internal/models"
)

// Repository defines the interface for comment persistence
type Repository interface {
	// SaveComment persists a comment
	SaveComment(ctx context.Context, input *SaveCommentInput) error

	// GetComment retrieves a comment by ID
	GetComment(ctx context.Context, input *GetCommentInput) (*models.Comment, error)

	// ListBySession retrieves a session's comments in posting order
	ListBySession(ctx context.Context, input *ListBySessionInput) (*ListBySessionOutput, error)

	// DeleteComment removes a comment
	DeleteComment(ctx context.Context, input *DeleteCommentInput) error

	// DeleteBySession removes all of a session's comments
	DeleteBySession(ctx context.Context, input *DeleteBySessionInput) error
}
