package comment

import "github.com/gamenighthq/gamenight/internal/models"

type SaveCommentInput struct {
	Comment *models.Comment
}

type GetCommentInput struct {
	CommentID string
}

type ListBySessionInput struct {
	SessionID string
}

type ListBySessionOutput struct {
	Comments []*models.Comment
}

type DeleteCommentInput struct {
	CommentID string
}

type DeleteBySessionInput struct {
	SessionID string
}
