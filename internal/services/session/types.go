package session

import (
	"time"

	"github.com/gamenighthq/gamenight/internal/common/clock"
	"github.com/gamenighthq/gamenight/internal/common/token"
	"github.com/gamenighthq/gamenight/internal/common/uuid"
	"github.com/gamenighthq/gamenight/internal/models"
	attachmentRepo "github.com/gamenighthq/gamenight/internal/repositories/attachment"
	commentRepo "github.com/gamenighthq/gamenight/internal/repositories/comment"
	friendRepo "github.com/gamenighthq/gamenight/internal/repositories/friend"
	matchRepo "github.com/gamenighthq/gamenight/internal/repositories/match"
	sessionRepo "github.com/gamenighthq/gamenight/internal/repositories/session"
)

// Config holds configuration for the session service
type Config struct {
	// Repository dependencies
	SessionRepo    sessionRepo.Repository
	FriendRepo     friendRepo.Repository
	MatchRepo      matchRepo.Repository
	CommentRepo    commentRepo.Repository
	AttachmentRepo attachmentRepo.Repository

	// Service dependencies
	Clock          clock.Clock
	UUIDGenerator  uuid.UUID
	TokenGenerator token.Generator

	// StructureLockTTL bounds how long a structure change may hold the
	// per-session lock; zero uses the repository default
	StructureLockTTL time.Duration
}

// CreateSessionInput contains parameters for scheduling a session
type CreateSessionInput struct {
	// ContentType is what the group will play
	ContentType models.ContentType

	// Title is an optional label
	Title *string

	// StartsAt is when the session starts
	StartsAt time.Time
}

// CreateSessionOutput contains the created session, including its
// freshly generated editor and admin tokens
type CreateSessionOutput struct {
	Session *models.Session
}

type GetSessionInput struct {
	SessionID string
}

type GetSessionOutput struct {
	Session *models.Session
}

type ListSessionsInput struct {
}

type ListSessionsOutput struct {
	Sessions []*models.Session
}

// UpdateSessionInfoInput contains the tri-state field updates. Title is
// applied only when TitleSet is true; a nil Title then clears it.
// StartsAt is applied when non-nil.
type UpdateSessionInfoInput struct {
	SessionID string
	Title     *string
	TitleSet  bool
	StartsAt  *time.Time
}

type UpdateSessionInfoOutput struct {
	Session *models.Session
}

type ConfirmSessionInput struct {
	SessionID string
}

type ConfirmSessionOutput struct {
	Session *models.Session
}

type MarkSessionDoneInput struct {
	SessionID string
}

type MarkSessionDoneOutput struct {
	Session *models.Session
}

type ReopenSessionInput struct {
	SessionID string
}

type ReopenSessionOutput struct {
	Session *models.Session
}

type DeleteSessionInput struct {
	SessionID string
}

type SetAttendanceInput struct {
	SessionID string
	FriendID  string
	Status    models.AttendanceStatus
}

type SetAttendanceOutput struct {
	Session *models.Session
}

type SetTeamMemberInput struct {
	SessionID string
	FriendID  string
	Team      models.Team

	// Lane is optional; nil defaults to UNKNOWN
	Lane *models.Lane
}

type SetTeamMemberOutput struct {
	Session *models.Session
}

type BulkSetTeamsInput struct {
	SessionID   string
	Assignments []models.TeamAssignment
}

type BulkSetTeamsOutput struct {
	Session *models.Session
}

type AdminUnlockInput struct {
	SessionID string
}

type AdminUnlockOutput struct {
	Session *models.Session
}

type AdminRelockInput struct {
	SessionID string
}

type AdminRelockOutput struct {
	Session *models.Session
}

type ValidateTokenInput struct {
	SessionID string
	Token     string
}

type ValidateTokenOutput struct {
	Role models.TokenRole
}

type AddCommentInput struct {
	SessionID   string
	Body        string
	DisplayName string
}

type AddCommentOutput struct {
	Comment *models.Comment
}

type ListCommentsInput struct {
	SessionID string
}

type ListCommentsOutput struct {
	Comments []*models.Comment
}

type DeleteCommentInput struct {
	CommentID string
}
