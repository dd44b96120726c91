package session

import "context"

// Service defines the interface for session operations
type Service interface {
	// CreateSession schedules a new session and creates an attendance
	// row for every active friend
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)

	// ListSessions retrieves all sessions ordered by start time
	ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error)

	// UpdateSessionInfo changes the title and/or start time
	UpdateSessionInfo(ctx context.Context, input *UpdateSessionInfoInput) (*UpdateSessionInfoOutput, error)

	// ConfirmSession moves a session from SCHEDULED to CONFIRMED
	ConfirmSession(ctx context.Context, input *ConfirmSessionInput) (*ConfirmSessionOutput, error)

	// MarkSessionDone moves a session from CONFIRMED to DONE
	MarkSessionDone(ctx context.Context, input *MarkSessionDoneInput) (*MarkSessionDoneOutput, error)

	// ReopenSession moves a session from DONE back to CONFIRMED
	ReopenSession(ctx context.Context, input *ReopenSessionInput) (*ReopenSessionOutput, error)

	// DeleteSession removes a session with its matches and comments
	DeleteSession(ctx context.Context, input *DeleteSessionInput) error

	// SetAttendance records a friend's RSVP
	SetAttendance(ctx context.Context, input *SetAttendanceInput) (*SetAttendanceOutput, error)

	// SetTeamMember upserts one friend's team preset
	SetTeamMember(ctx context.Context, input *SetTeamMemberInput) (*SetTeamMemberOutput, error)

	// BulkSetTeams upserts a batch of team presets
	BulkSetTeams(ctx context.Context, input *BulkSetTeamsInput) (*BulkSetTeamsOutput, error)

	// AdminUnlock disables the structural-change lock
	AdminUnlock(ctx context.Context, input *AdminUnlockInput) (*AdminUnlockOutput, error)

	// AdminRelock re-enables the structural-change lock
	AdminRelock(ctx context.Context, input *AdminRelockInput) (*AdminRelockOutput, error)

	// ValidateToken resolves a presented token to the role it grants
	ValidateToken(ctx context.Context, input *ValidateTokenInput) (*ValidateTokenOutput, error)

	// AddComment posts a comment on a session
	AddComment(ctx context.Context, input *AddCommentInput) (*AddCommentOutput, error)

	// ListComments retrieves a session's comments in posting order
	ListComments(ctx context.Context, input *ListCommentsInput) (*ListCommentsOutput, error)

	// DeleteComment removes a comment
	DeleteComment(ctx context.Context, input *DeleteCommentInput) error
}
