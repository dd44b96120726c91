package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gamenighthq/gamenight/internal/apperr"
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

// service implements the Service interface
type service struct {
	sessionRepo    sessionRepo.Repository
	friendRepo     friendRepo.Repository
	matchRepo      matchRepo.Repository
	commentRepo    commentRepo.Repository
	attachmentRepo attachmentRepo.Repository
	clock          clock.Clock
	uuidGen        uuid.UUID
	tokenGen       token.Generator
	lockTTL        time.Duration
}

// New creates a new session service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}
	if cfg.FriendRepo == nil {
		return nil, ErrNilFriendRepo
	}
	if cfg.MatchRepo == nil {
		return nil, ErrNilMatchRepo
	}
	if cfg.CommentRepo == nil {
		return nil, ErrNilCommentRepo
	}
	if cfg.AttachmentRepo == nil {
		return nil, ErrNilAttachmentRepo
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}
	if cfg.TokenGenerator == nil {
		return nil, ErrNilTokenGenerator
	}

	return &service{
		sessionRepo:    cfg.SessionRepo,
		friendRepo:     cfg.FriendRepo,
		matchRepo:      cfg.MatchRepo,
		commentRepo:    cfg.CommentRepo,
		attachmentRepo: cfg.AttachmentRepo,
		clock:          cfg.Clock,
		uuidGen:        cfg.UUIDGenerator,
		tokenGen:       cfg.TokenGenerator,
		lockTTL:        cfg.StructureLockTTL,
	}, nil
}

// CreateSession schedules a new session with an UNDECIDED attendance
// row for every active friend
func (s *service) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if input.ContentType != models.ContentTypeLOL && input.ContentType != models.ContentTypeFutsal {
		return nil, fmt.Errorf("unknown content type %q", input.ContentType)
	}

	friendIDs, err := s.friendRepo.GetActiveFriendIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active friends: %w", err)
	}

	// Tokens are generated exactly once and must differ from each other
	editorToken := s.tokenGen.NewToken()
	adminToken := s.tokenGen.NewToken()
	for adminToken == editorToken {
		adminToken = s.tokenGen.NewToken()
	}

	session := models.NewSession(models.NewSessionParams{
		ID:          s.uuidGen.NewUUID(),
		ContentType: input.ContentType,
		Title:       input.Title,
		StartsAt:    input.StartsAt,
		EditorToken: editorToken,
		AdminToken:  adminToken,
		FriendIDs:   friendIDs,
		NewID:       s.uuidGen.NewUUID,
		Now:         s.clock.Now(),
	})

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		return nil, err
	}

	return &CreateSessionOutput{Session: session}, nil
}

// GetSession retrieves a session by ID
func (s *service) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	return &GetSessionOutput{Session: session}, nil
}

// ListSessions retrieves all sessions ordered by start time
func (s *service) ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error) {
	result, err := s.sessionRepo.ListSessions(ctx, &sessionRepo.ListSessionsInput{})
	if err != nil {
		return nil, err
	}

	return &ListSessionsOutput{Sessions: result.Sessions}, nil
}

// UpdateSessionInfo changes the title and/or start time
func (s *service) UpdateSessionInfo(ctx context.Context, input *UpdateSessionInfoInput) (*UpdateSessionInfoOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	err = session.UpdateInfo(models.SessionInfoUpdate{
		Title:    input.Title,
		TitleSet: input.TitleSet,
		StartsAt: input.StartsAt,
	}, s.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		return nil, err
	}

	return &UpdateSessionInfoOutput{Session: session}, nil
}

// ConfirmSession moves a session from SCHEDULED to CONFIRMED
func (s *service) ConfirmSession(ctx context.Context, input *ConfirmSessionInput) (*ConfirmSessionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := s.transition(ctx, input.SessionID, (*models.Session).Confirm)
	if err != nil {
		return nil, err
	}

	return &ConfirmSessionOutput{Session: session}, nil
}

// MarkSessionDone moves a session from CONFIRMED to DONE
func (s *service) MarkSessionDone(ctx context.Context, input *MarkSessionDoneInput) (*MarkSessionDoneOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := s.transition(ctx, input.SessionID, (*models.Session).MarkDone)
	if err != nil {
		return nil, err
	}

	return &MarkSessionDoneOutput{Session: session}, nil
}

// ReopenSession moves a session from DONE back to CONFIRMED
func (s *service) ReopenSession(ctx context.Context, input *ReopenSessionInput) (*ReopenSessionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := s.transition(ctx, input.SessionID, (*models.Session).Reopen)
	if err != nil {
		return nil, err
	}

	return &ReopenSessionOutput{Session: session}, nil
}

// DeleteSession removes a session along with its matches and comments
func (s *service) DeleteSession(ctx context.Context, input *DeleteSessionInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	if _, err := s.getSession(ctx, input.SessionID); err != nil {
		return err
	}

	if err := s.matchRepo.DeleteBySession(ctx, &matchRepo.DeleteBySessionInput{SessionID: input.SessionID}); err != nil {
		return err
	}
	if err := s.commentRepo.DeleteBySession(ctx, &commentRepo.DeleteBySessionInput{SessionID: input.SessionID}); err != nil {
		return err
	}

	return s.sessionRepo.DeleteSession(ctx, &sessionRepo.DeleteSessionInput{SessionID: input.SessionID})
}

// SetAttendance records a friend's RSVP. Attendance is not gated by the
// structural-change lock; unknown friends are a silent no-op.
func (s *service) SetAttendance(ctx context.Context, input *SetAttendanceInput) (*SetAttendanceOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	session.SetAttendance(input.FriendID, input.Status, s.clock.Now())

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		return nil, err
	}

	return &SetAttendanceOutput{Session: session}, nil
}

// SetTeamMember upserts one friend's team preset, subject to the
// structural-change lock
func (s *service) SetTeamMember(ctx context.Context, input *SetTeamMemberInput) (*SetTeamMemberOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := s.changeStructure(ctx, input.SessionID, func(session *models.Session) {
		session.SetTeamMember(input.FriendID, input.Team, input.Lane, s.uuidGen.NewUUID, s.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	return &SetTeamMemberOutput{Session: session}, nil
}

// BulkSetTeams upserts a batch of team presets, subject to the
// structural-change lock
func (s *service) BulkSetTeams(ctx context.Context, input *BulkSetTeamsInput) (*BulkSetTeamsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := s.changeStructure(ctx, input.SessionID, func(session *models.Session) {
		session.BulkSetTeams(input.Assignments, s.uuidGen.NewUUID, s.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	return &BulkSetTeamsOutput{Session: session}, nil
}

// AdminUnlock disables the structural-change lock
func (s *service) AdminUnlock(ctx context.Context, input *AdminUnlockInput) (*AdminUnlockOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	session.AdminUnlock(s.clock.Now())

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		return nil, err
	}

	return &AdminUnlockOutput{Session: session}, nil
}

// AdminRelock re-enables the structural-change lock
func (s *service) AdminRelock(ctx context.Context, input *AdminRelockInput) (*AdminRelockOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	session.AdminRelock(s.clock.Now())

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		return nil, err
	}

	return &AdminRelockOutput{Session: session}, nil
}

// ValidateToken resolves a presented token to the role it grants
func (s *service) ValidateToken(ctx context.Context, input *ValidateTokenInput) (*ValidateTokenOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	role, err := session.ValidateToken(input.Token)
	if err != nil {
		return nil, err
	}

	return &ValidateTokenOutput{Role: role}, nil
}

// AddComment posts a comment on a session
func (s *service) AddComment(ctx context.Context, input *AddCommentInput) (*AddCommentOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if input.Body == "" {
		return nil, errors.New("comment body cannot be empty")
	}

	if _, err := s.getSession(ctx, input.SessionID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ID:          s.uuidGen.NewUUID(),
		SessionID:   input.SessionID,
		Body:        input.Body,
		DisplayName: input.DisplayName,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.commentRepo.SaveComment(ctx, &commentRepo.SaveCommentInput{Comment: comment}); err != nil {
		return nil, err
	}

	return &AddCommentOutput{Comment: comment}, nil
}

// ListComments retrieves a session's comments in posting order
func (s *service) ListComments(ctx context.Context, input *ListCommentsInput) (*ListCommentsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	result, err := s.commentRepo.ListBySession(ctx, &commentRepo.ListBySessionInput{SessionID: input.SessionID})
	if err != nil {
		return nil, err
	}

	return &ListCommentsOutput{Comments: result.Comments}, nil
}

// DeleteComment removes a comment
func (s *service) DeleteComment(ctx context.Context, input *DeleteCommentInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	err := s.commentRepo.DeleteComment(ctx, &commentRepo.DeleteCommentInput{CommentID: input.CommentID})
	if errors.Is(err, commentRepo.ErrCommentNotFound) {
		return apperr.NotFound.WithMessagef("comment %s not found", input.CommentID)
	}
	return err
}

// getSession loads a session, translating the repository sentinel into
// the domain not-found error
func (s *service) getSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{SessionID: sessionID})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, apperr.NotFound.WithMessagef("session %s not found", sessionID)
		}
		return nil, err
	}
	return session, nil
}

// transition loads a session, applies a status change and saves it
func (s *service) transition(ctx context.Context, sessionID string, change func(*models.Session, time.Time) error) (*models.Session, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := change(session, s.clock.Now()); err != nil {
		return nil, err
	}

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		return nil, err
	}

	return session, nil
}

// changeStructure serializes a team preset mutation behind the
// per-session lock: the attachment count read and the save cannot
// interleave with another structure change.
func (s *service) changeStructure(ctx context.Context, sessionID string, mutate func(*models.Session)) (*models.Session, error) {
	acquired, err := s.sessionRepo.AcquireStructureLock(ctx, &sessionRepo.AcquireStructureLockInput{
		SessionID: sessionID,
		TTL:       s.lockTTL,
	})
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, apperr.Conflict.WithMessagef("another structure change is in progress for session %s", sessionID)
	}
	defer func() {
		_ = s.sessionRepo.ReleaseStructureLock(ctx, &sessionRepo.ReleaseStructureLockInput{SessionID: sessionID})
	}()

	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	count, err := s.attachmentRepo.CountBySessionIDForUpdate(ctx, &attachmentRepo.CountBySessionIDInput{SessionID: sessionID})
	if err != nil {
		return nil, err
	}

	if err := session.CheckStructureChangeAllowed(count); err != nil {
		return nil, err
	}

	mutate(session)

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		return nil, err
	}

	return session, nil
}
