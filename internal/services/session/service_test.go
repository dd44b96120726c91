package session

import (
	"context"
	"testing"
	"time"

	"github.com/gamenighthq/gamenight/internal/apperr"
	clockMocks "github.com/gamenighthq/gamenight/internal/common/clock/mocks"
	tokenMocks "github.com/gamenighthq/gamenight/internal/common/token/mocks"
	uuidMocks "github.com/gamenighthq/gamenight/internal/common/uuid/mocks"
	"github.com/gamenighthq/gamenight/internal/models"
	attachmentRepo "github.com/gamenighthq/gamenight/internal/repositories/attachment"
	attachmentMocks "github.com/gamenighthq/gamenight/internal/repositories/attachment/mocks"
	commentRepo "github.com/gamenighthq/gamenight/internal/repositories/comment"
	commentMocks "github.com/gamenighthq/gamenight/internal/repositories/comment/mocks"
	friendMocks "github.com/gamenighthq/gamenight/internal/repositories/friend/mocks"
	matchRepo "github.com/gamenighthq/gamenight/internal/repositories/match"
	matchMocks "github.com/gamenighthq/gamenight/internal/repositories/match/mocks"
	sessionRepo "github.com/gamenighthq/gamenight/internal/repositories/session"
	sessionMocks "github.com/gamenighthq/gamenight/internal/repositories/session/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SessionServiceTestSuite struct {
	suite.Suite
	mockCtrl           *gomock.Controller
	mockSessionRepo    *sessionMocks.MockRepository
	mockFriendRepo     *friendMocks.MockRepository
	mockMatchRepo      *matchMocks.MockRepository
	mockCommentRepo    *commentMocks.MockRepository
	mockAttachmentRepo *attachmentMocks.MockRepository
	mockClock          *clockMocks.MockClock
	mockUUID           *uuidMocks.MockUUID
	mockTokens         *tokenMocks.MockGenerator
	sessionService     Service
	ctx                context.Context

	testTime      time.Time
	testSessionID string
	lockTTL       time.Duration
}

func (s *SessionServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSessionRepo = sessionMocks.NewMockRepository(s.mockCtrl)
	s.mockFriendRepo = friendMocks.NewMockRepository(s.mockCtrl)
	s.mockMatchRepo = matchMocks.NewMockRepository(s.mockCtrl)
	s.mockCommentRepo = commentMocks.NewMockRepository(s.mockCtrl)
	s.mockAttachmentRepo = attachmentMocks.NewMockRepository(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.mockTokens = tokenMocks.NewMockGenerator(s.mockCtrl)

	s.ctx = context.Background()
	s.testTime = time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)
	s.testSessionID = "test-session-id"
	s.lockTTL = 5 * time.Second

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	svc, err := New(&Config{
		SessionRepo:      s.mockSessionRepo,
		FriendRepo:       s.mockFriendRepo,
		MatchRepo:        s.mockMatchRepo,
		CommentRepo:      s.mockCommentRepo,
		AttachmentRepo:   s.mockAttachmentRepo,
		Clock:            s.mockClock,
		UUIDGenerator:    s.mockUUID,
		TokenGenerator:   s.mockTokens,
		StructureLockTTL: s.lockTTL,
	})
	s.Require().NoError(err)
	s.sessionService = svc
}

func (s *SessionServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}

// storedSession returns a session fixture as the repository would hand
// it back
func (s *SessionServiceTestSuite) storedSession(status models.SessionStatus) *models.Session {
	return &models.Session{
		Entity: models.Entity{
			ID:        s.testSessionID,
			CreatedAt: s.testTime,
			UpdatedAt: s.testTime,
		},
		ContentType: models.ContentTypeLOL,
		StartsAt:    s.testTime.Add(24 * time.Hour),
		Status:      status,
		EditorToken: "editor-token",
		AdminToken:  "admin-token",
		Attendances: []*models.Attendance{
			{ID: "attendance-1", SessionID: s.testSessionID, FriendID: "friend-1", Status: models.AttendanceUndecided},
		},
		TeamPresets: []*models.TeamPresetMember{},
	}
}

func (s *SessionServiceTestSuite) expectGetSession(session *models.Session) {
	s.mockSessionRepo.EXPECT().
		GetSession(gomock.Any(), &sessionRepo.GetSessionInput{SessionID: s.testSessionID}).
		Return(session, nil)
}

func (s *SessionServiceTestSuite) TestCreateSession_HappyPath() {
	s.mockFriendRepo.EXPECT().
		GetActiveFriendIDs(gomock.Any()).
		Return([]string{"friend-1", "friend-2"}, nil)

	s.mockTokens.EXPECT().NewToken().Return("editor-token")
	s.mockTokens.EXPECT().NewToken().Return("admin-token")

	s.mockUUID.EXPECT().NewUUID().Return(s.testSessionID)
	s.mockUUID.EXPECT().NewUUID().Return("attendance-1")
	s.mockUUID.EXPECT().NewUUID().Return("attendance-2")

	s.mockSessionRepo.EXPECT().
		SaveSession(gomock.Any(), gomock.Any()).
		Return(nil)

	output, err := s.sessionService.CreateSession(s.ctx, &CreateSessionInput{
		ContentType: models.ContentTypeLOL,
		StartsAt:    s.testTime.Add(24 * time.Hour),
	})

	s.Require().NoError(err)
	s.Require().NotNil(output)
	s.Equal(s.testSessionID, output.Session.ID)
	s.Equal(models.SessionStatusScheduled, output.Session.Status)
	s.Equal("editor-token", output.Session.EditorToken)
	s.Equal("admin-token", output.Session.AdminToken)
	s.Require().Len(output.Session.Attendances, 2)
	s.Equal(models.AttendanceUndecided, output.Session.Attendances[0].Status)
	s.Equal("friend-1", output.Session.Attendances[0].FriendID)
}

func (s *SessionServiceTestSuite) TestCreateSession_RegeneratesCollidingAdminToken() {
	s.mockFriendRepo.EXPECT().
		GetActiveFriendIDs(gomock.Any()).
		Return([]string{}, nil)

	// the admin token keeps being regenerated until it differs
	s.mockTokens.EXPECT().NewToken().Return("same-token")
	s.mockTokens.EXPECT().NewToken().Return("same-token")
	s.mockTokens.EXPECT().NewToken().Return("same-token")
	s.mockTokens.EXPECT().NewToken().Return("other-token")

	s.mockUUID.EXPECT().NewUUID().Return(s.testSessionID)
	s.mockSessionRepo.EXPECT().SaveSession(gomock.Any(), gomock.Any()).Return(nil)

	output, err := s.sessionService.CreateSession(s.ctx, &CreateSessionInput{
		ContentType: models.ContentTypeFutsal,
		StartsAt:    s.testTime,
	})

	s.Require().NoError(err)
	s.Equal("same-token", output.Session.EditorToken)
	s.Equal("other-token", output.Session.AdminToken)
}

func (s *SessionServiceTestSuite) TestCreateSession_RejectsUnknownContentType() {
	output, err := s.sessionService.CreateSession(s.ctx, &CreateSessionInput{
		ContentType: models.ContentType("CHESS"),
		StartsAt:    s.testTime,
	})

	s.Require().Error(err)
	s.Nil(output)
}

func (s *SessionServiceTestSuite) TestGetSession_NotFound() {
	s.mockSessionRepo.EXPECT().
		GetSession(gomock.Any(), &sessionRepo.GetSessionInput{SessionID: s.testSessionID}).
		Return(nil, sessionRepo.ErrSessionNotFound)

	output, err := s.sessionService.GetSession(s.ctx, &GetSessionInput{SessionID: s.testSessionID})

	s.Require().Error(err)
	s.Nil(output)
	s.ErrorIs(err, apperr.NotFound)
}

func (s *SessionServiceTestSuite) TestConfirmSession_HappyPath() {
	s.expectGetSession(s.storedSession(models.SessionStatusScheduled))
	s.mockSessionRepo.EXPECT().SaveSession(gomock.Any(), gomock.Any()).Return(nil)

	output, err := s.sessionService.ConfirmSession(s.ctx, &ConfirmSessionInput{SessionID: s.testSessionID})

	s.Require().NoError(err)
	s.Equal(models.SessionStatusConfirmed, output.Session.Status)
}

func (s *SessionServiceTestSuite) TestConfirmSession_RejectsConfirmedSession() {
	s.expectGetSession(s.storedSession(models.SessionStatusConfirmed))

	output, err := s.sessionService.ConfirmSession(s.ctx, &ConfirmSessionInput{SessionID: s.testSessionID})

	s.Require().Error(err)
	s.Nil(output)
	s.ErrorIs(err, apperr.InvalidStateTransition)
}

func (s *SessionServiceTestSuite) TestReopenSession_HappyPath() {
	s.expectGetSession(s.storedSession(models.SessionStatusDone))
	s.mockSessionRepo.EXPECT().SaveSession(gomock.Any(), gomock.Any()).Return(nil)

	output, err := s.sessionService.ReopenSession(s.ctx, &ReopenSessionInput{SessionID: s.testSessionID})

	s.Require().NoError(err)
	s.Equal(models.SessionStatusConfirmed, output.Session.Status)
}

func (s *SessionServiceTestSuite) TestUpdateSessionInfo_DoneSessionIsReadonly() {
	s.expectGetSession(s.storedSession(models.SessionStatusDone))

	title := "new title"
	output, err := s.sessionService.UpdateSessionInfo(s.ctx, &UpdateSessionInfoInput{
		SessionID: s.testSessionID,
		Title:     &title,
		TitleSet:  true,
	})

	s.Require().Error(err)
	s.Nil(output)
	s.ErrorIs(err, apperr.SessionReadonly)
}

func (s *SessionServiceTestSuite) TestSetAttendance_HappyPath() {
	s.expectGetSession(s.storedSession(models.SessionStatusScheduled))
	s.mockSessionRepo.EXPECT().SaveSession(gomock.Any(), gomock.Any()).Return(nil)

	output, err := s.sessionService.SetAttendance(s.ctx, &SetAttendanceInput{
		SessionID: s.testSessionID,
		FriendID:  "friend-1",
		Status:    models.AttendanceAttending,
	})

	s.Require().NoError(err)
	s.Equal(models.AttendanceAttending, output.Session.Attendances[0].Status)
}

func (s *SessionServiceTestSuite) expectStructureLock() {
	s.mockSessionRepo.EXPECT().
		AcquireStructureLock(gomock.Any(), &sessionRepo.AcquireStructureLockInput{
			SessionID: s.testSessionID,
			TTL:       s.lockTTL,
		}).
		Return(true, nil)
	s.mockSessionRepo.EXPECT().
		ReleaseStructureLock(gomock.Any(), &sessionRepo.ReleaseStructureLockInput{
			SessionID: s.testSessionID,
		}).
		Return(nil)
}

func (s *SessionServiceTestSuite) TestSetTeamMember_HappyPath() {
	s.expectStructureLock()
	s.expectGetSession(s.storedSession(models.SessionStatusScheduled))
	s.mockAttachmentRepo.EXPECT().
		CountBySessionIDForUpdate(gomock.Any(), &attachmentRepo.CountBySessionIDInput{SessionID: s.testSessionID}).
		Return(0, nil)
	s.mockUUID.EXPECT().NewUUID().Return("preset-1")
	s.mockSessionRepo.EXPECT().SaveSession(gomock.Any(), gomock.Any()).Return(nil)

	lane := models.LaneMid
	output, err := s.sessionService.SetTeamMember(s.ctx, &SetTeamMemberInput{
		SessionID: s.testSessionID,
		FriendID:  "friend-1",
		Team:      models.TeamA,
		Lane:      &lane,
	})

	s.Require().NoError(err)
	s.Require().Len(output.Session.TeamPresets, 1)
	s.Equal(models.LaneMid, output.Session.TeamPresets[0].Lane)
}

func (s *SessionServiceTestSuite) TestSetTeamMember_LockedByAttachments() {
	s.expectStructureLock()
	s.expectGetSession(s.storedSession(models.SessionStatusScheduled))
	s.mockAttachmentRepo.EXPECT().
		CountBySessionIDForUpdate(gomock.Any(), &attachmentRepo.CountBySessionIDInput{SessionID: s.testSessionID}).
		Return(2, nil)

	output, err := s.sessionService.SetTeamMember(s.ctx, &SetTeamMemberInput{
		SessionID: s.testSessionID,
		FriendID:  "friend-1",
		Team:      models.TeamA,
	})

	s.Require().Error(err)
	s.Nil(output)
	s.ErrorIs(err, apperr.SessionLocked)
}

func (s *SessionServiceTestSuite) TestSetTeamMember_AdminUnlockOverridesAttachments() {
	session := s.storedSession(models.SessionStatusScheduled)
	session.IsAdminUnlocked = true

	s.expectStructureLock()
	s.expectGetSession(session)
	s.mockAttachmentRepo.EXPECT().
		CountBySessionIDForUpdate(gomock.Any(), &attachmentRepo.CountBySessionIDInput{SessionID: s.testSessionID}).
		Return(2, nil)
	s.mockUUID.EXPECT().NewUUID().Return("preset-1")
	s.mockSessionRepo.EXPECT().SaveSession(gomock.Any(), gomock.Any()).Return(nil)

	output, err := s.sessionService.SetTeamMember(s.ctx, &SetTeamMemberInput{
		SessionID: s.testSessionID,
		FriendID:  "friend-1",
		Team:      models.TeamB,
	})

	s.Require().NoError(err)
	s.Len(output.Session.TeamPresets, 1)
}

func (s *SessionServiceTestSuite) TestSetTeamMember_ConcurrentChangeConflicts() {
	s.mockSessionRepo.EXPECT().
		AcquireStructureLock(gomock.Any(), gomock.Any()).
		Return(false, nil)

	output, err := s.sessionService.SetTeamMember(s.ctx, &SetTeamMemberInput{
		SessionID: s.testSessionID,
		FriendID:  "friend-1",
		Team:      models.TeamA,
	})

	s.Require().Error(err)
	s.Nil(output)
	s.ErrorIs(err, apperr.Conflict)
}

func (s *SessionServiceTestSuite) TestBulkSetTeams_HappyPath() {
	s.expectStructureLock()
	s.expectGetSession(s.storedSession(models.SessionStatusScheduled))
	s.mockAttachmentRepo.EXPECT().
		CountBySessionIDForUpdate(gomock.Any(), gomock.Any()).
		Return(0, nil)
	s.mockUUID.EXPECT().NewUUID().Return("preset-1")
	s.mockUUID.EXPECT().NewUUID().Return("preset-2")
	s.mockSessionRepo.EXPECT().SaveSession(gomock.Any(), gomock.Any()).Return(nil)

	output, err := s.sessionService.BulkSetTeams(s.ctx, &BulkSetTeamsInput{
		SessionID: s.testSessionID,
		Assignments: []models.TeamAssignment{
			{FriendID: "friend-1", Team: models.TeamA},
			{FriendID: "friend-2", Team: models.TeamB},
		},
	})

	s.Require().NoError(err)
	s.Len(output.Session.TeamPresets, 2)
}

func (s *SessionServiceTestSuite) TestDeleteSession_CascadesMatchesAndComments() {
	s.expectGetSession(s.storedSession(models.SessionStatusScheduled))
	s.mockMatchRepo.EXPECT().
		DeleteBySession(gomock.Any(), &matchRepo.DeleteBySessionInput{SessionID: s.testSessionID}).
		Return(nil)
	s.mockCommentRepo.EXPECT().
		DeleteBySession(gomock.Any(), &commentRepo.DeleteBySessionInput{SessionID: s.testSessionID}).
		Return(nil)
	s.mockSessionRepo.EXPECT().
		DeleteSession(gomock.Any(), &sessionRepo.DeleteSessionInput{SessionID: s.testSessionID}).
		Return(nil)

	err := s.sessionService.DeleteSession(s.ctx, &DeleteSessionInput{SessionID: s.testSessionID})

	s.Require().NoError(err)
}

func (s *SessionServiceTestSuite) TestValidateToken() {
	s.expectGetSession(s.storedSession(models.SessionStatusScheduled))

	output, err := s.sessionService.ValidateToken(s.ctx, &ValidateTokenInput{
		SessionID: s.testSessionID,
		Token:     "admin-token",
	})

	s.Require().NoError(err)
	s.Equal(models.TokenRoleAdmin, output.Role)
}

func (s *SessionServiceTestSuite) TestValidateToken_RejectsUnknownToken() {
	s.expectGetSession(s.storedSession(models.SessionStatusScheduled))

	output, err := s.sessionService.ValidateToken(s.ctx, &ValidateTokenInput{
		SessionID: s.testSessionID,
		Token:     "wrong",
	})

	s.Require().Error(err)
	s.Nil(output)
	s.ErrorIs(err, apperr.Unauthorized)
}

func (s *SessionServiceTestSuite) TestAddComment_HappyPath() {
	s.expectGetSession(s.storedSession(models.SessionStatusScheduled))
	s.mockUUID.EXPECT().NewUUID().Return("comment-1")
	s.mockCommentRepo.EXPECT().SaveComment(gomock.Any(), gomock.Any()).Return(nil)

	output, err := s.sessionService.AddComment(s.ctx, &AddCommentInput{
		SessionID:   s.testSessionID,
		Body:        "good game",
		DisplayName: "guest",
	})

	s.Require().NoError(err)
	s.Equal("comment-1", output.Comment.ID)
	s.Equal("good game", output.Comment.Body)
	s.Equal(s.testTime, output.Comment.CreatedAt)
}

func (s *SessionServiceTestSuite) TestAddComment_RejectsEmptyBody() {
	output, err := s.sessionService.AddComment(s.ctx, &AddCommentInput{
		SessionID: s.testSessionID,
		Body:      "",
	})

	s.Require().Error(err)
	s.Nil(output)
}
