package models

import (
	"time"

	"github.com/gamenighthq/gamenight/internal/apperr"
)

// ContentType represents what kind of event a session is
type ContentType string

const (
	// ContentTypeLOL is a League of Legends session
	ContentTypeLOL ContentType = "LOL"

	// ContentTypeFutsal is a futsal session
	ContentTypeFutsal ContentType = "FUTSAL"
)

// SessionStatus represents the lifecycle state of a session
type SessionStatus string

const (
	// SessionStatusScheduled indicates the session has been announced
	// but not yet locked in
	SessionStatusScheduled SessionStatus = "SCHEDULED"

	// SessionStatusConfirmed indicates the session will happen
	SessionStatusConfirmed SessionStatus = "CONFIRMED"

	// SessionStatusDone indicates the session has taken place
	SessionStatusDone SessionStatus = "DONE"
)

// TokenRole is the access level a session token grants
type TokenRole string

const (
	// TokenRoleEditor grants regular mutation access
	TokenRoleEditor TokenRole = "editor"

	// TokenRoleAdmin additionally grants unlock and delete access
	TokenRoleAdmin TokenRole = "admin"
)

// Session is one scheduled gaming event. It owns the attendance rows
// and team presets for its friends; both collections are mutated only
// through the session's methods.
type Session struct {
	Entity

	// ContentType is what the group is playing
	ContentType ContentType

	// Title is an optional label for the session
	Title *string

	// StartsAt is when the session starts
	StartsAt time.Time

	// Status is the lifecycle state
	Status SessionStatus

	// EditorToken is the opaque secret granting editor access.
	// Generated once at creation and never regenerated.
	EditorToken string

	// AdminToken is the opaque secret granting admin access.
	// Generated once at creation and never regenerated.
	AdminToken string

	// IsAdminUnlocked overrides the structural-change lock when true
	IsAdminUnlocked bool

	// Attendances holds one RSVP row per friend known at creation time
	Attendances []*Attendance

	// TeamPresets holds the planned team/lane per friend
	TeamPresets []*TeamPresetMember
}

// NewSessionParams contains everything needed to create a session
type NewSessionParams struct {
	// ID is the session's unique identifier
	ID string

	// ContentType is what the group is playing
	ContentType ContentType

	// Title is an optional label
	Title *string

	// StartsAt is when the session starts
	StartsAt time.Time

	// EditorToken and AdminToken are the pre-generated access secrets
	EditorToken string
	AdminToken  string

	// FriendIDs are the active friends to create attendance rows for
	FriendIDs []string

	// NewID generates ids for the attendance rows
	NewID func() string

	// Now is the creation time
	Now time.Time
}

// NewSession creates a session in the SCHEDULED state with an UNDECIDED
// attendance row for every given friend.
func NewSession(p NewSessionParams) *Session {
	session := &Session{
		Entity:      NewEntity(p.ID, p.Now),
		ContentType: p.ContentType,
		Title:       p.Title,
		StartsAt:    p.StartsAt,
		Status:      SessionStatusScheduled,
		EditorToken: p.EditorToken,
		AdminToken:  p.AdminToken,
		Attendances: make([]*Attendance, 0, len(p.FriendIDs)),
		TeamPresets: []*TeamPresetMember{},
	}

	for _, friendID := range p.FriendIDs {
		session.Attendances = append(session.Attendances, &Attendance{
			ID:        p.NewID(),
			SessionID: p.ID,
			FriendID:  friendID,
			Status:    AttendanceUndecided,
		})
	}

	return session
}

// Confirm moves the session from SCHEDULED to CONFIRMED
func (s *Session) Confirm(now time.Time) error {
	if s.Status != SessionStatusScheduled {
		return apperr.InvalidStateTransition
	}
	s.Status = SessionStatusConfirmed
	s.Touch(now)
	return nil
}

// MarkDone moves the session from CONFIRMED to DONE
func (s *Session) MarkDone(now time.Time) error {
	if s.Status != SessionStatusConfirmed {
		return apperr.InvalidStateTransition
	}
	s.Status = SessionStatusDone
	s.Touch(now)
	return nil
}

// Reopen moves the session from DONE back to CONFIRMED
func (s *Session) Reopen(now time.Time) error {
	if s.Status != SessionStatusDone {
		return apperr.InvalidStateTransition
	}
	s.Status = SessionStatusConfirmed
	s.Touch(now)
	return nil
}

// SessionInfoUpdate carries the updatable session fields. A field is
// applied only when its pointer (or Set flag) is present; TitleSet with
// a nil Title clears the title.
type SessionInfoUpdate struct {
	Title    *string
	TitleSet bool
	StartsAt *time.Time
}

// UpdateInfo applies the given field updates. DONE sessions are
// read-only.
func (s *Session) UpdateInfo(update SessionInfoUpdate, now time.Time) error {
	if s.Status == SessionStatusDone {
		return apperr.SessionReadonly
	}

	if update.TitleSet {
		s.Title = update.Title
	}
	if update.StartsAt != nil {
		s.StartsAt = *update.StartsAt
	}
	s.Touch(now)
	return nil
}

// SetAttendance overwrites the RSVP status for a friend. Friends
// without an attendance row are silently ignored; no row is created.
func (s *Session) SetAttendance(friendID string, status AttendanceStatus, now time.Time) {
	for _, attendance := range s.Attendances {
		if attendance.FriendID == friendID {
			attendance.Status = status
			s.Touch(now)
			return
		}
	}
}

// SetTeamMember upserts a friend's team preset. An existing row has its
// team and lane overwritten; otherwise a new row is created. A nil lane
// defaults to LaneUnknown.
func (s *Session) SetTeamMember(friendID string, team Team, lane *Lane, newID func() string, now time.Time) {
	effectiveLane := LaneUnknown
	if lane != nil {
		effectiveLane = *lane
	}

	for _, preset := range s.TeamPresets {
		if preset.FriendID == friendID {
			preset.Team = team
			preset.Lane = effectiveLane
			s.Touch(now)
			return
		}
	}

	s.TeamPresets = append(s.TeamPresets, &TeamPresetMember{
		ID:        newID(),
		SessionID: s.ID,
		FriendID:  friendID,
		Team:      team,
		Lane:      effectiveLane,
	})
	s.Touch(now)
}

// BulkSetTeams upserts a batch of team presets
func (s *Session) BulkSetTeams(assignments []TeamAssignment, newID func() string, now time.Time) {
	for _, assignment := range assignments {
		s.SetTeamMember(assignment.FriendID, assignment.Team, assignment.Lane, newID, now)
	}
}

// CheckStructureChangeAllowed fails when photos have been attached and
// the admin has not unlocked the session. Callers must pass the current
// attachment count, read under the structure lock, before mutating team
// presets. Attendance changes are not gated by this check.
func (s *Session) CheckStructureChangeAllowed(attachmentCount int) error {
	if attachmentCount > 0 && !s.IsAdminUnlocked {
		return apperr.SessionLocked
	}
	return nil
}

// AdminUnlock disables the structural-change lock
func (s *Session) AdminUnlock(now time.Time) {
	s.IsAdminUnlocked = true
	s.Touch(now)
}

// AdminRelock re-enables the structural-change lock
func (s *Session) AdminRelock(now time.Time) {
	s.IsAdminUnlocked = false
	s.Touch(now)
}

// ValidateToken resolves a presented token to the role it grants
func (s *Session) ValidateToken(token string) (TokenRole, error) {
	switch token {
	case s.EditorToken:
		return TokenRoleEditor, nil
	case s.AdminToken:
		return TokenRoleAdmin, nil
	default:
		return "", apperr.Unauthorized
	}
}
