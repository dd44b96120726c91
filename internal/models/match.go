package models

import (
	"strings"
	"time"

	"github.com/gamenighthq/gamenight/internal/apperr"
)

// MatchStatus represents the lifecycle state of a match
type MatchStatus string

const (
	// MatchStatusDraft indicates the match is being composed
	MatchStatusDraft MatchStatus = "DRAFT"

	// MatchStatusCompleted indicates the result has been recorded
	MatchStatusCompleted MatchStatus = "COMPLETED"
)

// Side represents a physical side (blue/red pitch end) a team played on
type Side string

const (
	// SideUnknown indicates no side has been recorded
	SideUnknown Side = "UNKNOWN"

	// SideA is the first side
	SideA Side = "A"

	// SideB is the second side
	SideB Side = "B"
)

// Match is one recorded game within a session. It owns the per-player
// team member rows; members are mutated only through the match's
// methods.
type Match struct {
	Entity

	// SessionID is the session this match belongs to
	SessionID string

	// MatchNo is the 1-based match number within the session. Assigned
	// from the per-session counter at creation and never reused.
	MatchNo int

	// Status is the lifecycle state
	Status MatchStatus

	// WinnerSide is the side that won
	WinnerSide Side

	// TeamASide is the side Team A played on
	TeamASide Side

	// IsConfirmed locks the result and deletion once true; it never
	// reverts
	IsConfirmed bool

	// Members holds the per-player assignments
	Members []*MatchTeamMember
}

// NewMatchParams contains everything needed to create a match
type NewMatchParams struct {
	// ID is the match's unique identifier
	ID string

	// SessionID is the owning session
	SessionID string

	// MatchNo is the caller-supplied match number, taken as
	// authoritative
	MatchNo int

	// Members are the initial team assignments
	Members []TeamAssignment

	// NewID generates ids for the member rows
	NewID func() string

	// Now is the creation time
	Now time.Time
}

// NewMatch creates a draft match with one member row per assignment
func NewMatch(p NewMatchParams) *Match {
	match := &Match{
		Entity:     NewEntity(p.ID, p.Now),
		SessionID:  p.SessionID,
		MatchNo:    p.MatchNo,
		Status:     MatchStatusDraft,
		WinnerSide: SideUnknown,
		TeamASide:  SideUnknown,
		Members:    make([]*MatchTeamMember, 0, len(p.Members)),
	}

	for _, assignment := range p.Members {
		lane := LaneUnknown
		if assignment.Lane != nil {
			lane = *assignment.Lane
		}
		match.Members = append(match.Members, &MatchTeamMember{
			ID:       p.NewID(),
			MatchID:  p.ID,
			FriendID: assignment.FriendID,
			Team:     assignment.Team,
			Lane:     lane,
		})
	}

	return match
}

// SetLane updates a member's lane. Friends without a member row are
// silently ignored.
func (m *Match) SetLane(friendID string, lane Lane, now time.Time) {
	for _, member := range m.Members {
		if member.FriendID == friendID {
			member.Lane = lane
			m.Touch(now)
			return
		}
	}
}

// SetChampion updates a member's champion. The name is trimmed; empty
// or absent clears it. Friends without a member row are silently
// ignored.
func (m *Match) SetChampion(friendID string, champion *string, now time.Time) {
	for _, member := range m.Members {
		if member.FriendID != friendID {
			continue
		}
		if champion == nil {
			member.Champion = nil
		} else if trimmed := strings.TrimSpace(*champion); trimmed == "" {
			member.Champion = nil
		} else {
			member.Champion = &trimmed
		}
		m.Touch(now)
		return
	}
}

// ConfirmResult records the winner and side mapping, completes the
// match and locks it for deletion. It is callable from any status, so
// re-confirming with a corrected result is allowed.
//
// Side values are accepted as given, including SideUnknown; an
// UNKNOWN/UNKNOWN result makes TeamWon report a Team A win.
func (m *Match) ConfirmResult(winnerSide, teamASide Side, now time.Time) {
	m.WinnerSide = winnerSide
	m.TeamASide = teamASide
	m.Status = MatchStatusCompleted
	m.IsConfirmed = true
	m.Touch(now)
}

// EnsureDeletable fails once the match result has been confirmed
func (m *Match) EnsureDeletable() error {
	if m.IsConfirmed {
		return apperr.ConfirmedMatchUndeletable
	}
	return nil
}

// TeamWon reports whether the given team won. Team A played on
// TeamASide, so Team A won iff WinnerSide equals TeamASide and Team B
// won iff they differ.
func (m *Match) TeamWon(team Team) bool {
	return (team == TeamA) == (m.WinnerSide == m.TeamASide)
}
