package models

// Team identifies one of the two teams in a session or match
type Team string

const (
	// TeamA is the first team
	TeamA Team = "A"

	// TeamB is the second team
	TeamB Team = "B"
)

// Lane represents a playing position. For futsal sessions only
// LaneUnknown is used.
type Lane string

const (
	// LaneUnknown indicates no position has been assigned
	LaneUnknown Lane = "UNKNOWN"

	// LaneTop is the top lane
	LaneTop Lane = "TOP"

	// LaneJungle is the jungle position
	LaneJungle Lane = "JUNGLE"

	// LaneMid is the mid lane
	LaneMid Lane = "MID"

	// LaneADC is the bot-lane carry position
	LaneADC Lane = "ADC"

	// LaneSupport is the support position
	LaneSupport Lane = "SUPPORT"
)

// TeamPresetMember is a friend's planned team and lane for a session.
// Presets are copied into new matches at creation time. At most one row
// exists per (session, friend).
type TeamPresetMember struct {
	// ID is the unique identifier for this preset row
	ID string

	// SessionID is the owning session
	SessionID string

	// FriendID is the friend this preset assigns
	FriendID string

	// Team is the planned team
	Team Team

	// Lane is the planned lane
	Lane Lane
}

// TeamAssignment is the caller-facing shape for a single team/lane
// assignment, used by preset upserts and match creation.
type TeamAssignment struct {
	// FriendID is the friend being assigned
	FriendID string

	// Team is the team to place the friend on
	Team Team

	// Lane is the optional lane; nil defaults to LaneUnknown
	Lane *Lane
}
