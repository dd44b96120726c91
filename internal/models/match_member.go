package models

// MatchTeamMember is one friend's assignment within a match. The team
// is fixed at creation; lane and champion stay editable, even after the
// result is confirmed.
type MatchTeamMember struct {
	// ID is the unique identifier for this member row
	ID string

	// MatchID is the owning match
	MatchID string

	// FriendID is the friend playing
	FriendID string

	// Team is the team the friend played on
	Team Team

	// Lane is the position the friend played
	Lane Lane

	// Champion is the champion played, if recorded
	Champion *string
}
