package models

// MatchStats is the read-only snapshot of one confirmed match as
// consumed by the stats use cases. It carries only the raw result and
// per-player rows; all derived numbers are computed by the caller.
type MatchStats struct {
	// MatchID is the match this snapshot was taken from
	MatchID string

	// SessionID is the session the match belongs to
	SessionID string

	// WinnerSide is the side that won
	WinnerSide Side

	// TeamASide is the side Team A played on
	TeamASide Side

	// Members are the per-player rows
	Members []MatchStatsMember
}

// MatchStatsMember is one friend's raw row within a confirmed match
type MatchStatsMember struct {
	// FriendID is the friend who played
	FriendID string

	// Team is the team the friend played on
	Team Team

	// Lane is the position the friend played
	Lane Lane

	// Champion is the champion played, if recorded
	Champion *string
}

// TeamWon reports whether the given team won this match, using the
// same side mapping as Match.TeamWon.
func (m *MatchStats) TeamWon(team Team) bool {
	return (team == TeamA) == (m.WinnerSide == m.TeamASide)
}
