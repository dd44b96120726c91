package models

// AttendanceStatus represents a friend's RSVP state for a session
type AttendanceStatus string

const (
	// AttendanceUndecided indicates the friend has not answered yet
	AttendanceUndecided AttendanceStatus = "UNDECIDED"

	// AttendanceAttending indicates the friend will attend
	AttendanceAttending AttendanceStatus = "ATTENDING"

	// AttendanceNotAttending indicates the friend will not attend
	AttendanceNotAttending AttendanceStatus = "NOT_ATTENDING"
)

// Attendance is one friend's RSVP row for a session. One row exists per
// (session, friend); rows are created for every active friend when the
// session is created and only their status changes afterwards.
type Attendance struct {
	// ID is the unique identifier for this attendance row
	ID string

	// SessionID is the owning session
	SessionID string

	// FriendID is the friend this row tracks
	FriendID string

	// Status is the friend's current RSVP state
	Status AttendanceStatus
}
