package models

import (
	"time"
)

// Comment is a note left on a session. Comments are append-only; they
// are created and deleted but never edited.
type Comment struct {
	// ID is the unique identifier for this comment
	ID string

	// SessionID is the session the comment belongs to
	SessionID string

	// Body is the comment text
	Body string

	// DisplayName is the optional name the author signed with
	DisplayName string

	// CreatedAt is when the comment was posted
	CreatedAt time.Time
}
