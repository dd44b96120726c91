package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/gamenighthq/gamenight/internal/repositories/session Repository

import (
	"context"

	"github.com/gamenighthq/gamenight/internal/models"
)

// Repository defines the interface for session persistence. SaveSession
// is a full upsert: the stored attendance and team preset collections
// are replaced by the aggregate's current ones.
type Repository interface {
	// SaveSession persists a session with its child collections
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// ListSessions retrieves all sessions ordered by start time
	ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error)

	// DeleteSession removes a session
	DeleteSession(ctx context.Context, input *DeleteSessionInput) error

	// AcquireStructureLock takes the short-lived per-session lock that
	// serializes attachment-count reads with structure writes. Returns
	// false when another caller holds it.
	AcquireStructureLock(ctx context.Context, input *AcquireStructureLockInput) (bool, error)

	// ReleaseStructureLock releases the per-session structure lock
	ReleaseStructureLock(ctx context.Context, input *ReleaseStructureLockInput) error
}
