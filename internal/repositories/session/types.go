package session

import (
	"time"

	"github.com/gamenighthq/gamenight/internal/models"
)

type SaveSessionInput struct {
	Session *models.Session
}

type GetSessionInput struct {
	SessionID string
}

type ListSessionsInput struct {
}

type ListSessionsOutput struct {
	Sessions []*models.Session
}

type DeleteSessionInput struct {
	SessionID string
}

type AcquireStructureLockInput struct {
	SessionID string
	TTL       time.Duration
}

type ReleaseStructureLockInput struct {
	SessionID string
}
