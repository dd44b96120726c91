package attachment

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/gamenighthq/gamenight/internal/repositories/attachment Repository

import "context"

// Repository reads the per-session photo counter maintained by the
// upload pipeline. The counter only feeds the structural-change lock;
// attachments themselves are not stored here.
type Repository interface {
	// CountBySessionID returns the number of photos attached to a
	// session
	CountBySessionID(ctx context.Context, input *CountBySessionIDInput) (int, error)

	// CountBySessionIDForUpdate is the variant callers use while
	// holding the session structure lock, so the count cannot change
	// between the check and the subsequent write
	CountBySessionIDForUpdate(ctx context.Context, input *CountBySessionIDInput) (int, error)
}
