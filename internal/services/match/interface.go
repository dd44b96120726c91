package match

import "context"

// Service defines the interface for match operations
type Service interface {
	// CreateMatch records a new draft match within a session, numbered
	// from the session's match counter
	CreateMatch(ctx context.Context, input *CreateMatchInput) (*CreateMatchOutput, error)

	// GetMatch retrieves a match by ID
	GetMatch(ctx context.Context, input *GetMatchInput) (*GetMatchOutput, error)

	// ListMatches retrieves a session's matches ordered by match number
	ListMatches(ctx context.Context, input *ListMatchesInput) (*ListMatchesOutput, error)

	// SetLane updates one member's lane
	SetLane(ctx context.Context, input *SetLaneInput) (*SetLaneOutput, error)

	// SetChampion updates one member's champion
	SetChampion(ctx context.Context, input *SetChampionInput) (*SetChampionOutput, error)

	// ConfirmResult locks in the match result
	ConfirmResult(ctx context.Context, input *ConfirmResultInput) (*ConfirmResultOutput, error)

	// DeleteMatch removes a match, refusing confirmed ones
	DeleteMatch(ctx context.Context, input *DeleteMatchInput) error
}
