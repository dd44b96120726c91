package stats

import "context"

// Service defines the interface for the read-only stats use cases
type Service interface {
	// GetStatsOverview computes win/loss stats for every friend
	GetStatsOverview(ctx context.Context, input *GetStatsOverviewInput) (*GetStatsOverviewOutput, error)

	// GetStatsDetail computes one friend's summary, lane distribution
	// and top champions
	GetStatsDetail(ctx context.Context, input *GetStatsDetailInput) (*GetStatsDetailOutput, error)
}
