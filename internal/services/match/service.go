package match

import (
	"context"
	"errors"

	"github.com/gamenighthq/gamenight/internal/apperr"
	"github.com/gamenighthq/gamenight/internal/common/clock"
	"github.com/gamenighthq/gamenight/internal/common/uuid"
	"github.com/gamenighthq/gamenight/internal/models"
	matchRepo "github.com/gamenighthq/gamenight/internal/repositories/match"
	sessionRepo "github.com/gamenighthq/gamenight/internal/repositories/session"
	"github.com/samber/lo"
)

// service implements the Service interface
type service struct {
	matchRepo   matchRepo.Repository
	sessionRepo sessionRepo.Repository
	clock       clock.Clock
	uuidGen     uuid.UUID
}

// New creates a new match service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.MatchRepo == nil {
		return nil, ErrNilMatchRepo
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		matchRepo:   cfg.MatchRepo,
		sessionRepo: cfg.SessionRepo,
		clock:       cfg.Clock,
		uuidGen:     cfg.UUIDGenerator,
	}, nil
}

// CreateMatch records a new draft match. The match number comes from
// the session's counter; members default to the session's team presets
// when none are given.
func (s *service) CreateMatch(ctx context.Context, input *CreateMatchInput) (*CreateMatchOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{SessionID: input.SessionID})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, apperr.NotFound.WithMessagef("session %s not found", input.SessionID)
		}
		return nil, err
	}

	matchNo, err := s.matchRepo.GetNextMatchNo(ctx, &matchRepo.GetNextMatchNoInput{SessionID: input.SessionID})
	if err != nil {
		return nil, err
	}

	members := input.Members
	if len(members) == 0 {
		members = lo.Map(session.TeamPresets, func(preset *models.TeamPresetMember, _ int) models.TeamAssignment {
			lane := preset.Lane
			return models.TeamAssignment{
				FriendID: preset.FriendID,
				Team:     preset.Team,
				Lane:     &lane,
			}
		})
	}

	match := models.NewMatch(models.NewMatchParams{
		ID:        s.uuidGen.NewUUID(),
		SessionID: input.SessionID,
		MatchNo:   matchNo,
		Members:   members,
		NewID:     s.uuidGen.NewUUID,
		Now:       s.clock.Now(),
	})

	if err := s.matchRepo.SaveMatch(ctx, &matchRepo.SaveMatchInput{Match: match}); err != nil {
		return nil, err
	}

	return &CreateMatchOutput{Match: match}, nil
}

// GetMatch retrieves a match by ID
func (s *service) GetMatch(ctx context.Context, input *GetMatchInput) (*GetMatchOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	match, err := s.getMatch(ctx, input.MatchID)
	if err != nil {
		return nil, err
	}

	return &GetMatchOutput{Match: match}, nil
}

// ListMatches retrieves a session's matches ordered by match number
func (s *service) ListMatches(ctx context.Context, input *ListMatchesInput) (*ListMatchesOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	result, err := s.matchRepo.GetMatchesBySession(ctx, &matchRepo.GetMatchesBySessionInput{SessionID: input.SessionID})
	if err != nil {
		return nil, err
	}

	return &ListMatchesOutput{Matches: result.Matches}, nil
}

// SetLane updates one member's lane; unknown friends are a silent no-op
func (s *service) SetLane(ctx context.Context, input *SetLaneInput) (*SetLaneOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	match, err := s.getMatch(ctx, input.MatchID)
	if err != nil {
		return nil, err
	}

	match.SetLane(input.FriendID, input.Lane, s.clock.Now())

	if err := s.matchRepo.SaveMatch(ctx, &matchRepo.SaveMatchInput{Match: match}); err != nil {
		return nil, err
	}

	return &SetLaneOutput{Match: match}, nil
}

// SetChampion updates one member's champion; unknown friends are a
// silent no-op
func (s *service) SetChampion(ctx context.Context, input *SetChampionInput) (*SetChampionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	match, err := s.getMatch(ctx, input.MatchID)
	if err != nil {
		return nil, err
	}

	match.SetChampion(input.FriendID, input.Champion, s.clock.Now())

	if err := s.matchRepo.SaveMatch(ctx, &matchRepo.SaveMatchInput{Match: match}); err != nil {
		return nil, err
	}

	return &SetChampionOutput{Match: match}, nil
}

// ConfirmResult locks in the match result. Re-confirming an already
// completed match overwrites the previous result.
func (s *service) ConfirmResult(ctx context.Context, input *ConfirmResultInput) (*ConfirmResultOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	match, err := s.getMatch(ctx, input.MatchID)
	if err != nil {
		return nil, err
	}

	match.ConfirmResult(input.WinnerSide, input.TeamASide, s.clock.Now())

	if err := s.matchRepo.SaveMatch(ctx, &matchRepo.SaveMatchInput{Match: match}); err != nil {
		return nil, err
	}

	return &ConfirmResultOutput{Match: match}, nil
}

// DeleteMatch removes a match, refusing confirmed ones
func (s *service) DeleteMatch(ctx context.Context, input *DeleteMatchInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	match, err := s.getMatch(ctx, input.MatchID)
	if err != nil {
		return err
	}

	if err := match.EnsureDeletable(); err != nil {
		return err
	}

	return s.matchRepo.DeleteMatch(ctx, &matchRepo.DeleteMatchInput{MatchID: input.MatchID})
}

// getMatch loads a match, translating the repository sentinel into the
// domain not-found error
func (s *service) getMatch(ctx context.Context, matchID string) (*models.Match, error) {
	match, err := s.matchRepo.GetMatch(ctx, &matchRepo.GetMatchInput{MatchID: matchID})
	if err != nil {
		if errors.Is(err, matchRepo.ErrMatchNotFound) {
			return nil, apperr.NotFound.WithMessagef("match %s not found", matchID)
		}
		return nil, err
	}
	return match, nil
}
