package models

import (
	"testing"

	"github.com/gamenighthq/gamenight/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatch(t *testing.T, members ...TeamAssignment) *Match {
	t.Helper()
	return NewMatch(NewMatchParams{
		ID:        "match-1",
		SessionID: "session-1",
		MatchNo:   1,
		Members:   members,
		NewID:     sequentialIDs("member-"),
		Now:       testNow,
	})
}

func TestNewMatch(t *testing.T) {
	jungle := LaneJungle
	match := newTestMatch(t,
		TeamAssignment{FriendID: "friend-1", Team: TeamA, Lane: &jungle},
		TeamAssignment{FriendID: "friend-2", Team: TeamB},
	)

	assert.Equal(t, MatchStatusDraft, match.Status)
	assert.Equal(t, SideUnknown, match.WinnerSide)
	assert.Equal(t, SideUnknown, match.TeamASide)
	assert.False(t, match.IsConfirmed)

	require.Len(t, match.Members, 2)
	assert.Equal(t, LaneJungle, match.Members[0].Lane)
	assert.Equal(t, LaneUnknown, match.Members[1].Lane)
	assert.Equal(t, "match-1", match.Members[0].MatchID)
}

func TestSetLane(t *testing.T) {
	match := newTestMatch(t, TeamAssignment{FriendID: "friend-1", Team: TeamA})

	match.SetLane("friend-1", LaneADC, testNow)
	assert.Equal(t, LaneADC, match.Members[0].Lane)

	// unknown friends are ignored without creating a row
	match.SetLane("stranger", LaneTop, testNow)
	assert.Len(t, match.Members, 1)
}

func TestSetChampion(t *testing.T) {
	match := newTestMatch(t, TeamAssignment{FriendID: "friend-1", Team: TeamA})

	champion := "  Ahri  "
	match.SetChampion("friend-1", &champion, testNow)
	require.NotNil(t, match.Members[0].Champion)
	assert.Equal(t, "Ahri", *match.Members[0].Champion)

	// blank clears
	blank := "   "
	match.SetChampion("friend-1", &blank, testNow)
	assert.Nil(t, match.Members[0].Champion)

	match.SetChampion("friend-1", &champion, testNow)
	match.SetChampion("friend-1", nil, testNow)
	assert.Nil(t, match.Members[0].Champion)
}

func TestConfirmResult(t *testing.T) {
	match := newTestMatch(t)

	match.ConfirmResult(SideA, SideB, testNow)
	assert.Equal(t, MatchStatusCompleted, match.Status)
	assert.True(t, match.IsConfirmed)
	assert.Equal(t, SideA, match.WinnerSide)
	assert.Equal(t, SideB, match.TeamASide)

	// re-confirming with a corrected result is allowed
	match.ConfirmResult(SideB, SideB, testNow)
	assert.Equal(t, SideB, match.WinnerSide)
	assert.True(t, match.IsConfirmed)
}

func TestEnsureDeletable(t *testing.T) {
	match := newTestMatch(t)
	assert.NoError(t, match.EnsureDeletable())

	match.ConfirmResult(SideA, SideA, testNow)
	assert.ErrorIs(t, match.EnsureDeletable(), apperr.ConfirmedMatchUndeletable)
}

func TestTeamWon(t *testing.T) {
	cases := []struct {
		name       string
		winnerSide Side
		teamASide  Side
		teamAWon   bool
	}{
		{"team A on winning side", SideA, SideA, true},
		{"team A on losing side", SideA, SideB, false},
		{"team B mapping mirrored", SideB, SideB, true},
		{"team B on winning side", SideB, SideA, false},
		{"both sides unknown counts as team A win", SideUnknown, SideUnknown, true},
		{"winner unknown, team A on A", SideUnknown, SideA, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			match := newTestMatch(t)
			match.ConfirmResult(tc.winnerSide, tc.teamASide, testNow)

			assert.Equal(t, tc.teamAWon, match.TeamWon(TeamA))
			assert.Equal(t, !tc.teamAWon, match.TeamWon(TeamB))
		})
	}
}

func matchStatsFixture(winnerSide, teamASide Side) *MatchStats {
	return &MatchStats{
		MatchID:    "match-1",
		SessionID:  "session-1",
		WinnerSide: winnerSide,
		TeamASide:  teamASide,
	}
}

func TestMatchStatsTeamWon(t *testing.T) {
	assert.True(t, matchStatsFixture(SideA, SideA).TeamWon(TeamA))
	assert.False(t, matchStatsFixture(SideA, SideB).TeamWon(TeamA))
	assert.True(t, matchStatsFixture(SideA, SideB).TeamWon(TeamB))
	assert.True(t, matchStatsFixture(SideUnknown, SideUnknown).TeamWon(TeamA))
}
