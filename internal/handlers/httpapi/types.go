package httpapi

import (
	"encoding/json"
	"time"

	"github.com/gamenighthq/gamenight/internal/models"
	friendService "github.com/gamenighthq/gamenight/internal/services/friend"
	matchService "github.com/gamenighthq/gamenight/internal/services/match"
	sessionService "github.com/gamenighthq/gamenight/internal/services/session"
	statsService "github.com/gamenighthq/gamenight/internal/services/stats"
	"go.uber.org/zap"
)

// Config holds configuration for the HTTP handler
type Config struct {
	SessionService sessionService.Service
	MatchService   matchService.Service
	FriendService  friendService.Service
	StatsService   statsService.Service
	Logger         *zap.Logger
}

type createSessionRequest struct {
	ContentType string    `json:"contentType" validate:"required,oneof=LOL FUTSAL"`
	Title       *string   `json:"title"`
	StartsAt    time.Time `json:"startsAt" validate:"required"`
}

// updateSessionRequest keeps title tri-state: an absent key leaves the
// title alone, an explicit null clears it
type updateSessionRequest struct {
	Title    json.RawMessage `json:"title"`
	StartsAt *time.Time      `json:"startsAt"`
}

type setAttendanceRequest struct {
	FriendID string `json:"friendId" validate:"required"`
	Status   string `json:"status" validate:"required,oneof=UNDECIDED ATTENDING NOT_ATTENDING"`
}

type teamAssignmentRequest struct {
	FriendID string  `json:"friendId" validate:"required"`
	Team     string  `json:"team" validate:"required,oneof=A B"`
	Lane     *string `json:"lane" validate:"omitempty,oneof=UNKNOWN TOP JUNGLE MID ADC SUPPORT"`
}

type bulkSetTeamsRequest struct {
	Assignments []teamAssignmentRequest `json:"assignments" validate:"required,min=1,dive"`
}

type createMatchRequest struct {
	Members []teamAssignmentRequest `json:"members" validate:"omitempty,dive"`
}

type setLaneRequest struct {
	FriendID string `json:"friendId" validate:"required"`
	Lane     string `json:"lane" validate:"required,oneof=UNKNOWN TOP JUNGLE MID ADC SUPPORT"`
}

type setChampionRequest struct {
	FriendID string  `json:"friendId" validate:"required"`
	Champion *string `json:"champion"`
}

type confirmResultRequest struct {
	WinnerSide string `json:"winnerSide" validate:"required,oneof=UNKNOWN A B"`
	TeamASide  string `json:"teamASide" validate:"required,oneof=UNKNOWN A B"`
}

type addCommentRequest struct {
	Body        string `json:"body" validate:"required"`
	DisplayName string `json:"displayName"`
}

type attendanceResponse struct {
	FriendID string `json:"friendId"`
	Status   string `json:"status"`
}

type teamPresetResponse struct {
	FriendID string `json:"friendId"`
	Team     string `json:"team"`
	Lane     string `json:"lane"`
}

type sessionResponse struct {
	ID              string               `json:"id"`
	ContentType     string               `json:"contentType"`
	Title           *string              `json:"title"`
	StartsAt        time.Time            `json:"startsAt"`
	Status          string               `json:"status"`
	IsAdminUnlocked bool                 `json:"isAdminUnlocked"`
	Attendances     []attendanceResponse `json:"attendances"`
	TeamPresets     []teamPresetResponse `json:"teamPresets"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// createSessionResponse is the only place the access tokens ever leave
// the API
type createSessionResponse struct {
	sessionResponse
	EditorToken string `json:"editorToken"`
	AdminToken  string `json:"adminToken"`
}

type matchMemberResponse struct {
	FriendID string  `json:"friendId"`
	Team     string  `json:"team"`
	Lane     string  `json:"lane"`
	Champion *string `json:"champion"`
}

type matchResponse struct {
	ID          string                `json:"id"`
	SessionID   string                `json:"sessionId"`
	MatchNo     int                   `json:"matchNo"`
	Status      string                `json:"status"`
	WinnerSide  string                `json:"winnerSide"`
	TeamASide   string                `json:"teamASide"`
	IsConfirmed bool                  `json:"isConfirmed"`
	Members     []matchMemberResponse `json:"members"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

type commentResponse struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"sessionId"`
	Body        string    `json:"body"`
	DisplayName string    `json:"displayName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func toSessionResponse(session *models.Session) sessionResponse {
	attendances := make([]attendanceResponse, 0, len(session.Attendances))
	for _, attendance := range session.Attendances {
		attendances = append(attendances, attendanceResponse{
			FriendID: attendance.FriendID,
			Status:   string(attendance.Status),
		})
	}

	presets := make([]teamPresetResponse, 0, len(session.TeamPresets))
	for _, preset := range session.TeamPresets {
		presets = append(presets, teamPresetResponse{
			FriendID: preset.FriendID,
			Team:     string(preset.Team),
			Lane:     string(preset.Lane),
		})
	}

	return sessionResponse{
		ID:              session.ID,
		ContentType:     string(session.ContentType),
		Title:           session.Title,
		StartsAt:        session.StartsAt,
		Status:          string(session.Status),
		IsAdminUnlocked: session.IsAdminUnlocked,
		Attendances:     attendances,
		TeamPresets:     presets,
		CreatedAt:       session.CreatedAt,
		UpdatedAt:       session.UpdatedAt,
	}
}

func toMatchResponse(match *models.Match) matchResponse {
	members := make([]matchMemberResponse, 0, len(match.Members))
	for _, member := range match.Members {
		members = append(members, matchMemberResponse{
			FriendID: member.FriendID,
			Team:     string(member.Team),
			Lane:     string(member.Lane),
			Champion: member.Champion,
		})
	}

	return matchResponse{
		ID:          match.ID,
		SessionID:   match.SessionID,
		MatchNo:     match.MatchNo,
		Status:      string(match.Status),
		WinnerSide:  string(match.WinnerSide),
		TeamASide:   string(match.TeamASide),
		IsConfirmed: match.IsConfirmed,
		Members:     members,
		CreatedAt:   match.CreatedAt,
		UpdatedAt:   match.UpdatedAt,
	}
}

func toCommentResponse(comment *models.Comment) commentResponse {
	return commentResponse{
		ID:          comment.ID,
		SessionID:   comment.SessionID,
		Body:        comment.Body,
		DisplayName: comment.DisplayName,
		CreatedAt:   comment.CreatedAt,
	}
}

func toTeamAssignments(requests []teamAssignmentRequest) []models.TeamAssignment {
	assignments := make([]models.TeamAssignment, 0, len(requests))
	for _, request := range requests {
		assignment := models.TeamAssignment{
			FriendID: request.FriendID,
			Team:     models.Team(request.Team),
		}
		if request.Lane != nil {
			lane := models.Lane(*request.Lane)
			assignment.Lane = &lane
		}
		assignments = append(assignments, assignment)
	}
	return assignments
}
