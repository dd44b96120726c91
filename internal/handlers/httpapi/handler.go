package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gamenighthq/gamenight/internal/models"
	friendService "github.com/gamenighthq/gamenight/internal/services/friend"
	matchService "github.com/gamenighthq/gamenight/internal/services/match"
	sessionService "github.com/gamenighthq/gamenight/internal/services/session"
	statsService "github.com/gamenighthq/gamenight/internal/services/stats"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Handler carries the HTTP surface over the application services
type Handler struct {
	sessions sessionService.Service
	matches  matchService.Service
	friends  friendService.Service
	stats    statsService.Service
	logger   *zap.Logger
	validate *validator.Validate
}

// HandlerError is a custom error type for handler wiring errors
type HandlerError string

// Error implements the error interface
func (e HandlerError) Error() string {
	return string(e)
}

const (
	ErrNilConfig         HandlerError = "config cannot be nil"
	ErrNilSessionService HandlerError = "session service cannot be nil"
	ErrNilMatchService   HandlerError = "match service cannot be nil"
	ErrNilFriendService  HandlerError = "friend service cannot be nil"
	ErrNilStatsService   HandlerError = "stats service cannot be nil"
	ErrNilLogger         HandlerError = "logger cannot be nil"
)

// New creates a new HTTP handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.SessionService == nil {
		return nil, ErrNilSessionService
	}
	if cfg.MatchService == nil {
		return nil, ErrNilMatchService
	}
	if cfg.FriendService == nil {
		return nil, ErrNilFriendService
	}
	if cfg.StatsService == nil {
		return nil, ErrNilStatsService
	}
	if cfg.Logger == nil {
		return nil, ErrNilLogger
	}

	return &Handler{
		sessions: cfg.SessionService,
		matches:  cfg.MatchService,
		friends:  cfg.FriendService,
		stats:    cfg.StatsService,
		logger:   cfg.Logger,
		validate: validator.New(),
	}, nil
}

// Routes builds the API router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)

	r.Route("/friends", func(r chi.Router) {
		r.Post("/", h.createFriend)
		r.Get("/", h.listFriends)
		r.Post("/{friendID}/archive", h.archiveFriend)
		r.Post("/{friendID}/restore", h.restoreFriend)
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.createSession)
		r.Get("/", h.listSessions)

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", h.getSession)
			r.Get("/comments", h.listComments)
			r.Get("/matches", h.listMatches)

			r.Group(func(r chi.Router) {
				r.Use(h.requireRole(models.TokenRoleEditor))

				r.Patch("/", h.updateSessionInfo)
				r.Post("/confirm", h.confirmSession)
				r.Post("/done", h.markSessionDone)
				r.Post("/reopen", h.reopenSession)
				r.Put("/attendance", h.setAttendance)
				r.Put("/team", h.setTeamMember)
				r.Put("/teams", h.bulkSetTeams)
				r.Post("/comments", h.addComment)
				r.Delete("/comments/{commentID}", h.deleteComment)

				r.Post("/matches", h.createMatch)
				r.Route("/matches/{matchID}", func(r chi.Router) {
					r.Get("/", h.getMatch)
					r.Put("/lane", h.setLane)
					r.Put("/champion", h.setChampion)
					r.Post("/confirm", h.confirmResult)
					r.Delete("/", h.deleteMatch)
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(h.requireRole(models.TokenRoleAdmin))

				r.Delete("/", h.deleteSession)
				r.Post("/unlock", h.adminUnlock)
				r.Post("/relock", h.adminRelock)
			})
		})
	})

	r.Route("/stats", func(r chi.Router) {
		r.Get("/overview", h.statsOverview)
		r.Get("/friends/{friendID}", h.statsDetail)
	})

	return r
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		h.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)))
	})
}

func (h *Handler) createFriend(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DisplayName string `json:"displayName" validate:"required"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	output, err := h.friends.CreateFriend(r.Context(), &friendService.CreateFriendInput{
		DisplayName: req.DisplayName,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, output.Friend)
}

func (h *Handler) listFriends(w http.ResponseWriter, r *http.Request) {
	output, err := h.friends.ListFriends(r.Context(), &friendService.ListFriendsInput{
		IncludeArchived: queryBool(r, "includeArchived"),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, output.Friends)
}

func (h *Handler) archiveFriend(w http.ResponseWriter, r *http.Request) {
	output, err := h.friends.ArchiveFriend(r.Context(), &friendService.ArchiveFriendInput{
		FriendID: chi.URLParam(r, "friendID"),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, output.Friend)
}

func (h *Handler) restoreFriend(w http.ResponseWriter, r *http.Request) {
	output, err := h.friends.RestoreFriend(r.Context(), &friendService.RestoreFriendInput{
		FriendID: chi.URLParam(r, "friendID"),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, output.Friend)
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if !h.decode(w, r, &req) {
		return
	}

	output, err := h.sessions.CreateSession(r.Context(), &sessionService.CreateSessionInput{
		ContentType: models.ContentType(req.ContentType),
		Title:       req.Title,
		StartsAt:    req.StartsAt,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, createSessionResponse{
		sessionResponse: toSessionResponse(output.Session),
		EditorToken:     output.Session.EditorToken,
		AdminToken:      output.Session.AdminToken,
	})
}

func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	output, err := h.sessions.ListSessions(r.Context(), &sessionService.ListSessionsInput{})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, lo.Map(output.Sessions, func(session *models.Session, _ int) sessionResponse {
		return toSessionResponse(session)
	}))
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	output, err := h.sessions.GetSession(r.Context(), &sessionService.GetSessionInput{
		SessionID: chi.URLParam(r, "sessionID"),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toSessionResponse(output.Session))
}

func (h *Handler) updateSessionInfo(w http.ResponseWriter, r *http.Request) {
	var req updateSessionRequest
	if !h.decode(w, r, &req) {
		return
	}

	input := &sessionService.UpdateSessionInfoInput{
		SessionID: chi.URLParam(r, "sessionID"),
		StartsAt:  req.StartsAt,
	}

	if req.Title != nil {
		input.TitleSet = true
		if string(req.Title) != "null" {
			var title string
			if err := json.Unmarshal(req.Title, &title); err != nil {
				h.respondValidationError(w, err)
				return
			}
			input.Title = &title
		}
	}

	output, err := h.sessions.UpdateSessionInfo(r.Context(), input)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toSessionResponse(output.Session))
}

func (h *Handler) confirmSession(w http.ResponseWriter, r *http.Request) {
	output, err := h.sessions.ConfirmSession(r.Context(), &sessionService.ConfirmSessionInput{
		SessionID: chi.URLParam(r, "sessionID"),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toSessionResponse(output.Session))
}

func (h *Handler) markSessionDone(w http.ResponseWriter, r *http.Request) {
	output, err := h.sessions.MarkSessionDone(r.Context(), &sessionService.MarkSessionDoneInput{
		SessionID: chi.URLParam(r, "sessionID"),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toSessionResponse(output.Session))
}

func (h *Handler) reopenSession(w http.ResponseWriter, r *http.Request) {
	output, err := h.sessions.ReopenSession(r.Context(), &sessionService.ReopenSessionInput{
		SessionID: chi.URLParam(r, "sessionID"),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toSessionResponse(output.Session))
}

func (h *Handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	err := h.sessions.DeleteSession(r.Context(), &sessionService.DeleteSessionInput{
		SessionID: chi.URLParam(r, "sessionID"),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) setAttendance(w http.ResponseWriter, r *http.Request) {
	var req setAttendanceRequest
	if !h.decode(w, r, &req) {
		return
	}

	output, err := h.sessions.SetAttendance(r.Context(), &sessionService.SetAttendanceInput{
		SessionID: chi.URLParam(r, "sessionID"),
		FriendID:  req.FriendID,
		Status:    models.AttendanceStatus(req.Status),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toSessionResponse(output.Session))
}

func (h *Handler) setTeamMember(w http.ResponseWriter, r *http.Request) {
	var req teamAssignmentRequest
	if !h.decode(w, r, &req) {
		return
	}

	input := &sessionService.SetTeamMemberInput{
		SessionID: chi.URLParam(r, "sessionID"),
		FriendID:  req.FriendID,
		Team:      models.Team(req.Team),
	}
	if req.Lane != nil {
		lane := models.Lane(*req.Lane)
		input.Lane = &lane
	}

	output, err := h.sessions.SetTeamMember(r.Context(), input)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toSessionResponse(output.Session))
}

func (h *Handler) bulkSetTeams(w http.ResponseWriter, r *http.Request) {
	var req bulkSetTeamsRequest
	if !h.decode(w, r, &req) {
		return
	}

	output, err := h.sessions.BulkSetTeams(r.Context(), &sessionService.BulkSetTeamsInput{
		SessionID:   chi.URLParam(r, "sessionID"),
		Assignments: toTeamAssignments(req.Assignments),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toSessionResponse(output.Session))
}

func (h *Handler) adminUnlock(w http.ResponseWriter, r *http.Request) {
	output, err := h.sessions.AdminUnlock(r.Context(), &sessionService.AdminUnlockInput{
		SessionID: chi.URLParam(r, "sessionID"),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toSessionResponse(output.Session))
}

func (h *Handler) adminRelock(w http.ResponseWriter, r *http.Request) {
	output, err := h.sessions.AdminRelock(r.Context(), &sessionService.AdminRelockInput{
		SessionID: chi.URLParam(r, "sessionID"),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toSessionResponse(output.Session))
}

func (h *Handler) addComment(w http.ResponseWriter, r *http.Request) {
	var req addCommentRequest
	if !h.decode(w, r, &req) {
		return
	}

	output, err := h.sessions.AddComment(r.Context(), &sessionService.AddCommentInput{
		SessionID:   chi.URLParam(r, "sessionID"),
		Body:        req.Body,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toCommentResponse(output.Comment))
}

func (h *Handler) listComments(w http.ResponseWriter, r *http.Request) {
	output, err := h.sessions.ListComments(r.Context(), &sessionService.ListCommentsInput{
		SessionID: chi.URLParam(r, "sessionID"),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, lo.Map(output.Comments, func(comment *models.Comment, _ int) commentResponse {
		return toCommentResponse(comment)
	}))
}

func (h *Handler) deleteComment(w http.ResponseWriter, r *http.Request) {
	err := h.sessions.DeleteComment(r.Context(), &sessionService.DeleteCommentInput{
		CommentID: chi.URLParam(r, "commentID"),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) createMatch(w http.ResponseWriter, r *http.Request) {
	var req createMatchRequest
	if !h.decode(w, r, &req) {
		return
	}

	output, err := h.matches.CreateMatch(r.Context(), &matchService.CreateMatchInput{
		SessionID: chi.URLParam(r, "sessionID"),
		Members:   toTeamAssignments(req.Members),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toMatchResponse(output.Match))
}

func (h *Handler) listMatches(w http.ResponseWriter, r *http.Request) {
	output, err := h.matches.ListMatches(r.Context(), &matchService.ListMatchesInput{
		SessionID: chi.URLParam(r, "sessionID"),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, lo.Map(output.Matches, func(match *models.Match, _ int) matchResponse {
		return toMatchResponse(match)
	}))
}

func (h *Handler) getMatch(w http.ResponseWriter, r *http.Request) {
	output, err := h.matches.GetMatch(r.Context(), &matchService.GetMatchInput{
		MatchID: chi.URLParam(r, "matchID"),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toMatchResponse(output.Match))
}

func (h *Handler) setLane(w http.ResponseWriter, r *http.Request) {
	var req setLaneRequest
	if !h.decode(w, r, &req) {
		return
	}

	output, err := h.matches.SetLane(r.Context(), &matchService.SetLaneInput{
		MatchID:  chi.URLParam(r, "matchID"),
		FriendID: req.FriendID,
		Lane:     models.Lane(req.Lane),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toMatchResponse(output.Match))
}

func (h *Handler) setChampion(w http.ResponseWriter, r *http.Request) {
	var req setChampionRequest
	if !h.decode(w, r, &req) {
		return
	}

	output, err := h.matches.SetChampion(r.Context(), &matchService.SetChampionInput{
		MatchID:  chi.URLParam(r, "matchID"),
		FriendID: req.FriendID,
		Champion: req.Champion,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toMatchResponse(output.Match))
}

func (h *Handler) confirmResult(w http.ResponseWriter, r *http.Request) {
	var req confirmResultRequest
	if !h.decode(w, r, &req) {
		return
	}

	output, err := h.matches.ConfirmResult(r.Context(), &matchService.ConfirmResultInput{
		MatchID:    chi.URLParam(r, "matchID"),
		WinnerSide: models.Side(req.WinnerSide),
		TeamASide:  models.Side(req.TeamASide),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toMatchResponse(output.Match))
}

func (h *Handler) deleteMatch(w http.ResponseWriter, r *http.Request) {
	err := h.matches.DeleteMatch(r.Context(), &matchService.DeleteMatchInput{
		MatchID: chi.URLParam(r, "matchID"),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) statsOverview(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, err := queryDateRange(r)
	if err != nil {
		h.respondValidationError(w, err)
		return
	}

	output, err := h.stats.GetStatsOverview(r.Context(), &statsService.GetStatsOverviewInput{
		IncludeArchived: queryBool(r, "includeArchived"),
		StartDate:       startDate,
		EndDate:         endDate,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, output.Entries)
}

func (h *Handler) statsDetail(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, err := queryDateRange(r)
	if err != nil {
		h.respondValidationError(w, err)
		return
	}

	output, err := h.stats.GetStatsDetail(r.Context(), &statsService.GetStatsDetailInput{
		FriendID:        chi.URLParam(r, "friendID"),
		IncludeArchived: queryBool(r, "includeArchived"),
		StartDate:       startDate,
		EndDate:         endDate,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, output)
}

func queryBool(r *http.Request, key string) bool {
	value, err := strconv.ParseBool(r.URL.Query().Get(key))
	return err == nil && value
}

func queryDateRange(r *http.Request) (*time.Time, *time.Time, error) {
	startDate, err := queryTime(r, "startDate")
	if err != nil {
		return nil, nil, err
	}

	endDate, err := queryTime(r, "endDate")
	if err != nil {
		return nil, nil, err
	}

	return startDate, endDate, nil
}

func queryTime(r *http.Request, key string) (*time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}

	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return &parsed, nil
	}

	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, errors.New(key + " must be RFC 3339 or YYYY-MM-DD")
	}

	return &parsed, nil
}
