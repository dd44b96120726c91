package httpapi

import (
	"net/http"

	"github.com/gamenighthq/gamenight/internal/apperr"
	"github.com/gamenighthq/gamenight/internal/models"
	sessionService "github.com/gamenighthq/gamenight/internal/services/session"
	"github.com/go-chi/chi/v5"
)

const sessionTokenHeader = "X-Session-Token"

// requireRole guards session-scoped routes with the session's access
// tokens. Admin tokens satisfy editor-level routes, not the other way
// around.
func (h *Handler) requireRole(required models.TokenRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := chi.URLParam(r, "sessionID")
			token := r.Header.Get(sessionTokenHeader)

			output, err := h.sessions.ValidateToken(r.Context(), &sessionService.ValidateTokenInput{
				SessionID: sessionID,
				Token:     token,
			})
			if err != nil {
				h.respondError(w, r, err)
				return
			}

			if required == models.TokenRoleAdmin && output.Role != models.TokenRoleAdmin {
				h.respondError(w, r, apperr.Unauthorized.WithMessagef("admin token required"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
