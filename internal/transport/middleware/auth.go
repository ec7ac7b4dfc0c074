package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/heartmarshall/makerlab-backend/pkg/ctxutil"
)

// Middleware is a function that wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

type tokenValidator interface {
	ValidateWorkspaceToken(token string) (uuid.UUID, error)
}

// WorkspaceAuth rejects requests without a valid workspace token and stores
// the workspace id in the request context. Browsers cannot set headers on a
// WebSocket handshake, so upgrade requests may carry the token as ?token=.
func WorkspaceAuth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" && websocket.IsWebSocketUpgrade(r) {
				token = r.URL.Query().Get("token")
			}
			if token == "" {
				writeError(w, http.StatusUnauthorized, "missing workspace token")
				return
			}
			id, err := validator.ValidateWorkspaceToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid workspace token")
				return
			}
			TagWorkspace(w, id.String())
			ctx := ctxutil.WithWorkspaceID(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Messages are fixed strings without characters that need escaping.
	_, _ = w.Write([]byte(`{"error":"` + message + `"}` + "\n"))
}
