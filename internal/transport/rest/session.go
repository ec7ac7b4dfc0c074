package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/heartmarshall/makerlab-backend/internal/service/session"
)

const (
	eventsWriteWait  = 10 * time.Second
	eventsPongWait   = 60 * time.Second
	eventsPingPeriod = eventsPongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Origin policy is enforced by the CORS middleware and the bearer token.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type signInRequest struct {
	Code string `json:"code"`
}

// Session handles GET /workspace/session.
func (h *WorkspaceHandler) Session(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toSessionResponse(workspaceFrom(r).SessionState()))
}

// SignInGoogle handles POST /workspace/session/google.
func (h *WorkspaceHandler) SignInGoogle(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	store := workspaceFrom(r).Session()
	if _, err := store.SignIn(r.Context(), req.Code); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(store.State()))
}

// SignOut handles POST /workspace/session/signout.
func (h *WorkspaceHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	store := workspaceFrom(r).Session()
	store.SignOut()
	writeJSON(w, http.StatusOK, toSessionResponse(store.State()))
}

// SessionEvents handles GET /workspace/session/events. It upgrades to a
// websocket and streams auth events until the client disconnects or the
// workspace is closed.
func (h *WorkspaceHandler) SessionEvents(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WarnContext(r.Context(), "websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	events := ws.SubscribeSession(ctx)
	h.log.DebugContext(ctx, "session events connected", slog.String("workspace_id", ws.ID().String()))

	// Inbound frames are only read to observe pongs and the close.
	go func() {
		defer cancel()
		conn.SetReadLimit(512)
		conn.SetReadDeadline(time.Now().Add(eventsPongWait)) //nolint:errcheck
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(eventsPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.log.Debug("session events read error", slog.String("error", err.Error()))
				}
				return
			}
		}
	}()

	ping := time.NewTicker(eventsPingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				if ctx.Err() == nil {
					writeClose(conn, websocket.CloseGoingAway, "workspace closed")
				}
				return
			}
			if err := writeEvent(conn, ev); err != nil {
				return
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(eventsWriteWait)) //nolint:errcheck
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func writeEvent(conn *websocket.Conn, ev session.Event) error {
	data, err := json.Marshal(toSessionResponse(ev))
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(eventsWriteWait)) //nolint:errcheck
	return conn.WriteMessage(websocket.TextMessage, data)
}

func writeClose(conn *websocket.Conn, code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(eventsWriteWait)) //nolint:errcheck
}
