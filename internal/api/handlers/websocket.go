package handlers

import (
	"net/http"

	"github.com/Umar7799/user-managment/internal/auth"
	"github.com/Umar7799/user-managment/internal/websocket"
	ws "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	hub    *websocket.Hub
	tokens *auth.TokenService
	log    zerolog.Logger
}

func NewWebSocketHandler(hub *websocket.Hub, tokens *auth.TokenService, log zerolog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:    hub,
		tokens: tokens,
		log:    log,
	}
}

// Handle authenticates the connection via a token query parameter, since
// browsers cannot set an Authorization header on a WebSocket upgrade.
func (h *WebSocketHandler) Handle(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	claims, err := h.tokens.Verify(token)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid token.")
		return
	}

	userID, err := claims.UserID()
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid token.")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := websocket.NewClient(h.hub, conn, userID)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
