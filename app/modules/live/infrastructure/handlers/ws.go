package livehandlers

import (
	"log/slog"
	"net/http"
	"time"

	liveservice "github.com/Black-And-White-Club/three-under/app/modules/live/application"
	scorecarddomain "github.com/Black-And-White-Club/three-under/app/modules/scorecard/domain"
	"github.com/Black-And-White-Club/three-under/internal/httpapi"
	"github.com/Black-And-White-Club/three-under/internal/observability/attr"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// LiveHandlers upgrades slot watchers to WebSocket connections.
type LiveHandlers struct {
	hub      *liveservice.Hub
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewLiveHandlers creates LiveHandlers. checkOrigin may be nil to accept any origin.
func NewLiveHandlers(hub *liveservice.Hub, logger *slog.Logger, checkOrigin func(*http.Request) bool) *LiveHandlers {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &LiveHandlers{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// Routes registers the live route on r.
func (h *LiveHandlers) Routes(r chi.Router) {
	r.Get("/api/rounds/{slotKey}/live", h.HandleLive)
}

func (h *LiveHandlers) HandleLive(w http.ResponseWriter, r *http.Request) {
	slotKey := chi.URLParam(r, "slotKey")
	if _, err := scorecarddomain.ParseSlotKey(slotKey); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_slot_key", err.Error())
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		h.logger.WarnContext(r.Context(), "WebSocket upgrade failed", attr.SlotKey(slotKey), attr.Error(err))
		return
	}

	client := h.hub.Register(slotKey)
	go h.writePump(conn, client)
	go h.readPump(conn, client)
}

// readPump discards client frames and unregisters on disconnect.
func (h *LiveHandlers) readPump(conn *websocket.Conn, client *liveservice.Client) {
	defer func() {
		h.hub.Unregister(client)
		conn.Close()
	}()

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("Live client closed unexpectedly", attr.SlotKey(client.SlotKey), attr.Error(err))
			}
			return
		}
	}
}

func (h *LiveHandlers) writePump(conn *websocket.Conn, client *liveservice.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case frame, ok := <-client.Messages():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				h.hub.Unregister(client)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.hub.Unregister(client)
				return
			}
		}
	}
}
