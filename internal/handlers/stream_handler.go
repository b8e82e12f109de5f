package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/onetrade/internal/services/detail"
)

const (
	streamPathPrefix = "/ws/stocks/"
	writeWait        = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// Message types sent on the panel stream.
const (
	MessagePanel = "panel"
	MessageDone  = "done"
)

// WSMessage is the envelope for every message on the panel stream.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// DonePayload closes a panel stream once every panel has been sent.
type DonePayload struct {
	SessionID string `json:"session_id"`
	Ticker    string `json:"ticker"`
	Failed    int    `json:"failed"`
}

// StreamHandler streams detail panels over a WebSocket as each one completes.
type StreamHandler struct {
	details DetailStreamer
	logger  arbor.ILogger
}

func NewStreamHandler(details DetailStreamer, logger arbor.ILogger) *StreamHandler {
	return &StreamHandler{
		details: details,
		logger:  logger,
	}
}

// HandleStream handles GET /ws/stocks/{ticker}. One "panel" message is sent per
// panel, then a "done" message. A client disconnect closes the session and
// cancels any panel still loading.
func (h *StreamHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	ticker := TickerFromPath(r.URL.Path, streamPathPrefix)
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	var writeMu sync.Mutex
	send := func(msg WSMessage) error {
		data, err := json.Marshal(msg)
		if err != nil {
			return err
		}
		writeMu.Lock()
		defer writeMu.Unlock()
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteMessage(websocket.TextMessage, data)
	}

	failed := 0
	sess := h.details.Open(ctx, ticker, func(u detail.Update) {
		if u.Error != nil {
			failed++
		}
		if err := send(WSMessage{Type: MessagePanel, Payload: u}); err != nil {
			h.logger.Warn().Err(err).Str("panel", string(u.Panel)).Msg("Failed to send panel")
		}
	})
	defer sess.Close()

	h.logger.Debug().Str("session", sess.ID()).Str("ticker", ticker).Msg("Panel stream opened")

	// The client sends nothing; reading detects disconnects.
	disconnected := make(chan struct{})
	go func() {
		defer close(disconnected)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
					h.logger.Warn().Err(err).Msg("WebSocket error")
				}
				return
			}
		}
	}()

	completed := make(chan struct{})
	go func() {
		sess.Wait()
		close(completed)
	}()

	select {
	case <-completed:
		sess.Close()
		if err := send(WSMessage{Type: MessageDone, Payload: DonePayload{
			SessionID: sess.ID(),
			Ticker:    ticker,
			Failed:    failed,
		}}); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to send done message")
			return
		}
		writeMu.Lock()
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		writeMu.Unlock()
		h.logger.Debug().Str("session", sess.ID()).Int("failed", failed).Msg("Panel stream complete")

	case <-disconnected:
		h.logger.Debug().Str("session", sess.ID()).Msg("Client disconnected, closing session")
		sess.Close()
	}
}
