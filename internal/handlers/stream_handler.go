// internal/handlers/stream_handler.go
package handlers

import (
	"net/http"
	"time"

	"codeflux_backend/internal/events"
	"codeflux_backend/internal/middleware"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// StreamHandler はブローカーの進捗イベントをWebSocketで配信します。
// かつて各画面が行っていたポーリング + windowイベント購読の置き換えです。
type StreamHandler struct {
	broker   *events.Broker
	upgrader websocket.Upgrader
}

func NewStreamHandler(broker *events.Broker, allowedOrigins []string) *StreamHandler {
	originSet := make(map[string]bool, len(allowedOrigins))
	allowAll := false
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		originSet[o] = true
	}

	return &StreamHandler{
		broker: broker,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowAll {
					return true
				}
				return originSet[r.Header.Get("Origin")]
			},
		},
	}
}

// Stream は接続を張った時点から発生した進捗イベントをJSONで流します。
// GET /api/v1/progress/stream
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	ch, unsubscribe := h.broker.Subscribe()
	// どの経路で抜けても購読とタイマーを必ず解放する
	defer unsubscribe()
	defer conn.Close()

	logger.Info("Progress stream subscriber connected", "remote_addr", r.RemoteAddr)

	// 読み取りループ: クライアントからの切断検知とpong処理のみ
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-ch:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				logger.Info("Progress stream subscriber write failed, closing", "error", err)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			logger.Info("Progress stream subscriber disconnected")
			return
		case <-r.Context().Done():
			return
		}
	}
}
