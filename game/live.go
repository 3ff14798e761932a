package game

import (
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"leaderboard/shared/logger"
)

const (
	livePushPeriod = time.Second * 2
	livePingPeriod = time.Second * 30
	liveWriteWait  = time.Second * 20
)

// LiveLeaderboardHandler upgrades the connection and pushes the current
// ranking on a fixed cadence until the client goes away. The feed is
// read-only; inbound frames are drained solely to surface close errors.
func (h *Handler) LiveLeaderboardHandler(ctx *gin.Context) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.originAllowed,
	}
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		logger.Warningf("leaderboard feed upgrade failed: %v", err)
		return
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	go h.pushLeaderboard(conn, closed)
}

// originAllowed admits browsers on the CORS allow-list and clients that
// send no Origin header at all (game servers, the benchmarker), the
// same policy as the server's origin middleware.
func (h *Handler) originAllowed(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	return origin == "" || slices.Contains(h.allowedOrigins, origin)
}

func (h *Handler) pushLeaderboard(conn *websocket.Conn, closed <-chan struct{}) {
	pushTicker := time.NewTicker(livePushPeriod)
	pingTicker := time.NewTicker(livePingPeriod)
	defer func() {
		pushTicker.Stop()
		pingTicker.Stop()
		conn.Close()
	}()

	for {
		select {
		case <-closed:
			return
		case <-pushTicker.C:
			payload, err := json.Marshal(h.coordinator.CurrentLeaderboard())
			if err != nil {
				logger.Criticalf("leaderboard feed marshal failed: %v", err)
				return
			}
			conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-pingTicker.C:
			conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
