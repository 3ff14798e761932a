package game

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"leaderboard/domain"
)

type JoinRequest struct {
	Username string `json:"username"`
	Id       uint64 `json:"id"`
}

type LeaveRequest struct {
	Username string `json:"username"`
}

type RestartRequest struct {
	Room string `json:"room"`
}

type RestartResponse struct {
	Found bool `json:"found"`
}

type CommandsRequest struct {
	Room              string `json:"room"`
	LastReceivedNonce int    `json:"last_received_nonce"`
}

type MedianFpsResponse struct {
	MedianFps float64 `json:"median_fps"`
}

// Handler translates validated HTTP requests into coordinator calls.
// The coordinator itself only ever sees typed inputs. The allowed
// origins mirror the server's CORS allow-list; the websocket upgrade
// performs its own origin check and cannot rely on the middleware.
type Handler struct {
	coordinator    *Coordinator
	limiters       *updateLimiters
	allowedOrigins []string
}

func NewHandler(coordinator *Coordinator, allowedOrigins []string) *Handler {
	// Clients report once per game tick; 4/s with a small burst is
	// generous for a well-behaved client and cheap to hand out.
	return &Handler{
		coordinator:    coordinator,
		limiters:       newUpdateLimiters(rate.Limit(4), 8),
		allowedOrigins: allowedOrigins,
	}
}

func (h *Handler) JoinHandler(ctx *gin.Context) {
	var req JoinRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid-request-format"})
		return
	}
	if req.Username == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing-username"})
		return
	}

	h.coordinator.Join(req.Id, req.Username)
	ctx.String(http.StatusOK, "ok")
}

func (h *Handler) LeaveHandler(ctx *gin.Context) {
	var req LeaveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid-request-format"})
		return
	}
	if req.Username == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing-username"})
		return
	}

	h.coordinator.Leave(req.Username)
	ctx.String(http.StatusOK, "ok")
}

func (h *Handler) UpdateHandler(ctx *gin.Context) {
	var update domain.Update
	if err := ctx.ShouldBindJSON(&update); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid-request-format"})
		return
	}
	if update.Player.Username == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing-username"})
		return
	}
	if !h.limiters.Allow(update.Player.Username) {
		ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too-many-updates"})
		return
	}

	h.coordinator.ApplyUpdate(update)
	ctx.String(http.StatusOK, "ok")
}

func (h *Handler) LeaderboardHandler(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.coordinator.CurrentLeaderboard())
}

func (h *Handler) AlltimeLeaderboardHandler(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.coordinator.AlltimeLeaderboard())
}

func (h *Handler) MedianFpsHandler(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, MedianFpsResponse{MedianFps: h.coordinator.MedianFps()})
}

func (h *Handler) InfoHandler(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.coordinator.Info())
}

func (h *Handler) RoomsHandler(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.coordinator.ListRooms())
}

func (h *Handler) GetOrCreateRoomHandler(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.coordinator.GetOrCreateRoom())
}

func (h *Handler) RestartRoomHandler(ctx *gin.Context) {
	var req RestartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid-request-format"})
		return
	}

	found := h.coordinator.RestartRoom(req.Room)
	ctx.JSON(http.StatusOK, RestartResponse{Found: found})
}

func (h *Handler) CommandsHandler(ctx *gin.Context) {
	var req CommandsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid-request-format"})
		return
	}

	ctx.JSON(http.StatusOK, h.coordinator.PollCommands(req.Room, req.LastReceivedNonce))
}
