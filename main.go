package main

import (
	"net/http"
	"os"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"leaderboard/config"
	"leaderboard/game"
	"leaderboard/shared/logger"
	"leaderboard/storage"
)

func CreateServer(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.GET("/health", func(ctx *gin.Context) { ctx.String(200, "healthy") })

	r.Use(func(ctx *gin.Context) {
		origin := ctx.Request.Header.Get("Origin")

		if origin == "" || slices.Contains(allowedOrigins, origin) {
			ctx.Next()
			return
		}
		ctx.String(http.StatusForbidden, "forbidden origin")
		ctx.Abort()
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Protocol",
		},
	}))

	return r
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warningf("could not load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("bad configuration: %v", err)
	}
	if cfg.Debug {
		logger.EnableDebug()
	}

	snapshots, err := storage.NewSnapshotStore(cfg.SnapshotDir)
	if err != nil {
		logger.Fatalf("snapshot store init failed: %v", err)
	}

	// A snapshot that exists but cannot be parsed is fatal: booting with
	// silently dropped history is worse than a clear crash.
	history, err := snapshots.Load()
	if err != nil {
		logger.Fatalf("history snapshot load failed: %v", err)
	}

	coordinator := game.NewCoordinator(cfg.Room, snapshots, history)

	reaper := game.NewIdleReaper(coordinator, cfg.ReapPeriod, game.NewTickerGen())
	reaperStarted := make(chan struct{})
	go reaper.Run(reaperStarted)
	<-reaperStarted

	handler := game.NewHandler(coordinator, cfg.AllowedOrigins)

	r := CreateServer(cfg.AllowedOrigins)
	{
		api := r.Group("/api")
		api.POST("/join", handler.JoinHandler)
		api.POST("/leave", handler.LeaveHandler)
		api.POST("/update", handler.UpdateHandler)

		api.GET("/leaderboard", handler.LeaderboardHandler)
		api.GET("/leaderboard/alltime", handler.AlltimeLeaderboardHandler)
		api.GET("/leaderboard/live", handler.LiveLeaderboardHandler)
		api.GET("/fps/median", handler.MedianFpsHandler)

		api.GET("/info", handler.InfoHandler)
		api.GET("/rooms", handler.RoomsHandler)
		api.POST("/room", handler.GetOrCreateRoomHandler)
		api.POST("/room/restart", handler.RestartRoomHandler)
		api.POST("/commands", handler.CommandsHandler)
	}

	logger.Infof("starting server on %s", cfg.Addr)
	r.Run(cfg.Addr)
}
