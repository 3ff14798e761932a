package game

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leaderboard/domain"
)

func setupRouter(t *testing.T) (*gin.Engine, *Coordinator) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c := newTestCoordinator(nil)
	h := NewHandler(c, []string{"http://localhost:5173"})

	r := gin.New()
	api := r.Group("/api")
	api.POST("/join", h.JoinHandler)
	api.POST("/leave", h.LeaveHandler)
	api.POST("/update", h.UpdateHandler)
	api.GET("/leaderboard", h.LeaderboardHandler)
	api.GET("/leaderboard/alltime", h.AlltimeLeaderboardHandler)
	api.GET("/fps/median", h.MedianFpsHandler)
	api.GET("/info", h.InfoHandler)
	api.GET("/rooms", h.RoomsHandler)
	api.POST("/room", h.GetOrCreateRoomHandler)
	api.POST("/room/restart", h.RestartRoomHandler)
	api.POST("/commands", h.CommandsHandler)

	return r, c
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)
	return res
}

func TestHandlerValidation(t *testing.T) {
	testCases := []struct {
		name         string
		method       string
		path         string
		body         string
		expectedCode int
		expectedBody string
	}{
		{"join ok", http.MethodPost, "/api/join", `{"username":"alice","id":1}`, http.StatusOK, "ok"},
		{"join invalid json", http.MethodPost, "/api/join", `{invalid}`, http.StatusBadRequest, "invalid-request-format"},
		{"join missing username", http.MethodPost, "/api/join", `{"id":1}`, http.StatusBadRequest, "missing-username"},
		{"leave ok", http.MethodPost, "/api/leave", `{"username":"ghost"}`, http.StatusOK, "ok"},
		{"leave invalid json", http.MethodPost, "/api/leave", `{`, http.StatusBadRequest, "invalid-request-format"},
		{"leave missing username", http.MethodPost, "/api/leave", `{}`, http.StatusBadRequest, "missing-username"},
		{"update invalid json", http.MethodPost, "/api/update", `[]`, http.StatusBadRequest, "invalid-request-format"},
		{"update missing username", http.MethodPost, "/api/update", `{"tick":1,"player":{}}`, http.StatusBadRequest, "missing-username"},
		{"restart invalid json", http.MethodPost, "/api/room/restart", `{`, http.StatusBadRequest, "invalid-request-format"},
		{"commands invalid json", http.MethodPost, "/api/commands", `{`, http.StatusBadRequest, "invalid-request-format"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, _ := setupRouter(t)
			res := doRequest(r, tc.method, tc.path, tc.body)

			assert.Equal(t, tc.expectedCode, res.Code)
			assert.Contains(t, res.Body.String(), tc.expectedBody)
		})
	}
}

func TestUpdateAndLeaderboardFlow(t *testing.T) {
	r, _ := setupRouter(t)

	doRequest(r, http.MethodPost, "/api/join", `{"username":"alice","id":1}`)
	doRequest(r, http.MethodPost, "/api/join", `{"username":"bob","id":2}`)

	res := doRequest(r, http.MethodPost, "/api/update",
		`{"tick":1,"player":{"id":1,"username":"alice","score":50},"fps":60,"timestamp":100}`)
	require.Equal(t, http.StatusOK, res.Code)
	res = doRequest(r, http.MethodPost, "/api/update",
		`{"tick":1,"player":{"id":2,"username":"bob","score":80},"fps":30,"timestamp":100}`)
	require.Equal(t, http.StatusOK, res.Code)

	res = doRequest(r, http.MethodGet, "/api/leaderboard", "")
	require.Equal(t, http.StatusOK, res.Code)

	var board []domain.Player
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &board))
	require.Len(t, board, 2)
	assert.Equal(t, "bob", board[0].Username)
	assert.Equal(t, "alice", board[1].Username)

	res = doRequest(r, http.MethodGet, "/api/fps/median", "")
	var median MedianFpsResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &median))
	assert.Equal(t, 45.0, median.MedianFps)
}

func TestRoomAndCommandFlow(t *testing.T) {
	r, _ := setupRouter(t)

	res := doRequest(r, http.MethodPost, "/api/room", "")
	require.Equal(t, http.StatusOK, res.Code)

	var room domain.RoomResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &room))
	assert.Equal(t, "Room 0", room.Name)
	assert.Equal(t, 8, room.Config.PlayersPerRoom)

	// no commands yet
	res = doRequest(r, http.MethodPost, "/api/commands", `{"room":"Room 0","last_received_nonce":-1}`)
	assert.Equal(t, "[]", strings.TrimSpace(res.Body.String()))

	res = doRequest(r, http.MethodPost, "/api/room/restart", `{"room":"Room 0"}`)
	var restart RestartResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &restart))
	assert.True(t, restart.Found)

	res = doRequest(r, http.MethodPost, "/api/room/restart", `{"room":"Room 99"}`)
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &restart))
	assert.False(t, restart.Found)

	res = doRequest(r, http.MethodPost, "/api/commands", `{"room":"Room 0","last_received_nonce":-1}`)
	var commands []domain.Command
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &commands))
	require.Len(t, commands, 1)
	assert.Equal(t, domain.CommandRestart, commands[0].CommandType)
	assert.Equal(t, 0, commands[0].Nonce)

	// the restarted room is inactive in the listing
	res = doRequest(r, http.MethodGet, "/api/rooms", "")
	var rooms []domain.Room
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &rooms))
	require.Len(t, rooms, 1)
	assert.False(t, rooms[0].Active)
}

func TestInfoHandler(t *testing.T) {
	r, _ := setupRouter(t)

	doRequest(r, http.MethodPost, "/api/room", "")

	res := doRequest(r, http.MethodGet, "/api/info", "")
	require.Equal(t, http.StatusOK, res.Code)

	var info domain.Info
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &info))
	assert.Equal(t, 8, info.Config.PlayersPerRoom)
	assert.Equal(t, 4, info.Config.MaxBotsPerClient)
	require.Len(t, info.State.Rooms, 1)
	assert.True(t, info.State.Rooms[0].Active)
}

func TestUpdateRateLimit(t *testing.T) {
	r, _ := setupRouter(t)

	doRequest(r, http.MethodPost, "/api/join", `{"username":"flood","id":1}`)

	limited := false
	for i := 0; i < 20; i++ {
		res := doRequest(r, http.MethodPost, "/api/update",
			`{"tick":1,"player":{"id":1,"username":"flood","score":1}}`)
		if res.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
		require.Equal(t, http.StatusOK, res.Code)
	}

	assert.True(t, limited, "flooding updates never hit the limiter")
}
