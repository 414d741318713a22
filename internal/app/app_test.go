package app

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/mines"
)

// scripted hands out predetermined draws.
type scripted []int

func (s *scripted) IntN(int) int {
	v := (*s)[0]
	*s = (*s)[1:]
	return v
}

type sessionView struct {
	SessionId string `json:"session_id"`
	Grid      []int  `json:"grid"`
	Status    string `json:"status"`
	Generated bool   `json:"generated"`
	Height    int    `json:"height"`
	Width     int    `json:"width"`
	MineCount int    `json:"mine_count"`
	EndedAt   *int64 `json:"ended_at"`
}

type client struct {
	t      *testing.T
	server *httptest.Server
	app    *App
}

// newClient serves 3x3 fields with mines on (0, 0) and (2, 2) whenever the
// first tap is (1, 1).
func newClient(t *testing.T) *client {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	c := config.Default()
	c.Game = config.GameConfig{Height: 3, Width: 3, MineCount: 2}
	c.Jwt.Secret = "test secret"

	a, err := New(log, c, func() mines.Source { return &scripted{0, 0} })
	require.NoError(t, err)

	server := httptest.NewServer(a.Handler())
	t.Cleanup(server.Close)

	return &client{t: t, server: server, app: a}
}

func (c *client) do(method, path, token string) (int, []byte) {
	c.t.Helper()
	req, err := http.NewRequest(method, c.server.URL+path, nil)
	require.NoError(c.t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(c.t, err)
	return res.StatusCode, body
}

func (c *client) newGame(query string) (sessionView, string) {
	c.t.Helper()
	code, body := c.do(http.MethodPost, "/v1/game"+query, "")
	require.Equal(c.t, http.StatusCreated, code, string(body))

	var res struct {
		Session sessionView `json:"session"`
		Token   string      `json:"token"`
	}
	require.NoError(c.t, json.Unmarshal(body, &res))
	require.NotEmpty(c.t, res.Token)
	return res.Session, res.Token
}

func decode(t *testing.T, body []byte) sessionView {
	t.Helper()
	var v sessionView
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

func TestNewGameDefaults(t *testing.T) {
	c := newClient(t)

	s, _ := c.newGame("")
	assert.Equal(t, "playing", s.Status)
	assert.False(t, s.Generated)
	assert.Equal(t, 3, s.Height)
	assert.Equal(t, 3, s.Width)
	assert.Equal(t, 2, s.MineCount)
	assert.Equal(t, []int{-2, -2, -2, -2, -2, -2, -2, -2, -2}, s.Grid)
}

func TestNewGameParams(t *testing.T) {
	c := newClient(t)

	s, _ := c.newGame("?height=4&width=5&mine_count=0")
	assert.Equal(t, 4, s.Height)
	assert.Equal(t, 5, s.Width)
	assert.Equal(t, 0, s.MineCount)

	code, _ := c.do(http.MethodPost, "/v1/game?height=9&width=9&mine_count=81", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = c.do(http.MethodPost, "/v1/game?height=lots", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAuthorization(t *testing.T) {
	c := newClient(t)
	s, token := c.newGame("")
	_, otherToken := c.newGame("")

	code, _ := c.do(http.MethodGet, "/v1/game/"+s.SessionId, "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = c.do(http.MethodPost, "/v1/game/"+s.SessionId+"/tap?row=1&col=1", otherToken)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body := c.do(http.MethodGet, "/v1/game/"+s.SessionId, token)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, s.SessionId, decode(t, body).SessionId)

	ghost, err := c.app.jwt.Sign("ghost")
	require.NoError(t, err)
	code, _ = c.do(http.MethodGet, "/v1/game/ghost", ghost)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestPlayToWin(t *testing.T) {
	c := newClient(t)
	s, token := c.newGame("")
	path := "/v1/game/" + s.SessionId

	code, body := c.do(http.MethodPost, path+"/tap?row=1&col=1", token)
	require.Equal(t, http.StatusOK, code, string(body))
	v := decode(t, body)
	assert.True(t, v.Generated)
	assert.Equal(t, "playing", v.Status)
	assert.Equal(t, []int{-2, -2, -2, -2, 2, -2, -2, -2, -2}, v.Grid)

	code, _ = c.do(http.MethodPost, path+"/mark?row=0&col=0", token)
	require.Equal(t, http.StatusOK, code)
	code, body = c.do(http.MethodPost, path+"/mark?row=2&col=2", token)
	require.Equal(t, http.StatusOK, code)
	v = decode(t, body)
	assert.Equal(t, "won", v.Status)
	assert.NotNil(t, v.EndedAt)

	code, _ = c.do(http.MethodPost, path+"/tap?row=0&col=1", token)
	assert.Equal(t, http.StatusConflict, code)
}

func TestPlayToLose(t *testing.T) {
	c := newClient(t)
	s, token := c.newGame("")
	path := "/v1/game/" + s.SessionId

	code, _ := c.do(http.MethodPost, path+"/tap?row=1&col=1", token)
	require.Equal(t, http.StatusOK, code)

	code, body := c.do(http.MethodPost, path+"/tap?row=2&col=2", token)
	require.Equal(t, http.StatusOK, code)
	v := decode(t, body)
	assert.Equal(t, "lost", v.Status)
	assert.Equal(t, []int{64, -2, -2, -2, 2, -2, -2, -2, 64}, v.Grid)
}

func TestBadMoves(t *testing.T) {
	c := newClient(t)
	s, token := c.newGame("")
	path := "/v1/game/" + s.SessionId

	code, _ := c.do(http.MethodPost, path+"/tap?row=3&col=0", token)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = c.do(http.MethodPost, path+"/tap?row=1", token)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = c.do(http.MethodPost, path+"/mark?row=-1&col=0", token)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = c.do(http.MethodGet, path+"/tap?row=0&col=0", token)
	assert.Equal(t, http.StatusMethodNotAllowed, code)
}

func TestForfeit(t *testing.T) {
	c := newClient(t)
	s, token := c.newGame("")
	path := "/v1/game/" + s.SessionId

	code, _ := c.do(http.MethodPost, path+"/tap?row=1&col=1", token)
	require.Equal(t, http.StatusOK, code)

	code, body := c.do(http.MethodPost, path+"/forfeit", token)
	require.Equal(t, http.StatusOK, code)
	v := decode(t, body)
	assert.Equal(t, "lost", v.Status)
	assert.Equal(t, 64, v.Grid[0])
	assert.Equal(t, 64, v.Grid[8])
}

func TestWebSocket(t *testing.T) {
	c := newClient(t)
	s, token := c.newGame("")

	url := "ws" + strings.TrimPrefix(c.server.URL, "http") +
		"/v1/game/" + s.SessionId + "/connect?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	exchange := func(message string) map[string]any {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(message)))
		var v map[string]any
		require.NoError(t, conn.ReadJSON(&v))
		return v
	}

	v := exchange("g")
	assert.Equal(t, "playing", v["status"])

	v = exchange("boom")
	assert.Equal(t, "unknown command", v["error"])

	v = exchange("o 2 2\n1 1 mine")
	assert.Equal(t, "playing", v["status"])
	assert.Equal(t, -1.0, v["grid"].([]any)[0])

	v = exchange("f 3 3")
	assert.Equal(t, "won", v["status"])

	v = exchange("o 2 1")
	assert.Equal(t, "game is already over", v["error"])

	require.NoError(t, conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	))
}

func TestWebSocketRejected(t *testing.T) {
	c := newClient(t)
	s, _ := c.newGame("")

	url := "ws" + strings.TrimPrefix(c.server.URL, "http") +
		"/v1/game/" + s.SessionId + "/connect"
	_, res, err := websocket.DefaultDialer.Dial(url, nil)
	assert.ErrorIs(t, err, websocket.ErrBadHandshake)
	if assert.NotNil(t, res) {
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	}
}

func TestNewRequiresSecret(t *testing.T) {
	_, err := New(logrus.New(), config.Default(), nil)
	assert.ErrorIs(t, err, config.ErrNoSecret)

	c := config.Default()
	c.Jwt.Secret = "s"
	c.Game.MineCount = 81
	_, err = New(logrus.New(), c, nil)
	assert.ErrorIs(t, err, mines.ErrInvalidConfiguration)
}
