package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ninedt-backend/internal/apperror"
	"github.com/rocketscienceinc/ninedt-backend/internal/entity"
	"github.com/rocketscienceinc/ninedt-backend/internal/oracle"
	"github.com/rocketscienceinc/ninedt-backend/internal/usecase"
)

type testAPI struct {
	server     *httptest.Server
	oracleDown *atomic.Bool
}

// newTestAPI serves the game API backed by a fake oracle that always
// answers column 3.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	oracleDown := &atomic.Bool{}

	fakeOracle := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if oracleDown.Load() {
			http.Error(w, "down", http.StatusServiceUnavailable)
			return
		}

		moves := r.URL.Query().Get("moves")
		if moves == "[]" {
			_, _ = w.Write([]byte("[3]"))
			return
		}
		_, _ = w.Write([]byte(strings.TrimSuffix(moves, "]") + ",3]"))
	}))
	t.Cleanup(fakeOracle.Close)

	client, err := oracle.New(logger, fakeOracle.URL, time.Second)
	require.NoError(t, err)

	sessions := usecase.NewSessionManager(logger, client, 10)
	server := httptest.NewServer(NewRouter(NewHandlers(logger, sessions), nil))
	t.Cleanup(server.Close)

	return &testAPI{server: server, oracleDown: oracleDown}
}

func (that *testAPI) do(t *testing.T, method, path, body string) (int, Response) {
	t.Helper()

	req, err := http.NewRequest(method, that.server.URL+path, bytes.NewBufferString(body))
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded Response
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	}

	return resp.StatusCode, decoded
}

func (that *testAPI) createGame(t *testing.T) string {
	t.Helper()

	status, resp := that.do(t, http.MethodPost, "/games", "")
	require.Equal(t, http.StatusCreated, status)
	require.NotNil(t, resp.Game)

	return resp.Game.ID
}

func TestPingHandler(t *testing.T) {
	api := newTestAPI(t)

	resp, err := http.Get(api.server.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))
}

func TestGameAPI(t *testing.T) {
	t.Run("Create and get", func(t *testing.T) {
		// Given: a new game
		api := newTestAPI(t)
		id := api.createGame(t)

		// When: fetching it
		status, resp := api.do(t, http.MethodGet, "/games/"+id, "")

		// Then: it has not started
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, entity.StatusNotStarted, resp.Game.Status)
		assert.Empty(t, resp.Game.History)
	})

	t.Run("Unknown game", func(t *testing.T) {
		api := newTestAPI(t)

		status, resp := api.do(t, http.MethodGet, "/games/missing", "")

		assert.Equal(t, http.StatusNotFound, status)
		assert.Contains(t, resp.Error, "game not found")
	})

	t.Run("Human plays against the oracle", func(t *testing.T) {
		// Given: a game started by the human
		api := newTestAPI(t)
		id := api.createGame(t)

		status, resp := api.do(t, http.MethodPost, "/games/"+id+"/start", `{"first":"human"}`)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, entity.StatusHumanTurn, resp.Game.Status)

		// When: the human plays column 0
		status, resp = api.do(t, http.MethodPost, "/games/"+id+"/moves", `{"column":0}`)

		// Then: the oracle answered in column 3 and it is the human's turn again
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, entity.MoveHistory{0, 3}, resp.Game.History)
		assert.Equal(t, entity.StatusHumanTurn, resp.Game.Status)
		assert.Equal(t, entity.Player1, resp.Game.Board[entity.Rows-1][0])
		assert.Equal(t, entity.Player2, resp.Game.Board[entity.Rows-1][3])
	})

	t.Run("Oracle goes first", func(t *testing.T) {
		api := newTestAPI(t)
		id := api.createGame(t)

		status, resp := api.do(t, http.MethodPost, "/games/"+id+"/start", `{"first":"oracle"}`)

		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, entity.MoveHistory{3}, resp.Game.History)
		assert.Equal(t, entity.StatusHumanTurn, resp.Game.Status)
	})

	t.Run("Invalid requests", func(t *testing.T) {
		api := newTestAPI(t)
		id := api.createGame(t)

		// When: moving before the start
		status, resp := api.do(t, http.MethodPost, "/games/"+id+"/moves", `{"column":0}`)

		// Then: the move is a conflict and the game comes back unchanged
		assert.Equal(t, http.StatusConflict, status)
		assert.Contains(t, resp.Error, apperror.ErrGameIsNotStarted.Error())
		require.NotNil(t, resp.Game)
		assert.Equal(t, entity.StatusNotStarted, resp.Game.Status)

		// When: the start names nobody
		status, _ = api.do(t, http.MethodPost, "/games/"+id+"/start", `{"first":"robot"}`)
		assert.Equal(t, http.StatusBadRequest, status)

		// When: the move has no column
		status, _ = api.do(t, http.MethodPost, "/games/"+id+"/moves", `{}`)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("Oracle outage and retry", func(t *testing.T) {
		// Given: a running game and an oracle that is down
		api := newTestAPI(t)
		id := api.createGame(t)

		status, _ := api.do(t, http.MethodPost, "/games/"+id+"/start", `{"first":"human"}`)
		require.Equal(t, http.StatusOK, status)
		api.oracleDown.Store(true)

		// When: the human moves
		status, resp := api.do(t, http.MethodPost, "/games/"+id+"/moves", `{"column":1}`)

		// Then: the failure is reported with the game state
		require.Equal(t, http.StatusBadGateway, status)
		assert.Equal(t, entity.StatusOracleFailed, resp.Game.Status)
		assert.Equal(t, entity.MoveHistory{1}, resp.Game.History)
		assert.NotEmpty(t, resp.Game.LastError)

		// When: the oracle is back and the client retries
		api.oracleDown.Store(false)
		status, resp = api.do(t, http.MethodPost, "/games/"+id+"/retry", "")

		// Then: the game goes on
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, entity.MoveHistory{1, 3}, resp.Game.History)
		assert.Equal(t, entity.StatusHumanTurn, resp.Game.Status)
	})

	t.Run("Restart and delete", func(t *testing.T) {
		api := newTestAPI(t)
		id := api.createGame(t)

		status, _ := api.do(t, http.MethodPost, "/games/"+id+"/start", `{"first":"oracle"}`)
		require.Equal(t, http.StatusOK, status)

		// When: restarting
		status, resp := api.do(t, http.MethodPost, "/games/"+id+"/restart", "")

		// Then: the game is back to the start menu
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, entity.StatusNotStarted, resp.Game.Status)
		assert.Empty(t, resp.Game.History)

		// When: deleting it
		status, _ = api.do(t, http.MethodDelete, "/games/"+id, "")
		require.Equal(t, http.StatusNoContent, status)

		// Then: it is gone
		status, _ = api.do(t, http.MethodGet, "/games/"+id, "")
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusFor(apperror.ErrGameNotFound))
	assert.Equal(t, http.StatusConflict, StatusFor(apperror.ErrInvalidMove))
	assert.Equal(t, http.StatusConflict, StatusFor(apperror.ErrOracleReplyDiscarded))
	assert.Equal(t, http.StatusBadGateway, StatusFor(apperror.ErrOracleProtocol))
	assert.Equal(t, http.StatusServiceUnavailable, StatusFor(apperror.ErrTooManyGames))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(apperror.ErrInvariantViolation))
}
