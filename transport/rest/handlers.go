package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/ninedt-backend/internal/apperror"
	"github.com/rocketscienceinc/ninedt-backend/internal/entity"
	"github.com/rocketscienceinc/ninedt-backend/internal/usecase"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, r *http.Request)

	CreateGame(w http.ResponseWriter, r *http.Request)
	GetGame(w http.ResponseWriter, r *http.Request)
	DeleteGame(w http.ResponseWriter, r *http.Request)

	StartGame(w http.ResponseWriter, r *http.Request)
	PlayMove(w http.ResponseWriter, r *http.Request)
	RetryOracle(w http.ResponseWriter, r *http.Request)
	RestartGame(w http.ResponseWriter, r *http.Request)
}

type sessionManager interface {
	Create() (*usecase.GameManager, error)
	GetByID(id string) (*usecase.GameManager, error)
	DeleteByID(id string) error
}

// Response is the body of every game endpoint.
type Response struct {
	Game  *entity.Game `json:"game,omitempty"`
	Error string       `json:"error,omitempty"`
}

type startRequest struct {
	First string `json:"first"`
}

type moveRequest struct {
	Column *int `json:"column"`
}

type handlers struct {
	logger   *slog.Logger
	sessions sessionManager
}

func NewHandlers(logger *slog.Logger, sessions sessionManager) Handlers {
	return &handlers{
		logger:   logger.With("component", "rest"),
		sessions: sessions,
	}
}

func (that *handlers) CreateGame(w http.ResponseWriter, _ *http.Request) {
	manager, err := that.sessions.Create()
	if err != nil {
		that.writeError(w, nil, err)
		return
	}

	game := manager.Snapshot()
	that.writeJSON(w, http.StatusCreated, Response{Game: &game})
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	manager, ok := that.lookup(w, r)
	if !ok {
		return
	}

	game := manager.Snapshot()
	that.writeJSON(w, http.StatusOK, Response{Game: &game})
}

func (that *handlers) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.sessions.DeleteByID(r.PathValue("id")); err != nil {
		that.writeError(w, nil, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) StartGame(w http.ResponseWriter, r *http.Request) {
	manager, ok := that.lookup(w, r)
	if !ok {
		return
	}

	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, Response{Error: "invalid request body"})
		return
	}

	first, err := entity.ParseSide(req.First)
	if err != nil {
		that.writeJSON(w, http.StatusBadRequest, Response{Error: err.Error()})
		return
	}

	game, err := manager.Start(r.Context(), first)
	that.writeResult(w, game, err)
}

func (that *handlers) PlayMove(w http.ResponseWriter, r *http.Request) {
	manager, ok := that.lookup(w, r)
	if !ok {
		return
	}

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Column == nil {
		that.writeJSON(w, http.StatusBadRequest, Response{Error: "column is required"})
		return
	}

	game, err := manager.PlayColumn(r.Context(), *req.Column)
	that.writeResult(w, game, err)
}

func (that *handlers) RetryOracle(w http.ResponseWriter, r *http.Request) {
	manager, ok := that.lookup(w, r)
	if !ok {
		return
	}

	game, err := manager.RetryOracle(r.Context())
	that.writeResult(w, game, err)
}

func (that *handlers) RestartGame(w http.ResponseWriter, r *http.Request) {
	manager, ok := that.lookup(w, r)
	if !ok {
		return
	}

	game := manager.Restart()
	that.writeJSON(w, http.StatusOK, Response{Game: &game})
}

func (that *handlers) lookup(w http.ResponseWriter, r *http.Request) (*usecase.GameManager, bool) {
	manager, err := that.sessions.GetByID(r.PathValue("id"))
	if err != nil {
		that.writeError(w, nil, err)
		return nil, false
	}

	return manager, true
}

func (that *handlers) writeResult(w http.ResponseWriter, game entity.Game, err error) {
	if err != nil {
		that.writeError(w, &game, err)
		return
	}

	that.writeJSON(w, http.StatusOK, Response{Game: &game})
}

// writeError maps engine errors to HTTP statuses. The game, when known, is
// always sent back so the client can redraw.
func (that *handlers) writeError(w http.ResponseWriter, game *entity.Game, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err, "status", status)
	}

	that.writeJSON(w, status, Response{Game: game, Error: err.Error()})
}

func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrTooManyGames):
		return http.StatusServiceUnavailable
	case errors.Is(err, apperror.ErrInvalidMove),
		errors.Is(err, apperror.ErrNotRetryable),
		errors.Is(err, apperror.ErrOracleReplyDiscarded):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrOracleTransport),
		errors.Is(err, apperror.ErrOracleProtocol):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
