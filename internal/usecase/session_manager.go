package usecase

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/ninedt-backend/internal/apperror"
)

// SessionManager keeps the games served by one process. Each game owns its
// own GameManager; nothing is shared between games.
type SessionManager struct {
	logger *slog.Logger
	oracle oracleDep
	limit  int

	mu       sync.RWMutex
	sessions map[string]*GameManager
}

func NewSessionManager(logger *slog.Logger, oracle oracleDep, limit int) *SessionManager {
	return &SessionManager{
		logger:   logger,
		oracle:   oracle,
		limit:    limit,
		sessions: make(map[string]*GameManager),
	}
}

func (that *SessionManager) Create() (*GameManager, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.limit > 0 && len(that.sessions) >= that.limit {
		return nil, fmt.Errorf("%w: limit %d", apperror.ErrTooManyGames, that.limit)
	}

	id := uuid.NewString()
	manager := NewGameManager(that.logger, that.oracle, id)
	that.sessions[id] = manager

	that.logger.Info("game created", "gameID", id, "active", len(that.sessions))

	return manager, nil
}

func (that *SessionManager) GetByID(id string) (*GameManager, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	manager, ok := that.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
	}

	return manager, nil
}

// DeleteByID drops a game. A pending oracle reply for it is discarded.
func (that *SessionManager) DeleteByID(id string) error {
	that.mu.Lock()
	manager, ok := that.sessions[id]
	delete(that.sessions, id)
	that.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
	}

	manager.Restart()
	that.logger.Info("game deleted", "gameID", id)

	return nil
}

func (that *SessionManager) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.sessions)
}
