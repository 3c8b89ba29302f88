package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/ninedt-backend/internal/entity"
	"github.com/rocketscienceinc/ninedt-backend/internal/usecase"
)

const writeWait = 10 * time.Second

type sessionManager interface {
	GetByID(id string) (*usecase.GameManager, error)
}

type handlerFunc func(ctx context.Context, manager *usecase.GameManager, payload *Payload) error

// Server streams game snapshots to a client and applies the client's
// actions. It is mounted at /games/{id}/ws.
type Server struct {
	logger   *slog.Logger
	sessions sessionManager
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, sessions sessionManager) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionStart] = server.handleStart
	server.handlers[actionMove] = server.handleMove
	server.handlers[actionRetry] = server.handleRetry
	server.handlers[actionRestart] = server.handleRestart

	return server
}

// connection serializes writes; gorilla allows a single concurrent writer.
type connection struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (that *connection) send(action string, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if err = that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = that.conn.WriteJSON(Message{Action: action, Payload: body}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	log := that.logger.With("method", "ServeHTTP", "gameID", gameID)

	manager, err := that.sessions.GetByID(gameID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	log.Info("WebSocket connection established")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	client := &connection{conn: conn}
	updates, stop := manager.Watch()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		that.pushUpdates(ctx, client, updates)
	}()

	that.handleMessages(ctx, client, manager, &wg)

	cancel()
	stop()
	wg.Wait()

	log.Info("WebSocket connection closed")
}

func (that *Server) pushUpdates(ctx context.Context, client *connection, updates <-chan entity.Game) {
	log := that.logger.With("method", "pushUpdates")

	for {
		select {
		case <-ctx.Done():
			return
		case game, ok := <-updates:
			if !ok {
				return
			}

			if err := client.send(actionState, Payload{Game: &game}); err != nil {
				log.Error("failed to push game state", "error", err)
				return
			}
		}
	}
}

// handleMessages reads until the client goes away. Every action runs in its
// own goroutine so a restart is never stuck behind an oracle request.
func (that *Server) handleMessages(ctx context.Context, client *connection, manager *usecase.GameManager, wg *sync.WaitGroup) {
	log := that.logger.With("method", "handleMessages")

	for {
		var message Message
		if err := client.conn.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			that.sendError(client, fmt.Sprintf("unknown action %q", message.Action))
			continue
		}

		var payload Payload
		if len(message.Payload) > 0 {
			if err := json.Unmarshal(message.Payload, &payload); err != nil {
				that.sendError(client, "invalid payload")
				continue
			}
		}

		wg.Add(1)
		go func() {
			defer wg.Done()

			if err := handler(ctx, manager, &payload); err != nil {
				log.Debug("action failed", "action", message.Action, "error", err)
				that.sendError(client, err.Error())
			}
		}()
	}
}

func (that *Server) sendError(client *connection, text string) {
	if err := client.send(actionError, Payload{Error: text}); err != nil {
		that.logger.Error("failed to send error", "error", err)
	}
}
