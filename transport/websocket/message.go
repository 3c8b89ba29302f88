package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/ninedt-backend/internal/entity"
)

const (
	actionStart   = "game:start"
	actionMove    = "game:move"
	actionRetry   = "game:retry"
	actionRestart = "game:restart"

	actionState = "game:state"
	actionError = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload is used in both directions; unused fields are left out.
type Payload struct {
	First  string       `json:"first,omitempty"`
	Column *int         `json:"column,omitempty"`
	Game   *entity.Game `json:"game,omitempty"`
	Error  string       `json:"error,omitempty"`
}
