package models

import (
	"encoding/json"

	"github.com/tektai/ar-viewer/internal/transform"
)

// Session stream event types sent by clients over the session WebSocket.
const (
	EventTypeHitTest   = "hit_test"
	EventTypeSelect    = "select"
	EventTypeDragStart = "drag_start"
	EventTypeDrag      = "drag"
	EventTypeDragEnd   = "drag_end"
	EventTypeNudge     = "nudge"
	EventTypeMode      = "mode"
	EventTypeReset     = "reset"
	EventTypeRecenter  = "recenter"
)

// Session stream event types sent by the server.
const (
	EventTypeSnapshot = "snapshot"
	EventTypeError    = "error"
)

// ClientEvent is one message read from a session WebSocket.
type ClientEvent struct {
	Type      string           `json:"type"`
	Point     *transform.Vec3  `json:"point,omitempty"`
	Transform *transform.State `json:"transform,omitempty"`
	Mode      string           `json:"mode,omitempty"`
}

// ServerEvent is one message written to a session WebSocket.
type ServerEvent struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error *ErrorResponse  `json:"error,omitempty"`
}
