package api

import (
	"encoding/json"

	"github.com/uhyunpark/sbewire/pkg/sbe"
)

// API response types for REST endpoints and WebSocket messages

// ==============================
// REST Response Types
// ==============================

// EncodeResponse is returned by POST /api/v1/encode/{type}?format=hex
type EncodeResponse struct {
	Type   string `json:"type"`
	Length int    `json:"length"` // frame size in bytes
	Hex    string `json:"hex"`    // 0x-prefixed frame bytes
}

// FrameInfo describes one archived frame
type FrameInfo struct {
	Key       string `json:"key"`
	Digest    string `json:"digest"`
	Type      string `json:"type"`
	Symbol    string `json:"symbol"`
	Timestamp int64  `json:"timestamp"` // epoch millis from the message
	Length    int    `json:"length"`
	Hex       string `json:"hex,omitempty"`
}

// FrameDetail is a FrameInfo plus the decoded record
type FrameDetail struct {
	FrameInfo
	Message json.RawMessage `json:"message"`
}

// SchemaResponse lists the wire layout of every message
type SchemaResponse struct {
	SchemaID      uint16       `json:"schemaId"`
	SchemaVersion uint16       `json:"version"`
	HeaderLength  int          `json:"headerLength"`
	Messages      []sbe.Layout `json:"messages"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"` // RFC3339
}

// ErrorResponse is returned for all errors
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Field     string `json:"field,omitempty"` // "<message>.<field>" when known
	RequestID string `json:"requestId,omitempty"`
}

// ==============================
// WebSocket Message Types
// ==============================

// WSMessage is the base structure for all WebSocket messages
type WSMessage struct {
	Type    string `json:"type"`              // "frame", "decoded", "error"
	Channel string `json:"channel,omitempty"` // e.g. "frames:order"
	Data    any    `json:"data"`
}

// WSSubscribeRequest is sent by client to subscribe to channels
type WSSubscribeRequest struct {
	Op       string   `json:"op"`       // "subscribe" or "unsubscribe"
	Channels []string `json:"channels"` // e.g., ["frames:order", "frames:marketdata"]
}

// FramesChannel is the subscription name for archived frames of one type.
func FramesChannel(msgType string) string { return "frames:" + msgType }
