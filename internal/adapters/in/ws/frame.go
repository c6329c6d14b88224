package ws

import (
	"encoding/json"
)

const (
	EventAck   = "ack"
	EventError = "error"
)

// Frame is one message on the socket in either direction. Ack correlates
// a reply with the request that carried the same value.
type Frame struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
	Ack   string `json:"ack,omitempty"`
}

type inboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
	Ack   string          `json:"ack"`
}

type ErrorPayload struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error codes sent in ErrorPayload.Code.
const (
	CodeValidation   = "validation"
	CodeConflict     = "conflict"
	CodeNotFound     = "not_found"
	CodeUnauthorized = "unauthorized"
	CodeUpstream     = "upstream"
	CodeUnknownEvent = "unknown_event"
	CodeInternal     = "internal"
)
