package sse

// Event names written in the "event:" field.
const (
	// EventTypeConnected is the first event on every stream.
	EventTypeConnected = "connected"

	// EventTypeState carries one view state.
	EventTypeState = "state"

	// EventTypeError is sent when a value cannot be encoded.
	EventTypeError = "error"
)

// ConnectedEvent is sent when a client successfully connects.
type ConnectedEvent struct {
	ClientID string `json:"client_id"`
}
