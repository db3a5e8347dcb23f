package websocket

import "time"

const (
	// MessageTypeGamesAppended announces a sync run that added games.
	MessageTypeGamesAppended = "games.appended"
	MessageTypeHeartbeat     = "heartbeat"
	MessageTypeError         = "error"
)

// ServerMessage is the envelope for everything written to clients.
type ServerMessage struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// ClientMessage is what clients may send.
type ClientMessage struct {
	Type string `json:"type"`
}
