// Package protocol defines the JSON messages exchanged between the web
// client and the game server over a WebSocket.
package protocol

import "encoding/json"

const Version = "1"

// Message types.
const (
	TypeKey     = "key"
	TypeControl = "control"
	TypePing    = "ping"

	TypeWelcome = "welcome"
	TypeState   = "state"
	TypePong    = "pong"
	TypeError   = "error"
)

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type string `json:"type"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}
