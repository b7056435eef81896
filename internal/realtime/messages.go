package realtime

import (
	"encoding/json"
	"time"
)

type MessageType string

const (
	// server -> client
	TypeSnapshotReplaced MessageType = "snapshot.replaced"
	TypeWelcome          MessageType = "welcome"
	TypePong             MessageType = "pong"
	TypeError            MessageType = "error"

	// client -> server
	TypePing MessageType = "ping"
)

// Message is the envelope of every frame sent over the stream.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   any         `json:"payload,omitempty"`
}

func NewMessage(msgType MessageType, payload any) Message {
	return Message{
		Type:      msgType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

func (m Message) JSON() ([]byte, error) {
	return json.Marshal(m)
}

type WelcomePayload struct {
	ClientID string `json:"client_id"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// inbound is the only shape clients send.
type inbound struct {
	Type MessageType `json:"type"`
}
