package websocket

import (
	"encoding/json"
	"time"

	"github.com/Umar7799/user-managment/internal/domain"
)

type MessageType string

const (
	// Client to Server
	MessageTypeSyncUsers MessageType = "SYNC_USERS"

	// Server to Client
	MessageTypeUsersUpdated MessageType = "usersUpdated"
	MessageTypeBlocked      MessageType = "blocked"
	MessageTypeError        MessageType = "ERROR"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// Server to Client payloads

// UsersUpdatedPayload always carries the full ordered listing, never a
// delta, so clients cannot observe out-of-order partial updates.
type UsersUpdatedPayload struct {
	Users []*domain.User `json:"users"`
}

type BlockedPayload struct {
	Message string `json:"message"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
