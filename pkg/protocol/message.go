// Package protocol defines the WebSocket message types exchanged
// between the navigation engine and the map widget.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"
)

// MessageType identifies the type of WebSocket message
type MessageType string

const (
	// Engine → widget messages
	TypeCamera   MessageType = "camera"    // Camera pose animation command
	TypeNavState MessageType = "nav_state" // Navigation state snapshot
	TypeRoute    MessageType = "route"     // Route geometry for rendering
	TypeFallback MessageType = "fallback"  // Hand off to external navigation

	// Widget → engine messages
	TypePanDrag  MessageType = "pan_drag" // User pan/drag gesture
	TypeRecenter MessageType = "recenter" // Explicit recenter action
	TypeLocation MessageType = "location" // Position fix from the device
	TypeStart    MessageType = "start"    // Destination confirmed ("Go")
	TypeStop     MessageType = "stop"     // Navigation cancelled

	// Bidirectional
	TypePing MessageType = "ping" // Health check
	TypePong MessageType = "pong" // Health check response
)

// Message is the base wrapper for all WebSocket messages
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(msgType MessageType, data interface{}) (*Message, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message data: %w", err)
		}
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      rawData,
	}, nil
}

// ParseData unmarshals the message data into the provided struct
func (m *Message) ParseData(v interface{}) error {
	if m.Data == nil {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}

// Bytes returns the JSON-encoded message
func (m *Message) Bytes() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMessage parses a JSON message from bytes
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	return &msg, nil
}
