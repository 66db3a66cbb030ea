// Package bridge decodes the messages an embedded form document posts to the
// host and delivers them, in order, to the session listener.
package bridge

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bnema/formview/internal/domain/entity"
)

var (
	// ErrMalformedMessage is returned for payloads that are not a JSON envelope.
	ErrMalformedMessage = errors.New("bridge: malformed message")
	// ErrUnknownMessageType is returned for envelopes outside the bridge contract.
	ErrUnknownMessageType = errors.New("bridge: unknown message type")
	// ErrInvalidPayload is returned when the payload does not match its type.
	ErrInvalidPayload = errors.New("bridge: invalid payload")
)

// Message is the JSON envelope posted by the document.
type Message struct {
	Type      string          `json:"type"`
	Session   string          `json:"session"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
}

// DecodeMessage parses one raw envelope into a typed event.
func DecodeMessage(raw string) (entity.BridgeEvent, error) {
	var msg Message
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		return entity.BridgeEvent{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	eventType := entity.BridgeEventType(msg.Type)
	if !eventType.IsKnown() {
		return entity.BridgeEvent{}, fmt.Errorf("%w: %q", ErrUnknownMessageType, msg.Type)
	}

	ev := entity.BridgeEvent{
		Type:      eventType,
		Session:   entity.SessionID(msg.Session),
		RequestID: entity.RequestID(msg.RequestID),
	}

	switch eventType {
	case entity.EventValidityChecked:
		if err := decodePayload(msg.Payload, &ev.Valid); err != nil {
			return entity.BridgeEvent{}, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, msg.Type, err)
		}
	case entity.EventReady:
	default:
		if err := decodePayload(msg.Payload, &ev.Text); err != nil {
			return entity.BridgeEvent{}, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, msg.Type, err)
		}
	}

	return ev, nil
}

// decodePayload leaves dst untouched for a missing or null payload.
func decodePayload(payload json.RawMessage, dst any) error {
	if len(payload) == 0 || string(payload) == "null" {
		return nil
	}
	return json.Unmarshal(payload, dst)
}
