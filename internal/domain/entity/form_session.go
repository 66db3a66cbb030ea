package entity

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// SessionState tracks one embedded document from load to disposal.
type SessionState int

const (
	// SessionUnloaded means no document has been rendered yet.
	SessionUnloaded SessionState = iota
	// SessionLoading means the document was handed to the view but the
	// renderer has not reported ready.
	SessionLoading
	// SessionReady means the renderer is instantiated and accepts commands.
	SessionReady
	// SessionDisposed means the document and its listener were released.
	SessionDisposed
)

// String returns a human-readable representation of the state.
func (s SessionState) String() string {
	switch s {
	case SessionUnloaded:
		return "unloaded"
	case SessionLoading:
		return "loading"
	case SessionReady:
		return "ready"
	case SessionDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// ErrSessionNotReady is returned by host commands issued outside the ready state.
var ErrSessionNotReady = errors.New("form session is not ready")

// ErrSessionDisposed is returned when a disposed session is used again.
var ErrSessionDisposed = errors.New("form session is disposed")

// SessionID identifies one rendered document. It is embedded in the bridge
// name and echoed in every message, so concurrent sessions never collide.
type SessionID string

// NewSessionID returns a random session token safe to use in a JS identifier.
func NewSessionID() SessionID {
	return SessionID(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// BridgeName returns the name the document uses to reach the native side.
func (id SessionID) BridgeName(prefix string) string {
	if prefix == "" {
		prefix = DefaultBridgePrefix
	}
	return prefix + "_" + string(id)
}

// DefaultBridgePrefix is used when no prefix is configured.
const DefaultBridgePrefix = "formview"

// RequestID correlates a fetch command with the submission it produces.
type RequestID string

// NewRequestID returns a fresh correlation id.
func NewRequestID() RequestID {
	return RequestID(uuid.NewString())
}
