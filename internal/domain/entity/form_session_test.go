package entity

import (
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func TestSessionID(t *testing.T) {
	a, b := NewSessionID(), NewSessionID()
	assert.NotEqual(t, a, b)
	assert.Len(t, string(a), 32)

	assert.Regexp(t, identifier, a.BridgeName("formview"))
	assert.Equal(t, "formview_"+string(a), a.BridgeName(""))
	assert.Equal(t, "host_"+string(a), a.BridgeName("host"))
}

func TestRequestID(t *testing.T) {
	id := NewRequestID()
	_, err := uuid.Parse(string(id))
	assert.NoError(t, err)
	assert.NotEqual(t, id, NewRequestID())
}

func TestSessionStateString(t *testing.T) {
	assert.Equal(t, "unloaded", SessionUnloaded.String())
	assert.Equal(t, "loading", SessionLoading.String())
	assert.Equal(t, "ready", SessionReady.String())
	assert.Equal(t, "disposed", SessionDisposed.String())
	assert.Equal(t, "unknown", SessionState(42).String())
}

func TestBridgeEventTypeIsKnown(t *testing.T) {
	for _, typ := range []BridgeEventType{
		EventSubmissionData, EventSubmissionChanged, EventValidityChecked,
		EventFieldFocused, EventReady, EventLoadFailed,
	} {
		assert.True(t, typ.IsKnown(), typ)
	}
	assert.False(t, BridgeEventType("submit").IsKnown())
	assert.False(t, BridgeEventType("").IsKnown())
}
