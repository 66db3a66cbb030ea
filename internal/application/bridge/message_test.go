package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/formview/internal/domain/entity"
)

func TestDecodeMessage(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want entity.BridgeEvent
	}{
		{
			name: "submission data with request id",
			raw:  `{"type":"submissionData","session":"s1","payload":"{\"a\":1}","request_id":"r1"}`,
			want: entity.BridgeEvent{Type: entity.EventSubmissionData, Session: "s1", RequestID: "r1", Text: `{"a":1}`},
		},
		{
			name: "submission changed",
			raw:  `{"type":"submissionChanged","session":"s1","payload":"{}"}`,
			want: entity.BridgeEvent{Type: entity.EventSubmissionChanged, Session: "s1", Text: "{}"},
		},
		{
			name: "validity false",
			raw:  `{"type":"validityChecked","session":"s1","payload":false}`,
			want: entity.BridgeEvent{Type: entity.EventValidityChecked, Session: "s1"},
		},
		{
			name: "validity true",
			raw:  `{"type":"validityChecked","session":"s1","payload":true}`,
			want: entity.BridgeEvent{Type: entity.EventValidityChecked, Session: "s1", Valid: true},
		},
		{
			name: "field focused",
			raw:  `{"type":"fieldFocused","session":"s1","payload":"data[email]"}`,
			want: entity.BridgeEvent{Type: entity.EventFieldFocused, Session: "s1", Text: "data[email]"},
		},
		{
			name: "ready without payload",
			raw:  `{"type":"ready","session":"s1"}`,
			want: entity.BridgeEvent{Type: entity.EventReady, Session: "s1"},
		},
		{
			name: "null submission",
			raw:  `{"type":"submissionData","session":"s1","payload":null}`,
			want: entity.BridgeEvent{Type: entity.EventSubmissionData, Session: "s1"},
		},
		{
			name: "load failed reason",
			raw:  `{"type":"loadFailed","session":"s1","payload":"Unexpected token"}`,
			want: entity.BridgeEvent{Type: entity.EventLoadFailed, Session: "s1", Text: "Unexpected token"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeMessage(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeMessage_Errors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "not json", raw: `submissionData`, wantErr: ErrMalformedMessage},
		{name: "empty", raw: ``, wantErr: ErrMalformedMessage},
		{name: "unknown type", raw: `{"type":"navigate","session":"s1"}`, wantErr: ErrUnknownMessageType},
		{name: "validity as string", raw: `{"type":"validityChecked","session":"s1","payload":"yes"}`, wantErr: ErrInvalidPayload},
		{name: "submission as object", raw: `{"type":"submissionChanged","session":"s1","payload":{"a":1}}`, wantErr: ErrInvalidPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeMessage(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
