package entity

// BridgeEventType names a message the embedded document posts to the host.
type BridgeEventType string

const (
	// EventSubmissionData answers an explicit fetch request.
	EventSubmissionData BridgeEventType = "submissionData"
	// EventSubmissionChanged fires on every change inside the renderer.
	EventSubmissionChanged BridgeEventType = "submissionChanged"
	// EventValidityChecked follows every EventSubmissionChanged.
	EventValidityChecked BridgeEventType = "validityChecked"
	// EventFieldFocused fires when a named input or textarea gains focus.
	EventFieldFocused BridgeEventType = "fieldFocused"
	// EventReady fires once the renderer is instantiated and prefilled.
	EventReady BridgeEventType = "ready"
	// EventLoadFailed fires when the renderer could not be instantiated.
	EventLoadFailed BridgeEventType = "loadFailed"
)

// IsKnown reports whether the type is part of the bridge contract.
func (t BridgeEventType) IsKnown() bool {
	switch t {
	case EventSubmissionData, EventSubmissionChanged, EventValidityChecked,
		EventFieldFocused, EventReady, EventLoadFailed:
		return true
	default:
		return false
	}
}

// BridgeEvent is a decoded message from the embedded document.
type BridgeEvent struct {
	Type      BridgeEventType
	Session   SessionID
	RequestID RequestID

	// Text carries submission JSON, a field name or a failure reason.
	Text string
	// Valid carries the validity flag for EventValidityChecked.
	Valid bool
}
