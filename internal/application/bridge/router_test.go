package bridge

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/formview/internal/application/port"
	"github.com/bnema/formview/internal/application/port/mocks"
	"github.com/bnema/formview/internal/domain/entity"
)

const testSession entity.SessionID = "abc123"

func newTestRouter(t *testing.T, listener port.FormListener, hook LifecycleHook) *Router {
	t.Helper()
	r := NewRouter(context.Background(), testSession, listener, hook)
	t.Cleanup(func() {
		r.Close()
		<-r.Done()
	})
	return r
}

func msg(typ, payload string) string {
	if payload == "" {
		return `{"type":"` + typ + `","session":"` + string(testSession) + `"}`
	}
	return `{"type":"` + typ + `","session":"` + string(testSession) + `","payload":` + payload + `}`
}

func TestRouter_DeliversToListener(t *testing.T) {
	listener := mocks.NewMockFormListener(t)
	listener.EXPECT().OnSubmissionChanged(`{"a":1}`).Once()
	listener.EXPECT().OnValidityChecked(true).Once()
	listener.EXPECT().OnFieldFocused("data[a]").Once()
	listener.EXPECT().OnSubmissionRetrieved(`{"a":2}`).Once()

	r := newTestRouter(t, listener, nil)
	r.Handle(msg("submissionChanged", `"{\"a\":1}"`))
	r.Handle(msg("validityChecked", `true`))
	r.Handle(msg("fieldFocused", `"data[a]"`))
	r.Handle(msg("submissionData", `"{\"a\":2}"`))

	require.NoError(t, r.Flush(context.Background()))
}

func TestRouter_DropsForeignAndMalformed(t *testing.T) {
	listener := mocks.NewMockFormListener(t)

	r := newTestRouter(t, listener, nil)
	r.Handle(`{"type":"submissionChanged","session":"other","payload":"{}"}`)
	r.Handle(`not json`)
	r.Handle(msg("unknown", `1`))
	r.Handle(msg("fieldFocused", `""`))

	require.NoError(t, r.Flush(context.Background()))
	listener.AssertNotCalled(t, "OnSubmissionChanged", "{}")
	listener.AssertNotCalled(t, "OnFieldFocused", "")
}

func TestRouter_ChangeThenValidityOrder(t *testing.T) {
	var (
		mu  sync.Mutex
		got []string
	)
	record := func(s string) {
		mu.Lock()
		got = append(got, s)
		mu.Unlock()
	}
	listener := port.FormListenerFuncs{
		SubmissionChanged: func(string) { record("changed") },
		ValidityChecked:   func(bool) { record("validity") },
	}

	r := newTestRouter(t, listener, nil)
	for range 20 {
		r.Handle(msg("submissionChanged", `"{}"`))
		r.Handle(msg("validityChecked", `false`))
	}
	require.NoError(t, r.Flush(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 40)
	for i := 0; i < len(got); i += 2 {
		assert.Equal(t, "changed", got[i])
		assert.Equal(t, "validity", got[i+1])
	}
}

func TestRouter_RecoversListenerPanic(t *testing.T) {
	var focused []string
	listener := port.FormListenerFuncs{
		SubmissionChanged: func(string) { panic("boom") },
		FieldFocused:      func(name string) { focused = append(focused, name) },
	}

	r := newTestRouter(t, listener, nil)
	assert.NotPanics(t, func() {
		r.Handle(msg("submissionChanged", `"{}"`))
	})
	r.Handle(msg("fieldFocused", `"data[b]"`))
	require.NoError(t, r.Flush(context.Background()))

	assert.Equal(t, []string{"data[b]"}, focused)
}

func TestRouter_LifecycleHookRunsBeforeListener(t *testing.T) {
	var (
		hookSaw  []entity.BridgeEventType
		order    []string
		reason   string
		orderMux sync.Mutex
	)
	hook := func(ev entity.BridgeEvent) {
		orderMux.Lock()
		defer orderMux.Unlock()
		hookSaw = append(hookSaw, ev.Type)
		order = append(order, "hook:"+string(ev.Type))
	}
	listener := port.FormListenerFuncs{
		Ready: func() {
			orderMux.Lock()
			defer orderMux.Unlock()
			order = append(order, "listener:ready")
		},
		LoadFailed: func(r string) { reason = r },
	}

	r := newTestRouter(t, listener, hook)
	r.Handle(msg("ready", ""))
	r.Handle(msg("loadFailed", `"bad schema"`))
	require.NoError(t, r.Flush(context.Background()))

	assert.Equal(t, []entity.BridgeEventType{entity.EventReady, entity.EventLoadFailed}, hookSaw)
	assert.Equal(t, "hook:ready", order[0])
	assert.Contains(t, order, "listener:ready")
	assert.Equal(t, "bad schema", reason)
}

func TestRouter_RequestCorrelation(t *testing.T) {
	var gotID entity.RequestID
	var gotPlain string
	listener := port.FormListenerFuncs{
		SubmissionRetrieved:    func(s string) { gotPlain = s },
		SubmissionRetrievedFor: func(id entity.RequestID, _ string) { gotID = id },
	}

	r := newTestRouter(t, listener, nil)
	r.Handle(`{"type":"submissionData","session":"abc123","payload":"{}","request_id":"req-7"}`)
	require.NoError(t, r.Flush(context.Background()))

	assert.Equal(t, entity.RequestID("req-7"), gotID)
	assert.Equal(t, "{}", gotPlain)
}

func TestRouter_NoListenerAfterClose(t *testing.T) {
	listener := mocks.NewMockFormListener(t)

	r := NewRouter(context.Background(), testSession, listener, nil)
	r.Close()
	<-r.Done()

	assert.NotPanics(t, func() {
		r.Handle(msg("submissionChanged", `"{}"`))
	})
	assert.Nil(t, r.Listener())
}

func TestRouter_SetListenerNil(t *testing.T) {
	listener := mocks.NewMockFormListener(t)
	r := newTestRouter(t, listener, nil)
	r.SetListener(nil)

	r.Handle(msg("submissionChanged", `"{}"`))
	require.NoError(t, r.Flush(context.Background()))
}
