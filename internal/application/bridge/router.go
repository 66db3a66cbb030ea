package bridge

import (
	"context"
	"sync/atomic"

	"github.com/bnema/formview/internal/application/port"
	"github.com/bnema/formview/internal/domain/entity"
	"github.com/bnema/formview/internal/logging"
)

// LifecycleHook observes ready/loadFailed events synchronously, before the
// listener sees them.
type LifecycleHook func(ev entity.BridgeEvent)

type listenerBox struct {
	listener port.FormListener
}

// Router routes the messages of one session to its listener.
type Router struct {
	session    entity.SessionID
	baseCtx    context.Context
	dispatcher *Dispatcher
	listener   atomic.Pointer[listenerBox]
	lifecycle  LifecycleHook
}

// NewRouter creates a router accepting only messages tagged with session.
func NewRouter(ctx context.Context, session entity.SessionID, listener port.FormListener, hook LifecycleHook) *Router {
	if ctx == nil {
		ctx = context.Background()
	}
	r := &Router{
		session:    session,
		baseCtx:    logging.WithComponent(ctx, "bridge-router"),
		dispatcher: NewDispatcher(),
		lifecycle:  hook,
	}
	r.SetListener(listener)
	return r
}

// Session returns the session token the router accepts.
func (r *Router) Session() entity.SessionID {
	return r.session
}

// SetListener swaps the listener. Nil unbinds; later events are dropped.
func (r *Router) SetListener(listener port.FormListener) {
	if listener == nil {
		r.listener.Store(nil)
		return
	}
	r.listener.Store(&listenerBox{listener: listener})
}

// Listener returns the bound listener, if any.
func (r *Router) Listener() port.FormListener {
	box := r.listener.Load()
	if box == nil {
		return nil
	}
	return box.listener
}

// Handle is the port.BridgeHandler given to the view. It never panics.
func (r *Router) Handle(payload string) {
	log := logging.FromContext(r.baseCtx)
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Msg("bridge handler recovered")
		}
	}()

	ev, err := DecodeMessage(payload)
	if err != nil {
		log.Warn().Err(err).Int("payload_len", len(payload)).Msg("dropping bridge message")
		return
	}
	if ev.Session != r.session {
		log.Debug().
			Str("type", string(ev.Type)).
			Str("message_session", string(ev.Session)).
			Msg("dropping message for another session")
		return
	}

	if r.lifecycle != nil && (ev.Type == entity.EventReady || ev.Type == entity.EventLoadFailed) {
		r.lifecycle(ev)
	}

	if !r.dispatcher.Submit(func() { r.deliver(ev) }) {
		log.Debug().Str("type", string(ev.Type)).Msg("router closed, dropping message")
	}
}

// Flush waits until every accepted message has been delivered.
func (r *Router) Flush(ctx context.Context) error {
	return r.dispatcher.Flush(ctx)
}

// Close unbinds the listener and stops delivery.
func (r *Router) Close() {
	r.listener.Store(nil)
	r.dispatcher.Close()
}

// Done is closed once the delivery goroutine exited.
func (r *Router) Done() <-chan struct{} {
	return r.dispatcher.Done()
}

func (r *Router) deliver(ev entity.BridgeEvent) {
	log := logging.FromContext(r.baseCtx)
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().
				Interface("panic", rec).
				Str("type", string(ev.Type)).
				Msg("form listener panicked")
		}
	}()

	listener := r.Listener()
	if listener == nil {
		return
	}

	switch ev.Type {
	case entity.EventSubmissionData:
		listener.OnSubmissionRetrieved(ev.Text)
		if rl, ok := listener.(port.RequestListener); ok {
			rl.OnSubmissionRetrievedFor(ev.RequestID, ev.Text)
		}
	case entity.EventSubmissionChanged:
		listener.OnSubmissionChanged(ev.Text)
	case entity.EventValidityChecked:
		listener.OnValidityChecked(ev.Valid)
	case entity.EventFieldFocused:
		if ev.Text == "" {
			return
		}
		listener.OnFieldFocused(ev.Text)
	case entity.EventReady:
		if ll, ok := listener.(port.LifecycleListener); ok {
			ll.OnReady()
		}
	case entity.EventLoadFailed:
		if ll, ok := listener.(port.LifecycleListener); ok {
			ll.OnLoadFailed(ev.Text)
		}
	}
}
