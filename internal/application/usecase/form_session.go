package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/formview/internal/application/bridge"
	"github.com/bnema/formview/internal/application/port"
	"github.com/bnema/formview/internal/domain/entity"
	"github.com/bnema/formview/internal/logging"
)

const defaultScriptTimeout = 5 * time.Second

// FormSessionOption configures a FormSession.
type FormSessionOption func(*FormSession)

// WithBridgePrefix sets the prefix of per-session bridge names.
func WithBridgePrefix(prefix string) FormSessionOption {
	return func(s *FormSession) {
		if prefix != "" {
			s.bridgePrefix = prefix
		}
	}
}

// WithScriptTimeout bounds every script injection.
func WithScriptTimeout(timeout time.Duration) FormSessionOption {
	return func(s *FormSession) {
		if timeout > 0 {
			s.scriptTimeout = timeout
		}
	}
}

// FormSession renders one form at a time into a view and relays the
// commands and events of the current document.
type FormSession struct {
	view          port.FormView
	synthesizer   port.DocumentSynthesizer
	bridgePrefix  string
	scriptTimeout time.Duration

	// opMu serializes Render and Dispose; mu guards state and is never
	// held across view calls.
	opMu    sync.Mutex
	mu      sync.Mutex
	state   entity.SessionState
	session entity.SessionID
	current attachment
}

type attachment struct {
	router     *bridge.Router
	bridgeName string
}

// NewFormSession creates an unloaded session over view.
func NewFormSession(view port.FormView, synthesizer port.DocumentSynthesizer, opts ...FormSessionOption) *FormSession {
	s := &FormSession{
		view:          view,
		synthesizer:   synthesizer,
		bridgePrefix:  entity.DefaultBridgePrefix,
		scriptTimeout: defaultScriptTimeout,
		state:         entity.SessionUnloaded,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Render loads a new document for descriptor and binds listener to it.
// A previously rendered document is torn down first and its listener
// receives nothing further.
func (s *FormSession) Render(ctx context.Context, descriptor entity.FormDescriptor, listener port.FormListener) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	if s.state == entity.SessionDisposed {
		s.mu.Unlock()
		return entity.ErrSessionDisposed
	}
	previous := s.detachLocked(entity.SessionUnloaded)
	s.mu.Unlock()
	s.release(ctx, previous)

	session := entity.NewSessionID()
	name := session.BridgeName(s.bridgePrefix)
	log := logging.FromContext(ctx).With().
		Str("component", "form-session").
		Str("session", string(session)).
		Logger()

	router := bridge.NewRouter(logging.WithContext(ctx, log), session, listener, s.lifecycleHook(ctx, session))
	if err := s.view.BindBridge(ctx, name, router.Handle); err != nil {
		router.Close()
		return fmt.Errorf("bind bridge %s: %w", name, err)
	}

	doc, err := s.synthesizer.Synthesize(descriptor, port.DocumentOptions{
		AssetBaseURI: s.view.AssetBaseURI(),
		BridgeName:   name,
		Session:      session,
	})
	if err != nil {
		s.release(ctx, attachment{router: router, bridgeName: name})
		return fmt.Errorf("synthesize document: %w", err)
	}

	s.mu.Lock()
	s.current = attachment{router: router, bridgeName: name}
	s.session = session
	s.state = entity.SessionLoading
	s.mu.Unlock()

	log.Debug().
		Str("bridge", name).
		Bool("read_only", descriptor.ReadOnly()).
		Int("document_bytes", len(doc)).
		Msg("loading form document")

	if err := s.view.LoadDocument(ctx, doc); err != nil {
		s.mu.Lock()
		failed := s.detachLocked(entity.SessionUnloaded)
		s.mu.Unlock()
		s.release(ctx, failed)
		return fmt.Errorf("load document: %w", err)
	}
	return nil
}

// FetchSubmission asks the document for its current data. The answer
// arrives through OnSubmissionRetrieved, tagged with the returned id for
// listeners implementing port.RequestListener.
func (s *FormSession) FetchSubmission(ctx context.Context) (entity.RequestID, error) {
	id := entity.NewRequestID()
	arg, err := json.Marshal(string(id))
	if err != nil {
		return "", fmt.Errorf("encode request id: %w", err)
	}
	if err := s.evaluate(ctx, fmt.Sprintf("window.formview.submitForm(%s);", arg)); err != nil {
		return "", err
	}
	return id, nil
}

// SetFieldValue sets every component whose input name or key equals name.
// When at least one matched, the document emits one change and one validity
// event.
func (s *FormSession) SetFieldValue(ctx context.Context, name, value string) error {
	nameArg, err := json.Marshal(name)
	if err != nil {
		return fmt.Errorf("encode field name: %w", err)
	}
	valueArg, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode field value: %w", err)
	}
	return s.evaluate(ctx, fmt.Sprintf("window.formview.setInputValue(%s, %s);", nameArg, valueArg))
}

// Dispose unbinds the bridge and the listener. The session cannot be
// rendered again.
func (s *FormSession) Dispose(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	if s.state == entity.SessionDisposed {
		s.mu.Unlock()
		return nil
	}
	current := s.detachLocked(entity.SessionDisposed)
	s.mu.Unlock()

	s.release(ctx, current)
	return nil
}

// Flush waits until every event received so far reached the listener.
// Called from a listener method it returns bridge.ErrFlushFromDispatcher.
func (s *FormSession) Flush(ctx context.Context) error {
	s.mu.Lock()
	router := s.current.router
	s.mu.Unlock()

	if router == nil {
		return nil
	}
	return router.Flush(ctx)
}

// State returns the current lifecycle state.
func (s *FormSession) State() entity.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SessionID returns the token of the current document, empty before Render.
func (s *FormSession) SessionID() entity.SessionID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

func (s *FormSession) evaluate(ctx context.Context, script string) error {
	s.mu.Lock()
	state := s.state
	session := s.session
	s.mu.Unlock()

	switch state {
	case entity.SessionReady:
	case entity.SessionDisposed:
		return fmt.Errorf("%w: %w", entity.ErrSessionNotReady, entity.ErrSessionDisposed)
	default:
		return fmt.Errorf("%w (state %s)", entity.ErrSessionNotReady, state)
	}

	ctx, cancel := context.WithTimeout(ctx, s.scriptTimeout)
	defer cancel()

	if err := s.view.EvaluateScript(ctx, script); err != nil {
		logging.FromContext(ctx).Warn().
			Err(err).
			Str("session", string(session)).
			Msg("script injection failed")
		return fmt.Errorf("evaluate script: %w", err)
	}
	return nil
}

func (s *FormSession) lifecycleHook(ctx context.Context, session entity.SessionID) bridge.LifecycleHook {
	log := logging.FromContext(ctx)
	return func(ev entity.BridgeEvent) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.session != session || s.state != entity.SessionLoading {
			return
		}
		switch ev.Type {
		case entity.EventReady:
			s.state = entity.SessionReady
			log.Debug().Str("session", string(session)).Msg("form ready")
		case entity.EventLoadFailed:
			log.Warn().Str("session", string(session)).Str("reason", ev.Text).Msg("form failed to load")
		}
	}
}

// detachLocked clears the current document and moves to state.
// Must be called with s.mu held; the result is released without it.
func (s *FormSession) detachLocked(state entity.SessionState) attachment {
	current := s.current
	s.current = attachment{}
	s.state = state
	if current.router != nil {
		current.router.Close()
	}
	return current
}

func (s *FormSession) release(ctx context.Context, a attachment) {
	if a.router == nil {
		return
	}
	a.router.Close()
	if err := s.view.UnbindBridge(ctx, a.bridgeName); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("bridge", a.bridgeName).Msg("failed to unbind bridge")
	}
}
