package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/bnema/formview/internal/application/port"
	"github.com/bnema/formview/internal/cli/styles"
	"github.com/bnema/formview/internal/domain/entity"
)

// EventPrinter is a form listener that prints every event as a styled line.
type EventPrinter struct {
	out      io.Writer
	renderer *styles.EventRenderer
	session  func() entity.SessionID

	mu     sync.Mutex
	counts map[entity.BridgeEventType]int

	readyOnce sync.Once
	ready     chan struct{}
	failed    chan string
}

var (
	_ port.FormListener      = (*EventPrinter)(nil)
	_ port.RequestListener   = (*EventPrinter)(nil)
	_ port.LifecycleListener = (*EventPrinter)(nil)
)

// NewEventPrinter creates a printer writing to out. session, when set,
// labels the ready line.
func NewEventPrinter(out io.Writer, theme *styles.Theme, session func() entity.SessionID) *EventPrinter {
	return &EventPrinter{
		out:      out,
		renderer: styles.NewEventRenderer(theme),
		session:  session,
		counts:   make(map[entity.BridgeEventType]int),
		ready:    make(chan struct{}),
		failed:   make(chan string, 1),
	}
}

// Ready is closed by the first ready event.
func (p *EventPrinter) Ready() <-chan struct{} {
	return p.ready
}

// Failed receives the reason of the first loadFailed event.
func (p *EventPrinter) Failed() <-chan string {
	return p.failed
}

// Count returns how many events of type t were printed.
func (p *EventPrinter) Count(t entity.BridgeEventType) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counts[t]
}

func (p *EventPrinter) print(t entity.BridgeEventType, line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counts[t]++
	fmt.Fprintln(p.out, line)
}

// OnSubmissionRetrieved is covered by OnSubmissionRetrievedFor.
func (*EventPrinter) OnSubmissionRetrieved(string) {}

// OnSubmissionRetrievedFor implements port.RequestListener.
func (p *EventPrinter) OnSubmissionRetrievedFor(id entity.RequestID, submission string) {
	p.print(entity.EventSubmissionData, p.renderer.RenderRetrieved(string(id), submission))
}

// OnSubmissionChanged implements port.FormListener.
func (p *EventPrinter) OnSubmissionChanged(submission string) {
	p.print(entity.EventSubmissionChanged, p.renderer.RenderChanged(submission))
}

// OnValidityChecked implements port.FormListener.
func (p *EventPrinter) OnValidityChecked(valid bool) {
	p.print(entity.EventValidityChecked, p.renderer.RenderValidity(valid))
}

// OnFieldFocused implements port.FormListener.
func (p *EventPrinter) OnFieldFocused(name string) {
	p.print(entity.EventFieldFocused, p.renderer.RenderFocused(name))
}

// OnReady implements port.LifecycleListener.
func (p *EventPrinter) OnReady() {
	var session string
	if p.session != nil {
		session = string(p.session())
	}
	p.print(entity.EventReady, p.renderer.RenderReady(session))
	p.readyOnce.Do(func() { close(p.ready) })
}

// OnLoadFailed implements port.LifecycleListener.
func (p *EventPrinter) OnLoadFailed(reason string) {
	p.print(entity.EventLoadFailed, p.renderer.RenderLoadFailed(reason))
	select {
	case p.failed <- reason:
	default:
	}
}
