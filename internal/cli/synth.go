package cli

import (
	"sync/atomic"

	"github.com/bnema/formview/internal/application/port"
	"github.com/bnema/formview/internal/domain/entity"
)

// SwappableSynthesizer delegates to a synthesizer that can be replaced
// while sessions use it, e.g. after the asset configuration changed.
type SwappableSynthesizer struct {
	current atomic.Pointer[port.DocumentSynthesizer]
}

var _ port.DocumentSynthesizer = (*SwappableSynthesizer)(nil)

// NewSwappableSynthesizer starts with s.
func NewSwappableSynthesizer(s port.DocumentSynthesizer) *SwappableSynthesizer {
	sw := &SwappableSynthesizer{}
	sw.Swap(s)
	return sw
}

// Swap replaces the delegate. Documents synthesized afterwards use s.
func (sw *SwappableSynthesizer) Swap(s port.DocumentSynthesizer) {
	sw.current.Store(&s)
}

// Synthesize implements port.DocumentSynthesizer.
func (sw *SwappableSynthesizer) Synthesize(descriptor entity.FormDescriptor, opts port.DocumentOptions) (string, error) {
	return (*sw.current.Load()).Synthesize(descriptor, opts)
}
