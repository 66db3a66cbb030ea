package port

import "github.com/bnema/formview/internal/domain/entity"

// DocumentOptions carries the per-session values a document is built with.
type DocumentOptions struct {
	// AssetBaseURI is the base renderer assets are resolved against.
	AssetBaseURI string
	// BridgeName is the callable the document posts its events to.
	BridgeName string
	// Session is echoed in every message so stale documents are ignored.
	Session entity.SessionID
}

// DocumentSynthesizer builds the self-contained HTML document of a session.
type DocumentSynthesizer interface {
	Synthesize(descriptor entity.FormDescriptor, opts DocumentOptions) (string, error)
}
