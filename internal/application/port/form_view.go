package port

import "context"

// BridgeHandler receives the raw JSON envelopes posted by the embedded
// document. Implementations call it from the view's own execution context.
type BridgeHandler func(payload string)

// FormView is the embedding surface a form session renders into.
// It abstracts the hosting runtime (WebKitGTK, headless Chrome, sandbox).
type FormView interface {
	// AssetBaseURI returns the base the document resolves renderer assets against.
	AssetBaseURI() string

	// BindBridge exposes a callable named name to the document. Messages posted
	// through it are delivered to handler. Binding must happen before the
	// document referencing name is loaded.
	BindBridge(ctx context.Context, name string, handler BridgeHandler) error

	// UnbindBridge removes a callable registered with BindBridge.
	UnbindBridge(ctx context.Context, name string) error

	// LoadDocument replaces the current document with html.
	LoadDocument(ctx context.Context, html string) error

	// EvaluateScript enqueues script in the document. It does not wait for
	// results; effects come back through the bridge.
	EvaluateScript(ctx context.Context, script string) error
}
