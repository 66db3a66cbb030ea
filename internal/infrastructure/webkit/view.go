// Package webkit hosts form documents in a WebKitGTK web view.
//
// Every GTK call happens on the main thread; view methods called from
// other goroutines are scheduled there with glib.IdleAdd.
package webkit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/diamondburned/gotk4-webkitgtk/pkg/javascriptcore/v6"
	webkit "github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
	coreglib "github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/rs/zerolog"

	"github.com/bnema/formview/internal/application/port"
	"github.com/bnema/formview/internal/logging"
)

var (
	// ErrViewUnavailable is returned when WebKit could not create a view.
	ErrViewUnavailable = errors.New("webkit: failed to create web view")
	// ErrViewDestroyed is returned by operations on a closed view.
	ErrViewDestroyed = errors.New("webkit: view destroyed")
)

// Options configures a View.
type Options struct {
	AssetDir       string
	EnableDevTools bool
}

// View is a port.FormView backed by a WebKitGTK web view. Bridge callables
// are script message handlers of the view's user content manager.
type View struct {
	inner  *webkit.WebView
	ucm    *webkit.UserContentManager
	host   string
	logger zerolog.Logger

	bridgeMu sync.RWMutex
	bridges  map[string]port.BridgeHandler

	signal    coreglib.SignalHandle
	destroyed atomic.Bool
}

var _ port.FormView = (*View)(nil)

var viewSeq atomic.Uint64

// NewView creates a web view. It must be called on the GTK main thread.
func NewView(ctx context.Context, opts Options) (*View, error) {
	inner := webkit.NewWebView()
	if inner == nil {
		return nil, ErrViewUnavailable
	}

	v := &View{
		inner:   inner,
		ucm:     inner.UserContentManager(),
		host:    fmt.Sprintf("v%d", viewSeq.Add(1)),
		logger:  logging.FromContext(ctx).With().Str("component", "webkit-view").Logger(),
		bridges: make(map[string]port.BridgeHandler),
	}

	if settings := inner.Settings(); settings != nil {
		settings.SetEnableJavascript(true)
		settings.SetEnableDeveloperExtras(opts.EnableDevTools)
	}
	registerScheme(inner.Context(), v.host, NewAssetSchemeHandler(ctx, opts.AssetDir))

	// Handlers share one signal; routers drop envelopes of other sessions.
	v.signal = v.ucm.ConnectScriptMessageReceived(v.onScriptMessage)

	v.logger.Debug().Str("host", v.host).Str("assets", opts.AssetDir).Msg("web view created")
	return v, nil
}

// Widget returns the web view for embedding in a GTK container.
func (v *View) Widget() *webkit.WebView {
	return v.inner
}

// AssetBaseURI implements port.FormView.
func (v *View) AssetBaseURI() string {
	return Scheme + "://" + v.host + "/assets/"
}

// BindBridge implements port.FormView.
func (v *View) BindBridge(ctx context.Context, name string, handler port.BridgeHandler) error {
	if v.destroyed.Load() {
		return ErrViewDestroyed
	}
	v.bridgeMu.Lock()
	v.bridges[name] = handler
	v.bridgeMu.Unlock()

	var registered bool
	err := onMain(ctx, func() {
		registered = v.ucm.RegisterScriptMessageHandler(name, "")
	})
	if err == nil && !registered {
		err = fmt.Errorf("webkit: register script message handler %q", name)
	}
	if err != nil {
		v.bridgeMu.Lock()
		delete(v.bridges, name)
		v.bridgeMu.Unlock()
		return err
	}
	return nil
}

// UnbindBridge implements port.FormView.
func (v *View) UnbindBridge(ctx context.Context, name string) error {
	v.bridgeMu.Lock()
	_, ok := v.bridges[name]
	delete(v.bridges, name)
	v.bridgeMu.Unlock()

	if !ok || v.destroyed.Load() {
		return nil
	}
	return onMain(ctx, func() {
		v.ucm.UnregisterScriptMessageHandler(name, "")
	})
}

// LoadDocument implements port.FormView. The document origin is the view's
// formview:// host so that its assets are same-origin.
func (v *View) LoadDocument(ctx context.Context, html string) error {
	if v.destroyed.Load() {
		return ErrViewDestroyed
	}
	base := Scheme + "://" + v.host + "/"
	return onMain(ctx, func() {
		v.inner.LoadHtml(html, base)
	})
}

// EvaluateScript implements port.FormView. Script errors are logged; the
// call returns once the script was handed to WebKit.
func (v *View) EvaluateScript(ctx context.Context, script string) error {
	if v.destroyed.Load() {
		return ErrViewDestroyed
	}
	return onMain(ctx, func() {
		// ctx bounds the hand-off only; cancelling it must not abort the script.
		v.inner.EvaluateJavascript(context.Background(), script, "", "", func(res gio.AsyncResulter) {
			if _, err := v.inner.EvaluateJavascriptFinish(res); err != nil {
				v.logger.Warn().Err(err).Msg("script evaluation failed")
			}
		})
	})
}

// Close disconnects the view from its bridges and the asset scheme.
func (v *View) Close() {
	if !v.destroyed.CompareAndSwap(false, true) {
		return
	}
	v.bridgeMu.Lock()
	names := make([]string, 0, len(v.bridges))
	for name := range v.bridges {
		names = append(names, name)
	}
	clear(v.bridges)
	v.bridgeMu.Unlock()

	unregisterScheme(v.host)
	_ = onMain(context.Background(), func() {
		for _, name := range names {
			v.ucm.UnregisterScriptMessageHandler(name, "")
		}
		v.ucm.HandlerDisconnect(v.signal)
	})
}

func (v *View) onScriptMessage(value *javascriptcore.Value) {
	if value == nil {
		return
	}
	payload := value.String()

	v.bridgeMu.RLock()
	handlers := make([]port.BridgeHandler, 0, len(v.bridges))
	for _, h := range v.bridges {
		handlers = append(handlers, h)
	}
	v.bridgeMu.RUnlock()

	for _, h := range handlers {
		h(payload)
	}
}

// onMain runs fn on the GTK main thread and waits for it. When ctx ends
// first, fn still runs later.
func onMain(ctx context.Context, fn func()) error {
	if glib.MainContextDefault().IsOwner() {
		fn()
		return nil
	}
	done := make(chan struct{})
	glib.IdleAdd(func() bool {
		fn()
		close(done)
		return false
	})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("webkit: main thread: %w", ctx.Err())
	}
}
