// Package chrome hosts form documents in a headless Chrome tab driven over
// the DevTools protocol.
package chrome

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/formview/internal/application/port"
	"github.com/bnema/formview/internal/logging"
)

const defaultStartTimeout = 30 * time.Second

// ErrNotStarted is returned by view operations before Start succeeded.
var ErrNotStarted = errors.New("chrome: view not started")

// Options configures a View.
type Options struct {
	AssetDir     string
	ExecPath     string
	Headless     bool
	StartTimeout time.Duration
	ContainerID  string
}

// View is a port.FormView backed by one Chrome tab. Bridge callables are
// Runtime bindings; documents are served from a loopback HTTP server.
type View struct {
	opts   Options
	assets *assetServer

	browserCtx    context.Context
	browserCancel context.CancelFunc
	allocCancel   context.CancelFunc

	bridgeMu sync.RWMutex
	bridges  map[string]port.BridgeHandler

	docSeq    atomic.Uint64
	closeOnce sync.Once
}

var _ port.FormView = (*View)(nil)

// New creates a view; call Start before using it.
func New(opts Options) *View {
	if opts.StartTimeout <= 0 {
		opts.StartTimeout = defaultStartTimeout
	}
	if opts.ContainerID == "" {
		opts.ContainerID = "formio"
	}
	return &View{
		opts:    opts,
		assets:  newAssetServer(opts.AssetDir),
		bridges: make(map[string]port.BridgeHandler),
	}
}

// Start launches the asset server and the browser in parallel.
func (v *View) Start(ctx context.Context) error {
	log := logging.FromContext(ctx).With().Str("component", "chrome-view").Logger()
	started := time.Now()

	startCtx, cancel := context.WithTimeout(ctx, v.opts.StartTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(startCtx)
	g.Go(v.assets.start)
	g.Go(func() error {
		return v.launch(gctx)
	})
	if err := g.Wait(); err != nil {
		v.Close()
		return err
	}

	log.Debug().
		Str("assets", v.assets.baseURI()).
		Bool("headless", v.opts.Headless).
		Dur("took", time.Since(started)).
		Msg("chrome view started")
	return nil
}

func (v *View) launch(ctx context.Context) error {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", v.opts.Headless),
		chromedp.Flag("disable-gpu", true),
	)
	if v.opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(v.opts.ExecPath))
	}

	// The browser outlives the start deadline; only its values are inherited.
	base := context.WithoutCancel(ctx)
	allocCtx, allocCancel := chromedp.NewExecAllocator(base, allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	chromedp.ListenTarget(browserCtx, v.onTargetEvent)

	done := make(chan error, 1)
	go func() {
		done <- chromedp.Run(browserCtx)
	}()

	select {
	case err := <-done:
		if err != nil {
			browserCancel()
			allocCancel()
			return fmt.Errorf("chrome: launch browser: %w", err)
		}
	case <-ctx.Done():
		browserCancel()
		allocCancel()
		return fmt.Errorf("chrome: launch browser: %w", ctx.Err())
	}

	v.browserCtx = browserCtx
	v.browserCancel = browserCancel
	v.allocCancel = allocCancel
	return nil
}

// AssetBaseURI implements port.FormView.
func (v *View) AssetBaseURI() string {
	return v.assets.baseURI()
}

// BindBridge implements port.FormView.
func (v *View) BindBridge(ctx context.Context, name string, handler port.BridgeHandler) error {
	v.bridgeMu.Lock()
	v.bridges[name] = handler
	v.bridgeMu.Unlock()

	if err := v.run(ctx, runtime.AddBinding(name)); err != nil {
		v.bridgeMu.Lock()
		delete(v.bridges, name)
		v.bridgeMu.Unlock()
		return fmt.Errorf("chrome: add binding %s: %w", name, err)
	}
	return nil
}

// UnbindBridge implements port.FormView.
func (v *View) UnbindBridge(ctx context.Context, name string) error {
	v.bridgeMu.Lock()
	delete(v.bridges, name)
	v.bridgeMu.Unlock()

	if err := v.run(ctx, runtime.RemoveBinding(name)); err != nil {
		return fmt.Errorf("chrome: remove binding %s: %w", name, err)
	}
	return nil
}

// LoadDocument implements port.FormView. It returns once the tab fired its
// load event.
func (v *View) LoadDocument(ctx context.Context, html string) error {
	if v.browserCtx == nil {
		return ErrNotStarted
	}
	id := strconv.FormatUint(v.docSeq.Add(1), 10) + ".html"
	url := v.assets.setDocument(id, html)
	if err := v.run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("chrome: navigate: %w", err)
	}
	return nil
}

// EvaluateScript implements port.FormView.
func (v *View) EvaluateScript(ctx context.Context, script string) error {
	return v.run(ctx, chromedp.Evaluate(script, nil))
}

// Edit types value into the first input of the field name.
func (v *View) Edit(ctx context.Context, name, value string) error {
	sel := v.fieldSelector(name)
	return v.run(ctx,
		chromedp.Clear(sel, chromedp.ByQuery),
		chromedp.SendKeys(sel, value, chromedp.ByQuery),
	)
}

// Focus moves keyboard focus to the first input of the field name.
func (v *View) Focus(ctx context.Context, name string) error {
	return v.run(ctx, chromedp.Focus(v.fieldSelector(name), chromedp.ByQuery))
}

// Close shuts the browser and the asset server down.
func (v *View) Close() {
	v.closeOnce.Do(func() {
		if v.browserCancel != nil {
			v.browserCancel()
		}
		if v.allocCancel != nil {
			v.allocCancel()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = v.assets.shutdown(ctx)
	})
}

// fieldSelector matches the raw name and the renderer's data[name] form.
func (v *View) fieldSelector(name string) string {
	container := "#" + v.opts.ContainerID
	return fmt.Sprintf(`%[1]s [name=%[2]s], %[1]s [name=%[3]s]`,
		container, strconv.Quote(name), strconv.Quote("data["+name+"]"))
}

// run executes actions in the tab, bounded by ctx.
func (v *View) run(ctx context.Context, actions ...chromedp.Action) error {
	if v.browserCtx == nil {
		return ErrNotStarted
	}
	runCtx, cancel := context.WithCancel(v.browserCtx)
	defer cancel()
	if deadline, ok := ctx.Deadline(); ok {
		var cancelDeadline context.CancelFunc
		runCtx, cancelDeadline = context.WithDeadline(runCtx, deadline)
		defer cancelDeadline()
	}
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

func (v *View) onTargetEvent(ev any) {
	called, ok := ev.(*runtime.EventBindingCalled)
	if !ok {
		return
	}
	v.bridgeMu.RLock()
	handler := v.bridges[called.Name]
	v.bridgeMu.RUnlock()

	if handler != nil {
		handler(called.Payload)
	}
}
