// Package sandbox hosts form documents in an embedded JavaScript runtime.
//
// The renderer assets are replaced by small stand-ins implementing the part
// of the Form.io and jQuery APIs the bridge script relies on. The sandbox
// backs the simulate command and the end-to-end tests of the bridge.
package sandbox

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/grafana/sobek"
	"github.com/rs/zerolog"

	"github.com/bnema/formview/internal/application/port"
	"github.com/bnema/formview/internal/logging"
)

//go:embed js/*.js
var shims embed.FS

// DefaultAssetBaseURI is reported to the synthesizer; nothing is fetched from it.
const DefaultAssetBaseURI = "sandbox://assets/"

var (
	// ErrNoDocument is returned by operations needing a loaded document.
	ErrNoDocument = errors.New("sandbox: no document loaded")
	// ErrFieldNotFound is returned when a simulated interaction matches nothing.
	ErrFieldNotFound = errors.New("sandbox: no matching field")
	// ErrScriptException wraps uncaught JavaScript exceptions.
	ErrScriptException = errors.New("sandbox: script exception")
)

// Option configures a View.
type Option func(*View)

// WithAssetBaseURI overrides the reported asset base.
func WithAssetBaseURI(uri string) Option {
	return func(v *View) {
		if uri != "" {
			v.baseURI = uri
		}
	}
}

// View is a port.FormView backed by a sobek runtime. One runtime exists
// per loaded document; all access to it is serialized.
type View struct {
	baseURI string

	mu sync.Mutex
	vm *sobek.Runtime

	bridgeMu sync.RWMutex
	bridges  map[string]port.BridgeHandler
}

var _ port.FormView = (*View)(nil)

// New creates an empty sandbox view.
func New(opts ...Option) *View {
	v := &View{
		baseURI: DefaultAssetBaseURI,
		bridges: make(map[string]port.BridgeHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

// AssetBaseURI implements port.FormView.
func (v *View) AssetBaseURI() string {
	return v.baseURI
}

// BindBridge implements port.FormView.
func (v *View) BindBridge(_ context.Context, name string, handler port.BridgeHandler) error {
	if name == "" || handler == nil {
		return fmt.Errorf("sandbox: bridge name and handler are required")
	}

	v.bridgeMu.Lock()
	v.bridges[name] = handler
	v.bridgeMu.Unlock()

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.vm != nil {
		return v.installBridgeLocked(name)
	}
	return nil
}

// UnbindBridge implements port.FormView.
func (v *View) UnbindBridge(_ context.Context, name string) error {
	v.bridgeMu.Lock()
	delete(v.bridges, name)
	v.bridgeMu.Unlock()

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.vm != nil {
		v.vm.GlobalObject().Delete(name)
	}
	return nil
}

// LoadDocument replaces the current runtime with one running doc. Script
// errors inside the document are logged, like a browser console would.
func (v *View) LoadDocument(ctx context.Context, doc string) error {
	log := logging.FromContext(ctx).With().Str("component", "sandbox-view").Logger()

	parsed, err := parseDocument(doc)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	vm := sobek.New()
	v.vm = vm

	if err := vm.Set("console", newConsole(vm, &log)); err != nil {
		return fmt.Errorf("sandbox: expose console: %w", err)
	}
	if err := vm.Set("__formviewDocument", map[string]any{
		"blocks":     parsed.blocks,
		"containers": parsed.containers,
	}); err != nil {
		return fmt.Errorf("sandbox: expose document: %w", err)
	}

	v.bridgeMu.RLock()
	names := make([]string, 0, len(v.bridges))
	for name := range v.bridges {
		names = append(names, name)
	}
	v.bridgeMu.RUnlock()
	for _, name := range names {
		if err := v.installBridgeLocked(name); err != nil {
			return err
		}
	}

	if err := v.runShimLocked(ctx, "js/dom.js"); err != nil {
		return err
	}

	for i, script := range parsed.scripts {
		if script.src != "" {
			shim := shimFor(script.src)
			if shim == "" {
				log.Debug().Str("src", script.src).Msg("skipping external script")
				continue
			}
			if err := v.runShimLocked(ctx, shim); err != nil {
				log.Warn().Err(err).Str("src", script.src).Msg("script failed")
			}
			continue
		}
		if _, err := v.runLocked(ctx, fmt.Sprintf("inline-%d.js", i), script.body); err != nil {
			log.Warn().Err(err).Int("index", i).Msg("inline script failed")
		}
	}

	if _, err := v.runLocked(ctx, "load.js", "__formviewFire('load');"); err != nil {
		log.Warn().Err(err).Msg("load handler failed")
	}

	log.Debug().
		Int("scripts", len(parsed.scripts)).
		Int("data_blocks", len(parsed.blocks)).
		Msg("document loaded")
	return nil
}

// EvaluateScript implements port.FormView.
func (v *View) EvaluateScript(ctx context.Context, script string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.vm == nil {
		return ErrNoDocument
	}
	_, err := v.runLocked(ctx, "evaluate.js", script)
	return err
}

// Edit simulates the user typing value into every enabled input named name
// (or belonging to the component keyed name).
func (v *View) Edit(ctx context.Context, name, value string) error {
	n, err := v.callFormio(ctx, "__edit", name, value)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrFieldNotFound, name)
	}
	return nil
}

// Focus simulates the user focusing the input named name.
func (v *View) Focus(ctx context.Context, name string) error {
	n, err := v.callFormio(ctx, "__focus", name)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrFieldNotFound, name)
	}
	return nil
}

// FocusElement focuses a bare element inside the form container, one no
// component owns.
func (v *View) FocusElement(ctx context.Context, tag, name string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.vm == nil {
		return ErrNoDocument
	}
	fn, ok := sobek.AssertFunction(v.vm.Get("__formviewFocus"))
	if !ok {
		return ErrNoDocument
	}
	_, err := v.callLocked(ctx, fn, sobek.Undefined(), v.vm.ToValue(tag), v.vm.ToValue(name))
	return err
}

// Close drops the runtime. Bound bridges stay registered.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.vm = nil
}

func (v *View) callFormio(ctx context.Context, method string, args ...string) (int64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.vm == nil {
		return 0, ErrNoDocument
	}
	formio := v.vm.Get("Formio")
	if formio == nil || sobek.IsUndefined(formio) {
		return 0, fmt.Errorf("%w: renderer not loaded", ErrNoDocument)
	}
	obj := formio.ToObject(v.vm)
	fn, ok := sobek.AssertFunction(obj.Get(method))
	if !ok {
		return 0, fmt.Errorf("sandbox: renderer has no %s", method)
	}

	values := make([]sobek.Value, len(args))
	for i, arg := range args {
		values[i] = v.vm.ToValue(arg)
	}
	res, err := v.callLocked(ctx, fn, obj, values...)
	if err != nil {
		return 0, err
	}
	return res.ToInteger(), nil
}

func (v *View) installBridgeLocked(name string) error {
	err := v.vm.Set(name, func(call sobek.FunctionCall) sobek.Value {
		v.deliver(name, call.Argument(0).String())
		return sobek.Undefined()
	})
	if err != nil {
		return fmt.Errorf("sandbox: install bridge %s: %w", name, err)
	}
	return nil
}

func (v *View) deliver(name, message string) {
	v.bridgeMu.RLock()
	handler := v.bridges[name]
	v.bridgeMu.RUnlock()

	if handler != nil {
		handler(message)
	}
}

func (v *View) runShimLocked(ctx context.Context, name string) error {
	src, err := shims.ReadFile(name)
	if err != nil {
		return fmt.Errorf("sandbox: read %s: %w", name, err)
	}
	_, err = v.runLocked(ctx, name, string(src))
	return err
}

func (v *View) runLocked(ctx context.Context, name, src string) (sobek.Value, error) {
	var res sobek.Value
	err := v.interruptible(ctx, func() error {
		var runErr error
		res, runErr = v.vm.RunScript(name, src)
		return runErr
	})
	return res, err
}

func (v *View) callLocked(ctx context.Context, fn sobek.Callable, this sobek.Value, args ...sobek.Value) (sobek.Value, error) {
	var res sobek.Value
	err := v.interruptible(ctx, func() error {
		var callErr error
		res, callErr = fn(this, args...)
		return callErr
	})
	return res, err
}

// interruptible runs fn and interrupts the runtime when ctx ends first.
func (v *View) interruptible(ctx context.Context, fn func() error) error {
	vm := v.vm
	fired := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		vm.Interrupt(ctx.Err())
		close(fired)
	})

	err := fn()

	if !stop() {
		<-fired
	}
	vm.ClearInterrupt()

	if err == nil {
		return nil
	}
	var interrupted *sobek.InterruptedError
	if errors.As(err, &interrupted) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("sandbox: script interrupted: %w", ctxErr)
		}
		return fmt.Errorf("sandbox: script interrupted: %v", interrupted)
	}
	var exception *sobek.Exception
	if errors.As(err, &exception) {
		return fmt.Errorf("%w: %s", ErrScriptException, strings.TrimSpace(exception.Error()))
	}
	return fmt.Errorf("sandbox: %w", err)
}

func newConsole(vm *sobek.Runtime, log *zerolog.Logger) *sobek.Object {
	console := vm.NewObject()
	levels := map[string]zerolog.Level{
		"log":   zerolog.DebugLevel,
		"debug": zerolog.DebugLevel,
		"info":  zerolog.InfoLevel,
		"warn":  zerolog.WarnLevel,
		"error": zerolog.ErrorLevel,
	}
	for method, level := range levels {
		_ = console.Set(method, func(call sobek.FunctionCall) sobek.Value {
			parts := make([]string, 0, len(call.Arguments))
			for _, arg := range call.Arguments {
				parts = append(parts, arg.String())
			}
			log.WithLevel(level).Str("source", "console").Msg(strings.Join(parts, " "))
			return sobek.Undefined()
		})
	}
	return console
}
