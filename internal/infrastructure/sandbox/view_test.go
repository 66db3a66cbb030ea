package sandbox

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/formview/internal/application/port"
	"github.com/bnema/formview/internal/application/usecase"
	"github.com/bnema/formview/internal/domain/entity"
	"github.com/bnema/formview/internal/infrastructure/document"
)

const contactSchema = `{"components":[
  {"type":"textfield","key":"name","label":"Name","validate":{"required":true}},
  {"type":"email","key":"email","label":"Email"},
  {"type":"textarea","key":"notes","label":"Notes"},
  {"type":"button","key":"submit","label":"Submit","input":true}
]}`

type recorder struct {
	mu       sync.Mutex
	events   []string
	requests []entity.RequestID
}

func (r *recorder) add(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) OnSubmissionRetrieved(s string) { r.add("retrieved:" + s) }
func (r *recorder) OnSubmissionChanged(s string) { r.add("changed:" + s) }
func (r *recorder) OnValidityChecked(valid bool) { r.add(fmt.Sprintf("validity:%t", valid)) }
func (r *recorder) OnFieldFocused(name string) { r.add("focused:" + name) }
func (r *recorder) OnReady() { r.add("ready") }
func (r *recorder) OnLoadFailed(reason string) { r.add("loadFailed:" + reason) }

func (r *recorder) OnSubmissionRetrievedFor(id entity.RequestID, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, id)
}

// take returns and clears the recorded events.
func (r *recorder) take() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.events
	r.events = nil
	return out
}

var _ port.FormListener = (*recorder)(nil)

type rig struct {
	view    *View
	session *usecase.FormSession
	rec     *recorder
}

func newRig(t *testing.T, manifest document.Manifest) *rig {
	t.Helper()
	synth, err := document.NewSynthesizer(manifest)
	require.NoError(t, err)

	view := New()
	r := &rig{
		view:    view,
		session: usecase.NewFormSession(view, synth),
		rec:     &recorder{},
	}
	t.Cleanup(func() { _ = r.session.Dispose(context.Background()) })
	return r
}

func (r *rig) render(t *testing.T, schema string, opts ...entity.DescriptorOption) {
	t.Helper()
	desc, err := entity.NewFormDescriptor(schema, opts...)
	require.NoError(t, err)
	require.NoError(t, r.session.Render(context.Background(), desc, r.rec))
	r.flush(t)
}

func (r *rig) flush(t *testing.T) {
	t.Helper()
	require.NoError(t, r.session.Flush(context.Background()))
}

func assertPairs(t *testing.T, events []string) {
	t.Helper()
	for i, ev := range events {
		if strings.HasPrefix(ev, "changed:") {
			require.Less(t, i+1, len(events), "change without validity at the end")
			assert.True(t, strings.HasPrefix(events[i+1], "validity:"), "event after %q is %q", ev, events[i+1])
		}
		if strings.HasPrefix(ev, "validity:") {
			require.Greater(t, i, 0)
			assert.True(t, strings.HasPrefix(events[i-1], "changed:"), "validity without change at %d", i)
		}
	}
}

func TestSandbox_RenderPrefillsAndReportsReady(t *testing.T) {
	r := newRig(t, document.DefaultManifest())
	r.render(t, contactSchema, entity.WithPrefill(`{"name":"Ada"}`))

	assert.Equal(t, entity.SessionReady, r.session.State())
	events := r.rec.take()
	require.NotEmpty(t, events)
	assert.Equal(t, "ready", events[len(events)-1])
	assert.Contains(t, events, `changed:{"name":"Ada"}`)
	assert.Contains(t, events, "validity:true")
	assertPairs(t, events)
}

func TestSandbox_BlankPrefillRendersEmptyForm(t *testing.T) {
	r := newRig(t, document.DefaultManifest())
	r.render(t, contactSchema, entity.WithPrefill("   "))

	events := r.rec.take()
	assert.Contains(t, events, "changed:{}")
	assert.Contains(t, events, "validity:false", "required name is empty")
	assert.Equal(t, entity.SessionReady, r.session.State())
}

func TestSandbox_FetchSubmission(t *testing.T) {
	r := newRig(t, document.DefaultManifest())
	r.render(t, contactSchema, entity.WithPrefill(`{"name":"Ada","email":"ada@example.com"}`))
	r.rec.take()

	id, err := r.session.FetchSubmission(context.Background())
	require.NoError(t, err)
	r.flush(t)

	assert.Equal(t, []string{`retrieved:{"name":"Ada","email":"ada@example.com"}`}, r.rec.take())
	assert.Equal(t, []entity.RequestID{id}, r.rec.requests)
}

func TestSandbox_SetFieldValue(t *testing.T) {
	r := newRig(t, document.DefaultManifest())
	r.render(t, contactSchema, entity.WithPrefill(`{"name":"Ada"}`))
	r.rec.take()
	ctx := context.Background()

	require.NoError(t, r.session.SetFieldValue(ctx, "data[email]", "ada@example.com"))
	r.flush(t)
	assert.Equal(t, []string{
		`changed:{"name":"Ada","email":"ada@example.com"}`,
		"validity:true",
	}, r.rec.take())

	// Matching by component key, clearing a required field.
	require.NoError(t, r.session.SetFieldValue(ctx, "name", ""))
	r.flush(t)
	assert.Equal(t, []string{
		`changed:{"name":"","email":"ada@example.com"}`,
		"validity:false",
	}, r.rec.take())

	require.NoError(t, r.session.SetFieldValue(ctx, "data[missing]", "x"))
	r.flush(t)
	assert.Empty(t, r.rec.take())
}

func TestSandbox_SetFieldValueQuoting(t *testing.T) {
	r := newRig(t, document.DefaultManifest())
	r.render(t, contactSchema)
	r.rec.take()

	value := `O'Brien "</script>" \ ` + "\n "
	require.NoError(t, r.session.SetFieldValue(context.Background(), "data[notes]", value))
	require.NoError(t, r.session.SetFieldValue(context.Background(), "data[name]", "x"))
	_, err := r.session.FetchSubmission(context.Background())
	require.NoError(t, err)
	r.flush(t)

	events := r.rec.take()
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.True(t, strings.HasPrefix(last, "retrieved:"))
	assert.Contains(t, last, `O'Brien \"</script>\" \\ \n`)
}

func TestSandbox_SetFieldValueDuplicates(t *testing.T) {
	schema := `{"components":[
	  {"type":"columns","key":"cols","columns":[
	    {"components":[{"type":"textfield","key":"city","label":"City"}]},
	    {"components":[{"type":"textfield","key":"city","label":"City again"}]}
	  ]}
	]}`
	r := newRig(t, document.DefaultManifest())
	r.render(t, schema)
	r.rec.take()

	require.NoError(t, r.session.SetFieldValue(context.Background(), "data[city]", "Lyon"))
	r.flush(t)
	assert.Equal(t, []string{`changed:{"city":"Lyon"}`, "validity:true"}, r.rec.take())
}

func TestSandbox_FieldFocus(t *testing.T) {
	r := newRig(t, document.DefaultManifest())
	r.render(t, contactSchema)
	r.rec.take()
	ctx := context.Background()

	require.NoError(t, r.view.Focus(ctx, "data[notes]"))
	require.NoError(t, r.view.Focus(ctx, "email"))
	require.NoError(t, r.view.Focus(ctx, "data[submit]"))
	require.NoError(t, r.view.FocusElement(ctx, "input", ""))
	require.NoError(t, r.view.FocusElement(ctx, "select", "data[choice]"))
	require.NoError(t, r.view.FocusElement(ctx, "textarea", "data[free]"))
	assert.ErrorIs(t, r.view.Focus(ctx, "data[nope]"), ErrFieldNotFound)
	r.flush(t)

	assert.Equal(t, []string{
		"focused:data[notes]",
		"focused:data[email]",
		"focused:data[free]",
	}, r.rec.take())
}

func TestSandbox_UserEdits(t *testing.T) {
	r := newRig(t, document.DefaultManifest())
	r.render(t, contactSchema)
	r.rec.take()
	ctx := context.Background()

	for i := range 10 {
		require.NoError(t, r.view.Edit(ctx, "data[name]", fmt.Sprintf("v%d", i)))
	}
	r.flush(t)

	events := r.rec.take()
	assert.Len(t, events, 20)
	assertPairs(t, events)
	assert.Equal(t, `changed:{"name":"v9"}`, events[18])
}

func TestSandbox_ReadOnlyRejectsEdits(t *testing.T) {
	r := newRig(t, document.DefaultManifest())
	r.render(t, contactSchema, entity.WithReadOnly(true))
	r.rec.take()

	assert.ErrorIs(t, r.view.Edit(context.Background(), "data[name]", "x"), ErrFieldNotFound)
	r.flush(t)
	assert.Empty(t, r.rec.take())
}

func TestSandbox_LoadFailures(t *testing.T) {
	tests := []struct {
		name     string
		schema   string
		manifest document.Manifest
		reason   string
	}{
		{name: "malformed schema", schema: `{"components": [`, manifest: document.DefaultManifest()},
		{name: "schema is not an object", schema: `[1, 2]`, manifest: document.DefaultManifest(), reason: "form schema must be an object"},
		{
			name:     "renderer missing",
			schema:   contactSchema,
			manifest: document.Manifest{Scripts: []string{"jquery.min.js"}},
			reason:   "form renderer is not loaded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t, tt.manifest)
			r.render(t, tt.schema)

			events := r.rec.take()
			require.Len(t, events, 1)
			assert.True(t, strings.HasPrefix(events[0], "loadFailed:"), events[0])
			if tt.reason != "" {
				assert.Equal(t, "loadFailed:"+tt.reason, events[0])
			}
			assert.Equal(t, entity.SessionLoading, r.session.State())

			_, err := r.session.FetchSubmission(context.Background())
			assert.ErrorIs(t, err, entity.ErrSessionNotReady)
		})
	}
}

func TestSandbox_MalformedPrefill(t *testing.T) {
	r := newRig(t, document.DefaultManifest())
	r.render(t, contactSchema, entity.WithPrefill(`{"name":`))

	events := r.rec.take()
	require.Len(t, events, 1)
	assert.True(t, strings.HasPrefix(events[0], "loadFailed:"))
}

func TestSandbox_RerenderDropsOldListener(t *testing.T) {
	r := newRig(t, document.DefaultManifest())
	r.render(t, contactSchema)
	first := r.rec

	second := &recorder{}
	desc, err := entity.NewFormDescriptor(contactSchema)
	require.NoError(t, err)
	require.NoError(t, r.session.Render(context.Background(), desc, second))
	r.flush(t)
	first.take()
	second.take()

	require.NoError(t, r.view.Edit(context.Background(), "data[name]", "z"))
	r.flush(t)

	assert.Empty(t, first.take())
	assert.Equal(t, []string{`changed:{"name":"z"}`, "validity:true"}, second.take())
}

func TestView_RequiresDocument(t *testing.T) {
	v := New()
	ctx := context.Background()

	assert.ErrorIs(t, v.EvaluateScript(ctx, "1"), ErrNoDocument)
	assert.ErrorIs(t, v.Edit(ctx, "a", "b"), ErrNoDocument)
	assert.ErrorIs(t, v.FocusElement(ctx, "input", "a"), ErrNoDocument)
	assert.Equal(t, DefaultAssetBaseURI, v.AssetBaseURI())
}

func TestView_ScriptErrors(t *testing.T) {
	v := New()
	ctx := context.Background()
	require.NoError(t, v.LoadDocument(ctx, `<html><body><div id="formio"></div></body></html>`))

	assert.ErrorIs(t, v.EvaluateScript(ctx, "throw new Error('nope')"), ErrScriptException)

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	err := v.EvaluateScript(cctx, "for (;;) {}")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestShimFor(t *testing.T) {
	assert.Equal(t, "js/formio.js", shimFor("dist/formio.full.min.js?v=4"))
	assert.Equal(t, "js/jquery.js", shimFor("http://127.0.0.1/app/jquery/jquery.min.js"))
	assert.Equal(t, "", shimFor("bootstrap.bundle.min.js"))
}
