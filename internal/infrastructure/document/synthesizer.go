// Package document renders the HTML document that hosts the form renderer.
package document

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/bnema/formview/internal/application/port"
	"github.com/bnema/formview/internal/domain/entity"
)

//go:embed templates/*
var templateFS embed.FS

const (
	documentTemplate = "form.html.tpl"
	bridgeScriptFile = "bridge.js"

	// Data block ids read by the bridge script.
	SchemaBlockID  = "formview-schema"
	DataBlockID    = "formview-data"
	OptionsBlockID = "formview-options"
)

var registerFiltersOnce sync.Once

// Options is the content of the formview-options data block.
type Options struct {
	Bridge    string `json:"bridge"`
	Session   string `json:"session"`
	ReadOnly  bool   `json:"readOnly"`
	Container string `json:"container"`
}

// Synthesizer builds form documents from an embedded pongo2 template.
type Synthesizer struct {
	manifest     Manifest
	template     *pongo2.Template
	bridgeScript string
}

var _ port.DocumentSynthesizer = (*Synthesizer)(nil)

// NewSynthesizer parses the embedded template once.
func NewSynthesizer(manifest Manifest) (*Synthesizer, error) {
	registerFiltersOnce.Do(registerFilters)

	files, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("document: open templates: %w", err)
	}

	set := pongo2.NewSet("formview", pongo2.NewFSLoader(files))
	tpl, err := set.FromFile(documentTemplate)
	if err != nil {
		return nil, fmt.Errorf("document: parse %s: %w", documentTemplate, err)
	}

	script, err := fs.ReadFile(files, bridgeScriptFile)
	if err != nil {
		return nil, fmt.Errorf("document: read %s: %w", bridgeScriptFile, err)
	}
	if strings.Contains(strings.ToLower(string(script)), "</script") {
		return nil, fmt.Errorf("document: %s must not contain a closing script tag", bridgeScriptFile)
	}

	if manifest.ContainerID == "" {
		manifest.ContainerID = DefaultManifest().ContainerID
	}

	return &Synthesizer{
		manifest:     manifest,
		template:     tpl,
		bridgeScript: string(script),
	}, nil
}

// Synthesize renders the document for one session. Schema and prefill are
// embedded as JSON string literals, so the text the document decodes is the
// descriptor content byte for byte. Invalid UTF-8 sequences cannot be
// represented in the document and are each decoded as U+FFFD.
func (s *Synthesizer) Synthesize(descriptor entity.FormDescriptor, opts port.DocumentOptions) (string, error) {
	options := Options{
		Bridge:    opts.BridgeName,
		Session:   string(opts.Session),
		ReadOnly:  descriptor.ReadOnly(),
		Container: s.manifest.ContainerID,
	}

	ctx := pongo2.Context{
		"asset_base":    opts.AssetBaseURI,
		"stylesheets":   s.manifest.Stylesheets,
		"scripts":       s.manifest.Scripts,
		"container_id":  s.manifest.ContainerID,
		"schema":        descriptor.Schema(),
		"prefill":       descriptor.Prefill(),
		"options":       options,
		"bridge_script": s.bridgeScript,
	}

	var buf bytes.Buffer
	if err := s.template.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("document: render: %w", err)
	}
	return buf.String(), nil
}

func registerFilters() {
	if !pongo2.FilterExists("jsonscript") {
		_ = pongo2.RegisterFilter("jsonscript", filterJSONScript)
	}
}

// filterJSONScript encodes a value for a <script type="application/json">
// block. encoding/json escapes <, >, &, U+2028 and U+2029, so the payload
// cannot close the element.
func filterJSONScript(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	encoded, err := json.Marshal(in.Interface())
	if err != nil {
		return nil, &pongo2.Error{Sender: "filter:jsonscript", OrigError: err}
	}
	return pongo2.AsSafeValue(string(encoded)), nil
}
