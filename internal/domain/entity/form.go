package entity

import (
	"errors"
	"strings"
)

// EmptyPrefill is injected when a descriptor carries no prefill data.
// The renderer rejects an empty string as submission data.
const EmptyPrefill = "{}"

// ErrEmptySchema is returned when a descriptor is built without a form schema.
var ErrEmptySchema = errors.New("form schema is required")

// FormDescriptor is the configuration of one rendering session.
// Schema and prefill are opaque JSON text, passed through unvalidated.
type FormDescriptor struct {
	schema   string
	prefill  string
	readOnly bool
}

// DescriptorOption configures a FormDescriptor at construction time.
type DescriptorOption func(*FormDescriptor)

// WithPrefill sets the JSON data the form is pre-filled with.
func WithPrefill(data string) DescriptorOption {
	return func(d *FormDescriptor) {
		d.prefill = data
	}
}

// WithReadOnly renders the form without editable inputs.
func WithReadOnly(readOnly bool) DescriptorOption {
	return func(d *FormDescriptor) {
		d.readOnly = readOnly
	}
}

// NewFormDescriptor builds an immutable descriptor. Only blank schemas are
// rejected; malformed JSON surfaces inside the embedded renderer.
func NewFormDescriptor(schema string, opts ...DescriptorOption) (FormDescriptor, error) {
	if strings.TrimSpace(schema) == "" {
		return FormDescriptor{}, ErrEmptySchema
	}
	d := FormDescriptor{schema: schema}
	for _, opt := range opts {
		if opt != nil {
			opt(&d)
		}
	}
	return d, nil
}

// Schema returns the form schema exactly as provided.
func (d FormDescriptor) Schema() string {
	return d.schema
}

// RawPrefill returns the prefill data exactly as provided.
func (d FormDescriptor) RawPrefill() string {
	return d.prefill
}

// Prefill returns the data to inject: blank input becomes EmptyPrefill,
// anything else is returned verbatim.
func (d FormDescriptor) Prefill() string {
	return NormalizePrefill(d.prefill)
}

// ReadOnly reports whether inputs are disabled.
func (d FormDescriptor) ReadOnly() bool {
	return d.readOnly
}

// NormalizePrefill maps empty or whitespace-only data to EmptyPrefill.
func NormalizePrefill(data string) string {
	if strings.TrimSpace(data) == "" {
		return EmptyPrefill
	}
	return data
}
