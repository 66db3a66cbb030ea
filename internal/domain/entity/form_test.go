package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormDescriptor(t *testing.T) {
	t.Run("rejects blank schema", func(t *testing.T) {
		for _, schema := range []string{"", "   ", "\n\t"} {
			_, err := NewFormDescriptor(schema)
			assert.ErrorIs(t, err, ErrEmptySchema, "schema %q", schema)
		}
	})

	t.Run("keeps schema verbatim", func(t *testing.T) {
		schema := ` {"components":[{"key":"a</script>"}]} `
		d, err := NewFormDescriptor(schema, WithReadOnly(true))
		require.NoError(t, err)
		assert.Equal(t, schema, d.Schema())
		assert.True(t, d.ReadOnly())
	})

	t.Run("malformed JSON is accepted", func(t *testing.T) {
		d, err := NewFormDescriptor(`{"components": [`)
		require.NoError(t, err)
		assert.Equal(t, `{"components": [`, d.Schema())
	})

	t.Run("defaults", func(t *testing.T) {
		d, err := NewFormDescriptor(`{}`, nil)
		require.NoError(t, err)
		assert.False(t, d.ReadOnly())
		assert.Empty(t, d.RawPrefill())
		assert.Equal(t, EmptyPrefill, d.Prefill())
	})
}

func TestNormalizePrefill(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: "{}"},
		{name: "spaces", in: "   ", want: "{}"},
		{name: "newlines", in: "\n\r\n\t", want: "{}"},
		{name: "object", in: `{"name":"Ada"}`, want: `{"name":"Ada"}`},
		{name: "padded object kept verbatim", in: ` {"a":1} `, want: ` {"a":1} `},
		{name: "malformed kept verbatim", in: `{"a":`, want: `{"a":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePrefill(tt.in))

			d, err := NewFormDescriptor(`{}`, WithPrefill(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Prefill())
			assert.Equal(t, tt.in, d.RawPrefill())
		})
	}
}
