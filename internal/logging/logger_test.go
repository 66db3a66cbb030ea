package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNewWithWriter_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Format = "json"

	log := newWithWriter(cfg, &buf)
	log.Info().Str("component", "test").Msg("hello")

	require.Contains(t, buf.String(), `"component":"test"`)
	require.Contains(t, buf.String(), `"message":"hello"`)
}

func TestNewWithWriter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Format = "json"
	cfg.Level = zerolog.WarnLevel

	log := newWithWriter(cfg, &buf)
	log.Info().Msg("dropped")

	assert.Empty(t, buf.String())
}

func TestWithSession_AddsField(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)
	ctx := WithContext(context.Background(), base)
	ctx = WithComponent(ctx, "form-session")
	ctx = WithSession(ctx, "abc")

	FromContext(ctx).Info().Msg("x")

	assert.Contains(t, buf.String(), `"component":"form-session"`)
	assert.Contains(t, buf.String(), `"session":"abc"`)
}
