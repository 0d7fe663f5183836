package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCtxAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })
	SetLogger(zerolog.New(&buf))

	ctx := ContextWithRequestID(context.Background(), "req-123")
	Ctx(ctx).Info().Msg("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "req-123", line["request_id"])
	assert.Equal(t, "hello", line["message"])
}

func TestCtxWithoutRequestID(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })
	SetLogger(zerolog.New(&buf))

	Ctx(context.Background()).Info().Msg("plain")

	assert.NotContains(t, buf.String(), "request_id")
	assert.Equal(t, "", RequestIDFromContext(context.Background()))
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":    zerolog.DebugLevel,
		"WARN":     zerolog.WarnLevel,
		"warning":  zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"disabled": zerolog.Disabled,
		"":         zerolog.InfoLevel,
		"nonsense": zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), "level %q", in)
	}
}
