package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Level: "info", Format: "text", Writer: &buf})
	require.NoError(t, err)
	l.Info("parse_failed", "line", 3)
	assert.Contains(t, buf.String(), "msg=parse_failed line=3")
	assert.NotContains(t, buf.String(), "source=")
}

func TestDebugAddsSource(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Level: "DEBUG", Writer: &buf})
	require.NoError(t, err)
	l.Debug("input_opened")
	assert.Contains(t, buf.String(), "source=")
}

func TestNewJSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Level: "warn", Format: "JSON", Writer: &buf})
	require.NoError(t, err)
	l.Info("hidden")
	l.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
	_, err = New(Options{Format: "xml"})
	assert.EqualError(t, err, "unsupported log format: xml")
}

func TestContext(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	var buf bytes.Buffer
	l, err := New(Options{Writer: &buf})
	require.NoError(t, err)
	ctx := WithContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))

	ctx = With(ctx, "input", "stdin")
	FromContext(ctx).Info("input_done")
	assert.Contains(t, buf.String(), "input=stdin")
}
