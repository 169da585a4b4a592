package logger_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.seclens.dev/seclens/internal/adapters/logger"
)

func TestLogger_InfoWithArgs(t *testing.T) {
	l, ok := logger.New().(*logger.Logger)
	require.True(t, ok)

	var buf bytes.Buffer
	l.SetOutput(&buf)

	l.Info("refresh cycle finished", "key", "12345", "outcome", "success")

	out := buf.String()
	assert.Contains(t, out, "refresh cycle finished")
	assert.Contains(t, out, "key=12345")
	assert.Contains(t, out, "outcome=success")
	assert.Contains(t, out, "level=INFO")
}

func TestLogger_Warn(t *testing.T) {
	l := logger.New().(*logger.Logger)

	var buf bytes.Buffer
	l.SetOutput(&buf)

	l.Warn("refresh tick failed", "attempt", 3)

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "attempt=3")
}

func TestLogger_Error(t *testing.T) {
	l := logger.New().(*logger.Logger)

	var buf bytes.Buffer
	l.SetOutput(&buf)

	l.Error(errors.New("upstream request failed"))

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.True(t, strings.Contains(out, "upstream request failed"))
}
