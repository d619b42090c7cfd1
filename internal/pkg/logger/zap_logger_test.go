package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_ErrorDetails(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewWithCore(core)

	l.Error("folder", "move failed", map[string]interface{}{
		"folder_id": 7,
		"error":     errors.New("database is locked"),
	})
	l.Info("folder", "created", nil)

	entries := logs.All()
	require.Len(t, entries, 2)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "move failed", entries[0].Message)
	assert.Equal(t, "folder", ctx["module"])
	assert.Equal(t, "database is locked", ctx["error_ref"])
	details, ok := ctx["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "database is locked", details["error"])

	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
}

func TestNewNopLogger(t *testing.T) {
	l := NewNopLogger()
	assert.NotPanics(t, func() {
		l.Warn("x", "y", nil)
	})
}
