package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestZapLogger_WithKeepsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	var log Logger = &ZapLogger{logger: zap.New(core).Sugar()}

	log.With("component", "scheduler").Warn("Pilot assignment rejected", "flightId", int64(3))

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "scheduler", fields["component"])
		assert.Equal(t, int64(3), fields["flightId"])
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	}
}
