package logger_test

import (
	"testing"

	"go-hrm/internal/config"
	"go-hrm/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	l, err := logger.New(config.LogConfig{Level: "debug", Format: "console"})
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = logger.New(config.LogConfig{Level: "warn", Format: "json"})
	assert.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))

	_, err = logger.New(config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}
